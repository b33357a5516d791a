// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

package review

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kritikadev/kritika/internal/platform/apperr"
	"github.com/kritikadev/kritika/internal/platform/constants"
	"github.com/kritikadev/kritika/internal/platform/database/schema"
	"github.com/kritikadev/kritika/internal/platform/dberr"
)

// authorTitleUniqueConstraint is the UNIQUE constraint from the migrations
// backing the one-review-per-user-per-title rule.
const authorTitleUniqueConstraint = "review_unique_author_title"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListByTitle(context context.Context, titleID int64, limit, offset int) ([]*Review, int, error) {
	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, u.%s, r.%s, r.%s, r.%s, r.%s,
		       COUNT(*) OVER() AS total_count
		FROM %s r
		JOIN %s u ON r.%s = u.%s
		WHERE r.%s = $1
		ORDER BY r.%s DESC, r.%s DESC
		LIMIT $2 OFFSET $3
	`,
		schema.SocialReview.ID, schema.SocialReview.TitleID, schema.SocialReview.AuthorID, schema.UserAccount.Username,
		schema.SocialReview.Text, schema.SocialReview.Score, schema.SocialReview.CreatedAt, schema.SocialReview.UpdatedAt,
		schema.SocialReview.Table, schema.UserAccount.Table,
		schema.SocialReview.AuthorID, schema.UserAccount.ID,
		schema.SocialReview.TitleID,
		schema.SocialReview.CreatedAt, schema.SocialReview.ID,
	)

	rows, err := repository.db.Query(context, query, titleID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	total := 0

	for rows.Next() {
		r := &Review{}
		err := rows.Scan(&r.ID, &r.TitleID, &r.AuthorID, &r.Author, &r.Text, &r.Score, &r.CreatedAt, &r.UpdatedAt, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, r)
	}

	return reviews, total, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, titleID, reviewID int64) (*Review, error) {
	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, u.%s, r.%s, r.%s, r.%s, r.%s
		FROM %s r
		JOIN %s u ON r.%s = u.%s
		WHERE r.%s = $1 AND r.%s = $2
	`,
		schema.SocialReview.ID, schema.SocialReview.TitleID, schema.SocialReview.AuthorID, schema.UserAccount.Username,
		schema.SocialReview.Text, schema.SocialReview.Score, schema.SocialReview.CreatedAt, schema.SocialReview.UpdatedAt,
		schema.SocialReview.Table, schema.UserAccount.Table,
		schema.SocialReview.AuthorID, schema.UserAccount.ID,
		schema.SocialReview.ID, schema.SocialReview.TitleID,
	)

	r := &Review{}
	err := repository.db.QueryRow(context, query, reviewID, titleID).
		Scan(&r.ID, &r.TitleID, &r.AuthorID, &r.Author, &r.Text, &r.Score, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_review")
	}

	return r, nil
}

func (repository *PostgresRepository) Create(context context.Context, review *Review) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s, %s, %s`,
		schema.SocialReview.Table,
		schema.SocialReview.TitleID, schema.SocialReview.AuthorID, schema.SocialReview.Text, schema.SocialReview.Score,
		schema.SocialReview.ID, schema.SocialReview.CreatedAt, schema.SocialReview.UpdatedAt)

	err := repository.db.QueryRow(context, query, review.TitleID, review.AuthorID, review.Text, review.Score).
		Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		// A duplicate review is a payload problem, not a server conflict.
		if dberr.IsUniqueViolation(err, authorTitleUniqueConstraint) {
			return apperr.ValidationError("Invalid payload", apperr.FieldError{
				Field:   constants.FieldTitle,
				Message: "You have already reviewed this title",
			})
		}
		return dberr.Wrap(err, "create_review")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, review *Review) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = NOW() WHERE %s = $3 RETURNING %s`,
		schema.SocialReview.Table,
		schema.SocialReview.Text, schema.SocialReview.Score, schema.SocialReview.UpdatedAt,
		schema.SocialReview.ID, schema.SocialReview.UpdatedAt)

	err := repository.db.QueryRow(context, query, review.Text, review.Score, review.ID).Scan(&review.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_review")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, titleID, reviewID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialReview.Table, schema.SocialReview.ID, schema.SocialReview.TitleID)

	tag, err := repository.db.Exec(context, query, reviewID, titleID)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review not found")
	}

	return nil
}

func (repository *PostgresRepository) TitleExists(context context.Context, titleID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CatalogTitle.Table, schema.CatalogTitle.ID)

	exists := false
	if err := repository.db.QueryRow(context, query, titleID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check_title_exists")
	}

	return exists, nil
}
