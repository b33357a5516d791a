// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kritikadev/kritika/internal/platform/apperr"
	"github.com/kritikadev/kritika/internal/platform/database/schema"
	"github.com/kritikadev/kritika/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListByReview(context context.Context, reviewID int64, limit, offset int) ([]*Comment, int, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, u.%s, c.%s, c.%s, c.%s,
		       COUNT(*) OVER() AS total_count
		FROM %s c
		JOIN %s u ON c.%s = u.%s
		WHERE c.%s = $1
		ORDER BY c.%s ASC, c.%s ASC
		LIMIT $2 OFFSET $3
	`,
		schema.SocialComment.ID, schema.SocialComment.ReviewID, schema.SocialComment.AuthorID, schema.UserAccount.Username,
		schema.SocialComment.Text, schema.SocialComment.CreatedAt, schema.SocialComment.UpdatedAt,
		schema.SocialComment.Table, schema.UserAccount.Table,
		schema.SocialComment.AuthorID, schema.UserAccount.ID,
		schema.SocialComment.ReviewID,
		schema.SocialComment.CreatedAt, schema.SocialComment.ID,
	)

	rows, err := repository.db.Query(context, query, reviewID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	total := 0

	for rows.Next() {
		c := &Comment{}
		err := rows.Scan(&c.ID, &c.ReviewID, &c.AuthorID, &c.Author, &c.Text, &c.CreatedAt, &c.UpdatedAt, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, c)
	}

	return comments, total, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, reviewID, commentID int64) (*Comment, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, u.%s, c.%s, c.%s, c.%s
		FROM %s c
		JOIN %s u ON c.%s = u.%s
		WHERE c.%s = $1 AND c.%s = $2
	`,
		schema.SocialComment.ID, schema.SocialComment.ReviewID, schema.SocialComment.AuthorID, schema.UserAccount.Username,
		schema.SocialComment.Text, schema.SocialComment.CreatedAt, schema.SocialComment.UpdatedAt,
		schema.SocialComment.Table, schema.UserAccount.Table,
		schema.SocialComment.AuthorID, schema.UserAccount.ID,
		schema.SocialComment.ID, schema.SocialComment.ReviewID,
	)

	c := &Comment{}
	err := repository.db.QueryRow(context, query, commentID, reviewID).
		Scan(&c.ID, &c.ReviewID, &c.AuthorID, &c.Author, &c.Text, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_comment")
	}

	return c, nil
}

func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING %s, %s, %s`,
		schema.SocialComment.Table,
		schema.SocialComment.ReviewID, schema.SocialComment.AuthorID, schema.SocialComment.Text,
		schema.SocialComment.ID, schema.SocialComment.CreatedAt, schema.SocialComment.UpdatedAt)

	err := repository.db.QueryRow(context, query, comment.ReviewID, comment.AuthorID, comment.Text).
		Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_comment")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2 RETURNING %s`,
		schema.SocialComment.Table,
		schema.SocialComment.Text, schema.SocialComment.UpdatedAt,
		schema.SocialComment.ID, schema.SocialComment.UpdatedAt)

	err := repository.db.QueryRow(context, query, comment.Text, comment.ID).Scan(&comment.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_comment")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, reviewID, commentID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialComment.Table, schema.SocialComment.ID, schema.SocialComment.ReviewID)

	tag, err := repository.db.Exec(context, query, commentID, reviewID)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment not found")
	}

	return nil
}

func (repository *PostgresRepository) ReviewBelongsToTitle(context context.Context, titleID, reviewID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.SocialReview.Table, schema.SocialReview.ID, schema.SocialReview.TitleID)

	exists := false
	if err := repository.db.QueryRow(context, query, reviewID, titleID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check_review_title")
	}

	return exists, nil
}
