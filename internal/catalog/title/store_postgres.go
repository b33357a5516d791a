// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

package title

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kritikadev/kritika/internal/catalog/category"
	"github.com/kritikadev/kritika/internal/catalog/genre"
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

// titleSelect is the shared projection for hydrated title rows.
//
// The rating is a rounded average over social.review; the genres are
// aggregated to a JSON array to prevent N+1 queries.
const titleSelect = `
	SELECT
		t.id, t.name, t.year, t.description, t.createdat, t.updatedat,
		c.name, c.slug,
		(SELECT ROUND(AVG(r.score))::int FROM social.review r WHERE r.titleid = t.id) AS rating,
		COALESCE((
			SELECT json_agg(json_build_object('name', g.name, 'slug', g.slug) ORDER BY g.name)
			FROM catalog.genre g
			JOIN catalog.titlegenre tg ON g.id = tg.genreid
			WHERE tg.titleid = t.id
		), '[]') AS genres
	FROM catalog.title t
	LEFT JOIN catalog.category c ON t.categoryid = c.id
`

/*
List returns a page of hydrated titles and the total match count.

Performance Characteristics:

  - Window Function: COUNT(*) OVER() avoids a second round trip for the total.
  - Aggregations: genres arrive as a JSON array per row, rating as a scalar
    subquery, so the page is built in a single statement.

Parameters:
  - context: context.Context
  - filter: Filter (category, genre, name, year)
  - limit: int
  - offset: int

Returns:
  - []*Title: Slice of hydrated title entities
  - int: Total count matching filters
  - error: Database execution errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(`
		SELECT
			t.id, t.name, t.year, t.description, t.createdat, t.updatedat,
			c.name, c.slug,
			(SELECT ROUND(AVG(r.score))::int FROM social.review r WHERE r.titleid = t.id) AS rating,
			COALESCE((
				SELECT json_agg(json_build_object('name', g.name, 'slug', g.slug) ORDER BY g.name)
				FROM catalog.genre g
				JOIN catalog.titlegenre tg ON g.id = tg.genreid
				WHERE tg.titleid = t.id
			), '[]') AS genres,
			COUNT(*) OVER() AS total_count
		FROM catalog.title t
		LEFT JOIN catalog.category c ON t.categoryid = c.id
		WHERE TRUE
	`)

	// Category Filtering (by slug)
	if filter.CategorySlug != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.slug = $%d", argID))
		args = append(args, filter.CategorySlug)
		argID++
	}

	// Genre Filtering (any of the slugs, via the join table)
	if len(filter.GenreSlugs) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM catalog.titlegenre tg
			JOIN catalog.genre g ON g.id = tg.genreid
			WHERE tg.titleid = t.id AND g.slug = ANY($%d)
		)`, argID))
		args = append(args, filter.GenreSlugs)
		argID++
	}

	// Name Filtering (substring, case-insensitive)
	if filter.Name != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND t.name ILIKE '%%' || $%d || '%%'", argID))
		args = append(args, filter.Name)
		argID++
	}

	// Year Filtering (exact match)
	if filter.Year != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND t.year = $%d", argID))
		args = append(args, *filter.Year)
		argID++
	}

	queryBuilder.WriteString(" ORDER BY t.name ASC, t.id ASC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_titles")
	}
	defer rows.Close()

	titles := make([]*Title, 0)
	totalCount := 0

	for rows.Next() {
		t, total, err := scanTitleRow(rows, true)
		if err != nil {
			return nil, 0, err
		}
		totalCount = total
		titles = append(titles, t)
	}

	return titles, totalCount, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id int64) (*Title, error) {
	query := titleSelect + " WHERE t.id = $1"

	rows, err := repository.db.Query(context, query, id)
	if err != nil {
		return nil, dberr.Wrap(err, "get_title")
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, apperr.NotFound("Title not found")
	}

	t, _, err := scanTitleRow(rows, false)
	if err != nil {
		return nil, err
	}

	return t, nil
}

func (repository *PostgresRepository) Create(context context.Context, title *Title) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_title")
	}
	defer func() { _ = tx.Rollback(context) }()

	var categoryID *int64
	if title.Category != nil {
		categoryID = &title.Category.ID
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s, %s, %s`,
		schema.CatalogTitle.Table,
		schema.CatalogTitle.Name, schema.CatalogTitle.Year, schema.CatalogTitle.Description, schema.CatalogTitle.CategoryID,
		schema.CatalogTitle.ID, schema.CatalogTitle.CreatedAt, schema.CatalogTitle.UpdatedAt)

	err = tx.QueryRow(context, query, title.Name, title.Year, title.Description, categoryID).
		Scan(&title.ID, &title.CreatedAt, &title.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_title")
	}

	if err := insertGenreLinks(context, tx, title.ID, title.Genres); err != nil {
		return err
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_create_title")
	}

	return nil
}

func (repository *PostgresRepository) Update(context context.Context, title *Title) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_title")
	}
	defer func() { _ = tx.Rollback(context) }()

	var categoryID *int64
	if title.Category != nil {
		categoryID = &title.Category.ID
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4, %s = NOW() WHERE %s = $5`,
		schema.CatalogTitle.Table,
		schema.CatalogTitle.Name, schema.CatalogTitle.Year, schema.CatalogTitle.Description,
		schema.CatalogTitle.CategoryID, schema.CatalogTitle.UpdatedAt, schema.CatalogTitle.ID)

	tag, err := tx.Exec(context, query, title.Name, title.Year, title.Description, categoryID, title.ID)
	if err != nil {
		return dberr.Wrap(err, "update_title")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title not found")
	}

	// Replace the genre links wholesale. The set is tiny, diffing is not worth it.
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogTitleGenre.Table, schema.CatalogTitleGenre.TitleID)
	if _, err := tx.Exec(context, deleteQuery, title.ID); err != nil {
		return dberr.Wrap(err, "clear_title_genres")
	}

	if err := insertGenreLinks(context, tx, title.ID, title.Genres); err != nil {
		return err
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_update_title")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogTitle.Table, schema.CatalogTitle.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_title")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title not found")
	}

	return nil
}

func (repository *PostgresRepository) CategoryBySlug(context context.Context, slug string) (*category.Category, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		schema.CatalogCategory.ID, schema.CatalogCategory.Name, schema.CatalogCategory.Slug,
		schema.CatalogCategory.Table, schema.CatalogCategory.Slug)

	c := &category.Category{}
	err := repository.db.QueryRow(context, query, slug).Scan(&c.ID, &c.Name, &c.Slug)
	if err != nil {
		return nil, dberr.Wrap(err, "get_category_by_slug")
	}

	return c, nil
}

func (repository *PostgresRepository) GenresBySlugs(context context.Context, slugs []string) ([]genre.Genre, error) {
	if len(slugs) == 0 {
		return []genre.Genre{}, nil
	}

	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = ANY($1)`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Slug,
		schema.CatalogGenre.Table, schema.CatalogGenre.Slug)

	rows, err := repository.db.Query(context, query, slugs)
	if err != nil {
		return nil, dberr.Wrap(err, "get_genres_by_slugs")
	}
	defer rows.Close()

	genres := make([]genre.Genre, 0, len(slugs))
	for rows.Next() {
		g := genre.Genre{}
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug); err != nil {
			return nil, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}

	return genres, nil
}

// insertGenreLinks writes the join rows for a title's genres inside tx.
func insertGenreLinks(context context.Context, tx pgx.Tx, titleID int64, genres []genre.Genre) error {
	if len(genres) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		schema.CatalogTitleGenre.Table,
		schema.CatalogTitleGenre.TitleID, schema.CatalogTitleGenre.GenreID)

	for _, g := range genres {
		if _, err := tx.Exec(context, query, titleID, g.ID); err != nil {
			return dberr.Wrap(err, "link_title_genre")
		}
	}

	return nil
}

// scanTitleRow hydrates one row of the shared title projection.
func scanTitleRow(rows pgx.Rows, withTotal bool) (*Title, int, error) {
	t := &Title{}
	var categoryName, categorySlug *string
	var genresJSON []byte
	total := 0

	dest := []any{
		&t.ID, &t.Name, &t.Year, &t.Description, &t.CreatedAt, &t.UpdatedAt,
		&categoryName, &categorySlug, &t.Rating, &genresJSON,
	}
	if withTotal {
		dest = append(dest, &total)
	}

	if err := rows.Scan(dest...); err != nil {
		return nil, 0, dberr.Wrap(err, "scan_title")
	}

	if categorySlug != nil {
		t.Category = &category.Category{Name: *categoryName, Slug: *categorySlug}
	}

	if err := json.Unmarshal(genresJSON, &t.Genres); err != nil {
		return nil, 0, dberr.Wrap(err, "unmarshal_title_genres")
	}

	return t, total, nil
}
