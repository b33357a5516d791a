package genre

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kritikadev/kritika/internal/platform/apperr"
	"github.com/kritikadev/kritika/internal/platform/database/schema"
	"github.com/kritikadev/kritika/internal/platform/dberr"
	"github.com/kritikadev/kritika/pkg/pagination"
)

// slugUniqueConstraint is the UNIQUE constraint name from the migrations.
const slugUniqueConstraint = "genre_slug_key"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context, params pagination.Params, search string) ([]Genre, int, error) {
	total := 0

	if search != "" {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s ILIKE '%%' || $1 || '%%'`,
			schema.CatalogGenre.Table, schema.CatalogGenre.Name)
		if err := repository.db.QueryRow(context, countQuery, search).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, "count_genres")
		}
	} else {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.CatalogGenre.Table)
		if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, "count_genres")
		}
	}

	filter := ""
	args := []any{params.Limit, params.Offset()}
	if search != "" {
		filter = fmt.Sprintf("WHERE %s ILIKE '%%' || $3 || '%%'", schema.CatalogGenre.Name)
		args = append(args, search)
	}

	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s %s ORDER BY %s ASC LIMIT $1 OFFSET $2`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Slug, schema.CatalogGenre.CreatedAt,
		schema.CatalogGenre.Table, filter, schema.CatalogGenre.Name)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	genres := make([]Genre, 0)
	for rows.Next() {
		g := Genre{}
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug, &g.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}

	return genres, total, nil
}

func (repository *PostgresRepository) Create(context context.Context, genre *Genre) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s, %s`,
		schema.CatalogGenre.Table,
		schema.CatalogGenre.Name, schema.CatalogGenre.Slug,
		schema.CatalogGenre.ID, schema.CatalogGenre.CreatedAt)

	err := repository.db.QueryRow(context, query, genre.Name, genre.Slug).
		Scan(&genre.ID, &genre.CreatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err, slugUniqueConstraint) {
			return apperr.Conflict("Genre slug already exists")
		}
		return dberr.Wrap(err, "create_genre")
	}

	return nil
}

func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogGenre.Table, schema.CatalogGenre.Slug)

	tag, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_genre")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Genre not found")
	}

	return nil
}
