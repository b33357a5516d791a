package category

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
const slugUniqueConstraint = "category_slug_key"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context, params pagination.Params, search string) ([]Category, int, error) {
	total := 0

	if search != "" {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s ILIKE '%%' || $1 || '%%'`,
			schema.CatalogCategory.Table, schema.CatalogCategory.Name)
		if err := repository.db.QueryRow(context, countQuery, search).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, "count_categories")
		}
	} else {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.CatalogCategory.Table)
		if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, "count_categories")
		}
	}

	filter := ""
	args := []any{params.Limit, params.Offset()}
	if search != "" {
		filter = fmt.Sprintf("WHERE %s ILIKE '%%' || $3 || '%%'", schema.CatalogCategory.Name)
		args = append(args, search)
	}

	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s %s ORDER BY %s ASC LIMIT $1 OFFSET $2`,
		schema.CatalogCategory.ID, schema.CatalogCategory.Name, schema.CatalogCategory.Slug, schema.CatalogCategory.CreatedAt,
		schema.CatalogCategory.Table, filter, schema.CatalogCategory.Name)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		c := Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, c)
	}

	return categories, total, nil
}

func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s, %s`,
		schema.CatalogCategory.Table,
		schema.CatalogCategory.Name, schema.CatalogCategory.Slug,
		schema.CatalogCategory.ID, schema.CatalogCategory.CreatedAt)

	err := repository.db.QueryRow(context, query, category.Name, category.Slug).
		Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err, slugUniqueConstraint) {
			return apperr.Conflict("Category slug already exists")
		}
		return dberr.Wrap(err, "create_category")
	}

	return nil
}

func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogCategory.Table, schema.CatalogCategory.Slug)

	tag, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category not found")
	}

	return nil
}
