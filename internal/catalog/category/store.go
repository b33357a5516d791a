package category

import (
	"context"

	"github.com/kritikadev/kritika/pkg/pagination"
)

type Repository interface {
	List(context context.Context, params pagination.Params, search string) ([]Category, int, error)
	Create(context context.Context, category *Category) error
	DeleteBySlug(context context.Context, slug string) error
}
