package genre

import (
	"context"

	"github.com/kritikadev/kritika/pkg/pagination"
)

type Repository interface {
	List(context context.Context, params pagination.Params, search string) ([]Genre, int, error)
	Create(context context.Context, genre *Genre) error
	DeleteBySlug(context context.Context, slug string) error
}
