package title

import (
	"context"

	"github.com/kritikadev/kritika/internal/catalog/category"
	"github.com/kritikadev/kritika/internal/catalog/genre"
)

// Repository is the persistence boundary for titles.
//
// The category and genre lookups live here too: the title store is the only
// consumer that needs to resolve catalogue slugs into foreign keys.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error)
	GetByID(context context.Context, id int64) (*Title, error)

	// Create persists the title and its genre links in one transaction.
	// Category and Genres must already carry database IDs.
	Create(context context.Context, title *Title) error

	// Update overwrites the title row and replaces its genre links.
	Update(context context.Context, title *Title) error

	Delete(context context.Context, id int64) error

	CategoryBySlug(context context.Context, slug string) (*category.Category, error)
	GenresBySlugs(context context.Context, slugs []string) ([]genre.Genre, error)
}
