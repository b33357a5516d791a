package review

import "context"

type Repository interface {
	ListByTitle(context context.Context, titleID int64, limit, offset int) ([]*Review, int, error)
	GetByID(context context.Context, titleID, reviewID int64) (*Review, error)
	Create(context context.Context, review *Review) error
	Update(context context.Context, review *Review) error
	Delete(context context.Context, titleID, reviewID int64) error

	// TitleExists reports whether the parent title is present. Nested review
	// routes must 404 on unknown titles before touching the review table.
	TitleExists(context context.Context, titleID int64) (bool, error)
}
