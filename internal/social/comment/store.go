package comment

import "context"

type Repository interface {
	ListByReview(context context.Context, reviewID int64, limit, offset int) ([]*Comment, int, error)
	GetByID(context context.Context, reviewID, commentID int64) (*Comment, error)
	Create(context context.Context, comment *Comment) error
	Update(context context.Context, comment *Comment) error
	Delete(context context.Context, reviewID, commentID int64) error

	// ReviewBelongsToTitle reports whether the review exists under the given
	// title. Nested comment routes must 404 on a mismatched pairing.
	ReviewBelongsToTitle(context context.Context, titleID, reviewID int64) (bool, error)
}
