package comment

import (
	"context"
	"log/slog"

	"github.com/kritikadev/kritika/internal/platform/apperr"
	"github.com/kritikadev/kritika/internal/platform/policy"
	"github.com/kritikadev/kritika/internal/platform/sec"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) List(context context.Context, titleID, reviewID int64, limit, offset int) ([]*Comment, int, error) {
	if err := service.ensureReview(context, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListByReview(context, reviewID, limit, offset)
}

func (service *Service) Get(context context.Context, titleID, reviewID, commentID int64) (*Comment, error) {
	if err := service.ensureReview(context, titleID, reviewID); err != nil {
		return nil, err
	}
	return service.repo.GetByID(context, reviewID, commentID)
}

func (service *Service) Create(context context.Context, claims *sec.AuthClaims, titleID, reviewID int64, text string) (*Comment, error) {
	if err := service.ensureReview(context, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ReviewID: reviewID,
		AuthorID: claims.UserID,
		Author:   claims.Username,
		Text:     text,
	}

	if err := service.repo.Create(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("review_id", reviewID),
		slog.String("author", comment.Author),
	)

	return comment, nil
}

func (service *Service) Update(context context.Context, claims *sec.AuthClaims, titleID, reviewID, commentID int64, text string) (*Comment, error) {
	comment, err := service.Get(context, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if err := policy.AllowObject(policy.Discussion, false, claims, comment.AuthorID); err != nil {
		return nil, err
	}

	comment.Text = text
	if err := service.repo.Update(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_updated",
		slog.Int64("comment_id", comment.ID),
		slog.String("actor", claims.Username),
	)

	return comment, nil
}

func (service *Service) Delete(context context.Context, claims *sec.AuthClaims, titleID, reviewID, commentID int64) error {
	comment, err := service.Get(context, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if err := policy.AllowObject(policy.Discussion, false, claims, comment.AuthorID); err != nil {
		return err
	}

	if err := service.repo.Delete(context, reviewID, commentID); err != nil {
		return err
	}

	service.logger.Info("comment_deleted",
		slog.Int64("comment_id", commentID),
		slog.String("actor", claims.Username),
	)

	return nil
}

func (service *Service) ensureReview(context context.Context, titleID, reviewID int64) error {
	ok, err := service.repo.ReviewBelongsToTitle(context, titleID, reviewID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("Review not found")
	}
	return nil
}
