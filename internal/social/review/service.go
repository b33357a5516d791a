// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

package review

import (
	"context"
	"log/slog"

	"github.com/kritikadev/kritika/internal/platform/apperr"
	"github.com/kritikadev/kritika/internal/platform/policy"
	"github.com/kritikadev/kritika/internal/platform/sec"
)

// CreateInput carries the validated fields for a new review.
type CreateInput struct {
	Text  string
	Score int
}

// UpdateInput carries a partial review update. Nil fields are left untouched.
type UpdateInput struct {
	Text  *string
	Score *int
}

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

func (service *Service) List(context context.Context, titleID int64, limit, offset int) ([]*Review, int, error) {
	if err := service.ensureTitle(context, titleID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListByTitle(context, titleID, limit, offset)
}

func (service *Service) Get(context context.Context, titleID, reviewID int64) (*Review, error) {
	if err := service.ensureTitle(context, titleID); err != nil {
		return nil, err
	}
	return service.repo.GetByID(context, titleID, reviewID)
}

func (service *Service) Create(context context.Context, claims *sec.AuthClaims, titleID int64, input CreateInput) (*Review, error) {
	if err := service.ensureTitle(context, titleID); err != nil {
		return nil, err
	}

	review := &Review{
		TitleID:  titleID,
		AuthorID: claims.UserID,
		Author:   claims.Username,
		Text:     input.Text,
		Score:    input.Score,
	}

	if err := service.repo.Create(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_created",
		slog.Int64("review_id", review.ID),
		slog.Int64("title_id", titleID),
		slog.String("author", review.Author),
	)

	return review, nil
}

func (service *Service) Update(context context.Context, claims *sec.AuthClaims, titleID, reviewID int64, input UpdateInput) (*Review, error) {
	review, err := service.Get(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	// Only the author, a moderator, or an admin may touch someone's review.
	if err := policy.AllowObject(policy.Discussion, false, claims, review.AuthorID); err != nil {
		return nil, err
	}

	if input.Text != nil {
		review.Text = *input.Text
	}
	if input.Score != nil {
		review.Score = *input.Score
	}

	if err := service.repo.Update(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_updated",
		slog.Int64("review_id", review.ID),
		slog.String("actor", claims.Username),
	)

	return review, nil
}

func (service *Service) Delete(context context.Context, claims *sec.AuthClaims, titleID, reviewID int64) error {
	review, err := service.Get(context, titleID, reviewID)
	if err != nil {
		return err
	}

	if err := policy.AllowObject(policy.Discussion, false, claims, review.AuthorID); err != nil {
		return err
	}

	if err := service.repo.Delete(context, titleID, reviewID); err != nil {
		return err
	}

	service.logger.Info("review_deleted",
		slog.Int64("review_id", reviewID),
		slog.String("actor", claims.Username),
	)

	return nil
}

func (service *Service) ensureTitle(context context.Context, titleID int64) error {
	exists, err := service.repo.TitleExists(context, titleID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Title not found")
	}
	return nil
}
