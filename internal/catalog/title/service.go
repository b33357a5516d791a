// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

package title

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kritikadev/kritika/internal/catalog/category"
	"github.com/kritikadev/kritika/internal/catalog/genre"
	"github.com/kritikadev/kritika/internal/platform/apperr"
	"github.com/kritikadev/kritika/internal/platform/constants"
)

// CreateInput carries the validated fields for a new title.
type CreateInput struct {
	Name         string
	Year         int
	Description  *string
	CategorySlug string
	GenreSlugs   []string
}

// UpdateInput carries a partial update. Nil fields are left untouched.
type UpdateInput struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   *[]string
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

func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

func (service *Service) Get(context context.Context, id int64) (*Title, error) {
	return service.repo.GetByID(context, id)
}

func (service *Service) Create(context context.Context, input CreateInput) (*Title, error) {
	title := &Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
	}

	cat, err := service.resolveCategory(context, input.CategorySlug)
	if err != nil {
		return nil, err
	}
	title.Category = cat

	genres, err := service.resolveGenres(context, input.GenreSlugs)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := service.repo.Create(context, title); err != nil {
		return nil, err
	}

	service.logger.Info("title_created",
		slog.Int64("id", title.ID),
		slog.String("name", title.Name),
	)

	return title, nil
}

func (service *Service) Update(context context.Context, id int64, input UpdateInput) (*Title, error) {
	title, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		title.Name = *input.Name
	}
	if input.Year != nil {
		title.Year = *input.Year
	}
	if input.Description != nil {
		title.Description = input.Description
	}
	if input.CategorySlug != nil {
		cat, err := service.resolveCategory(context, *input.CategorySlug)
		if err != nil {
			return nil, err
		}
		title.Category = cat
	}
	if input.GenreSlugs != nil {
		genres, err := service.resolveGenres(context, *input.GenreSlugs)
		if err != nil {
			return nil, err
		}
		title.Genres = genres
	}

	// The hydrated entity only carries category name/slug; re-resolve to get
	// the foreign key when the category itself did not change.
	if title.Category != nil && title.Category.ID == 0 {
		cat, err := service.resolveCategory(context, title.Category.Slug)
		if err != nil {
			return nil, err
		}
		title.Category = cat
	}
	if err := service.hydrateGenreIDs(context, title); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, title); err != nil {
		return nil, err
	}

	service.logger.Info("title_updated", slog.Int64("id", title.ID))

	return service.repo.GetByID(context, title.ID)
}

func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("title_deleted", slog.Int64("id", id))
	return nil
}

// resolveCategory maps a category slug to its stored entity. An unknown slug
// is a client error on the payload, not a missing resource.
func (service *Service) resolveCategory(context context.Context, slug string) (*category.Category, error) {
	cat, err := service.repo.CategoryBySlug(context, slug)
	if err != nil {
		var appError *apperr.AppError
		if errors.As(err, &appError) && appError.HTTPStatus == 404 {
			return nil, apperr.ValidationError("Invalid payload", apperr.FieldError{
				Field:   constants.FieldCategory,
				Message: "Unknown category slug",
			})
		}
		return nil, err
	}
	return cat, nil
}

// resolveGenres maps genre slugs to stored entities, rejecting unknown ones.
func (service *Service) resolveGenres(context context.Context, slugs []string) ([]genre.Genre, error) {
	genres, err := service.repo.GenresBySlugs(context, slugs)
	if err != nil {
		return nil, err
	}

	if len(genres) != len(uniqueStrings(slugs)) {
		return nil, apperr.ValidationError("Invalid payload", apperr.FieldError{
			Field:   constants.FieldGenre,
			Message: "Unknown genre slug",
		})
	}

	return genres, nil
}

// hydrateGenreIDs re-resolves genres that came from the read projection
// without database IDs.
func (service *Service) hydrateGenreIDs(context context.Context, title *Title) error {
	needsResolve := false
	for _, g := range title.Genres {
		if g.ID == 0 {
			needsResolve = true
			break
		}
	}
	if !needsResolve {
		return nil
	}

	slugs := make([]string, 0, len(title.Genres))
	for _, g := range title.Genres {
		slugs = append(slugs, g.Slug)
	}

	genres, err := service.resolveGenres(context, slugs)
	if err != nil {
		return err
	}
	title.Genres = genres
	return nil
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
