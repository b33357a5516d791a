package genre

import (
	"context"
	"log/slog"

	"github.com/kritikadev/kritika/pkg/pagination"
	slugpkg "github.com/kritikadev/kritika/pkg/slug"
)

// CreateInput carries the validated fields for a new genre.
type CreateInput struct {
	Name string
	Slug string
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

func (service *Service) List(context context.Context, params pagination.Params, search string) ([]Genre, int, error) {
	return service.repo.List(context, params, search)
}

func (service *Service) Create(context context.Context, input CreateInput) (*Genre, error) {
	slug := input.Slug
	if slug == "" {
		slug = slugpkg.From(input.Name)
	}

	genre := &Genre{Name: input.Name, Slug: slug}
	if err := service.repo.Create(context, genre); err != nil {
		return nil, err
	}

	service.logger.Info("genre_created",
		slog.String("slug", genre.Slug),
		slog.Int64("id", genre.ID),
	)

	return genre, nil
}

func (service *Service) Delete(context context.Context, slug string) error {
	if err := service.repo.DeleteBySlug(context, slug); err != nil {
		return err
	}

	service.logger.Info("genre_deleted", slog.String("slug", slug))
	return nil
}
