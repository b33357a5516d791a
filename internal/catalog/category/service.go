package category

import (
	"context"
	"log/slog"

	"github.com/kritikadev/kritika/pkg/pagination"
	slugpkg "github.com/kritikadev/kritika/pkg/slug"
)

// CreateInput carries the validated fields for a new category.
//
// Slug may be empty, in which case it is derived from Name.
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

func (service *Service) List(context context.Context, params pagination.Params, search string) ([]Category, int, error) {
	return service.repo.List(context, params, search)
}

func (service *Service) Create(context context.Context, input CreateInput) (*Category, error) {
	slug := input.Slug
	if slug == "" {
		slug = slugpkg.From(input.Name)
	}

	category := &Category{Name: input.Name, Slug: slug}
	if err := service.repo.Create(context, category); err != nil {
		return nil, err
	}

	service.logger.Info("category_created",
		slog.String("slug", category.Slug),
		slog.Int64("id", category.ID),
	)

	return category, nil
}

func (service *Service) Delete(context context.Context, slug string) error {
	if err := service.repo.DeleteBySlug(context, slug); err != nil {
		return err
	}

	service.logger.Info("category_deleted", slog.String("slug", slug))
	return nil
}
