// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

package category_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritikadev/kritika/internal/catalog/category"
	"github.com/kritikadev/kritika/internal/platform/apperr"
	"github.com/kritikadev/kritika/pkg/pagination"
)

type fakeRepository struct {
	bySlug map[string]*category.Category
	nextID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{bySlug: make(map[string]*category.Category), nextID: 1}
}

func (r *fakeRepository) List(_ context.Context, _ pagination.Params, _ string) ([]category.Category, int, error) {
	var out []category.Category
	for _, c := range r.bySlug {
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (r *fakeRepository) Create(_ context.Context, c *category.Category) error {
	if _, exists := r.bySlug[c.Slug]; exists {
		return apperr.Conflict("Category slug already exists")
	}
	c.ID = r.nextID
	r.nextID++
	r.bySlug[c.Slug] = c
	return nil
}

func (r *fakeRepository) DeleteBySlug(_ context.Context, slug string) error {
	if _, exists := r.bySlug[slug]; !exists {
		return apperr.NotFound("Category")
	}
	delete(r.bySlug, slug)
	return nil
}

/*
TestCreate_DerivesSlug verifies that an omitted slug is derived from the name.
*/
func TestCreate_DerivesSlug(t *testing.T) {
	service := category.NewService(newFakeRepository(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	created, err := service.Create(context.Background(), category.CreateInput{Name: "Science Fiction"})
	require.NoError(t, err)

	assert.Equal(t, "science-fiction", created.Slug)
	assert.NotZero(t, created.ID)
}

/*
TestCreate_ExplicitSlug verifies that a provided slug is kept verbatim.
*/
func TestCreate_ExplicitSlug(t *testing.T) {
	service := category.NewService(newFakeRepository(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	created, err := service.Create(context.Background(), category.CreateInput{Name: "Movies", Slug: "films"})
	require.NoError(t, err)

	assert.Equal(t, "films", created.Slug)
}

/*
TestCreate_DuplicateSlug verifies the conflict surface.
*/
func TestCreate_DuplicateSlug(t *testing.T) {
	service := category.NewService(newFakeRepository(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := service.Create(context.Background(), category.CreateInput{Name: "Movies", Slug: "movies"})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), category.CreateInput{Name: "Also Movies", Slug: "movies"})
	assert.Error(t, err)
}

/*
TestDelete verifies removal by slug and the 404 for unknown slugs.
*/
func TestDelete(t *testing.T) {
	repo := newFakeRepository()
	service := category.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := service.Create(context.Background(), category.CreateInput{Name: "Movies", Slug: "movies"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), "movies"))
	assert.Error(t, service.Delete(context.Background(), "movies"))
}
