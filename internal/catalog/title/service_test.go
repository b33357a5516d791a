// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

package title_test

import (
	"context"
	"io"
	"log/slog"
	"math"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritikadev/kritika/internal/catalog/category"
	"github.com/kritikadev/kritika/internal/catalog/genre"
	"github.com/kritikadev/kritika/internal/catalog/title"
	"github.com/kritikadev/kritika/internal/platform/apperr"
)

// fakeRepository resolves catalogue slugs from fixed maps and stores titles
// in memory. Review scores are tracked per title so reads can derive the
// rating the way the SQL projection does: the rounded mean of all scores,
// nil while no scores exist.
type fakeRepository struct {
	categories map[string]*category.Category
	genres     map[string]genre.Genre
	titles     map[int64]*title.Title
	scores     map[int64][]int
	nextID     int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		categories: map[string]*category.Category{
			"movies": {ID: 1, Name: "Movies", Slug: "movies"},
			"books":  {ID: 2, Name: "Books", Slug: "books"},
		},
		genres: map[string]genre.Genre{
			"drama":  {ID: 1, Name: "Drama", Slug: "drama"},
			"sci-fi": {ID: 2, Name: "Sci-Fi", Slug: "sci-fi"},
		},
		titles: make(map[int64]*title.Title),
		scores: make(map[int64][]int),
		nextID: 1,
	}
}

func (r *fakeRepository) addScore(titleID int64, score int) {
	r.scores[titleID] = append(r.scores[titleID], score)
}

func (r *fakeRepository) ratingOf(titleID int64) *int {
	scores := r.scores[titleID]
	if len(scores) == 0 {
		return nil
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	rating := int(math.Round(float64(sum) / float64(len(scores))))
	return &rating
}

func (r *fakeRepository) List(_ context.Context, _ title.Filter, _, _ int) ([]*title.Title, int, error) {
	var out []*title.Title
	for _, t := range r.titles {
		out = append(out, t)
	}
	return out, len(out), nil
}

func (r *fakeRepository) GetByID(_ context.Context, id int64) (*title.Title, error) {
	t, ok := r.titles[id]
	if !ok {
		return nil, apperr.NotFound("Title")
	}
	t.Rating = r.ratingOf(id)
	return t, nil
}

func (r *fakeRepository) Create(_ context.Context, t *title.Title) error {
	t.ID = r.nextID
	r.nextID++
	r.titles[t.ID] = t
	return nil
}

func (r *fakeRepository) Update(_ context.Context, t *title.Title) error {
	r.titles[t.ID] = t
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.titles[id]; !ok {
		return apperr.NotFound("Title")
	}
	delete(r.titles, id)
	return nil
}

func (r *fakeRepository) CategoryBySlug(_ context.Context, slug string) (*category.Category, error) {
	if c, ok := r.categories[slug]; ok {
		return c, nil
	}
	return nil, apperr.NotFound("Category")
}

func (r *fakeRepository) GenresBySlugs(_ context.Context, slugs []string) ([]genre.Genre, error) {
	var out []genre.Genre
	for _, slug := range slugs {
		if g, ok := r.genres[slug]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func newTestService(repo title.Repository) *title.Service {
	return title.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestCreate_ResolvesSlugs verifies that category and genre slugs in the
payload are resolved to stored entities.
*/
func TestCreate_ResolvesSlugs(t *testing.T) {
	service := newTestService(newFakeRepository())

	created, err := service.Create(context.Background(), title.CreateInput{
		Name:         "Solaris",
		Year:         1972,
		CategorySlug: "movies",
		GenreSlugs:   []string{"drama", "sci-fi"},
	})
	require.NoError(t, err)

	require.NotNil(t, created.Category)
	assert.Equal(t, "movies", created.Category.Slug)
	require.Len(t, created.Genres, 2)
	assert.NotZero(t, created.ID)
}

/*
TestCreate_UnknownSlugs verifies that unknown catalogue slugs are rejected
as payload errors with the offending field named.
*/
func TestCreate_UnknownSlugs(t *testing.T) {
	tests := []struct {
		name      string
		input     title.CreateInput
		wantField string
	}{
		{
			"unknown_category",
			title.CreateInput{Name: "X", Year: 2000, CategorySlug: "podcasts", GenreSlugs: []string{"drama"}},
			"category",
		},
		{
			"unknown_genre",
			title.CreateInput{Name: "X", Year: 2000, CategorySlug: "movies", GenreSlugs: []string{"jazz"}},
			"genre",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(newFakeRepository())

			_, err := service.Create(context.Background(), tt.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
			require.NotEmpty(t, ae.Details)
			assert.Equal(t, tt.wantField, ae.Details[0].Field)
		})
	}
}

/*
TestGet_RatingFollowsScores walks a title through its review lifecycle: the
rating is nil before the first review, equals a lone score, and tracks the
rounded mean as further scores arrive.
*/
func TestGet_RatingFollowsScores(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	created, err := service.Create(context.Background(), title.CreateInput{
		Name:         "Solaris",
		Year:         1972,
		CategorySlug: "movies",
	})
	require.NoError(t, err)

	fresh, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, fresh.Rating, "a title without reviews has no rating")

	repo.addScore(created.ID, 8)
	rated, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, rated.Rating)
	assert.Equal(t, 8, *rated.Rating)

	repo.addScore(created.ID, 10)
	rated, err = service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, rated.Rating)
	assert.Equal(t, 9, *rated.Rating, "mean of 8 and 10")
}

/*
TestGet_RatingRoundsHalfUp pins the rounding rule for a .5 mean: two scores
of 7 and 8 average to 7.5, which rounds to 8 like ROUND() does in SQL.
*/
func TestGet_RatingRoundsHalfUp(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	created, err := service.Create(context.Background(), title.CreateInput{
		Name:         "Stalker",
		Year:         1979,
		CategorySlug: "movies",
	})
	require.NoError(t, err)

	repo.addScore(created.ID, 7)
	repo.addScore(created.ID, 8)

	rated, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, rated.Rating)
	assert.Equal(t, 8, *rated.Rating)
}

/*
TestUpdate_Partial verifies that nil fields leave the stored title untouched
and set fields overwrite it.
*/
func TestUpdate_Partial(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	created, err := service.Create(context.Background(), title.CreateInput{
		Name:         "Solaris",
		Year:         1972,
		CategorySlug: "movies",
		GenreSlugs:   []string{"sci-fi"},
	})
	require.NoError(t, err)

	year := 1973
	updated, err := service.Update(context.Background(), created.ID, title.UpdateInput{Year: &year})
	require.NoError(t, err)

	assert.Equal(t, 1973, updated.Year)
	assert.Equal(t, "Solaris", updated.Name)
	require.NotNil(t, updated.Category)
	assert.Equal(t, "movies", updated.Category.Slug)
}

/*
TestUpdate_NotFound verifies the 404 for a missing title.
*/
func TestUpdate_NotFound(t *testing.T) {
	service := newTestService(newFakeRepository())

	name := "ghost"
	_, err := service.Update(context.Background(), 42, title.UpdateInput{Name: &name})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
}

/*
TestDelete verifies removal and the 404 for unknown ids.
*/
func TestDelete(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	created, err := service.Create(context.Background(), title.CreateInput{
		Name: "Solaris", Year: 1972, CategorySlug: "movies",
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))
	assert.Error(t, service.Delete(context.Background(), created.ID))
}
