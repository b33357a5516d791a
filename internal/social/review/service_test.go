// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

package review_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritikadev/kritika/internal/platform/apperr"
	"github.com/kritikadev/kritika/internal/platform/sec"
	"github.com/kritikadev/kritika/internal/social/review"
)

// fakeRepository is an in-memory review store over a single known title.
type fakeRepository struct {
	knownTitle int64
	reviews    map[int64]*review.Review
	nextID     int64
}

func newFakeRepository(knownTitle int64, reviews ...*review.Review) *fakeRepository {
	repo := &fakeRepository{knownTitle: knownTitle, reviews: make(map[int64]*review.Review), nextID: 1}
	for _, r := range reviews {
		repo.reviews[r.ID] = r
		if r.ID >= repo.nextID {
			repo.nextID = r.ID + 1
		}
	}
	return repo
}

func (r *fakeRepository) ListByTitle(_ context.Context, titleID int64, _, _ int) ([]*review.Review, int, error) {
	var out []*review.Review
	for _, rv := range r.reviews {
		if rv.TitleID == titleID {
			out = append(out, rv)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepository) GetByID(_ context.Context, titleID, reviewID int64) (*review.Review, error) {
	rv, ok := r.reviews[reviewID]
	if !ok || rv.TitleID != titleID {
		return nil, apperr.NotFound("Review")
	}
	return rv, nil
}

func (r *fakeRepository) Create(_ context.Context, rv *review.Review) error {
	for _, existing := range r.reviews {
		if existing.TitleID == rv.TitleID && existing.AuthorID == rv.AuthorID {
			return apperr.ValidationError("Invalid payload", apperr.FieldError{
				Field:   "title",
				Message: "You have already reviewed this title",
			})
		}
	}
	rv.ID = r.nextID
	r.nextID++
	r.reviews[rv.ID] = rv
	return nil
}

func (r *fakeRepository) Update(_ context.Context, rv *review.Review) error {
	r.reviews[rv.ID] = rv
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, _, reviewID int64) error {
	delete(r.reviews, reviewID)
	return nil
}

func (r *fakeRepository) TitleExists(_ context.Context, titleID int64) (bool, error) {
	return titleID == r.knownTitle, nil
}

func newTestService(repo review.Repository) *review.Service {
	return review.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func userClaims(id, username string) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: id, Username: username, Role: string(sec.RoleUser)}
}

/*
TestCreate_SetsAuthor verifies that authorship is taken from the caller's
claims, never from the payload.
*/
func TestCreate_SetsAuthor(t *testing.T) {
	repo := newFakeRepository(7)
	service := newTestService(repo)

	created, err := service.Create(context.Background(), userClaims("u1", "alice"), 7, review.CreateInput{
		Text:  "Loved it",
		Score: 9,
	})
	require.NoError(t, err)

	assert.Equal(t, "u1", created.AuthorID)
	assert.Equal(t, "alice", created.Author)
	assert.Equal(t, int64(7), created.TitleID)
	assert.NotZero(t, created.ID)
}

/*
TestCreate_UnknownTitle verifies the 404 on nested routes for a missing
parent title.
*/
func TestCreate_UnknownTitle(t *testing.T) {
	service := newTestService(newFakeRepository(7))

	_, err := service.Create(context.Background(), userClaims("u1", "alice"), 99, review.CreateInput{
		Text:  "ghost",
		Score: 5,
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
}

/*
TestCreate_Duplicate verifies the one-review-per-title rule surfaces as a
payload validation error, not a server conflict.
*/
func TestCreate_Duplicate(t *testing.T) {
	repo := newFakeRepository(7, &review.Review{ID: 1, TitleID: 7, AuthorID: "u1", Author: "alice", Score: 8})
	service := newTestService(repo)

	_, err := service.Create(context.Background(), userClaims("u1", "alice"), 7, review.CreateInput{
		Text:  "again",
		Score: 3,
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
}

/*
TestUpdate_Ownership covers who may mutate someone else's review.
*/
func TestUpdate_Ownership(t *testing.T) {
	tests := []struct {
		name    string
		claims  *sec.AuthClaims
		allowed bool
	}{
		{"author", userClaims("u1", "alice"), true},
		{"other_user", userClaims("u2", "bob"), false},
		{"moderator", &sec.AuthClaims{UserID: "m1", Username: "mods", Role: string(sec.RoleModerator)}, true},
		{"admin", &sec.AuthClaims{UserID: "a1", Username: "root", Role: string(sec.RoleAdmin)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository(7, &review.Review{ID: 1, TitleID: 7, AuthorID: "u1", Author: "alice", Text: "old", Score: 5})
			service := newTestService(repo)

			text := "updated"
			updated, err := service.Update(context.Background(), tt.claims, 7, 1, review.UpdateInput{Text: &text})

			if !tt.allowed {
				require.Error(t, err)
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, http.StatusForbidden, ae.HTTPStatus)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "updated", updated.Text)
			assert.Equal(t, 5, updated.Score) // untouched field survives
		})
	}
}

/*
TestDelete_Ownership verifies that a stranger cannot delete and the author can.
*/
func TestDelete_Ownership(t *testing.T) {
	repo := newFakeRepository(7, &review.Review{ID: 1, TitleID: 7, AuthorID: "u1", Author: "alice"})
	service := newTestService(repo)

	err := service.Delete(context.Background(), userClaims("u2", "bob"), 7, 1)
	require.Error(t, err)

	err = service.Delete(context.Background(), userClaims("u1", "alice"), 7, 1)
	require.NoError(t, err)

	_, err = service.Get(context.Background(), 7, 1)
	assert.Error(t, err)
}

/*
TestList_UnknownTitle verifies that listing under a missing title is a 404,
not an empty page.
*/
func TestList_UnknownTitle(t *testing.T) {
	service := newTestService(newFakeRepository(7))

	_, _, err := service.List(context.Background(), 99, 20, 0)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
}
