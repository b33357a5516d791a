// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritikadev/kritika/internal/platform/apperr"
	"github.com/kritikadev/kritika/internal/platform/sec"
	"github.com/kritikadev/kritika/internal/users/account"
	"github.com/kritikadev/kritika/pkg/pagination"
)

type fakeRepository struct {
	byUsername map[string]*account.User
}

func newFakeRepository(users ...*account.User) *fakeRepository {
	repo := &fakeRepository{byUsername: make(map[string]*account.User)}
	for _, u := range users {
		repo.byUsername[u.Username] = u
	}
	return repo
}

func (r *fakeRepository) List(_ context.Context, _ pagination.Params, _ string) ([]*account.User, int, error) {
	var out []*account.User
	for _, u := range r.byUsername {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (r *fakeRepository) GetByUsername(_ context.Context, username string) (*account.User, error) {
	if u, ok := r.byUsername[username]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*account.User, error) {
	for _, u := range r.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeRepository) GetByEmail(_ context.Context, email string) (*account.User, error) {
	for _, u := range r.byUsername {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeRepository) Create(_ context.Context, user *account.User) error {
	r.byUsername[user.Username] = user
	return nil
}

func (r *fakeRepository) Update(_ context.Context, user *account.User) error {
	r.byUsername[user.Username] = user
	return nil
}

func (r *fakeRepository) DeleteByUsername(_ context.Context, username string) error {
	if _, ok := r.byUsername[username]; !ok {
		return apperr.NotFound("User")
	}
	delete(r.byUsername, username)
	return nil
}

func (r *fakeRepository) UpdateConfirmationCode(_ context.Context, userID, code string) error {
	for _, u := range r.byUsername {
		if u.ID == userID {
			u.ConfirmationCode = code
			return nil
		}
	}
	return apperr.NotFound("User")
}

func newTestService(repo account.Repository) *account.Service {
	return account.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestCreate_DefaultsRole verifies that an omitted role falls back to "user"
and the account receives a generated id.
*/
func TestCreate_DefaultsRole(t *testing.T) {
	service := newTestService(newFakeRepository())

	user, err := service.Create(context.Background(), account.CreateInput{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, sec.RoleUser, user.Role)
	assert.NotEmpty(t, user.ID)
}

/*
TestUpdate_RoleChangeGating verifies that the role field only takes effect
on the admin path; self-service updates silently ignore it.
*/
func TestUpdate_RoleChangeGating(t *testing.T) {
	admin := sec.RoleAdmin

	tests := []struct {
		name            string
		allowRoleChange bool
		wantRole        sec.Role
	}{
		{"admin_endpoint", true, sec.RoleAdmin},
		{"self_service", false, sec.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository(&account.User{
				ID: "id-1", Username: "alice", Email: "alice@example.com", Role: sec.RoleUser,
			})
			service := newTestService(repo)

			bio := "reviewer"
			updated, err := service.Update(context.Background(), "alice", account.UpdateInput{
				Bio:  &bio,
				Role: &admin,
			}, tt.allowRoleChange)
			require.NoError(t, err)

			assert.Equal(t, tt.wantRole, updated.Role)
			assert.Equal(t, "reviewer", updated.Bio)
		})
	}
}

/*
TestUser_IsAdmin verifies staff-flag equivalence on the entity.
*/
func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, (&account.User{Role: sec.RoleAdmin}).IsAdmin())
	assert.True(t, (&account.User{Role: sec.RoleUser, IsStaff: true}).IsAdmin())
	assert.False(t, (&account.User{Role: sec.RoleModerator}).IsAdmin())
}
