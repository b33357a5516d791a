// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritikadev/kritika/internal/platform/apperr"
	"github.com/kritikadev/kritika/internal/platform/config"
	"github.com/kritikadev/kritika/internal/platform/sec"
	"github.com/kritikadev/kritika/internal/users/account"
	"github.com/kritikadev/kritika/internal/users/auth"
)

// fakeUserStore is an in-memory UserStore keyed by username.
type fakeUserStore struct {
	users map[string]*account.User
}

func newFakeUserStore(users ...*account.User) *fakeUserStore {
	store := &fakeUserStore{users: make(map[string]*account.User)}
	for _, u := range users {
		store.users[u.Username] = u
	}
	return store
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (*account.User, error) {
	if u, ok := s.users[username]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User")
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*account.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (s *fakeUserStore) Create(_ context.Context, user *account.User) error {
	s.users[user.Username] = user
	return nil
}

func (s *fakeUserStore) UpdateConfirmationCode(_ context.Context, userID, code string) error {
	for _, u := range s.users {
		if u.ID == userID {
			u.ConfirmationCode = code
			return nil
		}
	}
	return apperr.NotFound("User")
}

// fakeLimiter records throttle interactions.
type fakeLimiter struct {
	allowed bool
	resets  int
}

func (l *fakeLimiter) Allow(_ context.Context, _ string) (bool, error) { return l.allowed, nil }
func (l *fakeLimiter) Reset(_ context.Context, _ string) error {
	l.resets++
	return nil
}

// fakeMailer captures outbound messages.
type fakeMailer struct {
	sent []string // recipient addresses in send order
	body string   // last body
}

func (m *fakeMailer) Send(_ context.Context, to, _, body string) error {
	m.sent = append(m.sent, to)
	m.body = body
	return nil
}

func newTestService(store auth.UserStore, limiter auth.AttemptLimiter, mail *fakeMailer) *auth.Service {
	tokens, err := sec.NewTokenService("test-secret", "kritika.app")
	if err != nil {
		panic(err)
	}
	cfg := &config.Config{
		ConfirmationCodeLength:   8,
		ConfirmationCodeAlphabet: "ABCDEF0123456789",
	}
	return auth.NewService(store, limiter, tokens, mail, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestSignUp_NewUser verifies that a fresh signup creates the account and
mails a confirmation code.
*/
func TestSignUp_NewUser(t *testing.T) {
	store := newFakeUserStore()
	mail := &fakeMailer{}
	service := newTestService(store, &fakeLimiter{allowed: true}, mail)

	user, err := service.SignUp(context.Background(), "alice", "alice@example.com")
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, user.ConfirmationCode)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "alice@example.com", mail.sent[0])
	assert.Contains(t, mail.body, user.ConfirmationCode)
}

/*
TestSignUp_Repeat verifies the get-or-create contract: repeating the exact
same pair rotates the code and resends the mail instead of failing.
*/
func TestSignUp_Repeat(t *testing.T) {
	existing := &account.User{
		ID:               "id-1",
		Username:         "alice",
		Email:            "alice@example.com",
		Role:             sec.RoleUser,
		ConfirmationCode: "OLDCODE1",
	}
	store := newFakeUserStore(existing)
	mail := &fakeMailer{}
	service := newTestService(store, &fakeLimiter{allowed: true}, mail)

	user, err := service.SignUp(context.Background(), "alice", "alice@example.com")
	require.NoError(t, err)

	assert.Equal(t, "id-1", user.ID)
	assert.NotEqual(t, "OLDCODE1", store.users["alice"].ConfirmationCode)
	assert.Len(t, mail.sent, 1)
}

/*
TestSignUp_Conflicts verifies the field-specific rejections when a username
or email is already bound to a different counterpart.
*/
func TestSignUp_Conflicts(t *testing.T) {
	existing := &account.User{
		ID: "id-1", Username: "alice", Email: "alice@example.com", Role: sec.RoleUser,
	}

	tests := []struct {
		name      string
		username  string
		email     string
		wantField string
	}{
		{"username_taken_other_email", "alice", "other@example.com", "username"},
		{"email_taken_other_username", "bob", "alice@example.com", "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeUserStore(existing)
			mail := &fakeMailer{}
			service := newTestService(store, &fakeLimiter{allowed: true}, mail)

			_, err := service.SignUp(context.Background(), tt.username, tt.email)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
			require.NotEmpty(t, ae.Details)
			assert.Equal(t, tt.wantField, ae.Details[0].Field)
			assert.Empty(t, mail.sent)
		})
	}
}

/*
TestIssueToken_Success verifies the happy path: the throttle is reset and
the returned token verifies back to the user. The code stays valid until a
signup or failed exchange rotates it.
*/
func TestIssueToken_Success(t *testing.T) {
	user := &account.User{
		ID:               "id-1",
		Username:         "alice",
		Email:            "alice@example.com",
		Role:             sec.RoleModerator,
		ConfirmationCode: "GOODCODE",
	}
	store := newFakeUserStore(user)
	limiter := &fakeLimiter{allowed: true}
	service := newTestService(store, limiter, &fakeMailer{})

	token, err := service.IssueToken(context.Background(), "alice", "GOODCODE")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Success does not rotate the stored code.
	assert.Equal(t, "GOODCODE", store.users["alice"].ConfirmationCode)
	assert.Equal(t, 1, limiter.resets)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "id-1", claims.UserID)
	assert.Equal(t, string(sec.RoleModerator), claims.Role)
}

/*
TestIssueToken_WrongCode verifies rotate-on-mismatch: a wrong guess burns
the stored code and mails a fresh one.
*/
func TestIssueToken_WrongCode(t *testing.T) {
	user := &account.User{
		ID:               "id-1",
		Username:         "alice",
		Email:            "alice@example.com",
		Role:             sec.RoleUser,
		ConfirmationCode: "GOODCODE",
	}
	store := newFakeUserStore(user)
	mail := &fakeMailer{}
	service := newTestService(store, &fakeLimiter{allowed: true}, mail)

	_, err := service.IssueToken(context.Background(), "alice", "WRONG")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)

	// The old code can never be retried.
	rotated := store.users["alice"].ConfirmationCode
	assert.NotEqual(t, "GOODCODE", rotated)
	assert.NotEmpty(t, rotated)
	assert.Len(t, mail.sent, 1)
}

/*
TestIssueToken_UnknownUser verifies the 404 contract for unknown usernames.
*/
func TestIssueToken_UnknownUser(t *testing.T) {
	service := newTestService(newFakeUserStore(), &fakeLimiter{allowed: true}, &fakeMailer{})

	_, err := service.IssueToken(context.Background(), "ghost", "ANYCODE")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
}

/*
TestIssueToken_Throttled verifies the 429 returned when the per-username
attempt budget is exhausted.
*/
func TestIssueToken_Throttled(t *testing.T) {
	user := &account.User{ID: "id-1", Username: "alice", Email: "alice@example.com"}
	service := newTestService(newFakeUserStore(user), &fakeLimiter{allowed: false}, &fakeMailer{})

	_, err := service.IssueToken(context.Background(), "alice", "GOODCODE")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusTooManyRequests, ae.HTTPStatus)
}
