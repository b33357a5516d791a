package auth

import (
	"context"

	"github.com/kritikadev/kritika/internal/users/account"
)

// UserStore is the slice of the account repository the auth flow needs.
type UserStore interface {
	GetByUsername(context context.Context, username string) (*account.User, error)
	GetByEmail(context context.Context, email string) (*account.User, error)
	Create(context context.Context, user *account.User) error
	UpdateConfirmationCode(context context.Context, userID, code string) error
}

// AttemptLimiter throttles confirmation-code exchange attempts per username
// so the short code cannot be brute-forced.
type AttemptLimiter interface {
	Allow(context context.Context, username string) (bool, error)
	Reset(context context.Context, username string) error
}
