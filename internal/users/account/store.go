package account

import (
	"context"

	"github.com/kritikadev/kritika/pkg/pagination"
)

type Repository interface {
	List(context context.Context, params pagination.Params, search string) ([]*User, int, error)
	GetByUsername(context context.Context, username string) (*User, error)
	GetByID(context context.Context, id string) (*User, error)
	GetByEmail(context context.Context, email string) (*User, error)
	Create(context context.Context, user *User) error
	Update(context context.Context, user *User) error
	DeleteByUsername(context context.Context, username string) error

	// UpdateConfirmationCode rotates the stored sign-in code for a user.
	UpdateConfirmationCode(context context.Context, userID, code string) error
}
