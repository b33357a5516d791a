// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

package account

import (
	"context"
	"log/slog"

	"github.com/kritikadev/kritika/internal/platform/sec"
	"github.com/kritikadev/kritika/pkg/pagination"
	"github.com/kritikadev/kritika/pkg/uuidv7"
)

// CreateInput carries the validated fields for an admin-created account.
type CreateInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      sec.Role
}

// UpdateInput carries a partial account update. Nil fields are left untouched.
type UpdateInput struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *sec.Role
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

func (service *Service) List(context context.Context, params pagination.Params, search string) ([]*User, int, error) {
	return service.repo.List(context, params, search)
}

func (service *Service) GetByUsername(context context.Context, username string) (*User, error) {
	return service.repo.GetByUsername(context, username)
}

func (service *Service) GetByID(context context.Context, id string) (*User, error) {
	return service.repo.GetByID(context, id)
}

// Create registers an account on behalf of an admin. The user signs in later
// through the regular confirmation-code flow; no code is issued here.
func (service *Service) Create(context context.Context, input CreateInput) (*User, error) {
	role := input.Role
	if role == "" {
		role = sec.RoleUser
	}

	user := &User{
		ID:        uuidv7.New(),
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      role,
	}

	if err := service.repo.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_created",
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

// Update applies a partial update to the named account.
//
// allowRoleChange distinguishes the admin endpoint from the self-service
// profile: a user patching /users/me cannot escalate their own role.
func (service *Service) Update(context context.Context, username string, input UpdateInput, allowRoleChange bool) (*User, error) {
	user, err := service.repo.GetByUsername(context, username)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Role != nil && allowRoleChange {
		user.Role = *input.Role
	}

	if err := service.repo.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_updated", slog.String("username", user.Username))

	return user, nil
}

func (service *Service) Delete(context context.Context, username string) error {
	if err := service.repo.DeleteByUsername(context, username); err != nil {
		return err
	}

	service.logger.Info("user_deleted", slog.String("username", username))
	return nil
}
