// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

package account

import (
	"time"

	"github.com/kritikadev/kritika/internal/platform/sec"
)

// User is a registered account on the platform.
//
// Role drives the moderation privileges; IsStaff is an operational flag that
// grants admin powers regardless of role. The confirmation code backs the
// passwordless sign-in flow and never leaves the server.
type User struct {
	ID               string    `json:"-"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Bio              string    `json:"bio"`
	Role             sec.Role  `json:"role"`
	IsStaff          bool      `json:"-"`
	ConfirmationCode string    `json:"-"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
}

// IsAdmin mirrors the token-side rule: staff users are admins whatever their
// stored role says.
func (u *User) IsAdmin() bool {
	return u.IsStaff || u.Role == sec.RoleAdmin
}
