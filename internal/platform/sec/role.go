// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

package sec

// # User Roles

// Role represents the authorization level granted to an account.
//
// Roles are stored as plain strings and never carry capability state of
// their own: whether a caller counts as an administrator is always derived
// at the point of use (see [AuthClaims.IsAdmin]), so the role column and
// the staff flag can never drift apart.
type Role string

const (
	// Unrestricted system access
	RoleAdmin Role = "admin"

	// Can moderate reviews and comments authored by anyone
	RoleModerator Role = "moderator"

	// Default role for standard registered users
	RoleUser Role = "user"
)

// Known reports whether r is one of the defined platform roles.
func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	}
	return false
}

// Roles returns the accepted role values, for validation messages.
func Roles() []string {
	return []string{string(RoleUser), string(RoleModerator), string(RoleAdmin)}
}
