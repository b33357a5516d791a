// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

package policy_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritikadev/kritika/internal/platform/apperr"
	"github.com/kritikadev/kritika/internal/platform/policy"
	"github.com/kritikadev/kritika/internal/platform/sec"
)

func anonymous() *sec.AuthClaims { return nil }

func user(id string) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: id, Role: string(sec.RoleUser)}
}

func moderator() *sec.AuthClaims {
	return &sec.AuthClaims{UserID: "mod-1", Role: string(sec.RoleModerator)}
}

func admin() *sec.AuthClaims {
	return &sec.AuthClaims{UserID: "adm-1", Role: string(sec.RoleAdmin)}
}

func staff() *sec.AuthClaims {
	return &sec.AuthClaims{UserID: "stf-1", Role: string(sec.RoleUser), IsStaff: true}
}

/*
TestAllow covers the request-level matrix per resource class.
*/
func TestAllow(t *testing.T) {
	tests := []struct {
		name       string
		resource   policy.Resource
		safe       bool
		claims     *sec.AuthClaims
		wantStatus int // 0 means allowed
	}{
		{"catalog_read_anonymous", policy.Catalog, true, anonymous(), 0},
		{"catalog_write_anonymous", policy.Catalog, false, anonymous(), http.StatusUnauthorized},
		{"catalog_write_user", policy.Catalog, false, user("u1"), http.StatusForbidden},
		{"catalog_write_moderator", policy.Catalog, false, moderator(), http.StatusForbidden},
		{"catalog_write_admin", policy.Catalog, false, admin(), 0},
		{"catalog_write_staff", policy.Catalog, false, staff(), 0},

		{"discussion_read_anonymous", policy.Discussion, true, anonymous(), 0},
		{"discussion_write_anonymous", policy.Discussion, false, anonymous(), http.StatusUnauthorized},
		{"discussion_write_user", policy.Discussion, false, user("u1"), 0},

		{"useradmin_read_anonymous", policy.UserAdmin, true, anonymous(), http.StatusUnauthorized},
		{"useradmin_read_user", policy.UserAdmin, true, user("u1"), http.StatusForbidden},
		{"useradmin_read_admin", policy.UserAdmin, true, admin(), 0},
		{"useradmin_write_moderator", policy.UserAdmin, false, moderator(), http.StatusForbidden},
		{"useradmin_write_staff", policy.UserAdmin, false, staff(), 0},

		{"profile_read_anonymous", policy.Profile, true, anonymous(), http.StatusUnauthorized},
		{"profile_read_user", policy.Profile, true, user("u1"), 0},
		{"profile_write_user", policy.Profile, false, user("u1"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.Allow(tt.resource, tt.safe, tt.claims)

			if tt.wantStatus == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantStatus, ae.HTTPStatus)
		})
	}
}

/*
TestAllowObject covers ownership: only the author, a moderator, or an admin
may mutate a discussion object.
*/
func TestAllowObject(t *testing.T) {
	const ownerID = "author-1"

	tests := []struct {
		name    string
		claims  *sec.AuthClaims
		allowed bool
	}{
		{"author", user(ownerID), true},
		{"other_user", user("intruder"), false},
		{"moderator", moderator(), true},
		{"admin", admin(), true},
		{"staff", staff(), true},
		{"anonymous", anonymous(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.AllowObject(policy.Discussion, false, tt.claims, ownerID)

			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

/*
TestAllowObject_SafeBypass verifies that reads are never blocked by
ownership rules.
*/
func TestAllowObject_SafeBypass(t *testing.T) {
	assert.NoError(t, policy.AllowObject(policy.Discussion, true, nil, "someone"))
}

/*
TestSafeMethod classifies HTTP verbs.
*/
func TestSafeMethod(t *testing.T) {
	assert.True(t, policy.SafeMethod(http.MethodGet))
	assert.True(t, policy.SafeMethod(http.MethodHead))
	assert.True(t, policy.SafeMethod(http.MethodOptions))
	assert.False(t, policy.SafeMethod(http.MethodPost))
	assert.False(t, policy.SafeMethod(http.MethodPatch))
	assert.False(t, policy.SafeMethod(http.MethodDelete))
}
