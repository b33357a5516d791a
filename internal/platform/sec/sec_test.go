// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritikadev/kritika/internal/platform/sec"
)

/*
TestTokenService_RoundTrip verifies that a generated token carries the
embedded claims back through verification.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService("test-secret", "kritika.app")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("user-1", "alice", sec.RoleModerator, false, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, string(sec.RoleModerator), claims.Role)
	assert.False(t, claims.IsStaff)
	assert.Equal(t, "kritika.app", claims.Issuer)
}

/*
TestTokenService_WrongSecret verifies that tokens signed with a different
secret are rejected.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	signer, err := sec.NewTokenService("secret-a", "kritika.app")
	require.NoError(t, err)
	verifier, err := sec.NewTokenService("secret-b", "kritika.app")
	require.NoError(t, err)

	token, err := signer.GenerateAccessToken("user-1", "alice", sec.RoleUser, false, time.Hour)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_Expired verifies that expired tokens are rejected.
*/
func TestTokenService_Expired(t *testing.T) {
	service, err := sec.NewTokenService("test-secret", "kritika.app")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("user-1", "alice", sec.RoleUser, false, -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_EmptySecret verifies that the constructor rejects an empty
signing secret.
*/
func TestTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", "kritika.app")
	assert.Error(t, err)
}

/*
TestAuthClaims_IsAdmin covers the capability matrix of role and staff flag.
*/
func TestAuthClaims_IsAdmin(t *testing.T) {
	tests := []struct {
		name    string
		role    sec.Role
		isStaff bool
		isAdmin bool
	}{
		{"admin_role", sec.RoleAdmin, false, true},
		{"staff_user", sec.RoleUser, true, true},
		{"staff_moderator", sec.RoleModerator, true, true},
		{"plain_moderator", sec.RoleModerator, false, false},
		{"plain_user", sec.RoleUser, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := &sec.AuthClaims{Role: string(tt.role), IsStaff: tt.isStaff}
			assert.Equal(t, tt.isAdmin, claims.IsAdmin())
		})
	}
}

/*
TestRole_Known verifies the accepted role values.
*/
func TestRole_Known(t *testing.T) {
	assert.True(t, sec.RoleUser.Known())
	assert.True(t, sec.RoleModerator.Known())
	assert.True(t, sec.RoleAdmin.Known())
	assert.False(t, sec.Role("superuser").Known())
	assert.False(t, sec.Role("").Known())
}

/*
TestGenerateConfirmationCode checks length and alphabet membership of the
generated codes.
*/
func TestGenerateConfirmationCode(t *testing.T) {
	const alphabet = "ABCDEF023456789"

	code, err := sec.GenerateConfirmationCode(8, alphabet)
	require.NoError(t, err)
	assert.Len(t, code, 8)

	for _, symbol := range code {
		assert.True(t, strings.ContainsRune(alphabet, symbol),
			"code must only contain alphabet characters, got %q", symbol)
	}

	// Two codes colliding would mean a broken random source.
	other, err := sec.GenerateConfirmationCode(8, alphabet)
	require.NoError(t, err)
	assert.NotEqual(t, code, other)
}

/*
TestGenerateConfirmationCode_Invalid checks argument validation.
*/
func TestGenerateConfirmationCode_Invalid(t *testing.T) {
	_, err := sec.GenerateConfirmationCode(0, "ABC")
	assert.Error(t, err)

	_, err = sec.GenerateConfirmationCode(8, "")
	assert.Error(t, err)
}
