// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

package middleware

import (
	"net/http"
	"strings"

	"github.com/kritikadev/kritika/internal/platform/apperr"
	"github.com/kritikadev/kritika/internal/platform/ctxutil"
	"github.com/kritikadev/kritika/internal/platform/policy"
	"github.com/kritikadev/kritika/internal/platform/respond"
	"github.com/kritikadev/kritika/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the token service
// implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, parse and verify the JWT via [TokenVerifier].
//  4. Inject [*sec.AuthClaims] into the request context for downstream use.
//
// # Parameters
//   - verifier: The TokenVerifier instance.
//
// # Returns
//   - An [http.Handler] middleware.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			tokenStr := parts[1]
			claims, err := verifier.VerifyToken(tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// Require enforces the request-level access policy for a resource family.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. The HTTP method
// decides whether the read or the write rule of the policy table applies.
// Object-level checks (ownership of a review or comment) stay in the
// services, where the object is actually loaded.
//
// # Flow
//  1. Classify the request as safe (GET/HEAD/OPTIONS) or mutating.
//  2. Consult [policy.Allow] with the claims from context (nil = anonymous).
//  3. On denial, abort with 401 for anonymous callers, 403 otherwise.
func Require(resource policy.Resource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())
			safe := policy.SafeMethod(request.Method)

			if err := policy.Allow(resource, safe, claims); err != nil {
				respond.Error(writer, request, err)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
