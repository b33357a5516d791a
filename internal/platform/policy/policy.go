// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

/*
Package policy decides, per request, whether an action is permitted.

It is the single source of truth for the platform's authorization rules,
expressed as composable predicate functions selected per resource class via
a lookup table — there are no permission type hierarchies.

Evaluation is two-phase:

  - Request-level ([Allow]): cheap, no object fetch. Gates access to the
    endpoint from the HTTP verb class and the caller's authentication state.
  - Object-level ([AllowObject]): evaluated only after the target has been
    loaded. Gates mutation of a specific instance from ownership and role.

Both phases must independently allow the action. Safe (read) methods bypass
the object-level check entirely, so read access is never denied by an
ownership rule.
*/
package policy

import (
	"net/http"

	"github.com/kritikadev/kritika/internal/platform/apperr"
	"github.com/kritikadev/kritika/internal/platform/sec"
)

// Resource identifies a class of API resources sharing one rule set.
type Resource int

const (
	// Catalog covers categories, genres, and titles: world-readable,
	// admin-writable.
	Catalog Resource = iota

	// Discussion covers reviews and comments: world-readable, created by any
	// authenticated caller, mutated by the author, a moderator, or an admin.
	Discussion

	// UserAdmin covers the /users collection: admin only, reads included.
	UserAdmin

	// Profile covers the caller's own /users/me sub-resource.
	Profile
)

// Request carries everything a predicate may inspect.
type Request struct {
	// Safe is true for read-only HTTP verbs (GET/HEAD/OPTIONS).
	Safe bool

	// Claims is nil for anonymous callers.
	Claims *sec.AuthClaims

	// OwnerID is the target object's author; empty at request level.
	OwnerID string
}

// Predicate is a single composable authorization rule.
type Predicate func(Request) bool

// # Predicates

func anyone(Request) bool { return true }

func authenticated(r Request) bool { return r.Claims != nil }

func admin(r Request) bool {
	return r.Claims != nil && r.Claims.IsAdmin()
}

func ownerOrModeratorOrAdmin(r Request) bool {
	if r.Claims == nil {
		return false
	}
	return r.Claims.UserID == r.OwnerID || r.Claims.IsModerator() || r.Claims.IsAdmin()
}

// rules binds the two evaluation phases for one resource class.
type rules struct {
	// read gates safe methods at request level.
	read Predicate
	// write gates unsafe methods at request level.
	write Predicate
	// mutate gates unsafe methods at object level; nil means the write
	// rule is authoritative and no per-object ownership applies.
	mutate Predicate
}

// table is the consolidated policy of the platform. Changing an entry here
// changes the behavior of every endpoint of that resource class.
var table = map[Resource]rules{
	Catalog:    {read: anyone, write: admin},
	Discussion: {read: anyone, write: authenticated, mutate: ownerOrModeratorOrAdmin},
	UserAdmin:  {read: admin, write: admin},
	Profile:    {read: authenticated, write: authenticated},
}

// SafeMethod reports whether the HTTP method is read-only.
func SafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// Allow runs the request-level check for the given resource class.
//
// It returns nil when the action is permitted, a 401 [apperr.AppError] for
// anonymous callers, and a 403 for authenticated callers whose role is
// insufficient.
func Allow(resource Resource, safe bool, claims *sec.AuthClaims) error {
	r := Request{Safe: safe, Claims: claims}

	rule := table[resource].write
	if safe {
		rule = table[resource].read
	}

	if rule(r) {
		return nil
	}
	return denial(claims)
}

// AllowObject runs the object-level check for the given resource class.
//
// Safe methods always pass: ownership rules never restrict reads. For unsafe
// methods the object-level rule must hold in addition to the request-level
// rule already evaluated by the router.
func AllowObject(resource Resource, safe bool, claims *sec.AuthClaims, ownerID string) error {
	if safe {
		return nil
	}

	rule := table[resource].mutate
	if rule == nil {
		rule = table[resource].write
	}

	if rule(Request{Safe: safe, Claims: claims, OwnerID: ownerID}) {
		return nil
	}
	return denial(claims)
}

// denial maps a failed check to the proper HTTP-level error.
func denial(claims *sec.AuthClaims) error {
	if claims == nil {
		return apperr.Unauthorized("Authentication required")
	}
	return apperr.Forbidden("Insufficient permissions")
}
