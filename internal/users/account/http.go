// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

/*
Package account provides user administration and self-service profiles.

Admins manage the whole user base under /users; every signed-in user can
read and edit their own profile under /users/me. The "me" segment is a
reserved alias, which is why it is rejected as a username at registration.

# Security

All endpoints require authentication. The /users collection additionally
requires an admin token. Role changes are only possible through the admin
endpoints; /users/me silently ignores them.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kritikadev/kritika/internal/platform/config"
	"github.com/kritikadev/kritika/internal/platform/constants"
	"github.com/kritikadev/kritika/internal/platform/middleware"
	"github.com/kritikadev/kritika/internal/platform/policy"
	requestutil "github.com/kritikadev/kritika/internal/platform/request"
	"github.com/kritikadev/kritika/internal/platform/respond"
	"github.com/kritikadev/kritika/internal/platform/sec"
	"github.com/kritikadev/kritika/internal/platform/validate"
	"github.com/kritikadev/kritika/pkg/pagination"
)

// Handler implements the HTTP layer for user management.
type Handler struct {
	accountService *Service
	cfg            *config.Config
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service, cfg *config.Config) *Handler {
	return &Handler{accountService: service, cfg: cfg}
}

// Routes returns a [chi.Router] configured with the user endpoints.
//
// The static /me routes must be registered on the same tree as the
// /{username} wildcards so that chi resolves the alias first.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Self-service profile: any authenticated user.
	router.Group(func(r chi.Router) {
		r.Use(middleware.Require(policy.Profile))
		r.Get("/me", handler.getMe)
		r.Patch("/me", handler.updateMe)
	})

	// User administration: admin only.
	router.Group(func(r chi.Router) {
		r.Use(middleware.Require(policy.UserAdmin))
		r.Get("/", handler.list)
		r.Post("/", handler.create)
		r.Get("/{username}", handler.get)
		r.Patch("/{username}", handler.update)
		r.Delete("/{username}", handler.delete)
	})

	return router
}

// # Self-Service Profile Endpoints

/*
GET /api/v1/users/me.

Description: Retrieves the authenticated user's own profile.

Response:
  - 200: User
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetByID(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateMeRequest defines the partial JSON payload for profile updates.
// The role field is accepted but ignored: users cannot change their own role.
type updateMeRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
}

/*
PATCH /api/v1/users/me.

Description: Applies partial updates to the authenticated user's profile.

Request:
  - body: updateMeRequest (Partial JSON)

Response:
  - 200: User: The updated profile
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.validateProfileFields(input.Username, input.Email, input.FirstName, input.LastName); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Update(request.Context(), claims.Username, UpdateInput{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
	}, false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Administration Endpoints

/*
GET /api/v1/users.

Description: Lists all accounts, optionally filtered by a username search term.

Response:
  - 200: []User with pagination metadata
  - 401/403: Policy denial for non-admin callers
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	users, total, err := handler.accountService.List(request.Context(), params, search)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

// createUserRequest defines the JSON payload for admin-created accounts.
type createUserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

/*
POST /api/v1/users.

Description: Creates an account with an explicit role. The user signs in
later through the confirmation-code flow.

Request:
  - body: createUserRequest

Response:
  - 201: User: The created account
  - 400: ErrInvalidJSON/Validation: Invalid input or identifier already taken
  - 401/403: Policy denial for non-admin callers
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required(constants.FieldUsername, input.Username).
		Username(constants.FieldUsername, input.Username, handler.cfg.ProfileAlias).
		MaxLen(constants.FieldUsername, input.Username, handler.cfg.MaxUsernameLength).
		Required(constants.FieldEmail, input.Email).
		Email(constants.FieldEmail, input.Email).
		MaxLen(constants.FieldEmail, input.Email, handler.cfg.MaxEmailLength).
		MaxLen(constants.FieldFirstName, input.FirstName, handler.cfg.MaxUsernameLength).
		MaxLen(constants.FieldLastName, input.LastName, handler.cfg.MaxUsernameLength)
	if input.Role != "" {
		v.OneOf(constants.FieldRole, input.Role, sec.Roles()...)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Create(request.Context(), CreateInput{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      sec.Role(input.Role),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
GET /api/v1/users/{username}.

Description: Retrieves a single account by username.

Response:
  - 200: User
  - 401/403: Policy denial for non-admin callers
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	user, err := handler.accountService.GetByUsername(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateUserRequest defines the partial JSON payload for admin updates.
type updateUserRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

/*
PATCH /api/v1/users/{username}.

Description: Applies partial updates to an account, including its role.

Request:
  - body: updateUserRequest (Partial JSON)

Response:
  - 200: User: The updated account
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401/403: Policy denial for non-admin callers
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.validateProfileFields(input.Username, input.Email, input.FirstName, input.LastName); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Role != nil {
		v := &validate.Validator{}
		v.OneOf(constants.FieldRole, *input.Role, sec.Roles()...)
		if err := v.Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	var role *sec.Role
	if input.Role != nil {
		r := sec.Role(*input.Role)
		role = &r
	}

	user, err := handler.accountService.Update(request.Context(), username, UpdateInput{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      role,
	}, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /api/v1/users/{username}.

Description: Removes an account and cascades to its reviews and comments.

Response:
  - 204: No Content: Account deleted
  - 401/403: Policy denial for non-admin callers
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	if err := handler.accountService.Delete(request.Context(), username); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// validateProfileFields checks the optional identity fields shared by the
// self-service and admin update payloads.
func (handler *Handler) validateProfileFields(username, email, firstName, lastName *string) error {
	v := &validate.Validator{}
	if username != nil {
		v.Required(constants.FieldUsername, *username).
			Username(constants.FieldUsername, *username, handler.cfg.ProfileAlias).
			MaxLen(constants.FieldUsername, *username, handler.cfg.MaxUsernameLength)
	}
	if email != nil {
		v.Required(constants.FieldEmail, *email).
			Email(constants.FieldEmail, *email).
			MaxLen(constants.FieldEmail, *email, handler.cfg.MaxEmailLength)
	}
	if firstName != nil {
		v.MaxLen(constants.FieldFirstName, *firstName, handler.cfg.MaxUsernameLength)
	}
	if lastName != nil {
		v.MaxLen(constants.FieldLastName, *lastName, handler.cfg.MaxUsernameLength)
	}
	return v.Err()
}
