// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

/*
Package auth provides passwordless registration and token exchange.

There are no passwords anywhere in the system: signing up mails a short
confirmation code, and POST /auth/token trades that code for a signed JWT.

# Security

Both endpoints are public by design. Abuse is contained by the per-username
exchange throttle and by rotating the stored code on every failed attempt.
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kritikadev/kritika/internal/platform/config"
	"github.com/kritikadev/kritika/internal/platform/constants"
	requestutil "github.com/kritikadev/kritika/internal/platform/request"
	"github.com/kritikadev/kritika/internal/platform/respond"
	"github.com/kritikadev/kritika/internal/platform/validate"
)

// Handler implements the HTTP layer for authentication.
type Handler struct {
	authService *Service
	cfg         *config.Config
}

// NewHandler constructs a new auth [Handler].
func NewHandler(service *Service, cfg *config.Config) *Handler {
	return &Handler{authService: service, cfg: cfg}
}

// Routes returns a [chi.Router] configured with the auth endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", handler.signUp)
	router.Post("/token", handler.issueToken)

	return router
}

// signUpRequest defines the JSON payload for registration.
type signUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// signUpResponse echoes the registered pair back to the caller.
type signUpResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

/*
POST /api/v1/auth/signup.

Description: Registers a (username, email) pair and mails a confirmation
code. Repeating the exact same pair resends a fresh code instead of failing.

Request:
  - body: signUpRequest

Response:
  - 200: signUpResponse: The registered pair
  - 400: ErrInvalidJSON/Validation: Bad username or email, or a pair
    conflicting with an existing account
*/
func (handler *Handler) signUp(writer http.ResponseWriter, request *http.Request) {
	var input signUpRequest
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
		MaxLen(constants.FieldEmail, input.Email, handler.cfg.MaxEmailLength)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.SignUp(request.Context(), input.Username, input.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, signUpResponse{Username: user.Username, Email: user.Email})
}

// tokenRequest defines the JSON payload for the code exchange.
type tokenRequest struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

// tokenResponse carries the signed access token.
type tokenResponse struct {
	Token string `json:"token"`
}

/*
POST /api/v1/auth/token.

Description: Exchanges a confirmation code for a bearer access token.

Request:
  - body: tokenRequest

Response:
  - 200: tokenResponse: Signed JWT
  - 400: ErrInvalidJSON/Validation: Missing fields or wrong code
  - 404: ErrNotFound: Unknown username
  - 429: ErrRateLimited: Too many exchange attempts
*/
func (handler *Handler) issueToken(writer http.ResponseWriter, request *http.Request) {
	var input tokenRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required(constants.FieldUsername, input.Username).
		Required(constants.FieldConfirmationCode, input.ConfirmationCode)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.IssueToken(request.Context(), input.Username, input.ConfirmationCode)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tokenResponse{Token: token})
}
