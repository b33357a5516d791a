// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/kritikadev/kritika/internal/platform/apperr"
	"github.com/kritikadev/kritika/internal/platform/config"
	"github.com/kritikadev/kritika/internal/platform/constants"
	"github.com/kritikadev/kritika/internal/platform/mailer"
	"github.com/kritikadev/kritika/internal/platform/sec"
	"github.com/kritikadev/kritika/internal/users/account"
	"github.com/kritikadev/kritika/pkg/uuidv7"
)

// Service implements the passwordless sign-in flow: a confirmation code is
// mailed on signup and later exchanged for a bearer token.
type Service struct {
	store   UserStore
	limiter AttemptLimiter
	tokens  *sec.TokenService
	mail    mailer.Mailer
	cfg     *config.Config
	logger  *slog.Logger
}

func NewService(store UserStore, limiter AttemptLimiter, tokens *sec.TokenService, mail mailer.Mailer, cfg *config.Config, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		limiter: limiter,
		tokens:  tokens,
		mail:    mail,
		cfg:     cfg,
		logger:  logger,
	}
}

/*
SignUp registers the (username, email) pair and mails a confirmation code.

Description: The operation is get-or-create. Repeating a signup with the
exact same pair is not an error; it rotates the code and sends a fresh mail,
so users who lost the first message can simply sign up again. A username or
email that is already bound to a different counterpart is rejected with a
field-specific validation error.

Parameters:
  - context: context.Context
  - username: string (already validated by the handler)
  - email: string (already validated by the handler)

Returns:
  - *account.User: The existing or newly created account
  - error: Validation conflicts, mail dispatch or storage failures
*/
func (service *Service) SignUp(context context.Context, username, email string) (*account.User, error) {

	// ── 1. Existing username: exact pair resends, different email rejects ──
	existing, err := service.store.GetByUsername(context, username)
	if err != nil && !isNotFound(err) {
		return nil, err
	}

	if existing != nil {
		if existing.Email != email {
			return nil, apperr.ValidationError("Invalid payload", apperr.FieldError{
				Field:   constants.FieldUsername,
				Message: "Username is registered with a different email",
			})
		}
		if err := service.rotateAndMail(context, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	// ── 2. Email bound to another username ────────────────────────────────
	byEmail, err := service.store.GetByEmail(context, email)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if byEmail != nil {
		return nil, apperr.ValidationError("Invalid payload", apperr.FieldError{
			Field:   constants.FieldEmail,
			Message: "Email is registered to a different username",
		})
	}

	// ── 3. Fresh registration ─────────────────────────────────────────────
	code, err := service.newCode()
	if err != nil {
		return nil, err
	}

	user := &account.User{
		ID:               uuidv7.New(),
		Username:         username,
		Email:            email,
		Role:             sec.RoleUser,
		ConfirmationCode: code,
	}

	if err := service.store.Create(context, user); err != nil {
		return nil, err
	}

	if err := service.sendCode(context, user, code); err != nil {
		return nil, err
	}

	service.logger.Info("user_signed_up", slog.String("username", username))

	return user, nil
}

/*
IssueToken exchanges a confirmation code for a signed bearer token.

Description: Attempts are throttled per username. A wrong code burns the
stored one: a fresh code is generated and mailed, so a leaked guess can
never be retried against a stale code. A correct code stays valid until the
next signup or failed exchange rotates it.

Parameters:
  - context: context.Context
  - username: string
  - code: string

Returns:
  - string: Signed JWT access token
  - error: apperr.NotFound for unknown usernames, apperr.RateLimited when
    throttled, validation errors for wrong codes
*/
func (service *Service) IssueToken(context context.Context, username, code string) (string, error) {

	// ── 1. Throttling ─────────────────────────────────────────────────────
	allowed, err := service.limiter.Allow(context, username)
	if err != nil {
		return "", err
	}
	if !allowed {
		service.logger.Warn("token_exchange_throttled", slog.String("username", username))
		return "", apperr.RateLimited(int(constants.TokenExchangeAttemptWindow.Seconds()))
	}

	// ── 2. Lookup: unknown usernames are a 404, per the API contract ──────
	user, err := service.store.GetByUsername(context, username)
	if err != nil {
		if isNotFound(err) {
			return "", apperr.NotFound("User not found")
		}
		return "", err
	}

	// ── 3. Code check with rotate-on-mismatch ─────────────────────────────
	if user.ConfirmationCode == "" || user.ConfirmationCode != code {
		if err := service.rotateAndMail(context, user); err != nil {
			return "", err
		}
		return "", apperr.ValidationError("Invalid payload", apperr.FieldError{
			Field:   constants.FieldConfirmationCode,
			Message: "Invalid confirmation code; a new one has been emailed",
		})
	}

	// ── 4. Success: clear the throttle, sign the token ────────────────────
	if err := service.limiter.Reset(context, username); err != nil {
		service.logger.Warn("token_attempts_reset_failed", slog.Any("error", err))
	}

	token, err := service.tokens.GenerateAccessToken(user.ID, user.Username, user.Role, user.IsStaff, constants.AccessTokenTTL)
	if err != nil {
		return "", apperr.Internal(err)
	}

	service.logger.Info("token_issued", slog.String("username", username))

	return token, nil
}

// VerifyToken satisfies [middleware.TokenVerifier].
func (service *Service) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	return service.tokens.VerifyToken(tokenStr)
}

// rotateAndMail stores a fresh confirmation code and mails it to the user.
func (service *Service) rotateAndMail(context context.Context, user *account.User) error {
	code, err := service.newCode()
	if err != nil {
		return err
	}

	if err := service.store.UpdateConfirmationCode(context, user.ID, code); err != nil {
		return err
	}

	return service.sendCode(context, user, code)
}

func (service *Service) newCode() (string, error) {
	code, err := sec.GenerateConfirmationCode(service.cfg.ConfirmationCodeLength, service.cfg.ConfirmationCodeAlphabet)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return code, nil
}

func (service *Service) sendCode(context context.Context, user *account.User, code string) error {
	subject := "Your Kritika confirmation code"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour confirmation code is: %s\n\nExchange it at /api/v1/auth/token to receive an access token.\n",
		user.Username, code,
	)

	if err := service.mail.Send(context, user.Email, subject, body); err != nil {
		service.logger.Error("confirmation_mail_failed",
			slog.String("username", user.Username),
			slog.Any("error", err),
		)
		return apperr.Internal(err)
	}

	return nil
}

// isNotFound reports whether err is the application-level 404.
func isNotFound(err error) bool {
	var appError *apperr.AppError
	return errors.As(err, &appError) && appError.HTTPStatus == http.StatusNotFound
}
