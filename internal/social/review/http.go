// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

/*
Package review provides the scored discussion layer attached to titles.

Reviews are always addressed through their parent title
(/titles/{titleID}/reviews), and every listed or fetched review is verified
to belong to that title.

# Security

Reads are public. Creating requires any authenticated user; editing and
deleting require the author, a moderator, or an admin. The request-level
gate lives in the router; the ownership check lives in the service, where
the review has been loaded.
*/
package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kritikadev/kritika/internal/platform/config"
	"github.com/kritikadev/kritika/internal/platform/constants"
	"github.com/kritikadev/kritika/internal/platform/middleware"
	"github.com/kritikadev/kritika/internal/platform/policy"
	requestutil "github.com/kritikadev/kritika/internal/platform/request"
	"github.com/kritikadev/kritika/internal/platform/respond"
	"github.com/kritikadev/kritika/internal/platform/validate"
	"github.com/kritikadev/kritika/pkg/pagination"
)

// Handler implements the HTTP layer for reviews.
type Handler struct {
	reviewService *Service
	cfg           *config.Config
}

// NewHandler constructs a new review [Handler].
func NewHandler(service *Service, cfg *config.Config) *Handler {
	return &Handler{reviewService: service, cfg: cfg}
}

// Routes returns a [chi.Router] for mounting under /titles/{titleID}/reviews.
//
// The comment router nests one level deeper, under /{reviewID}/comments; it
// carries its own policy gate so it mounts outside this one.
func (handler *Handler) Routes(comments chi.Router) chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.Require(policy.Discussion))
		r.Get("/", handler.list)
		r.Post("/", handler.create)
		r.Get("/{reviewID}", handler.get)
		r.Patch("/{reviewID}", handler.update)
		r.Delete("/{reviewID}", handler.delete)
	})

	router.Mount("/{reviewID}/comments", comments)

	return router
}

/*
GET /api/v1/titles/{titleID}/reviews.

Description: Lists the reviews of a title, newest first.

Response:
  - 200: []Review with pagination metadata
  - 404: ErrNotFound: Unknown title ID
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	reviews, total, err := handler.reviewService.List(request.Context(), titleID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/titles/{titleID}/reviews/{reviewID}.

Description: Retrieves a single review of a title.

Response:
  - 200: Review
  - 404: ErrNotFound: Unknown title or review, or mismatched pairing
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	reviewID, err := requestutil.IntParam(request, "reviewID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.Get(request.Context(), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

// createRequest defines the expected JSON payload for new reviews.
type createRequest struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

/*
POST /api/v1/titles/{titleID}/reviews.

Description: Creates the caller's review of a title. A second review of the
same title by the same user is rejected.

Request:
  - body: createRequest

Response:
  - 201: Review: The created review
  - 400: ErrInvalidJSON/Validation: Missing text or score out of range
  - 401: Policy denial for anonymous callers
  - 404: ErrNotFound: Unknown title ID
  - 409: ErrConflict: Caller already reviewed this title
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required(constants.FieldText, input.Text).
		Range(constants.FieldScore, input.Score, handler.cfg.ScoreMin, handler.cfg.ScoreMax)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.Create(request.Context(), claims, titleID, CreateInput{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

// updateRequest defines the partial JSON payload for review updates.
type updateRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

/*
PATCH /api/v1/titles/{titleID}/reviews/{reviewID}.

Description: Applies a partial update to a review. Author, moderator, or
admin only.

Request:
  - body: updateRequest (Partial JSON)

Response:
  - 200: Review: The updated review
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401/403: Policy denial
  - 404: ErrNotFound: Unknown title or review
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	reviewID, err := requestutil.IntParam(request, "reviewID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.Text != nil {
		v.Required(constants.FieldText, *input.Text)
	}
	if input.Score != nil {
		v.Range(constants.FieldScore, *input.Score, handler.cfg.ScoreMin, handler.cfg.ScoreMax)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.Update(request.Context(), claims, titleID, reviewID, UpdateInput{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

/*
DELETE /api/v1/titles/{titleID}/reviews/{reviewID}.

Description: Deletes a review and its comments. Author, moderator, or admin only.

Response:
  - 204: No Content: Review deleted
  - 401/403: Policy denial
  - 404: ErrNotFound: Unknown title or review
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	reviewID, err := requestutil.IntParam(request, "reviewID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.reviewService.Delete(request.Context(), claims, titleID, reviewID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
