// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

/*
Package title provides the reviewable works of the catalogue.

A title is the anchor of the whole platform: reviews hang off titles, and a
title's rating is the rounded mean of its review scores.

# Security

Read endpoints are public. Mutations are gated by the catalogue policy,
which requires an admin token.
*/
package title

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kritikadev/kritika/internal/platform/config"
	"github.com/kritikadev/kritika/internal/platform/constants"
	"github.com/kritikadev/kritika/internal/platform/middleware"
	"github.com/kritikadev/kritika/internal/platform/policy"
	requestutil "github.com/kritikadev/kritika/internal/platform/request"
	"github.com/kritikadev/kritika/internal/platform/respond"
	"github.com/kritikadev/kritika/internal/platform/validate"
	"github.com/kritikadev/kritika/pkg/pagination"
	"github.com/kritikadev/kritika/pkg/query"
)

// Handler implements the HTTP layer for title management.
type Handler struct {
	titleService *Service
	cfg          *config.Config
}

// NewHandler constructs a new title [Handler].
func NewHandler(service *Service, cfg *config.Config) *Handler {
	return &Handler{titleService: service, cfg: cfg}
}

// Routes returns a [chi.Router] configured with the title endpoints.
//
// The review router is mounted under /{titleID}/reviews but OUTSIDE the
// catalogue policy group: discussions have their own, looser policy gate.
func (handler *Handler) Routes(reviews chi.Router) chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.Require(policy.Catalog))
		r.Get("/", handler.list)
		r.Post("/", handler.create)
		r.Get("/{titleID}", handler.get)
		r.Patch("/{titleID}", handler.update)
		r.Delete("/{titleID}", handler.delete)
	})

	router.Mount("/{titleID}/reviews", reviews)

	return router
}

/*
GET /api/v1/titles.

Description: Lists titles with optional filters, each carrying its category,
genres, and current rating.

Request:
  - page, limit: Pagination query parameters
  - category: Filter by category slug
  - genre: Filter by genre slug (comma-separated for any-of matching)
  - name: Case-insensitive substring filter
  - year: Exact release year

Response:
  - 200: []Title with pagination metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	queryValues := request.URL.Query()

	filter := Filter{
		CategorySlug: queryValues.Get(constants.FieldCategory),
		GenreSlugs:   query.StringSlice(queryValues.Get(constants.FieldGenre)),
		Name:         queryValues.Get(constants.FieldName),
	}

	if rawYear := queryValues.Get(constants.FieldYear); rawYear != "" {
		year, err := strconv.Atoi(rawYear)
		if err != nil {
			respond.Error(writer, request, validate.RequiredError(constants.FieldYear, "must be an integer"))
			return
		}
		filter.Year = &year
	}

	titles, total, err := handler.titleService.List(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/titles/{titleID}.

Description: Retrieves a single title with category, genres, and rating.

Response:
  - 200: Title
  - 404: ErrNotFound: Unknown title ID
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.titleService.Get(request.Context(), titleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

// createRequest defines the expected JSON payload for new titles.
type createRequest struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description *string  `json:"description"`
	Category    string   `json:"category"`
	Genre       []string `json:"genre"`
}

/*
POST /api/v1/titles.

Description: Creates a new title. Category and genres are referenced by slug.

Request:
  - body: createRequest

Response:
  - 201: Title: The created title (rating is null)
  - 400: ErrInvalidJSON/Validation: Invalid input, unknown slugs, future year
  - 401/403: Policy denial for non-admin callers
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required(constants.FieldName, input.Name).
		MaxLen(constants.FieldName, input.Name, handler.cfg.MaxNameLength).
		Required(constants.FieldCategory, input.Category).
		Max(constants.FieldYear, input.Year, time.Now().Year())

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.titleService.Create(request.Context(), CreateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genre,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, title)
}

// updateRequest defines the partial JSON payload for title updates.
type updateRequest struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

/*
PATCH /api/v1/titles/{titleID}.

Description: Applies a partial update. Omitted fields keep their values.

Request:
  - body: updateRequest (Partial JSON)

Response:
  - 200: Title: The updated title
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401/403: Policy denial for non-admin callers
  - 404: ErrNotFound: Unknown title ID
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
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
	if input.Name != nil {
		v.Required(constants.FieldName, *input.Name).
			MaxLen(constants.FieldName, *input.Name, handler.cfg.MaxNameLength)
	}
	if input.Year != nil {
		v.Max(constants.FieldYear, *input.Year, time.Now().Year())
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.titleService.Update(request.Context(), titleID, UpdateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genre,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

/*
DELETE /api/v1/titles/{titleID}.

Description: Removes a title and, through cascading, its reviews and comments.

Response:
  - 204: No Content: Title deleted
  - 401/403: Policy denial for non-admin callers
  - 404: ErrNotFound: Unknown title ID
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.titleService.Delete(request.Context(), titleID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
