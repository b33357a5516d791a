// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

/*
Package category provides the catalogue grouping axis of the review platform.

Categories classify titles by medium ("Films", "Books", "Music"). Anyone can
browse them; only administrators can create or delete them.

# Security

Read endpoints are public. Mutations are gated by the catalogue policy,
which requires an admin token.
*/
package category

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

// Handler implements the HTTP layer for category management.
type Handler struct {
	categoryService *Service
	cfg             *config.Config
}

// NewHandler constructs a new category [Handler].
func NewHandler(service *Service, cfg *config.Config) *Handler {
	return &Handler{categoryService: service, cfg: cfg}
}

// Routes returns a [chi.Router] configured with the category endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Require(policy.Catalog))

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Delete("/{slug}", handler.delete)

	return router
}

/*
GET /api/v1/categories.

Description: Lists categories, optionally filtered by a name search term.

Request:
  - page, limit: Pagination query parameters
  - search: Optional case-insensitive name filter

Response:
  - 200: []Category with pagination metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	categories, total, err := handler.categoryService.List(request.Context(), params, search)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, categories, pagination.NewMeta(params.Page, params.Limit, total))
}

// createRequest defines the expected JSON payload for new categories.
type createRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

/*
POST /api/v1/categories.

Description: Creates a new category. Slug is derived from the name when omitted.

Request:
  - body: createRequest

Response:
  - 201: Category: The created category
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401/403: Policy denial for non-admin callers
  - 409: ErrConflict: Slug already taken
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required(constants.FieldName, input.Name).
		MaxLen(constants.FieldName, input.Name, handler.cfg.MaxNameLength)
	if input.Slug != "" {
		v.Slug(constants.FieldSlug, input.Slug).
			MaxLen(constants.FieldSlug, input.Slug, handler.cfg.MaxSlugLength)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.categoryService.Create(request.Context(), CreateInput{
		Name: input.Name,
		Slug: input.Slug,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

/*
DELETE /api/v1/categories/{slug}.

Description: Removes a category. Titles keep existing but lose the reference.

Request:
  - slug: string

Response:
  - 204: No Content: Category deleted
  - 401/403: Policy denial for non-admin callers
  - 404: ErrNotFound: Unknown slug
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	if err := handler.categoryService.Delete(request.Context(), slug); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
