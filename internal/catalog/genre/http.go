// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

// Package genre provides the thematic labelling axis of the catalogue.
// Reads are public; mutations require an admin token via the catalogue policy.
package genre

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

// Handler implements the HTTP layer for genre management.
type Handler struct {
	genreService *Service
	cfg          *config.Config
}

// NewHandler constructs a new genre [Handler].
func NewHandler(service *Service, cfg *config.Config) *Handler {
	return &Handler{genreService: service, cfg: cfg}
}

// Routes returns a [chi.Router] configured with the genre endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Require(policy.Catalog))

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Delete("/{slug}", handler.delete)

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	genres, total, err := handler.genreService.List(request.Context(), params, search)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, genres, pagination.NewMeta(params.Page, params.Limit, total))
}

// createRequest defines the expected JSON payload for new genres.
type createRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

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

	genre, err := handler.genreService.Create(request.Context(), CreateInput{
		Name: input.Name,
		Slug: input.Slug,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, genre)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	if err := handler.genreService.Delete(request.Context(), slug); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
