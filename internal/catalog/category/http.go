// Copyright (c) 2026 Funtush. All rights reserved.

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/parthibdhar/Funtush-Server/internal/platform/middleware"
	requestutil "github.com/parthibdhar/Funtush-Server/internal/platform/request"
	"github.com/parthibdhar/Funtush-Server/internal/platform/respond"
	"github.com/parthibdhar/Funtush-Server/internal/platform/validate"
)

// Handler implements the HTTP layer for categories.
type Handler struct {
	service *Service
}

// NewHandler constructs a new category [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the public listing and the admin endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCategories)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin)

		admin.Post("/import", handler.importCategories)
		admin.Post("/", handler.createCategory)
		admin.Put("/{id}", handler.updateCategory)
		admin.Delete("/{id}", handler.deleteCategory)
	})

	return router
}

// GET /api/v1/categories.
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListCategories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, categories)
}

/*
POST /api/v1/categories/import.

Description: Replaces every category with the posted array, or with the
embedded starter list when no body is sent.
*/
func (handler *Handler) importCategories(writer http.ResponseWriter, request *http.Request) {
	var payload []Draft
	sent, err := requestutil.DecodeOptionalJSON(request, &payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var categories []*Category
	if sent {
		categories, err = handler.service.ImportCategories(request.Context(), payload)
	} else {
		categories, err = handler.service.ImportSeed(request.Context())
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, categories)
}

/*
POST /api/v1/categories.

Response:
  - 201: Category
  - 400: VALIDATION_ERROR
  - 409: ALREADY_EXISTS
*/
func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var payload titleRequest
	if err := decodeTitle(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.CreateCategory(request.Context(), payload.Title)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

// PUT /api/v1/categories/{id}.
func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload titleRequest
	if err := decodeTitle(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.UpdateCategory(request.Context(), id, payload.Title)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, category)
}

// DELETE /api/v1/categories/{id}.
func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCategory(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// titleRequest is the inbound schema for create and rename.
type titleRequest struct {
	Title string `json:"title" validate:"required,max=100"`
}

func decodeTitle(request *http.Request, payload *titleRequest) error {
	if err := requestutil.DecodeJSON(request, payload); err != nil {
		return err
	}
	return validate.Struct(payload)
}
