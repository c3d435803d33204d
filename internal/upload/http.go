// Copyright (c) 2026 Funtush. All rights reserved.

package upload

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/constants"
	"github.com/parthibdhar/Funtush-Server/internal/platform/middleware"
	requestutil "github.com/parthibdhar/Funtush-Server/internal/platform/request"
	"github.com/parthibdhar/Funtush-Server/internal/platform/respond"
)

// formField is the multipart field carrying the file.
const formField = "file"

// Handler implements the upload endpoint.
type Handler struct {
	service *Service
}

// NewHandler constructs a new upload [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the authenticated upload endpoint.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.With(middleware.RequireAuth).Post("/", handler.uploadFile)
	return router
}

/*
POST /api/v1/upload.

Request:
  - multipart/form-data with a "file" part

Response:
  - 200: File: fileName and fileUrl
  - 400: VALIDATION_ERROR: no file or body too large
  - 503: SERVICE_UNAVAILABLE: storage not configured
*/
func (handler *Handler) uploadFile(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxUploadBytes)

	file, header, err := request.FormFile(formField)
	if err != nil {
		respond.Error(writer, request, fileError(err))
		return
	}
	defer file.Close()

	stored, err := handler.service.Store(request.Context(), header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stored)
}

func fileError(err error) error {
	if requestutil.IsBodyTooLarge(err) {
		return apperr.ValidationError("File too large", apperr.FieldError{Field: formField, Message: "Exceeds the upload limit"})
	}
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return apperr.ValidationError("No file found, please upload a file", apperr.FieldError{Field: formField, Message: "Is required"})
	}
	return apperr.ValidationError("Invalid multipart body").WithCause(err)
}
