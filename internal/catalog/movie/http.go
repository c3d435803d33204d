// Copyright (c) 2026 Funtush. All rights reserved.

package movie

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/middleware"
	requestutil "github.com/parthibdhar/Funtush-Server/internal/platform/request"
	"github.com/parthibdhar/Funtush-Server/internal/platform/respond"
	"github.com/parthibdhar/Funtush-Server/internal/platform/validate"
	"github.com/parthibdhar/Funtush-Server/pkg/convert"
	"github.com/parthibdhar/Funtush-Server/pkg/pointer"
)

// # Handler Implementation

// Handler implements the HTTP layer for the movie catalogue.
type Handler struct {
	service *Service
}

// NewHandler constructs a new movie [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the movie endpoints.
//
// # Routing Strategy
//
//   - Discovery (Public): listing, lookup, top rated and random picks.
//   - Reviews (Authenticated): any signed-in user may review once.
//   - Management (Admin): create, patch, delete and bulk import.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.listMovies)
	router.Get("/rated/top", handler.topRated)
	router.Get("/random/all", handler.randomMovies)
	router.Get("/{id}", handler.getMovie)

	// ## Reviews
	router.With(middleware.RequireAuth).Post("/{id}/reviews", handler.createReview)

	// ## Catalogue Management (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin)

		admin.Post("/import", handler.importMovies)
		admin.Post("/", handler.createMovie)
		admin.Put("/{id}", handler.updateMovie)
		admin.Delete("/{id}", handler.deleteMovie)
		admin.Delete("/", handler.deleteAllMovies)
	})

	return router
}

// # Discovery Endpoints

/*
GET /api/v1/movies.

Request:
  - category, time, language, rate, year: exact match filters
  - search: case-insensitive name substring
  - pageNumber: int (default 1)
  - limit: int (default 2)

Response:
  - 200: ListResult
  - 400: VALIDATION_ERROR: malformed numeric filter
  - 404: NOT_FOUND: nothing matches
*/
func (handler *Handler) listMovies(writer http.ResponseWriter, request *http.Request) {
	queryParams := request.URL.Query()

	filter := Filter{
		Category:   queryParams.Get("category"),
		Time:       queryParams.Get("time"),
		Language:   queryParams.Get("language"),
		Rate:       queryParams.Get("rate"),
		Year:       queryParams.Get("year"),
		Search:     queryParams.Get("search"),
		PageNumber: queryParams.Get("pageNumber"),
		Limit:      queryParams.Get("limit"),
	}

	result, err := handler.service.ListMovies(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
GET /api/v1/movies/{id}.

Response:
  - 200: Movie
  - 400: VALIDATION_ERROR: malformed id
  - 404: NOT_FOUND
*/
func (handler *Handler) getMovie(writer http.ResponseWriter, request *http.Request) {
	id, err := requestID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	movie, err := handler.service.GetMovie(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, movie)
}

// GET /api/v1/movies/rated/top.
func (handler *Handler) topRated(writer http.ResponseWriter, request *http.Request) {
	movies, err := handler.service.TopRated(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, movies)
}

// GET /api/v1/movies/random/all.
func (handler *Handler) randomMovies(writer http.ResponseWriter, request *http.Request) {
	movies, err := handler.service.RandomMovies(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, movies)
}

// # Review Endpoints

/*
POST /api/v1/movies/{id}/reviews.

Request:
  - rating: number or numeric string
  - comment: string

Response:
  - 201: Movie: the reviewed movie
  - 400: ALREADY_REVIEWED / VALIDATION_ERROR
  - 404: NOT_FOUND
  - 409: CONFLICT: concurrent writers
*/
func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload reviewRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validate.Struct(payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	rating, err := convert.NumberToFloat64(payload.Rating)
	if err != nil {
		respond.Error(writer, request, numberError(FieldRating))
		return
	}

	reviewer := Reviewer{ID: claims.UserID, Name: claims.FullName, Image: claims.Image}
	movie, err := handler.service.AddReview(request.Context(), id, reviewer, rating, payload.Comment)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, movie)
}

// # Management Endpoints

/*
POST /api/v1/movies/import.

Description: Replaces the whole catalogue with the posted array. Without a
body the embedded starter catalogue is imported.

Response:
  - 201: []Movie
*/
func (handler *Handler) importMovies(writer http.ResponseWriter, request *http.Request) {
	var payload []movieRequest
	sent, err := requestutil.DecodeOptionalJSON(request, &payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var movies []*Movie
	if !sent {
		movies, err = handler.service.ImportSeed(request.Context())
	} else {
		drafts := make([]Draft, 0, len(payload))
		for index, entry := range payload {
			draft, err := entry.toDraft()
			if err != nil {
				respond.Error(writer, request, importEntryError(index, err))
				return
			}
			drafts = append(drafts, draft)
		}
		movies, err = handler.service.ImportMovies(request.Context(), drafts)
	}

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, movies)
}

/*
POST /api/v1/movies.

Response:
  - 201: Movie
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) createMovie(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload movieRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft, err := payload.toDraft()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	movie, err := handler.service.CreateMovie(request.Context(), draft, actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, movie)
}

/*
PUT /api/v1/movies/{id}.

Description: Partial update. Absent fields keep their stored value, present
fields replace it even when they are zero.

Response:
  - 200: Movie
  - 400: VALIDATION_ERROR
  - 404: NOT_FOUND
*/
func (handler *Handler) updateMovie(writer http.ResponseWriter, request *http.Request) {
	id, err := requestID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload patchRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	patch, err := payload.toPatch()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	movie, err := handler.service.UpdateMovie(request.Context(), id, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, movie)
}

// DELETE /api/v1/movies/{id}.
func (handler *Handler) deleteMovie(writer http.ResponseWriter, request *http.Request) {
	id, err := requestID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteMovie(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// DELETE /api/v1/movies.
func (handler *Handler) deleteAllMovies(writer http.ResponseWriter, request *http.Request) {
	removed, err := handler.service.DeleteAllMovies(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]int64{"deleted": removed})
}

// # Request Payloads

// movieRequest is the inbound schema for creation and import entries.
// Numeric fields accept JSON numbers or numeric strings.
type movieRequest struct {
	Name        string        `json:"name"        validate:"required,max=300"`
	Description string        `json:"description" validate:"max=5000"`
	Image       string        `json:"image"       validate:"max=2048"`
	TitleImage  string        `json:"titleImage"  validate:"max=2048"`
	Rate        json.Number   `json:"rate"`
	Category    string        `json:"category"    validate:"max=200"`
	Time        json.Number   `json:"time"`
	Language    string        `json:"language"    validate:"max=100"`
	Year        json.Number   `json:"year"`
	Video       string        `json:"video"       validate:"max=2048"`
	Casts       []string      `json:"casts"       validate:"dive,max=200"`
}

func (payload movieRequest) toDraft() (Draft, error) {
	if err := validate.Struct(payload); err != nil {
		return Draft{}, err
	}

	var details []apperr.FieldError
	rate := optionalFloat(FieldRate, payload.Rate, &details)
	minutes := optionalInt(FieldTime, payload.Time, &details)
	year := optionalInt(FieldYear, payload.Year, &details)

	if len(details) > 0 {
		return Draft{}, apperr.ValidationError("Validation failed", details...)
	}

	return Draft{
		Name:        payload.Name,
		Description: payload.Description,
		Image:       payload.Image,
		TitleImage:  payload.TitleImage,
		Rate:        rate,
		Category:    payload.Category,
		Time:        minutes,
		Language:    payload.Language,
		Year:        year,
		Video:       payload.Video,
		Casts:       toCasts(payload.Casts),
	}, nil
}

// patchRequest is the inbound schema for partial updates.
type patchRequest struct {
	Name            *string        `json:"name"        validate:"omitnil,min=1,max=300"`
	Description     *string        `json:"description" validate:"omitnil,max=5000"`
	Image           *string        `json:"image"       validate:"omitnil,max=2048"`
	TitleImage      *string        `json:"titleImage"  validate:"omitnil,max=2048"`
	Rate            *json.Number   `json:"rate"`
	NumberOfReviews *json.Number   `json:"numberOfReviews"`
	Category        *string        `json:"category"    validate:"omitnil,max=200"`
	Time            *json.Number   `json:"time"`
	Language        *string        `json:"language"    validate:"omitnil,max=100"`
	Year            *json.Number   `json:"year"`
	Video           *string        `json:"video"       validate:"omitnil,max=2048"`
	Casts           *[]string      `json:"casts"       validate:"omitnil,dive,max=200"`
}

func (payload patchRequest) toPatch() (Patch, error) {
	if err := validate.Struct(payload); err != nil {
		return Patch{}, err
	}

	patch := Patch{
		Name:        payload.Name,
		Description: payload.Description,
		Image:       payload.Image,
		TitleImage:  payload.TitleImage,
		Category:    payload.Category,
		Language:    payload.Language,
		Video:       payload.Video,
	}

	var details []apperr.FieldError
	patch.Rate = presentFloat(FieldRate, payload.Rate, &details)
	patch.NumberOfReviews = presentInt(FieldNumberOfReviews, payload.NumberOfReviews, &details)
	patch.Time = presentInt(FieldTime, payload.Time, &details)
	patch.Year = presentInt(FieldYear, payload.Year, &details)

	if len(details) > 0 {
		return Patch{}, apperr.ValidationError("Validation failed", details...)
	}

	if payload.Casts != nil {
		patch.Casts = pointer.To(toCasts(*payload.Casts))
	}

	return patch, nil
}

// reviewRequest is the inbound schema for a review.
type reviewRequest struct {
	Rating  json.Number `json:"rating"  validate:"required"`
	Comment string      `json:"comment" validate:"max=2000"`
}

// # Helpers

func requestID(request *http.Request) (string, error) {
	return requestutil.ID(request, "id")
}

func toCasts(payload []string) []string {
	casts := make([]string, len(payload))
	for i, name := range payload {
		casts[i] = strings.TrimSpace(name)
	}
	return casts
}

func numberError(field string) error {
	return apperr.ValidationError("Validation failed", apperr.FieldError{Field: field, Message: "Must be a number"})
}

// optionalFloat converts an absent number to zero and records malformed input.
func optionalFloat(field string, number json.Number, details *[]apperr.FieldError) float64 {
	if number == "" {
		return 0
	}
	value, err := convert.NumberToFloat64(number)
	if err != nil {
		*details = append(*details, apperr.FieldError{Field: field, Message: "Must be a number"})
	}
	return value
}

func optionalInt(field string, number json.Number, details *[]apperr.FieldError) int {
	if number == "" {
		return 0
	}
	value, err := convert.NumberToInt(number)
	if err != nil {
		*details = append(*details, apperr.FieldError{Field: field, Message: "Must be a whole number"})
	}
	return value
}

func presentFloat(field string, number *json.Number, details *[]apperr.FieldError) *float64 {
	if number == nil {
		return nil
	}
	value, err := convert.NumberToFloat64(*number)
	if err != nil {
		*details = append(*details, apperr.FieldError{Field: field, Message: "Must be a number"})
		return nil
	}
	return pointer.To(value)
}

func presentInt(field string, number *json.Number, details *[]apperr.FieldError) *int {
	if number == nil {
		return nil
	}
	value, err := convert.NumberToInt(*number)
	if err != nil {
		*details = append(*details, apperr.FieldError{Field: field, Message: "Must be a whole number"})
		return nil
	}
	return pointer.To(value)
}
