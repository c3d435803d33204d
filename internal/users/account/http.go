// Copyright (c) 2026 Funtush. All rights reserved.

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/parthibdhar/Funtush-Server/internal/platform/middleware"
	requestutil "github.com/parthibdhar/Funtush-Server/internal/platform/request"
	"github.com/parthibdhar/Funtush-Server/internal/platform/respond"
	"github.com/parthibdhar/Funtush-Server/internal/platform/validate"
	"github.com/parthibdhar/Funtush-Server/internal/users/access"
	"github.com/parthibdhar/Funtush-Server/pkg/pagination"
)

// # Handler Implementation

// Handler implements the account and user administration endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Mount registers the account endpoints on the shared users router.
//
// # Routing Strategy
//
//   - Self-service (Authenticated): profile, password, favourites, self deletion.
//   - Administration (Admin): user listing and deletion.
func (handler *Handler) Mount(router chi.Router) {

	// ## Self-service
	router.Group(func(self chi.Router) {
		self.Use(middleware.RequireAuth)

		self.Put("/", handler.updateProfile)
		self.Delete("/", handler.deleteSelf)
		self.Put("/password", handler.changePassword)

		self.Get("/favorites", handler.listFavorites)
		self.Post("/favorites", handler.addFavorite)
		self.Delete("/favorites", handler.clearFavorites)
		self.Delete("/favorites/{movieId}", handler.removeFavorite)
	})

	// ## Administration
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin)

		admin.Get("/", handler.listUsers)
		admin.Delete("/{id}", handler.deleteUser)
	})
}

// # Request Payloads

type profileRequest struct {
	FullName *string `json:"fullName" validate:"omitnil,max=100"`
	Email    *string `json:"email"    validate:"omitnil,email"`
	Image    *string `json:"image"    validate:"omitnil,max=2048"`
}

type passwordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type favoriteRequest struct {
	MovieID string `json:"movieId" validate:"required"`
}

// # Self-service Endpoints

/*
PUT /api/v1/users.

Response:
  - 200: Session: the updated account with a new token
  - 409: ALREADY_EXISTS: email taken
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input profileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validate.Struct(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.UpdateProfile(request.Context(), userID, ProfileUpdate{
		FullName: input.FullName,
		Email:    input.Email,
		Image:    input.Image,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

// DELETE /api/v1/users removes the caller's account. 403 for admins.
func (handler *Handler) deleteSelf(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteSelf(request.Context(), access.FromClaims(requestutil.Claims(request))); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
PUT /api/v1/users/password.

Response:
  - 204: password changed
  - 401: UNAUTHORIZED: wrong old password
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input passwordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validate.Struct(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ChangePassword(request.Context(), userID, input.OldPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Favourite Endpoints

// GET /api/v1/users/favorites returns the liked movies, oldest like first.
func (handler *Handler) listFavorites(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	movies, err := handler.service.ListFavorites(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, movies)
}

/*
POST /api/v1/users/favorites.

Request:
  - movieId: string

Response:
  - 200: []string: the liked ids
  - 400: ALREADY_LIKED
  - 404: NOT_FOUND: unknown movie
*/
func (handler *Handler) addFavorite(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input favoriteRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validate.Struct(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	liked, err := handler.service.AddFavorite(request.Context(), userID, input.MovieID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, liked)
}

// DELETE /api/v1/users/favorites/{movieId} unlikes one movie.
func (handler *Handler) removeFavorite(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	liked, err := handler.service.RemoveFavorite(request.Context(), userID, requestutil.Param(request, "movieId"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, liked)
}

// DELETE /api/v1/users/favorites empties the liked list.
func (handler *Handler) clearFavorites(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ClearFavorites(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Administration Endpoints

/*
GET /api/v1/users.

Request:
  - page: int (default 1)
  - limit: int (default 20, max 100)

Response:
  - 200: paginated []User
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	users, meta, err := handler.service.ListUsers(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, meta)
}

// DELETE /api/v1/users/{id} removes a non-admin account.
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.DeleteUser(request.Context(), access.FromClaims(requestutil.Claims(request)), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
