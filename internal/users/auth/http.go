// Copyright (c) 2026 Funtush. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/parthibdhar/Funtush-Server/internal/platform/request"
	"github.com/parthibdhar/Funtush-Server/internal/platform/respond"
	"github.com/parthibdhar/Funtush-Server/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the registration and login endpoints. They are mounted
// on the users router next to the account endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Mount registers the public endpoints on the shared users router.
//
// # Endpoints
//   - POST /register : Creates a new account.
//   - POST /login    : Authenticates and returns a token.
func (handler *Handler) Mount(router chi.Router) {
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
}

// # Request Payloads

type registerRequest struct {
	FullName string `json:"fullName" validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Image    string `json:"image"    validate:"max=2048"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

/*
POST /api/v1/users/register.

Response:
  - 201: Session: the account with a token
  - 400: VALIDATION_ERROR
  - 409: ALREADY_EXISTS: email taken
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validate.Struct(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Register(request.Context(), RegisterInput{
		FullName: input.FullName,
		Email:    input.Email,
		Password: input.Password,
		Image:    input.Image,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, session)
}

/*
POST /api/v1/users/login.

Response:
  - 200: Session
  - 401: UNAUTHORIZED: invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validate.Struct(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}
