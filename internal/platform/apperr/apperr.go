// Copyright (c) 2026 Funtush. All rights reserved.

/*
Package apperr defines the centralized error taxonomy for the Funtush API.

Every rejection produced by the catalogue, review, favourites and account
services leaves the service layer as an [AppError] so the transport layer can
render a stable machine-readable code next to a client-safe message.

Taxonomy:

  - NOT_FOUND, ALREADY_EXISTS, ALREADY_REVIEWED, ALREADY_LIKED
  - FORBIDDEN, UNAUTHORIZED, TOKEN_INVALID
  - VALIDATION_ERROR, CONFLICT, RATE_LIMITED
  - STORE_FAILURE, REIMPORT_REQUIRED, SERVICE_UNAVAILABLE
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Stable error codes surfaced to clients.
const (
	CodeNotFound           = "NOT_FOUND"
	CodeAlreadyExists      = "ALREADY_EXISTS"
	CodeAlreadyReviewed    = "ALREADY_REVIEWED"
	CodeAlreadyLiked       = "ALREADY_LIKED"
	CodeForbidden          = "FORBIDDEN"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeTokenInvalid       = "TOKEN_INVALID"
	CodeValidation         = "VALIDATION_ERROR"
	CodeConflict           = "CONFLICT"
	CodeRateLimited        = "RATE_LIMITED"
	CodeStoreFailure       = "STORE_FAILURE"
	CodeReimportRequired   = "REIMPORT_REQUIRED"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// AppError is the canonical error type for the Funtush API.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// so driver messages and queries do not leak.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause returns a copy of the error carrying cause for server-side logs.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Movie") // Returns "Movie not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// AlreadyExists creates a 409 [AppError] for a uniqueness violation on a named resource.
func AlreadyExists(msg string) *AppError {
	return &AppError{
		Code:       CodeAlreadyExists,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// AlreadyReviewed creates a 400 [AppError] raised when a user reviews the same movie twice.
func AlreadyReviewed() *AppError {
	return &AppError{
		Code:       CodeAlreadyReviewed,
		Message:    "You already reviewed this movie",
		HTTPStatus: http.StatusBadRequest,
	}
}

// AlreadyLiked creates a 400 [AppError] raised when a movie is already in the favourites list.
func AlreadyLiked() *AppError {
	return &AppError{
		Code:       CodeAlreadyLiked,
		Message:    "Movie already liked",
		HTTPStatus: http.StatusBadRequest,
	}
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// TokenInvalid creates a 401 [AppError] for a malformed, expired or forged bearer token.
func TokenInvalid() *AppError {
	return &AppError{
		Code:       CodeTokenInvalid,
		Message:    "Not authorized, token failed",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// Conflict creates a 409 [AppError] for optimistic concurrency failures.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// StoreFailure creates a 500 [AppError] wrapping an unexpected storage or server-side error.
// The cause is stored for logging but is never sent to the client.
func StoreFailure(cause error) *AppError {
	return &AppError{
		Code:       CodeStoreFailure,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// Internal is an alias of [StoreFailure] kept for non-storage call sites.
func Internal(cause error) *AppError { return StoreFailure(cause) }

// ReimportRequired creates a 500 [AppError] raised when a bulk replace removed the
// old set but failed to write the new one. The collection is empty until re-imported.
func ReimportRequired(resource string, cause error) *AppError {
	return &AppError{
		Code:       CodeReimportRequired,
		Message:    resource + " import incomplete, run the import again",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// ServiceUnavailable creates a 503 [AppError] for features that are not configured.
func ServiceUnavailable(msg string) *AppError {
	return &AppError{
		Code:       CodeServiceUnavailable,
		Message:    msg,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
