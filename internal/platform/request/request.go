// Copyright (c) 2026 Funtush. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/ctxutil"
	"github.com/parthibdhar/Funtush-Server/internal/platform/sec"
	"github.com/parthibdhar/Funtush-Server/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
DecodeOptionalJSON decodes the body into target when one was sent.

Returns:
  - bool: false when the body is empty or whitespace only
  - error: validate.ErrInvalidJSON if a body was sent but cannot be decoded
*/
func DecodeOptionalJSON(request *http.Request, target interface{}) (bool, error) {
	if request.Body == nil || request.Body == http.NoBody {
		return false, nil
	}

	payload, err := io.ReadAll(request.Body)
	if err != nil {
		return false, validate.ErrInvalidJSON
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(payload, target); err != nil {
		return false, validate.ErrInvalidJSON
	}
	return true, nil
}

/*
ID retrieves a named URL parameter and checks it is a UUID.
*/
func ID(request *http.Request, name string) (string, error) {
	value := chi.URLParam(request, name)
	if err := new(validate.Validator).UUID(name, value).Err(); err != nil {
		return "", err
	}
	return value, nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Claims extracts the authenticated identity from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the identity.

Returns:
  - *sec.AuthClaims: The authenticated identity
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Not authorized, no token")
	}
	return claims, nil
}

/*
RequiredUserID returns the User ID of the currently logged-in user.
*/
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// IsBodyTooLarge reports whether err came from an [http.MaxBytesReader] limit.
func IsBodyTooLarge(err error) bool {
	var maxBytesError *http.MaxBytesError
	return errors.As(err, &maxBytesError)
}
