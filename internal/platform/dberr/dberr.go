// Copyright (c) 2026 Funtush. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors, for both the pgx and the mongo gateways.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
)

// uniqueViolation is the SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// ErrVersionConflict is returned by gateways when an update lost an
// optimistic version race. Services retry on it.
var ErrVersionConflict = errors.New("dberr: version conflict")

// ErrPartialReplace is returned by a non-transactional bulk replace that
// removed the old set but failed while inserting the new one.
var ErrPartialReplace = errors.New("dberr: partial replace")

// IsNotFound reports a missing row or document.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, mongo.ErrNoDocuments)
}

// IsDuplicate reports a unique index violation on either backend.
func IsDuplicate(err error) bool {
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) && pgError.Code == uniqueViolation {
		return true
	}
	return mongo.IsDuplicateKeyError(err)
}

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// # Parameters
//   - err: the driver error
//   - resource: the entity name used in client messages ("Movie", "User")
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// Already classified
	if apperr.IsAppError(err) || errors.Is(err, ErrVersionConflict) || errors.Is(err, ErrPartialReplace) {
		return err
	}

	if IsNotFound(err) {
		return apperr.NotFound(resource)
	}

	if IsDuplicate(err) {
		return apperr.AlreadyExists(resource + " already exists").WithCause(err)
	}

	return apperr.StoreFailure(fmt.Errorf("%s: %w", resource, err))
}
