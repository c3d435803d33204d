// Copyright (c) 2026 Funtush. All rights reserved.

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/dberr"
)

/*
TestWrap classifies driver errors into the application taxonomy.
*/
func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"pgx no rows", pgx.ErrNoRows, apperr.CodeNotFound},
		{"mongo no documents", fmt.Errorf("find: %w", mongo.ErrNoDocuments), apperr.CodeNotFound},
		{"pg unique", &pgconn.PgError{Code: "23505"}, apperr.CodeAlreadyExists},
		{"unknown", errors.New("connection reset"), apperr.CodeStoreFailure},
		{"already classified", apperr.Forbidden("no"), apperr.CodeForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, apperr.HasCode(dberr.Wrap(tt.err, "Movie"), tt.code))
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "Movie"))
	assert.ErrorIs(t, dberr.Wrap(dberr.ErrVersionConflict, "Movie"), dberr.ErrVersionConflict)
	assert.ErrorIs(t, dberr.Wrap(dberr.ErrPartialReplace, "Movie"), dberr.ErrPartialReplace)
}
