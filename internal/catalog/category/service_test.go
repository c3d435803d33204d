// Copyright (c) 2026 Funtush. All rights reserved.

package category_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parthibdhar/Funtush-Server/internal/catalog/category"
	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/metrics"
)

func newService() *category.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return category.NewService(category.NewMemoryRepository(), metrics.New(), logger)
}

/*
TestCreateCategory enforces non-empty unique titles.
*/
func TestCreateCategory(t *testing.T) {
	service := newService()
	ctx := context.Background()

	created, err := service.CreateCategory(ctx, "  Drama ")
	require.NoError(t, err)
	assert.Equal(t, "Drama", created.Title)

	_, err = service.CreateCategory(ctx, "Drama")
	assert.True(t, apperr.HasCode(err, apperr.CodeAlreadyExists))

	_, err = service.CreateCategory(ctx, "   ")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

/*
TestUpdateCategory renames and keeps titles unique.
*/
func TestUpdateCategory(t *testing.T) {
	service := newService()
	ctx := context.Background()

	drama, err := service.CreateCategory(ctx, "Drama")
	require.NoError(t, err)
	_, err = service.CreateCategory(ctx, "Action")
	require.NoError(t, err)

	renamed, err := service.UpdateCategory(ctx, drama.ID, "Thriller")
	require.NoError(t, err)
	assert.Equal(t, "Thriller", renamed.Title)

	_, err = service.UpdateCategory(ctx, drama.ID, "Action")
	assert.True(t, apperr.HasCode(err, apperr.CodeAlreadyExists))

	_, err = service.UpdateCategory(ctx, "0190f000-0000-7000-8000-000000000000", "Other")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestImportCategories replaces the list and sorts by title.
*/
func TestImportCategories(t *testing.T) {
	service := newService()
	ctx := context.Background()

	_, err := service.CreateCategory(ctx, "Old")
	require.NoError(t, err)

	_, err = service.ImportCategories(ctx, []category.Draft{{Title: "Comedy"}, {Title: "Action"}})
	require.NoError(t, err)

	list, err := service.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Action", list[0].Title)
	assert.Equal(t, "Comedy", list[1].Title)

	_, err = service.ImportCategories(ctx, []category.Draft{{Title: "Same"}, {Title: "Same"}})
	assert.True(t, apperr.HasCode(err, apperr.CodeAlreadyExists))

	_, err = service.ImportCategories(ctx, []category.Draft{{Title: ""}})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	seeded, err := service.ImportSeed(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, seeded)
}

/*
TestImportCategories_EntryErrors reports the failing entry and the actual rule.
*/
func TestImportCategories_EntryErrors(t *testing.T) {
	service := newService()
	ctx := context.Background()

	tests := []struct {
		name    string
		drafts  []category.Draft
		field   string
		message string
	}{
		{"blank title", []category.Draft{{Title: "Drama"}, {Title: "  "}}, "[1].title", "This field is required"},
		{"title too long", []category.Draft{{Title: strings.Repeat("x", 101)}}, "[0].title", "Maximum 100 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ImportCategories(ctx, tt.drafts)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, apperr.CodeValidation, appError.Code)
			assert.Equal(t, []apperr.FieldError{{Field: tt.field, Message: tt.message}}, appError.Details)
		})
	}
}

/*
TestDeleteCategory removes once.
*/
func TestDeleteCategory(t *testing.T) {
	service := newService()
	ctx := context.Background()

	created, err := service.CreateCategory(ctx, "Gone")
	require.NoError(t, err)

	require.NoError(t, service.DeleteCategory(ctx, created.ID))
	assert.True(t, apperr.HasCode(service.DeleteCategory(ctx, created.ID), apperr.CodeNotFound))
}
