// Copyright (c) 2026 Funtush. All rights reserved.

package movie_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parthibdhar/Funtush-Server/internal/catalog/movie"
	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
)

/*
TestBuildQuery_Defaults verifies an empty filter yields an unfiltered first page.
*/
func TestBuildQuery_Defaults(t *testing.T) {
	query, page, err := movie.BuildQuery(movie.Filter{})
	require.NoError(t, err)

	assert.Empty(t, query.Conditions)
	assert.Equal(t, movie.PageInfo{Page: 1, Limit: 2, Skip: 0}, page)
	assert.Equal(t, 0, query.Skip)
	assert.Equal(t, 2, query.Limit)
	require.NotEmpty(t, query.Sort)
	assert.Equal(t, movie.SortField{Field: movie.FieldCreatedAt, Descending: true}, query.Sort[0])
}

/*
TestBuildQuery_Filters verifies each parameter maps to the right condition.
*/
func TestBuildQuery_Filters(t *testing.T) {
	query, page, err := movie.BuildQuery(movie.Filter{
		Category:   "Action",
		Time:       "120",
		Language:   "English",
		Rate:       "4.5",
		Year:       "2012",
		Search:     "Dark",
		PageNumber: "3",
		Limit:      "5",
	})
	require.NoError(t, err)

	assert.Equal(t, []movie.Condition{
		{Field: movie.FieldCategory, Op: movie.OpEq, Value: "Action"},
		{Field: movie.FieldTime, Op: movie.OpEq, Value: 120},
		{Field: movie.FieldLanguage, Op: movie.OpEq, Value: "English"},
		{Field: movie.FieldRate, Op: movie.OpEq, Value: 4.5},
		{Field: movie.FieldYear, Op: movie.OpEq, Value: 2012},
		{Field: movie.FieldName, Op: movie.OpContains, Value: "Dark"},
	}, query.Conditions)

	assert.Equal(t, movie.PageInfo{Page: 3, Limit: 5, Skip: 10}, page)
	assert.Equal(t, 10, query.Skip)
}

/*
TestBuildQuery_Coercion verifies pagination coercion never fails the request.
*/
func TestBuildQuery_Coercion(t *testing.T) {
	tests := []struct {
		name  string
		page  string
		limit string
		want  movie.PageInfo
	}{
		{"garbage page", "x", "", movie.PageInfo{Page: 1, Limit: 2, Skip: 0}},
		{"negative page", "-2", "3", movie.PageInfo{Page: 1, Limit: 3, Skip: 0}},
		{"zero limit", "2", "0", movie.PageInfo{Page: 2, Limit: 2, Skip: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, page, err := movie.BuildQuery(movie.Filter{PageNumber: tt.page, Limit: tt.limit})
			require.NoError(t, err)
			assert.Equal(t, tt.want, page)
		})
	}
}

/*
TestBuildQuery_MalformedNumbers rejects non-numeric numeric filters.
*/
func TestBuildQuery_MalformedNumbers(t *testing.T) {
	_, _, err := movie.BuildQuery(movie.Filter{Year: "twenty", Rate: "high", Time: "1.5"})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeValidation, appError.Code)
	assert.Len(t, appError.Details, 3)
}

/*
TestNewListResult computes the page count from the total.
*/
func TestNewListResult(t *testing.T) {
	result := movie.NewListResult(nil, movie.PageInfo{Page: 3, Limit: 2}, 5)

	assert.Equal(t, 3, result.Page)
	assert.Equal(t, 3, result.Pages)
	assert.Equal(t, 5, result.TotalMovies)
	assert.NotNil(t, result.Movies)
}
