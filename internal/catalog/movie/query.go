// Copyright (c) 2026 Funtush. All rights reserved.

package movie

import (
	"strings"

	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
	"github.com/parthibdhar/Funtush-Server/pkg/convert"
	"github.com/parthibdhar/Funtush-Server/pkg/pagination"
)

// DefaultPageSize is the listing page size when the client sends no limit.
const DefaultPageSize = 2

// # Query Model

// Op is a backend-neutral comparison operator.
type Op int

const (
	// OpEq is exact equality.
	OpEq Op = iota
	// OpContains is a case-insensitive literal substring match on a string field.
	OpContains
)

// Condition is one predicate of a conjunctive query.
//
// Value is a string for text fields, an int for time and year, and a float64 for rate.
type Condition struct {
	Field string
	Op    Op
	Value any
}

// SortField orders results by one field.
type SortField struct {
	Field      string
	Descending bool
}

// Query is the structured form of a listing request, executed by a [Repository].
// A zero Limit means no limit.
type Query struct {
	Conditions []Condition
	Sort       []SortField
	Skip       int
	Limit      int
}

// PageInfo carries the resolved pagination of a listing.
type PageInfo struct {
	Page  int
	Limit int
	Skip  int
}

// Filter holds the raw listing parameters as received from the client.
// Empty strings mean "not filtered".
type Filter struct {
	Category   string
	Time       string
	Language   string
	Rate       string
	Year       string
	Search     string
	PageNumber string
	Limit      string
}

// ListResult is the payload of a movie listing.
type ListResult struct {
	Movies      []*Movie `json:"movies"`
	Page        int      `json:"page"`
	Pages       int      `json:"pages"`
	TotalMovies int      `json:"totalMovies"`
}

// newestFirst is the default listing order. The id tiebreak keeps pages
// stable when several movies share a timestamp.
var newestFirst = []SortField{
	{Field: FieldCreatedAt, Descending: true},
	{Field: FieldID, Descending: true},
}

// topRatedFirst orders the top-rated listing.
var topRatedFirst = []SortField{
	{Field: FieldRate, Descending: true},
	{Field: FieldCreatedAt, Descending: true},
	{Field: FieldID, Descending: true},
}

// # Query Builder

/*
BuildQuery turns listing parameters into a structured query and page info.

Description: Every non-empty exact-match filter becomes an equality condition,
and a non-empty search becomes a case-insensitive substring condition on the
name. Numeric filters must parse; pagination values are coerced instead.

Parameters:
  - filter: Filter (raw query string values)

Returns:
  - Query: conditions, newest-first sort, skip and limit
  - PageInfo: resolved page and limit
  - error: VALIDATION_ERROR for a malformed numeric filter
*/
func BuildQuery(filter Filter) (Query, PageInfo, error) {
	var conditions []Condition
	var details []apperr.FieldError

	if value := strings.TrimSpace(filter.Category); value != "" {
		conditions = append(conditions, Condition{Field: FieldCategory, Op: OpEq, Value: value})
	}

	if raw := strings.TrimSpace(filter.Time); raw != "" {
		if value, err := convert.ToInt(raw); err != nil {
			details = append(details, apperr.FieldError{Field: FieldTime, Message: "Must be a whole number"})
		} else {
			conditions = append(conditions, Condition{Field: FieldTime, Op: OpEq, Value: value})
		}
	}

	if value := strings.TrimSpace(filter.Language); value != "" {
		conditions = append(conditions, Condition{Field: FieldLanguage, Op: OpEq, Value: value})
	}

	if raw := strings.TrimSpace(filter.Rate); raw != "" {
		if value, err := convert.ToFloat64(raw); err != nil {
			details = append(details, apperr.FieldError{Field: FieldRate, Message: "Must be a number"})
		} else {
			conditions = append(conditions, Condition{Field: FieldRate, Op: OpEq, Value: value})
		}
	}

	if raw := strings.TrimSpace(filter.Year); raw != "" {
		if value, err := convert.ToInt(raw); err != nil {
			details = append(details, apperr.FieldError{Field: FieldYear, Message: "Must be a whole number"})
		} else {
			conditions = append(conditions, Condition{Field: FieldYear, Op: OpEq, Value: value})
		}
	}

	if value := strings.TrimSpace(filter.Search); value != "" {
		conditions = append(conditions, Condition{Field: FieldName, Op: OpContains, Value: value})
	}

	if len(details) > 0 {
		return Query{}, PageInfo{}, apperr.ValidationError("Invalid filter", details...)
	}

	params := pagination.Parse(filter.PageNumber, filter.Limit, DefaultPageSize)
	page := PageInfo{Page: params.Page, Limit: params.Limit, Skip: params.Offset()}

	return Query{
		Conditions: conditions,
		Sort:       newestFirst,
		Skip:       page.Skip,
		Limit:      page.Limit,
	}, page, nil
}

// NewListResult assembles the listing payload from one page and the total match count.
func NewListResult(movies []*Movie, page PageInfo, total int) *ListResult {
	if movies == nil {
		movies = []*Movie{}
	}
	return &ListResult{
		Movies:      movies,
		Page:        page.Page,
		Pages:       pagination.TotalPages(total, page.Limit),
		TotalMovies: total,
	}
}
