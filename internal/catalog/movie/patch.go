// Copyright (c) 2026 Funtush. All rights reserved.

package movie

import (
	"slices"
	"strings"
	"time"

	"github.com/parthibdhar/Funtush-Server/internal/platform/validate"
	"github.com/parthibdhar/Funtush-Server/pkg/pointer"
)

// # Admin Mutation

// Patch is a partial update. A nil field is absent and keeps the stored
// value; a non-nil field replaces it, zero values included.
type Patch struct {
	Name            *string
	Description     *string
	Image           *string
	TitleImage      *string
	Rate            *float64
	NumberOfReviews *int
	Category        *string
	Time            *int
	Language        *string
	Year            *int
	Video           *string
	Casts           *[]string
}

// IsEmpty reports whether the patch changes nothing.
func (patch Patch) IsEmpty() bool {
	return patch == Patch{}
}

/*
ApplyPatch returns a copy of existing with every present field replaced.

Description: Rate and review count are derived values. They can be set by an
admin while the movie has no reviews; once reviews exist both are re-derived
from them, so a patch cannot break the average.

Parameters:
  - existing: *Movie (left untouched)
  - patch: Patch

Returns:
  - *Movie: the updated copy
*/
func ApplyPatch(existing *Movie, patch Patch) *Movie {
	updated := existing.Clone()

	pointer.Apply(&updated.Name, patch.Name)
	pointer.Apply(&updated.Description, patch.Description)
	pointer.Apply(&updated.Image, patch.Image)
	pointer.Apply(&updated.TitleImage, patch.TitleImage)
	pointer.Apply(&updated.Rate, patch.Rate)
	pointer.Apply(&updated.NumberOfReviews, patch.NumberOfReviews)
	pointer.Apply(&updated.Category, patch.Category)
	pointer.Apply(&updated.Time, patch.Time)
	pointer.Apply(&updated.Language, patch.Language)
	pointer.Apply(&updated.Year, patch.Year)
	pointer.Apply(&updated.Video, patch.Video)

	if patch.Casts != nil {
		updated.Casts = slices.Clone(*patch.Casts)
	}

	if len(updated.Reviews) > 0 {
		updated.syncReviewStats()
	}

	return updated
}

// Draft is the input of a single movie creation or an import entry.
type Draft struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	TitleImage  string  `json:"titleImage"`
	Rate        float64 `json:"rate"`
	Category    string  `json:"category"`
	Time        int     `json:"time"`
	Language    string  `json:"language"`
	Year        int     `json:"year"`
	Video       string  `json:"video"`
	Casts       []string `json:"casts"`
}

// NewMovie builds a stored movie from a draft.
func NewMovie(id string, draft Draft, createdBy string, now time.Time) *Movie {
	movie := &Movie{
		ID:          id,
		Name:        strings.TrimSpace(draft.Name),
		Description: draft.Description,
		Image:       draft.Image,
		TitleImage:  draft.TitleImage,
		Rate:        draft.Rate,
		Category:    strings.TrimSpace(draft.Category),
		Time:        draft.Time,
		Language:    strings.TrimSpace(draft.Language),
		Year:        draft.Year,
		Video:       draft.Video,
		Casts:       slices.Clone(draft.Casts),
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	movie.normalize()
	return movie
}

// Validate checks the invariants of a movie about to be stored.
func (movie *Movie) Validate() error {
	validator := &validate.Validator{}

	validator.Required(FieldName, movie.Name).MaxLen(FieldName, movie.Name, 300)
	validator.MaxLen(FieldDescription, movie.Description, 5000)
	validator.FloatRange(FieldRate, movie.Rate, 0, 10)
	validator.Custom(FieldNumberOfReviews, movie.NumberOfReviews < 0, "Must not be negative")
	validator.Custom(FieldTime, movie.Time < 0, "Must not be negative")
	validator.Range(FieldYear, movie.Year, 0, 9999)

	for _, cast := range movie.Casts {
		if strings.TrimSpace(cast) == "" {
			validator.Custom(FieldCasts, true, "Every cast entry needs a name")
			break
		}
	}

	return validator.Err()
}
