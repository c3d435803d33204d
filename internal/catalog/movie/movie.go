// Copyright (c) 2026 Funtush. All rights reserved.

/*
Package movie defines the movie catalogue: entities, the listing query
builder, the review aggregator, admin patches, the data store gateways and
the HTTP surface.

Core Responsibility:

  - Catalogue: Movie documents with embedded reviews and an ordered cast list.
  - Discovery: Filtered, searchable and paginated listings, top rated and random picks.
  - Reviews: One review per user and movie, with a derived average rate.
  - Administration: Create, patch, delete and bulk replace.

A Movie is one document on every backend. Reviews are embedded and rewritten
together with their movie, guarded by a per-movie lock and an optimistic
version check.
*/
package movie

import (
	"slices"
	"time"
)

// # Field Identifiers
//
// Field names are backend-neutral. Each gateway maps them to its own columns
// or document keys.
const (
	FieldID              = "id"
	FieldName            = "name"
	FieldDescription     = "description"
	FieldImage           = "image"
	FieldTitleImage      = "titleImage"
	FieldRate            = "rate"
	FieldNumberOfReviews = "numberOfReviews"
	FieldCategory        = "category"
	FieldTime            = "time"
	FieldLanguage        = "language"
	FieldYear            = "year"
	FieldVideo           = "video"
	FieldCasts           = "casts"
	FieldCreatedAt       = "createdAt"
	FieldRating          = "rating"
)

// # Core Entities

// Movie is the central aggregate of the catalogue.
type Movie struct {
	ID              string   `json:"id"              bson:"_id"`
	Name            string   `json:"name"            bson:"name"`
	Description     string   `json:"description"     bson:"description"`
	Image           string   `json:"image"           bson:"image"`
	TitleImage      string   `json:"titleImage"      bson:"titleImage"`
	Rate            float64  `json:"rate"            bson:"rate"`
	NumberOfReviews int      `json:"numberOfReviews" bson:"numberOfReviews"`
	Category        string   `json:"category"        bson:"category"` // Category title
	Time            int      `json:"time"            bson:"time"`     // Duration in minutes
	Language        string   `json:"language"        bson:"language"`
	Year            int      `json:"year"            bson:"year"`
	Video           string   `json:"video"           bson:"video"`
	Casts           []string `json:"casts"           bson:"casts"`
	Reviews         []Review `json:"reviews"         bson:"reviews"`

	// CreatedBy is the admin that created the movie; empty for imported movies.
	CreatedBy string `json:"userId,omitempty" bson:"userId,omitempty"`

	// Version increases with every stored update.
	Version int64 `json:"-" bson:"version"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Review is a user's rating of a movie. The name and image are snapshots
// taken when the review was posted.
type Review struct {
	UserID    string    `json:"userId"    bson:"userId"`
	UserName  string    `json:"userName"  bson:"userName"`
	UserImage string    `json:"userImage" bson:"userImage"`
	Rating    float64   `json:"rating"    bson:"rating"`
	Comment   string    `json:"comment"   bson:"comment"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Clone returns a deep copy so callers can modify it without aliasing the original.
func (movie *Movie) Clone() *Movie {
	if movie == nil {
		return nil
	}
	clone := *movie
	clone.Casts = slices.Clone(movie.Casts)
	clone.Reviews = slices.Clone(movie.Reviews)
	return &clone
}

// normalize replaces nil collections with empty ones so JSON renders [] not null.
func (movie *Movie) normalize() {
	if movie.Casts == nil {
		movie.Casts = []string{}
	}
	if movie.Reviews == nil {
		movie.Reviews = []Review{}
	}
}
