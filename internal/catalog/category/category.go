// Copyright (c) 2026 Funtush. All rights reserved.

// Package category manages the movie categories. Movies reference a
// category by its title, which is unique.
package category

import (
	"strings"
	"time"

	"github.com/parthibdhar/Funtush-Server/internal/platform/validate"
)

// FieldTitle is the only writable attribute of a category.
const FieldTitle = "title"

// Category is a named movie genre.
type Category struct {
	ID        string    `json:"id"        bson:"_id"`
	Title     string    `json:"title"     bson:"title"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Draft is the input of a creation or an import entry.
type Draft struct {
	Title string `json:"title"`
}

// normalizeTitle trims surrounding whitespace.
func normalizeTitle(title string) string {
	return strings.TrimSpace(title)
}

func validateTitle(title string) error {
	return new(validate.Validator).
		Required(FieldTitle, title).
		MaxLen(FieldTitle, title, 100).
		Err()
}
