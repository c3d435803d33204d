// Copyright (c) 2026 Funtush. All rights reserved.

package category

import "context"

// Repository is the data store gateway for categories.
//
// Titles are unique; a clash surfaces as ALREADY_EXISTS.
type Repository interface {
	// List returns every category ordered by title.
	List(ctx context.Context) ([]*Category, error)

	// FindByID returns one category. NOT_FOUND when missing.
	FindByID(ctx context.Context, id string) (*Category, error)

	// Create inserts a category.
	Create(ctx context.Context, category *Category) error

	// Update rewrites the title of a stored category.
	Update(ctx context.Context, category *Category) error

	// Delete removes one category. NOT_FOUND when missing.
	Delete(ctx context.Context, id string) error

	// ReplaceAll swaps the whole collection for categories.
	ReplaceAll(ctx context.Context, categories []*Category) error
}
