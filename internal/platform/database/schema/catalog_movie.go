// Copyright (c) 2026 Funtush. All rights reserved.

// Package schema names the PostgreSQL tables and columns used by the
// relational gateways, so SQL strings never repeat raw identifiers.
package schema

// CatalogMovieTable represents the 'catalog.movie' table
type CatalogMovieTable struct {
	Table           string
	ID              string
	Name            string
	Description     string
	Image           string
	TitleImage      string
	Rate            string
	NumberOfReviews string
	Category        string
	Time            string
	Language        string
	Year            string
	Video           string
	Casts           string
	Reviews         string
	CreatedBy       string
	Version         string
	CreatedAt       string
	UpdatedAt       string
}

// CatalogMovie is the schema definition for catalog.movie
var CatalogMovie = CatalogMovieTable{
	Table:           "catalog.movie",
	ID:              "id",
	Name:            "name",
	Description:     "description",
	Image:           "image",
	TitleImage:      "titleimage",
	Rate:            "rate",
	NumberOfReviews: "numberofreviews",
	Category:        "category",
	Time:            "time",
	Language:        "language",
	Year:            "year",
	Video:           "video",
	Casts:           "casts",
	Reviews:         "reviews",
	CreatedBy:       "createdby",
	Version:         "version",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

// Columns returns all column names in scan order
func (t CatalogMovieTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Description, t.Image, t.TitleImage, t.Rate,
		t.NumberOfReviews, t.Category, t.Time, t.Language, t.Year, t.Video,
		t.Casts, t.Reviews, t.CreatedBy, t.Version, t.CreatedAt, t.UpdatedAt,
	}
}
