// Copyright (c) 2026 Funtush. All rights reserved.

package schema

// CatalogCategoryTable represents the 'catalog.category' table
type CatalogCategoryTable struct {
	Table     string
	ID        string
	Title     string
	CreatedAt string
	UpdatedAt string
}

// CatalogCategory is the schema definition for catalog.category
var CatalogCategory = CatalogCategoryTable{
	Table:     "catalog.category",
	ID:        "id",
	Title:     "title",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all column names in scan order
func (t CatalogCategoryTable) Columns() []string {
	return []string{t.ID, t.Title, t.CreatedAt, t.UpdatedAt}
}
