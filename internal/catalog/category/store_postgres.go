// Copyright (c) 2026 Funtush. All rights reserved.

package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/database/schema"
	"github.com/parthibdhar/Funtush-Server/internal/platform/dberr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/postgres"
)

// postgresRepository implements [Repository] on catalog.category. The
// unique index on title enforces uniqueness.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed category store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

var categoryTable = schema.CatalogCategory

var selectCategories = fmt.Sprintf("SELECT %s FROM %s", strings.Join(categoryTable.Columns(), ", "), categoryTable.Table)

func (repository *postgresRepository) List(ctx context.Context) ([]*Category, error) {
	rows, err := repository.pool.Query(ctx, selectCategories+" ORDER BY "+categoryTable.Title)
	if err != nil {
		return nil, dberr.Wrap(err, "Category")
	}

	list, err := pgx.CollectRows(rows, scanCategory)
	if err != nil {
		return nil, dberr.Wrap(err, "Category")
	}
	return list, nil
}

func (repository *postgresRepository) FindByID(ctx context.Context, id string) (*Category, error) {
	rows, err := repository.pool.Query(ctx, selectCategories+" WHERE "+categoryTable.ID+" = $1", id)
	if err != nil {
		return nil, dberr.Wrap(err, "Category")
	}

	category, err := pgx.CollectExactlyOneRow(rows, scanCategory)
	if err != nil {
		return nil, dberr.Wrap(err, "Category")
	}
	return category, nil
}

func (repository *postgresRepository) Create(ctx context.Context, category *Category) error {
	return dberr.Wrap(insertCategory(ctx, repository.pool, category), "Category")
}

func (repository *postgresRepository) Update(ctx context.Context, category *Category) error {
	query := fmt.Sprintf("UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1",
		categoryTable.Table, categoryTable.Title, categoryTable.UpdatedAt, categoryTable.ID)

	tag, err := repository.pool.Exec(ctx, query, category.ID, category.Title, category.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Category")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}
	return nil
}

func (repository *postgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := repository.pool.Exec(ctx, "DELETE FROM "+categoryTable.Table+" WHERE "+categoryTable.ID+" = $1", id)
	if err != nil {
		return dberr.Wrap(err, "Category")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}
	return nil
}

func (repository *postgresRepository) ReplaceAll(ctx context.Context, categories []*Category) error {
	err := postgres.WithTx(ctx, repository.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM "+categoryTable.Table); err != nil {
			return err
		}
		for _, category := range categories {
			if err := insertCategory(ctx, tx, category); err != nil {
				return err
			}
		}
		return nil
	})
	return dberr.Wrap(err, "Category")
}

func insertCategory(ctx context.Context, querier postgres.Querier, category *Category) error {
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES ($1, $2, $3, $4)",
		categoryTable.Table, strings.Join(categoryTable.Columns(), ", "))

	_, err := querier.Exec(ctx, query, category.ID, category.Title, category.CreatedAt, category.UpdatedAt)
	return err
}

func scanCategory(row pgx.CollectableRow) (*Category, error) {
	var category Category
	err := row.Scan(&category.ID, &category.Title, &category.CreatedAt, &category.UpdatedAt)
	return &category, err
}
