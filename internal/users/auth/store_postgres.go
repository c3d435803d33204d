// Copyright (c) 2026 Funtush. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/database/schema"
	"github.com/parthibdhar/Funtush-Server/internal/platform/dberr"
)

// # User Repository

// postgresRepository implements [Repository] on users.account. Liked movies
// are a text[] column so the favourites list keeps its insertion order.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

var accountTable = schema.UserAccount

var selectAccounts = fmt.Sprintf("SELECT %s FROM %s", strings.Join(accountTable.Columns(), ", "), accountTable.Table)

/*
FindByID retrieves an account by primary key.

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *postgresRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return repository.findOne(ctx, accountTable.ID, id)
}

// FindByEmail retrieves an account by its normalized email.
func (repository *postgresRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return repository.findOne(ctx, accountTable.Email, email)
}

func (repository *postgresRepository) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	var total int
	if err := repository.pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+accountTable.Table).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}

	query := fmt.Sprintf("%s ORDER BY %s, %s LIMIT $1 OFFSET $2", selectAccounts, accountTable.CreatedAt, accountTable.ID)
	rows, err := repository.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}

	users, err := pgx.CollectRows(rows, scanUser)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}
	return users, total, nil
}

// Create persists a new account into users.account.
func (repository *postgresRepository) Create(ctx context.Context, user *User) error {
	user.normalize()

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)",
		accountTable.Table, strings.Join(accountTable.Columns(), ", "))

	_, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.Image,
		user.IsAdmin,
		user.LikedMovies,
		user.Version,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return dberr.Wrap(err, "User")
}

/*
Update rewrites every mutable column when the version still matches.

Description: A zero row count is resolved into NOT_FOUND or a version
conflict with a follow-up existence check.
*/
func (repository *postgresRepository) Update(ctx context.Context, user *User) error {
	user.normalize()

	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7,
			%s = %s + 1, %s = $8
		WHERE %s = $1 AND %s = $9`,
		accountTable.Table,
		accountTable.FullName, accountTable.Email, accountTable.Password,
		accountTable.Image, accountTable.IsAdmin, accountTable.LikedMovies,
		accountTable.Version, accountTable.Version, accountTable.UpdatedAt,
		accountTable.ID, accountTable.Version,
	)

	tag, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.Image,
		user.IsAdmin,
		user.LikedMovies,
		user.UpdatedAt,
		user.Version,
	)
	if err != nil {
		return dberr.Wrap(err, "User")
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		err := repository.pool.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM "+accountTable.Table+" WHERE "+accountTable.ID+" = $1)", user.ID,
		).Scan(&exists)
		if err != nil {
			return dberr.Wrap(err, "User")
		}
		if !exists {
			return apperr.NotFound("User")
		}
		return dberr.ErrVersionConflict
	}

	user.Version++
	return nil
}

func (repository *postgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := repository.pool.Exec(ctx, "DELETE FROM "+accountTable.Table+" WHERE "+accountTable.ID+" = $1", id)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

func (repository *postgresRepository) findOne(ctx context.Context, column, value string) (*User, error) {
	rows, err := repository.pool.Query(ctx, selectAccounts+" WHERE "+column+" = $1", value)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	user, err := pgx.CollectExactlyOneRow(rows, scanUser)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

func scanUser(row pgx.CollectableRow) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Image,
		&user.IsAdmin,
		&user.LikedMovies,
		&user.Version,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	user.normalize()
	return user, err
}
