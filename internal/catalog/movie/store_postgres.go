// Copyright (c) 2026 Funtush. All rights reserved.

package movie

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/database/schema"
	"github.com/parthibdhar/Funtush-Server/internal/platform/dberr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/postgres"
)

// # PostgreSQL Repository

// postgresRepository implements [Repository] on catalog.movie. Casts and
// reviews are embedded as jsonb so a movie stays one row.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed movie store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

var movieTable = schema.CatalogMovie

// movieColumns maps neutral field names to columns for filters and sorting.
var movieColumns = map[string]string{
	FieldID:        movieTable.ID,
	FieldName:      movieTable.Name,
	FieldCategory:  movieTable.Category,
	FieldTime:      movieTable.Time,
	FieldLanguage:  movieTable.Language,
	FieldYear:      movieTable.Year,
	FieldRate:      movieTable.Rate,
	FieldCreatedAt: movieTable.CreatedAt,
}

var selectMovies = fmt.Sprintf("SELECT %s FROM %s", strings.Join(movieTable.Columns(), ", "), movieTable.Table)

func (repository *postgresRepository) FindByID(ctx context.Context, id string) (*Movie, error) {
	row := repository.pool.QueryRow(ctx, selectMovies+" WHERE "+movieTable.ID+" = $1", id)

	movie, err := scanMovie(row)
	if err != nil {
		return nil, dberr.Wrap(err, "Movie")
	}
	return movie, nil
}

func (repository *postgresRepository) FindByIDs(ctx context.Context, ids []string) ([]*Movie, error) {
	if len(ids) == 0 {
		return []*Movie{}, nil
	}
	return repository.queryMovies(ctx, selectMovies+" WHERE "+movieTable.ID+" = ANY($1)", ids)
}

/*
FindMany executes a structured query.

Description: Conditions become a dynamic WHERE clause with positional
arguments. Substring conditions use ILIKE with the wildcard characters of the
search term escaped so they match literally.
*/
func (repository *postgresRepository) FindMany(ctx context.Context, query Query) ([]*Movie, error) {
	var builder strings.Builder
	builder.WriteString(selectMovies)

	where, args, err := whereClause(query.Conditions)
	if err != nil {
		return nil, err
	}
	builder.WriteString(where)

	if orderBy := orderClause(query.Sort); orderBy != "" {
		builder.WriteString(orderBy)
	}

	if query.Skip > 0 {
		args = append(args, query.Skip)
		builder.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))
	}
	if query.Limit > 0 {
		args = append(args, query.Limit)
		builder.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}

	return repository.queryMovies(ctx, builder.String(), args...)
}

func (repository *postgresRepository) Count(ctx context.Context, conditions []Condition) (int, error) {
	where, args, err := whereClause(conditions)
	if err != nil {
		return 0, err
	}

	var total int
	if err := repository.pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+movieTable.Table+where, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "Movie")
	}
	return total, nil
}

func (repository *postgresRepository) Create(ctx context.Context, movie *Movie) error {
	return dberr.Wrap(insertMovie(ctx, repository.pool, movie), "Movie")
}

func (repository *postgresRepository) Update(ctx context.Context, movie *Movie) error {
	casts, reviews, err := encodeEmbedded(movie)
	if err != nil {
		return apperr.StoreFailure(err)
	}

	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8,
			%s = $9, %s = $10, %s = $11, %s = $12, %s = $13, %s = $14,
			%s = %s + 1, %s = $15
		WHERE %s = $1 AND %s = $16`,
		movieTable.Table,
		movieTable.Name, movieTable.Description, movieTable.Image, movieTable.TitleImage,
		movieTable.Rate, movieTable.NumberOfReviews, movieTable.Category,
		movieTable.Time, movieTable.Language, movieTable.Year, movieTable.Video,
		movieTable.Casts, movieTable.Reviews,
		movieTable.Version, movieTable.Version, movieTable.UpdatedAt,
		movieTable.ID, movieTable.Version,
	)

	tag, err := repository.pool.Exec(ctx, query,
		movie.ID, movie.Name, movie.Description, movie.Image, movie.TitleImage,
		movie.Rate, movie.NumberOfReviews, movie.Category,
		movie.Time, movie.Language, movie.Year, movie.Video,
		casts, reviews, movie.UpdatedAt, movie.Version,
	)
	if err != nil {
		return dberr.Wrap(err, "Movie")
	}

	if tag.RowsAffected() == 0 {
		return repository.missingOrConflict(ctx, movie.ID)
	}

	movie.Version++
	return nil
}

func (repository *postgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := repository.pool.Exec(ctx, "DELETE FROM "+movieTable.Table+" WHERE "+movieTable.ID+" = $1", id)
	if err != nil {
		return dberr.Wrap(err, "Movie")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Movie")
	}
	return nil
}

func (repository *postgresRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := repository.pool.Exec(ctx, "DELETE FROM "+movieTable.Table)
	if err != nil {
		return 0, dberr.Wrap(err, "Movie")
	}
	return tag.RowsAffected(), nil
}

// ReplaceAll deletes and inserts inside one transaction, so readers see
// either the old set or the new one.
func (repository *postgresRepository) ReplaceAll(ctx context.Context, movies []*Movie) error {
	err := postgres.WithTx(ctx, repository.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM "+movieTable.Table); err != nil {
			return err
		}

		for _, movie := range movies {
			if err := insertMovie(ctx, tx, movie); err != nil {
				return err
			}
		}
		return nil
	})
	return dberr.Wrap(err, "Movie")
}

func (repository *postgresRepository) RandomSample(ctx context.Context, size int) ([]*Movie, error) {
	return repository.queryMovies(ctx, selectMovies+" ORDER BY random() LIMIT $1", size)
}

// # Helpers

func (repository *postgresRepository) queryMovies(ctx context.Context, query string, args ...any) ([]*Movie, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "Movie")
	}
	defer rows.Close()

	movies := []*Movie{}
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "Movie")
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Movie")
	}
	return movies, nil
}

func (repository *postgresRepository) missingOrConflict(ctx context.Context, id string) error {
	var exists bool
	err := repository.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM "+movieTable.Table+" WHERE "+movieTable.ID+" = $1)", id,
	).Scan(&exists)
	if err != nil {
		return dberr.Wrap(err, "Movie")
	}
	if !exists {
		return apperr.NotFound("Movie")
	}
	return dberr.ErrVersionConflict
}

func insertMovie(ctx context.Context, querier postgres.Querier, movie *Movie) error {
	casts, reviews, err := encodeEmbedded(movie)
	if err != nil {
		return err
	}

	columns := movieTable.Columns()
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		movieTable.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	_, err = querier.Exec(ctx, query,
		movie.ID, movie.Name, movie.Description, movie.Image, movie.TitleImage, movie.Rate,
		movie.NumberOfReviews, movie.Category, movie.Time, movie.Language, movie.Year, movie.Video,
		casts, reviews, movie.CreatedBy, movie.Version, movie.CreatedAt, movie.UpdatedAt,
	)
	return err
}

func scanMovie(row pgx.Row) (*Movie, error) {
	var movie Movie
	var casts, reviews []byte

	err := row.Scan(
		&movie.ID, &movie.Name, &movie.Description, &movie.Image, &movie.TitleImage, &movie.Rate,
		&movie.NumberOfReviews, &movie.Category, &movie.Time, &movie.Language, &movie.Year, &movie.Video,
		&casts, &reviews, &movie.CreatedBy, &movie.Version, &movie.CreatedAt, &movie.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(casts, &movie.Casts); err != nil {
		return nil, fmt.Errorf("movie: decode casts: %w", err)
	}
	if err := json.Unmarshal(reviews, &movie.Reviews); err != nil {
		return nil, fmt.Errorf("movie: decode reviews: %w", err)
	}

	movie.normalize()
	return &movie, nil
}

func encodeEmbedded(movie *Movie) (string, string, error) {
	movie.normalize()

	casts, err := json.Marshal(movie.Casts)
	if err != nil {
		return "", "", fmt.Errorf("movie: encode casts: %w", err)
	}
	reviews, err := json.Marshal(movie.Reviews)
	if err != nil {
		return "", "", fmt.Errorf("movie: encode reviews: %w", err)
	}
	return string(casts), string(reviews), nil
}

// whereClause renders conditions as a WHERE clause with positional arguments.
func whereClause(conditions []Condition) (string, []any, error) {
	if len(conditions) == 0 {
		return "", nil, nil
	}

	parts := make([]string, 0, len(conditions))
	args := make([]any, 0, len(conditions))

	for _, condition := range conditions {
		column, known := movieColumns[condition.Field]
		if !known {
			return "", nil, apperr.StoreFailure(fmt.Errorf("movie: unknown filter field %q", condition.Field))
		}

		switch condition.Op {
		case OpContains:
			needle, _ := condition.Value.(string)
			args = append(args, escapeLike(needle))
			parts = append(parts, fmt.Sprintf("%s ILIKE '%%' || $%d || '%%' ESCAPE '\\'", column, len(args)))
		default:
			args = append(args, condition.Value)
			parts = append(parts, fmt.Sprintf("%s = $%d", column, len(args)))
		}
	}

	return " WHERE " + strings.Join(parts, " AND "), args, nil
}

func orderClause(sort []SortField) string {
	parts := make([]string, 0, len(sort))
	for _, field := range sort {
		column, known := movieColumns[field.Field]
		if !known {
			continue
		}
		direction := "ASC"
		if field.Descending {
			direction = "DESC"
		}
		parts = append(parts, column+" "+direction)
	}

	if len(parts) == 0 {
		return ""
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}
