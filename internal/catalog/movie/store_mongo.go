// Copyright (c) 2026 Funtush. All rights reserved.

package movie

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/dberr"
	mongodb "github.com/parthibdhar/Funtush-Server/internal/platform/mongo"
)

// CollectionName is the MongoDB collection holding movie documents.
const CollectionName = "movies"

// mongoRepository implements [Repository] on a MongoDB collection.
type mongoRepository struct {
	collection    *mongo.Collection
	transactional bool
}

// NewMongoRepository constructs a MongoDB backed movie store. transactional
// selects atomic bulk replaces and must only be set on replica sets.
func NewMongoRepository(database *mongo.Database, transactional bool) Repository {
	return &mongoRepository{
		collection:    database.Collection(CollectionName),
		transactional: transactional,
	}
}

// movieKeys maps neutral field names to document keys.
var movieKeys = map[string]string{
	FieldID:        "_id",
	FieldName:      "name",
	FieldCategory:  "category",
	FieldTime:      "time",
	FieldLanguage:  "language",
	FieldYear:      "year",
	FieldRate:      "rate",
	FieldCreatedAt: "createdAt",
}

func (repository *mongoRepository) FindByID(ctx context.Context, id string) (*Movie, error) {
	var movie Movie
	if err := repository.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&movie); err != nil {
		return nil, dberr.Wrap(err, "Movie")
	}

	movie.normalize()
	return &movie, nil
}

func (repository *mongoRepository) FindByIDs(ctx context.Context, ids []string) ([]*Movie, error) {
	if len(ids) == 0 {
		return []*Movie{}, nil
	}
	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}
	return repository.find(ctx, filter, options.Find())
}

func (repository *mongoRepository) FindMany(ctx context.Context, query Query) ([]*Movie, error) {
	filter, err := mongoFilter(query.Conditions)
	if err != nil {
		return nil, err
	}

	findOptions := options.Find().SetSort(mongoSort(query.Sort))
	if query.Skip > 0 {
		findOptions.SetSkip(int64(query.Skip))
	}
	if query.Limit > 0 {
		findOptions.SetLimit(int64(query.Limit))
	}

	return repository.find(ctx, filter, findOptions)
}

func (repository *mongoRepository) Count(ctx context.Context, conditions []Condition) (int, error) {
	filter, err := mongoFilter(conditions)
	if err != nil {
		return 0, err
	}

	total, err := repository.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, dberr.Wrap(err, "Movie")
	}
	return int(total), nil
}

func (repository *mongoRepository) Create(ctx context.Context, movie *Movie) error {
	movie.normalize()
	_, err := repository.collection.InsertOne(ctx, movie)
	return dberr.Wrap(err, "Movie")
}

func (repository *mongoRepository) Update(ctx context.Context, movie *Movie) error {
	movie.normalize()

	next := movie.Clone()
	next.Version = movie.Version + 1

	filter := bson.D{{Key: "_id", Value: movie.ID}, {Key: "version", Value: movie.Version}}
	result, err := repository.collection.ReplaceOne(ctx, filter, next)
	if err != nil {
		return dberr.Wrap(err, "Movie")
	}

	if result.MatchedCount == 0 {
		exists, err := repository.collection.CountDocuments(ctx, bson.D{{Key: "_id", Value: movie.ID}})
		if err != nil {
			return dberr.Wrap(err, "Movie")
		}
		if exists == 0 {
			return apperr.NotFound("Movie")
		}
		return dberr.ErrVersionConflict
	}

	movie.Version = next.Version
	return nil
}

func (repository *mongoRepository) Delete(ctx context.Context, id string) error {
	result, err := repository.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return dberr.Wrap(err, "Movie")
	}
	if result.DeletedCount == 0 {
		return apperr.NotFound("Movie")
	}
	return nil
}

func (repository *mongoRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := repository.collection.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, dberr.Wrap(err, "Movie")
	}
	return result.DeletedCount, nil
}

func (repository *mongoRepository) ReplaceAll(ctx context.Context, movies []*Movie) error {
	documents := make([]any, len(movies))
	for i, movie := range movies {
		movie.normalize()
		documents[i] = movie
	}

	err := mongodb.ReplaceAll(ctx, repository.collection, documents, repository.transactional)
	return dberr.Wrap(err, "Movie")
}

func (repository *mongoRepository) RandomSample(ctx context.Context, size int) ([]*Movie, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sample", Value: bson.D{{Key: "size", Value: size}}}},
	}

	cursor, err := repository.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, dberr.Wrap(err, "Movie")
	}
	return decodeMovies(ctx, cursor)
}

func (repository *mongoRepository) find(ctx context.Context, filter bson.D, findOptions *options.FindOptionsBuilder) ([]*Movie, error) {
	cursor, err := repository.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, dberr.Wrap(err, "Movie")
	}
	return decodeMovies(ctx, cursor)
}

func decodeMovies(ctx context.Context, cursor *mongo.Cursor) ([]*Movie, error) {
	movies := []*Movie{}
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, dberr.Wrap(err, "Movie")
	}
	for _, movie := range movies {
		movie.normalize()
	}
	return movies, nil
}

// mongoFilter renders conditions as one conjunctive filter document.
func mongoFilter(conditions []Condition) (bson.D, error) {
	filter := bson.D{}

	for _, condition := range conditions {
		key, known := movieKeys[condition.Field]
		if !known {
			return nil, apperr.StoreFailure(fmt.Errorf("movie: unknown filter field %q", condition.Field))
		}

		switch condition.Op {
		case OpContains:
			needle, _ := condition.Value.(string)
			filter = append(filter, bson.E{Key: key, Value: bson.D{
				{Key: "$regex", Value: regexp.QuoteMeta(needle)},
				{Key: "$options", Value: "i"},
			}})
		default:
			filter = append(filter, bson.E{Key: key, Value: condition.Value})
		}
	}

	return filter, nil
}

func mongoSort(sort []SortField) bson.D {
	order := bson.D{}
	for _, field := range sort {
		key, known := movieKeys[field.Field]
		if !known {
			continue
		}
		direction := 1
		if field.Descending {
			direction = -1
		}
		order = append(order, bson.E{Key: key, Value: direction})
	}
	return order
}
