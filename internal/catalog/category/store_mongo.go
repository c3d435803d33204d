// Copyright (c) 2026 Funtush. All rights reserved.

package category

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/dberr"
	mongodb "github.com/parthibdhar/Funtush-Server/internal/platform/mongo"
)

// CollectionName is the MongoDB collection holding categories.
const CollectionName = "categories"

type mongoRepository struct {
	collection    *mongo.Collection
	transactional bool
}

// NewMongoRepository constructs a MongoDB backed category store.
func NewMongoRepository(database *mongo.Database, transactional bool) Repository {
	return &mongoRepository{
		collection:    database.Collection(CollectionName),
		transactional: transactional,
	}
}

// EnsureIndexes creates the unique title index.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	_, err := database.Collection(CollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "title", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (repository *mongoRepository) List(ctx context.Context) ([]*Category, error) {
	cursor, err := repository.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, dberr.Wrap(err, "Category")
	}

	list := []*Category{}
	if err := cursor.All(ctx, &list); err != nil {
		return nil, dberr.Wrap(err, "Category")
	}
	return list, nil
}

func (repository *mongoRepository) FindByID(ctx context.Context, id string) (*Category, error) {
	var category Category
	if err := repository.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&category); err != nil {
		return nil, dberr.Wrap(err, "Category")
	}
	return &category, nil
}

func (repository *mongoRepository) Create(ctx context.Context, category *Category) error {
	_, err := repository.collection.InsertOne(ctx, category)
	return dberr.Wrap(err, "Category")
}

func (repository *mongoRepository) Update(ctx context.Context, category *Category) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: category.Title},
		{Key: "updatedAt", Value: category.UpdatedAt},
	}}}

	result, err := repository.collection.UpdateByID(ctx, category.ID, update)
	if err != nil {
		return dberr.Wrap(err, "Category")
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound("Category")
	}
	return nil
}

func (repository *mongoRepository) Delete(ctx context.Context, id string) error {
	result, err := repository.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return dberr.Wrap(err, "Category")
	}
	if result.DeletedCount == 0 {
		return apperr.NotFound("Category")
	}
	return nil
}

func (repository *mongoRepository) ReplaceAll(ctx context.Context, categories []*Category) error {
	documents := make([]any, len(categories))
	for i, category := range categories {
		documents[i] = category
	}

	err := mongodb.ReplaceAll(ctx, repository.collection, documents, repository.transactional)
	return dberr.Wrap(err, "Category")
}
