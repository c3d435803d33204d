// Copyright (c) 2026 Funtush. All rights reserved.

package auth

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/dberr"
)

// CollectionName is the MongoDB collection holding accounts.
const CollectionName = "users"

type mongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository constructs a MongoDB backed account store.
func NewMongoRepository(database *mongo.Database) Repository {
	return &mongoRepository{collection: database.Collection(CollectionName)}
}

// EnsureIndexes creates the unique email index.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	_, err := database.Collection(CollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (repository *mongoRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return repository.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (repository *mongoRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return repository.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (repository *mongoRepository) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	total, err := repository.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := repository.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}

	users := []*User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}
	for _, user := range users {
		user.normalize()
	}
	return users, int(total), nil
}

func (repository *mongoRepository) Create(ctx context.Context, user *User) error {
	user.normalize()
	_, err := repository.collection.InsertOne(ctx, user)
	return dberr.Wrap(err, "User")
}

func (repository *mongoRepository) Update(ctx context.Context, user *User) error {
	user.normalize()

	next := user.Clone()
	next.Version = user.Version + 1

	filter := bson.D{{Key: "_id", Value: user.ID}, {Key: "version", Value: user.Version}}
	result, err := repository.collection.ReplaceOne(ctx, filter, next)
	if err != nil {
		return dberr.Wrap(err, "User")
	}

	if result.MatchedCount == 0 {
		exists, err := repository.collection.CountDocuments(ctx, bson.D{{Key: "_id", Value: user.ID}})
		if err != nil {
			return dberr.Wrap(err, "User")
		}
		if exists == 0 {
			return apperr.NotFound("User")
		}
		return dberr.ErrVersionConflict
	}

	user.Version = next.Version
	return nil
}

func (repository *mongoRepository) Delete(ctx context.Context, id string) error {
	result, err := repository.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if result.DeletedCount == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

func (repository *mongoRepository) findOne(ctx context.Context, filter bson.D) (*User, error) {
	var user User
	if err := repository.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	user.normalize()
	return &user, nil
}
