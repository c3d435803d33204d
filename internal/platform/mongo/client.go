// Copyright (c) 2026 Funtush. All rights reserved.

/*
Package mongo provides the managed MongoDB client used when STORE_DRIVER=mongo.

Documents use string _id values (UUIDv7) so ids look the same on every store.
*/
package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/parthibdhar/Funtush-Server/internal/platform/dberr"
)

const (
	connectTimeout = 5 * time.Second
	pingTimeout    = 2 * time.Second
	maxPoolSize    = 20
)

// Connect opens a client, verifies it with a ping and returns the database handle.
func Connect(ctx context.Context, uri, database string, logger *slog.Logger) (*mongo.Client, *mongo.Database, error) {
	clientOptions := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(connectTimeout).
		SetMaxPoolSize(maxPoolSize)

	client, err := mongo.Connect(clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo: failed to create client: %w", err)
	}

	if err := Ping(ctx, client); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, nil, err
	}

	logger.Info("mongo_client_connected", slog.String("database", database))

	return client, client.Database(database), nil
}

// Ping verifies that the primary is reachable.
func Ping(ctx context.Context, client *mongo.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo: ping failed: %w", err)
	}
	return nil
}

// SupportsTransactions reports whether the deployment is a replica set or
// sharded cluster. Standalone servers reject multi-document transactions.
func SupportsTransactions(ctx context.Context, database *mongo.Database) bool {
	var hello struct {
		SetName string `bson:"setName"`
		Msg     string `bson:"msg"`
	}

	err := database.RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&hello)
	if err != nil {
		return false
	}
	return hello.SetName != "" || hello.Msg == "isdbgrid"
}

/*
ReplaceAll swaps every document of collection for documents.

Description: With transactional set the delete and the inserts commit
together. Without it the delete runs first, and a failed insert returns
[dberr.ErrPartialReplace] because the collection is left short.

Parameters:
  - ctx: context.Context
  - collection: *mongo.Collection
  - documents: []any (the new set, possibly empty)
  - transactional: bool (result of [SupportsTransactions])
*/
func ReplaceAll(ctx context.Context, collection *mongo.Collection, documents []any, transactional bool) error {
	if !transactional {
		if _, err := collection.DeleteMany(ctx, bson.D{}); err != nil {
			return err
		}
		if err := insertAll(ctx, collection, documents); err != nil {
			return fmt.Errorf("%w: %w", dberr.ErrPartialReplace, err)
		}
		return nil
	}

	session, err := collection.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("mongo: start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		if _, err := collection.DeleteMany(ctx, bson.D{}); err != nil {
			return nil, err
		}
		return nil, insertAll(ctx, collection, documents)
	})
	return err
}

func insertAll(ctx context.Context, collection *mongo.Collection, documents []any) error {
	if len(documents) == 0 {
		return nil
	}
	_, err := collection.InsertMany(ctx, documents)
	return err
}
