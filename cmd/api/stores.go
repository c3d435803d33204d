// Copyright (c) 2026 Funtush. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/parthibdhar/Funtush-Server/internal/api"
	"github.com/parthibdhar/Funtush-Server/internal/catalog/category"
	"github.com/parthibdhar/Funtush-Server/internal/catalog/movie"
	"github.com/parthibdhar/Funtush-Server/internal/platform/config"
	"github.com/parthibdhar/Funtush-Server/internal/platform/migration"
	mongostore "github.com/parthibdhar/Funtush-Server/internal/platform/mongo"
	pgstore "github.com/parthibdhar/Funtush-Server/internal/platform/postgres"
	"github.com/parthibdhar/Funtush-Server/internal/users/auth"
)

// stores bundles the repositories of one persistence backend.
type stores struct {
	movies     movie.Repository
	categories category.Repository
	users      auth.Repository
	check      *api.HealthCheck
	close      func(ctx context.Context)
}

// openStores connects the backend named by STORE_DRIVER.
func openStores(ctx context.Context, cfg *config.Config, log *slog.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, log)
	case config.DriverMongo:
		return openMongo(ctx, cfg, log)
	case config.DriverMemory:
		log.Warn("memory_store_selected", slog.String("hint", "data is lost on restart"))
		return &stores{
			movies:     movie.NewMemoryRepository(),
			categories: category.NewMemoryRepository(),
			users:      auth.NewMemoryRepository(),
			close:      func(context.Context) {},
		}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, log *slog.Logger) (*stores, error) {
	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		pool.Close()
		return nil, err
	}

	return &stores{
		movies:     movie.NewPostgresRepository(pool),
		categories: category.NewPostgresRepository(pool),
		users:      auth.NewPostgresRepository(pool),
		check: &api.HealthCheck{Name: "postgres", Probe: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		}},
		close: func(context.Context) {
			log.Info("closing_postgres_pool")
			pool.Close()
		},
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config, log *slog.Logger) (*stores, error) {
	client, database, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, log)
	if err != nil {
		return nil, err
	}

	for _, ensure := range []func(context.Context) error{
		func(ctx context.Context) error { return category.EnsureIndexes(ctx, database) },
		func(ctx context.Context) error { return auth.EnsureIndexes(ctx, database) },
	} {
		if err := ensure(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
	}

	transactional := mongostore.SupportsTransactions(ctx, database)
	if !transactional {
		log.Warn("mongo_transactions_unavailable", slog.String("hint", "imports are not atomic on a standalone server"))
	}

	return &stores{
		movies:     movie.NewMongoRepository(database, transactional),
		categories: category.NewMongoRepository(database, transactional),
		users:      auth.NewMongoRepository(database),
		check: &api.HealthCheck{Name: "mongo", Probe: func(ctx context.Context) error {
			return mongostore.Ping(ctx, client)
		}},
		close: func(ctx context.Context) {
			log.Info("closing_mongo_client")
			if err := client.Disconnect(ctx); err != nil {
				log.Error("mongo_close_failed", slog.Any("error", err))
			}
		},
	}, nil
}
