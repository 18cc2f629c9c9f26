// Package database opens the configured durable store.
package database

import (
	"context"
	"fmt"

	"github.com/ArowuTest/numbers-lottery-backend/internal/config"
	"github.com/ArowuTest/numbers-lottery-backend/internal/repositories"
	mongorepo "github.com/ArowuTest/numbers-lottery-backend/internal/repositories/mongodb"
	pgrepo "github.com/ArowuTest/numbers-lottery-backend/internal/repositories/postgres"
	"github.com/ArowuTest/numbers-lottery-backend/pkg/mongodb"
	"github.com/ArowuTest/numbers-lottery-backend/pkg/postgres"
	"github.com/sirupsen/logrus"
)

// CloseFunc releases the connections behind a store
type CloseFunc func(ctx context.Context) error

// Open connects to the store selected by cfg.Database.Driver
func Open(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (repositories.Store, CloseFunc, error) {
	switch cfg.Database.Driver {
	case "postgres":
		return openPostgres(ctx, cfg, log)
	case "mongodb":
		return openMongo(ctx, cfg, log)
	default:
		return repositories.Store{}, nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (repositories.Store, CloseFunc, error) {
	db, err := postgres.Connect(ctx, postgres.Options{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	})
	if err != nil {
		return repositories.Store{}, nil, err
	}
	if cfg.Postgres.MigrationsEnabled {
		if err := postgres.Migrate(db); err != nil {
			db.Close()
			return repositories.Store{}, nil, err
		}
		log.Info("Postgres migrations applied")
	}
	log.Info("Connected to Postgres")
	return pgrepo.NewStore(db), func(context.Context) error { return db.Close() }, nil
}

func openMongo(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (repositories.Store, CloseFunc, error) {
	client, err := mongodb.NewClient(ctx, cfg.MongoDB.URI)
	if err != nil {
		return repositories.Store{}, nil, err
	}
	db := client.Database(cfg.MongoDB.Database)
	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		client.Disconnect(ctx)
		return repositories.Store{}, nil, err
	}
	log.WithField("database", cfg.MongoDB.Database).Info("Connected to MongoDB")
	return mongorepo.NewStore(db), client.Disconnect, nil
}
