// Package storage opens the repository set selected by configuration.
package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/repository"
	"storefront/internal/repository/memory"
	"storefront/internal/repository/mongodb"
)

const connectTimeout = 10 * time.Second

// Open connects the configured driver, prepares its schema and returns the
// repositories with a close function.
func Open(ctx context.Context, cfg *config.Config) (repository.Set, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		return openMongo(ctx, cfg)
	case config.DriverMySQL:
		return openMySQL(cfg)
	case config.DriverMemory:
		log.Println("storage: using in-memory store, data is lost on exit")
		return memory.NewSet(), func() {}, nil
	default:
		return repository.Set{}, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

func openMongo(ctx context.Context, cfg *config.Config) (repository.Set, func(), error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	database, err := db.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return repository.Set{}, nil, err
	}
	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		if err := database.Client().Disconnect(ctx); err != nil {
			log.Printf("storage: mongo disconnect: %v", err)
		}
	}

	if cfg.ResetDB {
		log.Println("RESET_DB=true detected, dropping all collections...")
		if err := mongodb.Drop(ctx, database); err != nil {
			log.Printf("Warning: failed to drop collections: %v", err)
		}
	}
	if err := mongodb.EnsureIndexes(ctx, database); err != nil {
		closeFn()
		return repository.Set{}, nil, err
	}
	return mongodb.NewSet(database), closeFn, nil
}

func openMySQL(cfg *config.Config) (repository.Set, func(), error) {
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		return repository.Set{}, nil, err
	}
	closeFn := func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	if cfg.ResetDB {
		log.Println("RESET_DB=true detected, dropping all tables...")
		for _, table := range repository.Models() {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
	}
	if err := gormDB.AutoMigrate(repository.Models()...); err != nil {
		closeFn()
		return repository.Set{}, nil, fmt.Errorf("auto-migrate: %w", err)
	}
	return repository.NewGormSet(gormDB), closeFn, nil
}
