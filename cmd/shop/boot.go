package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/kashvi-shop/config"
	"github.com/shashiranjanraj/kashvi-shop/pkg/cache"
	"github.com/shashiranjanraj/kashvi-shop/pkg/database"
	"github.com/shashiranjanraj/kashvi-shop/pkg/logger"
)

func loadConfig() (*config.Config, error) {
	return config.LoadWith(config.Options{
		JSONPath: configPath,
		EnvPath:  envPath,
		Environ:  os.Environ,
	})
}

// setupLogger installs the process logger. When LOG_MONGO_URI is set,
// records are also shipped to MongoDB; the returned func flushes them.
func setupLogger(ctx context.Context, cfg *config.Config) func() {
	opts := logger.Options{Production: cfg.App.IsProduction()}

	var mongo *logger.MongoHandler
	if cfg.Log.MongoURI != "" {
		h, err := logger.NewMongoHandler(ctx, cfg.Log.MongoURI, cfg.Log.MongoDatabase, cfg.Log.MongoCollection)
		if err != nil {
			logger.Warn("mongo log sink disabled", "error", err)
		} else {
			mongo = h
			opts.Extra = []slog.Handler{h}
		}
	}

	logger.Setup(logger.New(opts))
	return func() {
		if mongo != nil {
			mongo.Close()
		}
	}
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	logger.Info("database connected", "driver", cfg.Database.Driver)
	return db, nil
}

// openCache connects to Redis when REDIS_ADDR is set and falls back to an
// in-process store otherwise.
func openCache(ctx context.Context, cfg config.RedisConfig) (cache.Store, func(), error) {
	if !cfg.Enabled() {
		logger.Info("cache: using in-memory store")
		return cache.NewMemoryStore(), func() {}, nil
	}
	store, err := cache.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("cache: %w", err)
	}
	logger.Info("cache: redis connected", "addr", cfg.Addr)
	return store, func() { _ = store.Close() }, nil
}
