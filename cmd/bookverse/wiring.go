package main

import (
	"context"
	"fmt"

	"github.com/VedantKadlaKK/bookverse/internal/cache"
	"github.com/VedantKadlaKK/bookverse/internal/catalog"
	"github.com/VedantKadlaKK/bookverse/internal/config"
	"github.com/VedantKadlaKK/bookverse/internal/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func loadCatalog(ctx context.Context, cfg config.CatalogConfig, logg *zap.Logger) (*catalog.Catalog, error) {
	switch {
	case cfg.File != "":
		logg.Info("loading catalog file", zap.String("path", cfg.File))
		return catalog.LoadYAMLFile(cfg.File)
	case cfg.DBPath != "":
		logg.Info("loading catalog database", zap.String("path", cfg.DBPath))
		repo, err := catalog.NewRepository(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		defer repo.Close()
		if err := repo.RunMigrations(cfg.MigrationsDir); err != nil {
			return nil, err
		}
		return catalog.Load(ctx, repo)
	default:
		return catalog.Default(), nil
	}
}

// openStore builds the configured backend, wrapped in the Redis cache when
// one is configured.
func openStore(ctx context.Context, cfg *config.Config, logg *zap.Logger) (repository.Store, error) {
	var store repository.Store

	switch cfg.Store.Backend {
	case config.StoreMongo:
		m := cfg.Store.Mongo
		db, err := repository.ConnectMongoDB(ctx, repository.MongoOptions{
			URI:            m.URI,
			Database:       m.Database,
			ConnectTimeout: m.ConnectTimeout,
			MaxPoolSize:    uint64(m.MaxPoolSize),
			MinPoolSize:    uint64(m.MinPoolSize),
		})
		if err != nil {
			return nil, err
		}
		store = repository.NewMongoStore(db)
		logg.Info("connected to MongoDB", zap.String("database", cfg.Store.Mongo.Database))
	case config.StorePostgres:
		p := cfg.Store.Postgres
		creds := &repository.Credentials{
			Host:              p.Host,
			Port:              p.Port,
			User:              p.User,
			Password:          p.Password,
			DBName:            p.DBName,
			MigrationsDirPath: p.MigrationsDir,
		}
		pg, err := repository.NewPostgresStore(creds)
		if err != nil {
			return nil, err
		}
		if err := pg.RunMigrations(creds); err != nil {
			_ = pg.Close()
			return nil, err
		}
		store = pg
		logg.Info("connected to PostgreSQL", zap.String("host", p.Host), zap.String("database", p.DBName))
	default:
		store = repository.NewMemoryStore()
		logg.Warn("using in-memory store, state is lost on exit")
	}

	if cfg.Redis.Addr == "" {
		return store, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		_ = store.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	logg.Info("redis snapshot cache enabled", zap.String("addr", cfg.Redis.Addr))

	return &closingStore{
		Store:   repository.NewCachedStore(store, cache.NewRedisCache(client), logg),
		onClose: client.Close,
	}, nil
}

// closingStore closes the redis client after the wrapped store.
type closingStore struct {
	repository.Store
	onClose func() error
}

func (s *closingStore) Close() error {
	err := s.Store.Close()
	if cerr := s.onClose(); err == nil {
		err = cerr
	}
	return err
}
