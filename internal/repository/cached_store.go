package repository

import (
	"context"
	"errors"
	"time"

	"github.com/VedantKadlaKK/bookverse/internal/cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CachedStore reads through a SnapshotCache and invalidates it on every write.
// Cache failures are logged and never fail the call.
type CachedStore struct {
	store  Store
	cache  cache.SnapshotCache
	logger *zap.Logger
	sfg    singleflight.Group // Prevents cache stampede
}

func NewCachedStore(store Store, c cache.SnapshotCache, logger *zap.Logger) *CachedStore {
	return &CachedStore{
		store:  store,
		cache:  c,
		logger: logger,
	}
}

func (s *CachedStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		data, err := s.cache.Get(ctx, key)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("cache get error", zap.String("key", key), zap.Error(err))
		}

		data, err = s.store.Get(ctx, key)
		if err != nil {
			return nil, err
		}

		if errSet := s.cache.Set(ctx, key, data); errSet != nil {
			s.logger.Warn("cache set error", zap.String("key", key), zap.Error(errSet))
		}

		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (s *CachedStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.store.Put(ctx, key, value); err != nil {
		return err
	}
	s.invalidate(key)
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, key string) error {
	if err := s.store.Delete(ctx, key); err != nil {
		return err
	}
	s.invalidate(key)
	return nil
}

func (s *CachedStore) Close() error {
	return s.store.Close()
}

func (s *CachedStore) invalidate(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("cache invalidate error", zap.String("key", key), zap.Error(err))
	}
}
