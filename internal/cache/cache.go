package cache

import (
	"context"
	"errors"
)

// SnapshotCache holds serialized snapshots in front of a slower store.
type SnapshotCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

var ErrCacheMiss = errors.New("cache miss")
