package repository

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// Store is the key-value persistence contract. Values are full snapshots;
// Put overwrites whatever was stored under key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
