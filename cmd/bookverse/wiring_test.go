package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/VedantKadlaKK/bookverse/internal/config"
	"github.com/VedantKadlaKK/bookverse/internal/repository"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadCatalog_Default(t *testing.T) {
	cat, err := loadCatalog(context.Background(), config.CatalogConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 8, cat.Len())
}

func TestLoadCatalog_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`books:
  - id: 1
    title: Dune
    author: Frank Herbert
    genre: sci-fi
    price: 399
`), 0o600))

	cat, err := loadCatalog(context.Background(), config.CatalogConfig{File: path}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, cat.Len())
}

func TestLoadCatalog_Database(t *testing.T) {
	cfg := config.CatalogConfig{
		DBPath:        filepath.Join(t.TempDir(), "catalog.db"),
		MigrationsDir: "../../internal/catalog/migrations",
	}

	cat, err := loadCatalog(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 8, cat.Len())
}

func TestOpenStore_MemoryWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{
		Store: config.StoreConfig{Backend: config.StoreMemory, KeyPrefix: repository.DefaultKeyPrefix},
		Redis: config.RedisConfig{Addr: mr.Addr()},
	}
	ctx := context.Background()

	store, err := openStore(ctx, cfg, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "bookverse_cart", []byte(`{"items":[]}`)))
	got, err := store.Get(ctx, "bookverse_cart")
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(got))
	assert.True(t, mr.Exists("snapshot:bookverse_cart"))

	require.NoError(t, store.Close())
}

func TestOpenStore_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := &config.Config{
		Store: config.StoreConfig{Backend: config.StoreMemory},
		Redis: config.RedisConfig{Addr: addr},
	}
	_, err := openStore(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}
