package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/VedantKadlaKK/bookverse/internal/domain"
)

const (
	CartKey   = "cart"
	OrdersKey = "orders"

	DefaultKeyPrefix = "bookverse_"
)

// StateRepository persists the cart and the order ledger as whole snapshots.
type StateRepository interface {
	LoadCart(ctx context.Context) (*domain.Cart, error)
	SaveCart(ctx context.Context, cart *domain.Cart) error
	LoadOrders(ctx context.Context) ([]*domain.Order, error)
	SaveOrders(ctx context.Context, orders []*domain.Order) error
}

type snapshotRepository struct {
	store  Store
	prefix string
}

// NewStateRepository stores the cart under prefix+"cart" and the ledger under
// prefix+"orders".
func NewStateRepository(store Store, prefix string) StateRepository {
	return &snapshotRepository{store: store, prefix: prefix}
}

func (r *snapshotRepository) LoadCart(ctx context.Context) (*domain.Cart, error) {
	cart := &domain.Cart{Items: []domain.CartLine{}}
	found, err := r.load(ctx, CartKey, cart)
	if err != nil {
		return nil, err
	}
	if !found || cart.Items == nil {
		cart.Items = []domain.CartLine{}
	}
	return cart, nil
}

func (r *snapshotRepository) SaveCart(ctx context.Context, cart *domain.Cart) error {
	return r.save(ctx, CartKey, cart)
}

func (r *snapshotRepository) LoadOrders(ctx context.Context) ([]*domain.Order, error) {
	orders := []*domain.Order{}
	if _, err := r.load(ctx, OrdersKey, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return orders, nil
}

func (r *snapshotRepository) SaveOrders(ctx context.Context, orders []*domain.Order) error {
	if orders == nil {
		orders = []*domain.Order{}
	}
	return r.save(ctx, OrdersKey, orders)
}

func (r *snapshotRepository) load(ctx context.Context, key string, dst any) (bool, error) {
	data, err := r.store.Get(ctx, r.prefix+key)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (r *snapshotRepository) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.store.Put(ctx, r.prefix+key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
