package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/VedantKadlaKK/bookverse/internal/catalog"
	"github.com/VedantKadlaKK/bookverse/internal/domain"
	"github.com/VedantKadlaKK/bookverse/internal/repository"
	"go.uber.org/zap"
)

const maxIDAttempts = 16

// Shop owns the cart, the order ledger and the staged checkout of one
// browsing session. Every mutation is applied to a copy, persisted, and only
// then made visible; a failed persist leaves the previous state in place.
type Shop struct {
	mu sync.Mutex

	catalog   *catalog.Catalog
	repo      repository.StateRepository
	ids       IDGenerator
	now       func() time.Time
	logger    *zap.Logger
	notifiers []Notifier

	cart     *domain.Cart
	orders   []*domain.Order
	orderIDs map[string]struct{}
	checkout *domain.Checkout
}

type Option func(*Shop)

func WithIDGenerator(g IDGenerator) Option {
	return func(s *Shop) { s.ids = g }
}

func WithClock(now func() time.Time) Option {
	return func(s *Shop) { s.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Shop) { s.logger = l }
}

func WithNotifiers(n ...Notifier) Option {
	return func(s *Shop) { s.notifiers = append(s.notifiers, n...) }
}

// NewShop loads the persisted cart and ledger. Missing snapshots start empty.
func NewShop(ctx context.Context, cat *catalog.Catalog, repo repository.StateRepository, opts ...Option) (*Shop, error) {
	s := &Shop{
		catalog: cat,
		repo:    repo,
		ids:     NewUUIDGenerator(),
		now:     time.Now,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	cart, err := repo.LoadCart(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	orders, err := repo.LoadOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	s.cart = cart
	s.orders = orders
	s.orderIDs = make(map[string]struct{}, len(orders))
	for _, o := range orders {
		s.orderIDs[o.ID] = struct{}{}
	}

	s.logger.Info("shop state loaded",
		zap.Int("cart_lines", len(cart.Items)),
		zap.Int("orders", len(orders)))
	return s, nil
}

// Subscribe registers n for every future event.
func (s *Shop) Subscribe(n Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifiers = append(s.notifiers, n)
}

func (s *Shop) Catalog() *catalog.Catalog {
	return s.catalog
}

// Cart returns a copy of the current cart.
func (s *Shop) Cart() *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// Total is the sum of price x quantity over the current cart.
func (s *Shop) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

// Orders returns the ledger, most recent first.
func (s *Shop) Orders() []*domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o.Clone())
	}
	return out
}

func (s *Shop) Order(id string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findOrder(id)
	if i < 0 {
		return nil, ErrOrderNotFound
	}
	return s.orders[i].Clone(), nil
}

// Tracking returns the fulfillment timeline of an order.
func (s *Shop) Tracking(id string) (domain.Tracking, error) {
	o, err := s.Order(id)
	if err != nil {
		return domain.Tracking{}, err
	}
	return domain.Track(o, s.now()), nil
}

func (s *Shop) findOrder(id string) int {
	for i, o := range s.orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// commitCart persists next and makes it the current cart. A checkout staged
// from the old cart no longer matches it and is dropped. Callers hold s.mu.
func (s *Shop) commitCart(ctx context.Context, next *domain.Cart) (*domain.Cart, error) {
	next.UpdatedAt = s.now()
	if err := s.repo.SaveCart(ctx, next); err != nil {
		s.logger.Error("failed to persist cart", zap.Error(err))
		return nil, err
	}
	s.cart = next
	if s.checkout != nil && s.checkout.Source == domain.CheckoutSourceCart {
		s.checkout = nil
	}
	return next.Clone(), nil
}

// commitOrders persists ledger and makes it current. Callers hold s.mu.
func (s *Shop) commitOrders(ctx context.Context, ledger []*domain.Order) error {
	if err := s.repo.SaveOrders(ctx, ledger); err != nil {
		s.logger.Error("failed to persist orders", zap.Error(err))
		return err
	}
	s.orders = ledger
	return nil
}

func (s *Shop) notify(ctx context.Context, event domain.Event) {
	event.OccurredAt = s.now()

	s.mu.Lock()
	notifiers := make([]Notifier, len(s.notifiers))
	copy(notifiers, s.notifiers)
	s.mu.Unlock()

	for _, n := range notifiers {
		n.Notify(ctx, cloneEvent(event))
	}
}

func cloneEvent(e domain.Event) domain.Event {
	if e.Cart != nil {
		e.Cart = e.Cart.Clone()
	}
	if e.Order != nil {
		e.Order = e.Order.Clone()
	}
	return e
}
