package service

import (
	"context"
	"fmt"

	"github.com/VedantKadlaKK/bookverse/internal/domain"
	"go.uber.org/zap"
)

// AdvanceStatus moves an order one step along the fulfillment flow. Setting
// the status the order already has is a no-op.
func (s *Shop) AdvanceStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	i := s.findOrder(orderID)
	if i < 0 {
		s.mu.Unlock()
		return nil, ErrOrderNotFound
	}

	current := s.orders[i]
	if current.Status == status {
		out := current.Clone()
		s.mu.Unlock()
		return out, nil
	}
	if !current.Status.CanTransitionTo(status) {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current.Status, status)
	}

	updated := current.Clone()
	updated.Status = status
	updated.UpdatedAt = s.now()

	ledger := make([]*domain.Order, len(s.orders))
	copy(ledger, s.orders)
	ledger[i] = updated
	if err := s.commitOrders(ctx, ledger); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	out := updated.Clone()
	s.mu.Unlock()

	s.logger.Info("order status changed",
		zap.String("order_id", orderID),
		zap.String("from", current.Status.String()),
		zap.String("to", status.String()))

	s.notify(ctx, domain.Event{
		Type:    domain.EventOrderStatusChanged,
		Message: fmt.Sprintf("Order %s is now %s!", orderID, status),
		Order:   out.Clone(),
	})
	return out, nil
}

// Reorder adds every line of a past order to the cart with its original
// quantity, merging into lines that are already there.
func (s *Shop) Reorder(ctx context.Context, orderID string) (*domain.Cart, error) {
	s.mu.Lock()
	i := s.findOrder(orderID)
	if i < 0 {
		s.mu.Unlock()
		return nil, ErrOrderNotFound
	}

	next := s.cart.Clone()
	for _, line := range s.orders[i].Items {
		if !next.CanAdd(line.ID, line.Quantity) {
			s.mu.Unlock()
			return nil, fmt.Errorf("%w: at most %d", ErrQuantityLimit, domain.MaxLineQuantity)
		}
		next.Merge(line)
	}
	cart, err := s.commitCart(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.notify(ctx, domain.Event{
		Type:    domain.EventCartUpdated,
		Message: fmt.Sprintf("Items from order %s added to cart!", orderID),
		Cart:    cart,
	})
	return cart, nil
}
