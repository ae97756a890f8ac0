package service

import (
	"context"
	"fmt"

	"github.com/VedantKadlaKK/bookverse/internal/domain"
	"go.uber.org/zap"
)

// BeginCheckout stages the whole cart for submission.
func (s *Shop) BeginCheckout() (*domain.Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	s.checkout = domain.NewCheckout(domain.CheckoutSourceCart, s.cart.Items)
	return s.checkout.Clone(), nil
}

// BuyNow stages a single unit of bookID without touching the cart.
func (s *Shop) BuyNow(bookID int64) (*domain.Checkout, error) {
	book, err := s.catalog.Find(bookID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkout = domain.NewCheckout(domain.CheckoutSourceBuyNow, []domain.CartLine{{Book: book, Quantity: 1}})
	return s.checkout.Clone(), nil
}

func (s *Shop) PendingCheckout() (*domain.Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkout == nil {
		return nil, ErrNoCheckout
	}
	return s.checkout.Clone(), nil
}

// CancelCheckout drops the staged checkout, if any.
func (s *Shop) CancelCheckout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkout = nil
}

// SubmitOrder turns the staged checkout into a pending order at the head of
// the ledger. A cart checkout empties the cart afterwards; a buy-now checkout
// leaves it alone.
func (s *Shop) SubmitOrder(ctx context.Context, customer domain.Customer) (*domain.Order, error) {
	s.mu.Lock()

	staged := s.checkout
	if staged == nil {
		s.mu.Unlock()
		return nil, ErrNoCheckout
	}
	if len(staged.Items) == 0 {
		s.mu.Unlock()
		return nil, ErrEmptyCart
	}
	if missing := customer.MissingFields(); len(missing) > 0 {
		s.mu.Unlock()
		return nil, &ValidationError{Fields: missing}
	}

	id, err := s.nextOrderID()
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	now := s.now()
	order := &domain.Order{
		ID:        id,
		Items:     domain.CloneLines(staged.Items),
		Total:     domain.LinesTotal(staged.Items),
		Customer:  customer,
		Date:      now,
		Status:    domain.OrderStatusPending,
		UpdatedAt: now,
	}

	ledger := make([]*domain.Order, 0, len(s.orders)+1)
	ledger = append(ledger, order)
	ledger = append(ledger, s.orders...)
	if err := s.commitOrders(ctx, ledger); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.orderIDs[id] = struct{}{}
	s.checkout = nil

	var cart *domain.Cart
	if staged.Source == domain.CheckoutSourceCart {
		cleared := &domain.Cart{Items: []domain.CartLine{}, UpdatedAt: now}
		if err := s.repo.SaveCart(ctx, cleared); err != nil {
			s.logger.Error("order placed but cart could not be cleared in storage",
				zap.String("order_id", id),
				zap.Error(err))
		}
		s.cart = cleared
		cart = cleared.Clone()
	}
	placed := order.Clone()
	s.mu.Unlock()

	s.logger.Info("order placed",
		zap.String("order_id", id),
		zap.Int64("total", order.Total),
		zap.String("source", string(staged.Source)))

	s.notify(ctx, domain.Event{
		Type:    domain.EventOrderPlaced,
		Message: fmt.Sprintf("Order %s placed successfully!", id),
		Order:   placed,
		Cart:    cart,
	})
	return order.Clone(), nil
}

// nextOrderID draws ids until one is not already in the ledger. Callers hold s.mu.
func (s *Shop) nextOrderID() (string, error) {
	for range maxIDAttempts {
		id := s.ids.NewOrderID()
		if _, taken := s.orderIDs[id]; !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique order id after %d attempts", maxIDAttempts)
}
