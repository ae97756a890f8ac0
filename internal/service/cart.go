package service

import (
	"context"
	"fmt"

	"github.com/VedantKadlaKK/bookverse/internal/domain"
)

// AddItem puts one unit of bookID in the cart, merging with an existing line.
func (s *Shop) AddItem(ctx context.Context, bookID int64) (*domain.Cart, error) {
	book, err := s.catalog.Find(bookID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if !s.cart.CanAdd(bookID, 1) {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: at most %d", ErrQuantityLimit, domain.MaxLineQuantity)
	}
	next := s.cart.Clone()
	next.Merge(domain.CartLine{Book: book, Quantity: 1})
	cart, err := s.commitCart(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.notify(ctx, domain.Event{
		Type:    domain.EventCartUpdated,
		Message: fmt.Sprintf("%s added to cart!", book.Title),
		Cart:    cart,
	})
	return cart, nil
}

func (s *Shop) RemoveItem(ctx context.Context, bookID int64) (*domain.Cart, error) {
	s.mu.Lock()
	i := s.cart.Find(bookID)
	if i < 0 {
		s.mu.Unlock()
		return nil, ErrItemNotInCart
	}
	title := s.cart.Items[i].Title
	next := s.cart.Clone()
	next.Remove(bookID)
	cart, err := s.commitCart(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.notify(ctx, domain.Event{
		Type:    domain.EventCartUpdated,
		Message: fmt.Sprintf("%s removed from cart!", title),
		Cart:    cart,
	})
	return cart, nil
}

// ChangeQuantity adds delta to the line for bookID. A line that would drop to
// zero or below is removed; one that would pass MaxLineQuantity is rejected.
func (s *Shop) ChangeQuantity(ctx context.Context, bookID int64, delta int) (*domain.Cart, error) {
	s.mu.Lock()
	i := s.cart.Find(bookID)
	if i < 0 {
		s.mu.Unlock()
		return nil, ErrItemNotInCart
	}
	if !s.cart.CanAdd(bookID, delta) {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: at most %d", ErrQuantityLimit, domain.MaxLineQuantity)
	}
	line := s.cart.Items[i]
	next := s.cart.Clone()

	quantity := line.Quantity + delta
	message := fmt.Sprintf("%s quantity updated to %d", line.Title, quantity)
	if quantity <= 0 {
		next.Remove(bookID)
		message = fmt.Sprintf("%s removed from cart!", line.Title)
	} else {
		next.Items[i].Quantity = quantity
	}

	cart, err := s.commitCart(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.notify(ctx, domain.Event{
		Type:    domain.EventCartUpdated,
		Message: message,
		Cart:    cart,
	})
	return cart, nil
}

func (s *Shop) Clear(ctx context.Context) (*domain.Cart, error) {
	s.mu.Lock()
	cart, err := s.commitCart(ctx, &domain.Cart{Items: []domain.CartLine{}})
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.notify(ctx, domain.Event{
		Type:    domain.EventCartUpdated,
		Message: "Cart cleared",
		Cart:    cart,
	})
	return cart, nil
}
