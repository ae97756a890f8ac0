package http

import (
	"context"
	"net/http"
	"time"

	"github.com/VedantKadlaKK/bookverse/internal/domain"
	"go.uber.org/zap"
)

type CartService interface {
	Cart() *domain.Cart
	AddItem(ctx context.Context, bookID int64) (*domain.Cart, error)
	RemoveItem(ctx context.Context, bookID int64) (*domain.Cart, error)
	ChangeQuantity(ctx context.Context, bookID int64, delta int) (*domain.Cart, error)
	Clear(ctx context.Context) (*domain.Cart, error)
}

type CartHandler struct {
	responder
	shop    CartService
	timeout time.Duration
}

func NewCartHandler(shop CartService, timeout time.Duration, logger *zap.Logger) *CartHandler {
	return &CartHandler{responder: newResponder(logger), shop: shop, timeout: timeout}
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, cartToDTO(h.shop.Cart()))
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req BookIDRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.BookID <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid_book_id", "book_id must be positive")
		return
	}

	cart, err := h.shop.AddItem(ctx, req.BookID)
	if err != nil {
		h.handleShopError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, cartToDTO(cart))
}

// PATCH /api/v1/cart/items/{book_id}
func (h *CartHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := bookIDParam(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "invalid_book_id", "book_id must be a positive integer")
		return
	}
	var req ChangeQuantityRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Delta == 0 {
		h.respondError(w, http.StatusBadRequest, "invalid_delta", "delta must not be zero")
		return
	}

	cart, err := h.shop.ChangeQuantity(ctx, id, req.Delta)
	if err != nil {
		h.handleShopError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, cartToDTO(cart))
}

// DELETE /api/v1/cart/items/{book_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := bookIDParam(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "invalid_book_id", "book_id must be a positive integer")
		return
	}

	cart, err := h.shop.RemoveItem(ctx, id)
	if err != nil {
		h.handleShopError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, cartToDTO(cart))
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cart, err := h.shop.Clear(ctx)
	if err != nil {
		h.handleShopError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, cartToDTO(cart))
}
