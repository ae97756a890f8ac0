package http

import (
	"net/http"

	"github.com/VedantKadlaKK/bookverse/internal/domain"
	"go.uber.org/zap"
)

type CheckoutService interface {
	BeginCheckout() (*domain.Checkout, error)
	BuyNow(bookID int64) (*domain.Checkout, error)
	PendingCheckout() (*domain.Checkout, error)
	CancelCheckout()
}

type CheckoutHandler struct {
	responder
	shop CheckoutService
}

func NewCheckoutHandler(shop CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{responder: newResponder(logger), shop: shop}
}

// POST /api/v1/checkout
func (h *CheckoutHandler) BeginCheckout(w http.ResponseWriter, _ *http.Request) {
	co, err := h.shop.BeginCheckout()
	if err != nil {
		h.handleShopError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, checkoutToDTO(co))
}

// POST /api/v1/checkout/buy-now
func (h *CheckoutHandler) BuyNow(w http.ResponseWriter, r *http.Request) {
	var req BookIDRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.BookID <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid_book_id", "book_id must be positive")
		return
	}

	co, err := h.shop.BuyNow(req.BookID)
	if err != nil {
		h.handleShopError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, checkoutToDTO(co))
}

// GET /api/v1/checkout
func (h *CheckoutHandler) GetCheckout(w http.ResponseWriter, _ *http.Request) {
	co, err := h.shop.PendingCheckout()
	if err != nil {
		h.handleShopError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, checkoutToDTO(co))
}

// DELETE /api/v1/checkout
func (h *CheckoutHandler) CancelCheckout(w http.ResponseWriter, _ *http.Request) {
	h.shop.CancelCheckout()
	w.WriteHeader(http.StatusNoContent)
}
