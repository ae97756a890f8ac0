package http

import (
	"context"
	"net/http"
	"time"

	"github.com/VedantKadlaKK/bookverse/internal/domain"
	"github.com/VedantKadlaKK/bookverse/internal/payment"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderService interface {
	SubmitOrder(ctx context.Context, customer domain.Customer) (*domain.Order, error)
	Orders() []*domain.Order
	Order(id string) (*domain.Order, error)
	Tracking(id string) (domain.Tracking, error)
	AdvanceStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
	Reorder(ctx context.Context, orderID string) (*domain.Cart, error)
}

type OrdersHandler struct {
	responder
	shop    OrderService
	upi     payment.Config
	timeout time.Duration
}

func NewOrdersHandler(shop OrderService, upi payment.Config, timeout time.Duration, logger *zap.Logger) *OrdersHandler {
	return &OrdersHandler{responder: newResponder(logger), shop: shop, upi: upi, timeout: timeout}
}

// POST /api/v1/orders
func (h *OrdersHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req PlaceOrderRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.shop.SubmitOrder(ctx, req.customer())
	if err != nil {
		h.handleShopError(w, err)
		return
	}

	dto := orderToDTO(order)
	ref, err := payment.UPILink(order, h.upi)
	if err != nil {
		h.logger.Warn("no payment link for order", zap.String("order_id", order.ID), zap.Error(err))
	} else {
		dto.Payment = &ref
	}
	h.respondJSON(w, http.StatusCreated, dto)
}

// GET /api/v1/orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, _ *http.Request) {
	orders := h.shop.Orders()
	dtos := make([]OrderResponseDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, orderToDTO(o))
	}
	h.respondJSON(w, http.StatusOK, dtos)
}

// GET /api/v1/orders/{order_id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.shop.Order(chi.URLParam(r, "order_id"))
	if err != nil {
		h.handleShopError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, orderToDTO(order))
}

// GET /api/v1/orders/{order_id}/tracking
func (h *OrdersHandler) Tracking(w http.ResponseWriter, r *http.Request) {
	tr, err := h.shop.Tracking(chi.URLParam(r, "order_id"))
	if err != nil {
		h.handleShopError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, TrackingResponseDTO{
		Tracking:              tr,
		EstimatedDeliveryText: tr.Estimate.String(),
	})
}

// PUT /api/v1/orders/{order_id}/status
func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req UpdateStatusRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.shop.AdvanceStatus(ctx, chi.URLParam(r, "order_id"), req.Status)
	if err != nil {
		h.handleShopError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, orderToDTO(order))
}

// POST /api/v1/orders/{order_id}/reorder
func (h *OrdersHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cart, err := h.shop.Reorder(ctx, chi.URLParam(r, "order_id"))
	if err != nil {
		h.handleShopError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, cartToDTO(cart))
}
