package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/VedantKadlaKK/bookverse/internal/catalog"
	"github.com/VedantKadlaKK/bookverse/internal/domain"
	"github.com/VedantKadlaKK/bookverse/internal/payment"
	"github.com/VedantKadlaKK/bookverse/internal/repository"
	"github.com/VedantKadlaKK/bookverse/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestRouter(t *testing.T, store repository.Store) (http.Handler, *service.Shop) {
	t.Helper()
	return newTestRouterWithLogger(t, store, zap.NewNop())
}

func newTestRouterWithLogger(t *testing.T, store repository.Store, logger *zap.Logger) (http.Handler, *service.Shop) {
	t.Helper()
	if store == nil {
		store = repository.NewMemoryStore()
	}
	repo := repository.NewStateRepository(store, repository.DefaultKeyPrefix)
	shop, err := service.NewShop(context.Background(), catalog.Default(), repo)
	require.NoError(t, err)

	cfg := RouterConfig{
		RequestTimeout: 5 * time.Second,
		UPI:            payment.Config{Payee: payment.DefaultPayee},
	}
	return NewRouter(shop, cfg, logger), shop
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	rec := do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestBooks(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	rec := do(t, h, http.MethodGet, "/api/v1/books", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Book](t, rec), 8)

	rec = do(t, h, http.MethodGet, "/api/v1/books?genre=sci-fi", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	books := decode[[]domain.Book](t, rec)
	require.Len(t, books, 2)
	assert.Equal(t, "Dune", books[0].Title)

	rec = do(t, h, http.MethodGet, "/api/v1/books?q=christie", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Book](t, rec), 1)

	rec = do(t, h, http.MethodGet, "/api/v1/books?genre=poetry", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_genre", decode[ErrorResponse](t, rec).Code)
}

func TestBookByID(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	rec := do(t, h, http.MethodGet, "/api/v1/books/4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(399), decode[domain.Book](t, rec).Price)

	rec = do(t, h, http.MethodGet, "/api/v1/books/404", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "book_not_found", decode[ErrorResponse](t, rec).Code)

	rec = do(t, h, http.MethodGet, "/api/v1/books/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSuggestionsAndGenres(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	rec := do(t, h, http.MethodGet, "/api/v1/books/suggestions?q=d", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]domain.Book](t, rec))

	rec = do(t, h, http.MethodGet, "/api/v1/books/suggestions?q=du", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Book](t, rec), 1)

	rec = do(t, h, http.MethodGet, "/api/v1/genres", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Genre](t, rec), 6)
}

func TestCartEndpoints(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	rec := do(t, h, http.MethodPost, "/api/v1/cart/items", BookIDRequestDTO{BookID: 4})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(t, h, http.MethodPost, "/api/v1/cart/items", BookIDRequestDTO{BookID: 4})
	require.Equal(t, http.StatusCreated, rec.Code)
	cart := decode[CartResponseDTO](t, rec)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, int64(798), cart.Items[0].Subtotal)
	assert.Equal(t, int64(798), cart.Total)
	assert.Equal(t, 2, cart.Count)

	rec = do(t, h, http.MethodPatch, "/api/v1/cart/items/4", ChangeQuantityRequestDTO{Delta: -1})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(399), decode[CartResponseDTO](t, rec).Total)

	rec = do(t, h, http.MethodDelete, "/api/v1/cart/items/4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[CartResponseDTO](t, rec).Items)

	rec = do(t, h, http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, decode[CartResponseDTO](t, rec).Total)
}

func TestChangeQuantity_OverLimit(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	rec := do(t, h, http.MethodPost, "/api/v1/cart/items", BookIDRequestDTO{BookID: 4})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodPatch, "/api/v1/cart/items/4", ChangeQuantityRequestDTO{Delta: math.MaxInt})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "quantity_limit", decode[ErrorResponse](t, rec).Code)

	rec = do(t, h, http.MethodGet, "/api/v1/cart", nil)
	cart := decode[CartResponseDTO](t, rec)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCartErrors(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
		wantCode   string
	}{
		{"unknown book", http.MethodPost, "/api/v1/cart/items", BookIDRequestDTO{BookID: 99}, http.StatusNotFound, "book_not_found"},
		{"non-positive book id", http.MethodPost, "/api/v1/cart/items", BookIDRequestDTO{BookID: 0}, http.StatusBadRequest, "invalid_book_id"},
		{"bad json", http.MethodPost, "/api/v1/cart/items", `{"book_id":`, http.StatusBadRequest, "invalid_request"},
		{"unknown field", http.MethodPost, "/api/v1/cart/items", `{"bookId":1}`, http.StatusBadRequest, "invalid_request"},
		{"remove absent line", http.MethodDelete, "/api/v1/cart/items/1", nil, http.StatusNotFound, "item_not_in_cart"},
		{"change absent line", http.MethodPatch, "/api/v1/cart/items/1", ChangeQuantityRequestDTO{Delta: 1}, http.StatusNotFound, "item_not_in_cart"},
		{"zero delta", http.MethodPatch, "/api/v1/cart/items/1", ChangeQuantityRequestDTO{Delta: 0}, http.StatusBadRequest, "invalid_delta"},
		{"bad path id", http.MethodDelete, "/api/v1/cart/items/-3", nil, http.StatusBadRequest, "invalid_book_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decode[ErrorResponse](t, rec).Code)
		})
	}
}

func TestCheckoutAndOrderFlow(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	rec := do(t, h, http.MethodPost, "/api/v1/checkout", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "empty_cart", decode[ErrorResponse](t, rec).Code)

	do(t, h, http.MethodPost, "/api/v1/cart/items", BookIDRequestDTO{BookID: 4})
	do(t, h, http.MethodPost, "/api/v1/cart/items", BookIDRequestDTO{BookID: 4})

	rec = do(t, h, http.MethodPost, "/api/v1/checkout", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	co := decode[CheckoutResponseDTO](t, rec)
	assert.Equal(t, domain.CheckoutSourceCart, co.Source)
	assert.Equal(t, int64(798), co.Total)

	rec = do(t, h, http.MethodGet, "/api/v1/checkout", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/orders", PlaceOrderRequestDTO{Name: "Asha", Email: " ", Phone: "1", Address: "x"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	verr := decode[ErrorResponse](t, rec)
	assert.Equal(t, "validation_failed", verr.Code)
	assert.Equal(t, "email", verr.Details)

	rec = do(t, h, http.MethodPost, "/api/v1/orders", PlaceOrderRequestDTO{Name: "Asha", Email: "asha@example.com", Phone: "1", Address: "x"})
	require.Equal(t, http.StatusCreated, rec.Code)
	order := decode[OrderResponseDTO](t, rec)
	assert.Equal(t, int64(798), order.Total)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, "Order Placed", order.StatusLabel)
	require.NotNil(t, order.Payment)
	assert.Contains(t, order.Payment.Link, "am=798")

	rec = do(t, h, http.MethodGet, "/api/v1/cart", nil)
	assert.Empty(t, decode[CartResponseDTO](t, rec).Items)

	rec = do(t, h, http.MethodGet, "/api/v1/checkout", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "no_checkout", decode[ErrorResponse](t, rec).Code)

	rec = do(t, h, http.MethodGet, "/api/v1/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]OrderResponseDTO](t, rec), 1)

	rec = do(t, h, http.MethodGet, "/api/v1/orders/"+order.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/orders/"+order.ID+"/tracking", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tr := decode[TrackingResponseDTO](t, rec)
	assert.Len(t, tr.Steps, 4)
	assert.NotEmpty(t, tr.EstimatedDeliveryText)

	rec = do(t, h, http.MethodPost, "/api/v1/orders/"+order.ID+"/reorder", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decode[CartResponseDTO](t, rec)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestBuyNowEndpoint(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	do(t, h, http.MethodPost, "/api/v1/cart/items", BookIDRequestDTO{BookID: 4})

	rec := do(t, h, http.MethodPost, "/api/v1/checkout/buy-now", BookIDRequestDTO{BookID: 1})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(299), decode[CheckoutResponseDTO](t, rec).Total)

	rec = do(t, h, http.MethodPost, "/api/v1/orders", PlaceOrderRequestDTO{Name: "A", Email: "a@b.c", Phone: "1", Address: "x"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(299), decode[OrderResponseDTO](t, rec).Total)

	rec = do(t, h, http.MethodGet, "/api/v1/cart", nil)
	assert.Equal(t, int64(399), decode[CartResponseDTO](t, rec).Total)

	rec = do(t, h, http.MethodPost, "/api/v1/checkout/buy-now", BookIDRequestDTO{BookID: 77})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/checkout/buy-now", BookIDRequestDTO{BookID: 1})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(t, h, http.MethodDelete, "/api/v1/checkout", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, h, http.MethodPost, "/api/v1/orders", PlaceOrderRequestDTO{Name: "A", Email: "a@b.c", Phone: "1", Address: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderStatusEndpoint(t *testing.T) {
	h, shop := newTestRouter(t, nil)

	_, err := shop.BuyNow(2)
	require.NoError(t, err)
	order, err := shop.SubmitOrder(context.Background(), domain.Customer{Name: "A", Email: "a@b.c", Phone: "1", Address: "x"})
	require.NoError(t, err)
	path := "/api/v1/orders/" + order.ID + "/status"

	rec := do(t, h, http.MethodPut, path, UpdateStatusRequestDTO{Status: domain.OrderStatusShipped})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "illegal_transition", decode[ErrorResponse](t, rec).Code)

	rec = do(t, h, http.MethodPut, path, UpdateStatusRequestDTO{Status: "lost"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_status", decode[ErrorResponse](t, rec).Code)

	rec = do(t, h, http.MethodPut, path, UpdateStatusRequestDTO{Status: domain.OrderStatusProcessing})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.OrderStatusProcessing, decode[OrderResponseDTO](t, rec).Status)

	rec = do(t, h, http.MethodPut, "/api/v1/orders/BVNOPE/status", UpdateStatusRequestDTO{Status: domain.OrderStatusProcessing})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/orders/BVNOPE", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, h, http.MethodGet, "/api/v1/orders/BVNOPE/tracking", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, h, http.MethodPost, "/api/v1/orders/BVNOPE/reorder", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type brokenStore struct {
	*repository.MemoryStore
}

func (brokenStore) Put(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestStorageFailureIsInternalError(t *testing.T) {
	h, _ := newTestRouter(t, brokenStore{repository.NewMemoryStore()})

	rec := do(t, h, http.MethodPost, "/api/v1/cart/items", BookIDRequestDTO{BookID: 1})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", decode[ErrorResponse](t, rec).Code)

	rec = do(t, h, http.MethodGet, "/api/v1/cart", nil)
	assert.Empty(t, decode[CartResponseDTO](t, rec).Items)
}

func TestStorageFailureLogsThroughRouterLogger(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h, _ := newTestRouterWithLogger(t, brokenStore{repository.NewMemoryStore()}, zap.New(core))

	rec := do(t, h, http.MethodPost, "/api/v1/cart/items", BookIDRequestDTO{BookID: 1})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	entries := logs.FilterMessage("unhandled shop error").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["error"], "disk full")
}
