package http

import (
	"net/http"
	"time"

	"github.com/VedantKadlaKK/bookverse/internal/catalog"
	"github.com/VedantKadlaKK/bookverse/internal/payment"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Shop is everything the HTTP layer calls on the core.
type Shop interface {
	CartService
	CheckoutService
	OrderService
	Catalog() *catalog.Catalog
}

type RouterConfig struct {
	RequestTimeout time.Duration
	UPI            payment.Config
	// RateLimit is requests per second per client; zero disables limiting.
	RateLimit float64
	RateBurst int
}

func NewRouter(shop Shop, cfg RouterConfig, logger *zap.Logger) http.Handler {
	cartHandler := NewCartHandler(shop, cfg.RequestTimeout, logger)
	checkoutHandler := NewCheckoutHandler(shop, logger)
	ordersHandler := NewOrdersHandler(shop, cfg.UPI, cfg.RequestTimeout, logger)
	catalogHandler := NewCatalogHandler(shop.Catalog(), logger)
	rs := newResponder(logger)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	if cfg.RateLimit > 0 {
		r.Use(NewRateLimiter(cfg.RateLimit, cfg.RateBurst, logger).Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		rs.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/genres", catalogHandler.Genres)
		r.Route("/books", func(r chi.Router) {
			r.Get("/", catalogHandler.ListBooks)
			r.Get("/suggestions", catalogHandler.Suggestions)
			r.Get("/{book_id}", catalogHandler.GetBook)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Patch("/items/{book_id}", cartHandler.ChangeQuantity)
			r.Delete("/items/{book_id}", cartHandler.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", checkoutHandler.GetCheckout)
			r.Post("/", checkoutHandler.BeginCheckout)
			r.Delete("/", checkoutHandler.CancelCheckout)
			r.Post("/buy-now", checkoutHandler.BuyNow)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordersHandler.ListOrders)
			r.Post("/", ordersHandler.PlaceOrder)
			r.Get("/{order_id}", ordersHandler.GetOrder)
			r.Get("/{order_id}/tracking", ordersHandler.Tracking)
			r.Put("/{order_id}/status", ordersHandler.UpdateStatus)
			r.Post("/{order_id}/reorder", ordersHandler.Reorder)
		})
	})

	return r
}
