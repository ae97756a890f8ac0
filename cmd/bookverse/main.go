package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VedantKadlaKK/bookverse/internal/config"
	"github.com/VedantKadlaKK/bookverse/internal/consumer"
	"github.com/VedantKadlaKK/bookverse/internal/domain"
	h "github.com/VedantKadlaKK/bookverse/internal/http"
	"github.com/VedantKadlaKK/bookverse/internal/payment"
	"github.com/VedantKadlaKK/bookverse/internal/publisher"
	"github.com/VedantKadlaKK/bookverse/internal/repository"
	"github.com/VedantKadlaKK/bookverse/internal/service"
	"github.com/VedantKadlaKK/bookverse/internal/simulator"
	"github.com/VedantKadlaKK/bookverse/pkg/logger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logg, err := logger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()
	zap.ReplaceGlobals(logg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat, err := loadCatalog(ctx, cfg.Catalog, logg)
	if err != nil {
		logg.Fatal("failed to load catalog", zap.Error(err))
	}

	store, err := openStore(ctx, cfg, logg)
	if err != nil {
		logg.Fatal("failed to open store", zap.Error(err))
	}

	state := repository.NewStateRepository(store, cfg.Store.KeyPrefix)
	shop, err := service.NewShop(ctx, cat, state,
		service.WithLogger(logg),
		service.WithNotifiers(service.NewLogNotifier(logg)),
	)
	if err != nil {
		_ = store.Close()
		logg.Fatal("failed to load shop state", zap.Error(err))
	}

	var driver *simulator.Driver
	if cfg.Simulator.Enabled {
		driver = simulator.New(shop, logg, simulator.WithSteps(
			simulator.Step{Status: domain.OrderStatusProcessing, After: cfg.Simulator.ProcessingAfter},
			simulator.Step{Status: domain.OrderStatusShipped, After: cfg.Simulator.ShippedAfter},
		))
		shop.Subscribe(driver)
		logg.Info("fulfillment simulator enabled",
			zap.Duration("processing_after", cfg.Simulator.ProcessingAfter),
			zap.Duration("shipped_after", cfg.Simulator.ShippedAfter))
	}

	var (
		pub          *publisher.EventPublisher
		fc           *consumer.FulfillmentConsumer
		consumerDone = make(chan struct{})
	)
	if len(cfg.Kafka.Brokers) > 0 {
		pub = publisher.NewEventPublisher(
			publisher.NewKafkaWriter(cfg.Kafka.OrderEventsTopic, cfg.Kafka.Brokers...), logg)
		shop.Subscribe(pub)

		fc = consumer.NewFulfillmentConsumer(shop,
			consumer.NewKafkaReader(cfg.Kafka.FulfillmentTopic, cfg.Kafka.ConsumerGroup, cfg.Kafka.Brokers...), logg)
		go func() {
			defer close(consumerDone)
			fc.Run(ctx)
		}()
		logg.Info("kafka enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("events_topic", cfg.Kafka.OrderEventsTopic),
			zap.String("fulfillment_topic", cfg.Kafka.FulfillmentTopic))
	} else {
		close(consumerDone)
	}

	router := h.NewRouter(shop, h.RouterConfig{
		RequestTimeout: cfg.Server.RequestTimeout,
		UPI:            payment.Config{Payee: cfg.Payment.UPIPayee, PayeeName: cfg.Payment.PayeeName},
		RateLimit:      cfg.Server.RateLimit,
		RateBurst:      cfg.Server.RateBurst,
	}, logg)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      otelhttp.NewHandler(router, "bookverse"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logg.Info("BookVerse starting", zap.String("addr", srv.Addr), zap.String("store", cfg.Store.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	logg.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	exitCode := 0
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("server forced to shutdown", zap.Error(err))
		exitCode = 1
	}

	// timers and the consumer stop before the publisher drains; storage closes last
	if driver != nil {
		driver.Stop()
	}
	if fc != nil {
		select {
		case <-consumerDone:
		case <-shutdownCtx.Done():
			logg.Warn("fulfillment consumer did not stop in time")
		}
		fc.Close()
	}
	if pub != nil {
		if err := pub.Close(); err != nil {
			logg.Error("failed to close kafka writer", zap.Error(err))
		}
	}
	if err := store.Close(); err != nil {
		logg.Error("failed to close store", zap.Error(err))
	}

	logg.Info("server exited")
	if exitCode != 0 {
		_ = logg.Sync()
		os.Exit(exitCode)
	}
}
