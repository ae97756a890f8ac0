package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/VedantKadlaKK/bookverse/internal/domain"
	"github.com/VedantKadlaKK/bookverse/internal/service"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	DefaultFulfillmentTopic = "bookverse-fulfillment"
	DefaultGroupID          = "bookverse-shop"
	readRetryDelay          = time.Second
)

// FulfillmentUpdate is a status change reported by the warehouse.
type FulfillmentUpdate struct {
	OrderID string             `json:"order_id"`
	Status  domain.OrderStatus `json:"status"`
}

// MessageReader is the subset of *kafka.Reader the consumer uses.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type StatusAdvancer interface {
	AdvanceStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
}

func NewKafkaReader(topic, groupID string, brokers ...string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MaxBytes: 10e6, // 10MB
	})
}

type FulfillmentConsumer struct {
	advancer StatusAdvancer
	reader   MessageReader
	logger   *zap.Logger
}

func NewFulfillmentConsumer(advancer StatusAdvancer, reader MessageReader, logger *zap.Logger) *FulfillmentConsumer {
	return &FulfillmentConsumer{advancer: advancer, reader: reader, logger: logger}
}

// Run consumes until ctx is canceled.
func (c *FulfillmentConsumer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		if err := c.processMessage(ctx); err != nil {
			c.logger.Warn("error reading fulfillment message", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(readRetryDelay):
			}
		}
	}
}

func (c *FulfillmentConsumer) Close() {
	if err := c.reader.Close(); err != nil {
		c.logger.Error("error closing kafka reader", zap.Error(err))
	}
}

// processMessage returns an error only when reading failed. Bad payloads and
// rejected transitions are logged and skipped.
func (c *FulfillmentConsumer) processMessage(ctx context.Context) error {
	m, err := c.reader.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return nil
		}
		return err
	}
	c.Handle(ctx, m.Value)
	return nil
}

// Handle applies one fulfillment payload to the shop.
func (c *FulfillmentConsumer) Handle(ctx context.Context, value []byte) {
	var update FulfillmentUpdate
	if err := json.Unmarshal(value, &update); err != nil {
		c.logger.Warn("error parsing fulfillment message", zap.Error(err))
		return
	}
	update.OrderID = strings.TrimSpace(update.OrderID)
	if update.OrderID == "" {
		c.logger.Warn("fulfillment message without order_id")
		return
	}

	order, err := c.advancer.AdvanceStatus(ctx, update.OrderID, update.Status)
	switch {
	case err == nil:
		c.logger.Info("fulfillment update applied",
			zap.String("order_id", order.ID),
			zap.String("status", order.Status.String()))
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrIllegalTransition):
		c.logger.Warn("fulfillment update rejected",
			zap.String("order_id", update.OrderID),
			zap.String("status", update.Status.String()),
			zap.Error(err))
	default:
		c.logger.Error("failed to apply fulfillment update",
			zap.String("order_id", update.OrderID),
			zap.Error(err))
	}
}
