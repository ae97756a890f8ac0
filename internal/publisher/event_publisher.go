package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/VedantKadlaKK/bookverse/internal/domain"
	"github.com/VedantKadlaKK/bookverse/internal/service"
	"github.com/VedantKadlaKK/bookverse/pkg/circuitbreaker"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const (
	DefaultOrderEventsTopic = "bookverse-order-events"
	defaultPublishTimeout   = 5 * time.Second
	defaultQueueSize        = 256
)

// MessageWriter is the subset of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func NewKafkaWriter(topic string, brokers ...string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

// OrderEvent is the JSON payload written for every order event.
type OrderEvent struct {
	EventType  domain.EventType   `json:"event_type"`
	OrderID    string             `json:"order_id"`
	Status     domain.OrderStatus `json:"status"`
	Total      int64              `json:"total"`
	Items      []domain.CartLine  `json:"items"`
	Customer   domain.Customer    `json:"customer"`
	PlacedAt   time.Time          `json:"placed_at"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// EventPublisher forwards order events to Kafka. Notify only queues the
// event; a single goroutine writes them in order. Broker failures are logged
// and never reach the shop.
type EventPublisher struct {
	writer  MessageWriter
	breaker *gobreaker.CircuitBreaker[struct{}]
	timeout time.Duration
	logger  *zap.Logger

	mu     sync.Mutex
	closed bool
	queue  chan domain.Event
	done   chan struct{}
}

func NewEventPublisher(writer MessageWriter, logger *zap.Logger) *EventPublisher {
	return newEventPublisher(writer, logger, defaultQueueSize)
}

func newEventPublisher(writer MessageWriter, logger *zap.Logger, queueSize int) *EventPublisher {
	p := &EventPublisher{
		writer:  writer,
		breaker: circuitbreaker.New[struct{}](circuitbreaker.DefaultSettings("kafka-order-events"), logger),
		timeout: defaultPublishTimeout,
		logger:  logger,
		queue:   make(chan domain.Event, queueSize),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

var _ service.Notifier = (*EventPublisher)(nil)

// Notify queues order events and returns at once. Events are dropped when the
// queue is full or the publisher is closed.
func (p *EventPublisher) Notify(_ context.Context, event domain.Event) {
	if event.Order == nil {
		return
	}
	if event.Type != domain.EventOrderPlaced && event.Type != domain.EventOrderStatusChanged {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		p.logger.Warn("publisher closed, dropping order event",
			zap.String("event", string(event.Type)),
			zap.String("order_id", event.Order.ID))
		return
	}
	select {
	case p.queue <- event:
	default:
		p.logger.Error("order event queue full, dropping event",
			zap.String("event", string(event.Type)),
			zap.String("order_id", event.Order.ID))
	}
}

func (p *EventPublisher) run() {
	defer close(p.done)
	for event := range p.queue {
		if err := p.Publish(context.Background(), event); err != nil {
			p.logger.Error("failed to publish order event",
				zap.String("event", string(event.Type)),
				zap.String("order_id", event.Order.ID),
				zap.Error(err))
		}
	}
}

// Publish writes one order event keyed by order id.
func (p *EventPublisher) Publish(ctx context.Context, event domain.Event) error {
	payload := OrderEvent{
		EventType:  event.Type,
		OrderID:    event.Order.ID,
		Status:     event.Order.Status,
		Total:      event.Order.Total,
		Items:      event.Order.Items,
		Customer:   event.Order.Customer,
		PlacedAt:   event.Order.Date,
		OccurredAt: event.OccurredAt,
	}
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Order.ID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	// detach from request cancellation so a placed order is still announced
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	_, err = p.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, p.writer.WriteMessages(writeCtx, msg)
	})
	if err != nil {
		return fmt.Errorf("failed to write order event: %w", err)
	}
	return nil
}

// Close stops accepting events, waits for the queued ones to be written and
// closes the writer.
func (p *EventPublisher) Close() error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	<-p.done
	return p.writer.Close()
}
