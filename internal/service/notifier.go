package service

import (
	"context"

	"github.com/VedantKadlaKK/bookverse/internal/domain"
	"go.uber.org/zap"
)

// Notifier observes committed mutations. Implementations must not block for
// long; they run on the caller's goroutine after the shop lock is released.
type Notifier interface {
	Notify(ctx context.Context, event domain.Event)
}

type NotifierFunc func(ctx context.Context, event domain.Event)

func (f NotifierFunc) Notify(ctx context.Context, event domain.Event) {
	f(ctx, event)
}

// LogNotifier writes every event to the log.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, event domain.Event) {
	fields := []zap.Field{zap.String("event", string(event.Type))}
	if event.Order != nil {
		fields = append(fields,
			zap.String("order_id", event.Order.ID),
			zap.String("status", event.Order.Status.String()))
	}
	if event.Cart != nil {
		fields = append(fields, zap.Int("cart_items", event.Cart.Count()))
	}
	n.logger.Info(event.Message, fields...)
}
