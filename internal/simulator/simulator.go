package simulator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/VedantKadlaKK/bookverse/internal/domain"
	"github.com/VedantKadlaKK/bookverse/internal/service"
	"go.uber.org/zap"
)

// Step moves an order to Status once After has elapsed since placement.
type Step struct {
	Status domain.OrderStatus
	After  time.Duration
}

func DefaultSteps() []Step {
	return []Step{
		{Status: domain.OrderStatusProcessing, After: 5 * time.Second},
		{Status: domain.OrderStatusShipped, After: 15 * time.Second},
	}
}

// StatusAdvancer is the part of the shop the simulator drives.
type StatusAdvancer interface {
	AdvanceStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
}

// Driver fakes fulfillment progress for freshly placed orders. It is a
// service.Notifier and reacts only to order_placed events.
type Driver struct {
	advancer StatusAdvancer
	clock    Clock
	steps    []Step
	logger   *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	timers   map[*scheduled]struct{}
	stopped  bool
	inflight sync.WaitGroup
}

type scheduled struct {
	orderID string
	status  domain.OrderStatus
	timer   Timer
}

type Option func(*Driver)

func WithClock(c Clock) Option {
	return func(d *Driver) { d.clock = c }
}

func WithSteps(steps ...Step) Option {
	return func(d *Driver) { d.steps = steps }
}

func New(advancer StatusAdvancer, logger *zap.Logger, opts ...Option) *Driver {
	ctx, cancel := context.WithCancel(context.Background())
	d := &Driver{
		advancer: advancer,
		clock:    RealClock(),
		steps:    DefaultSteps(),
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		timers:   make(map[*scheduled]struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var _ service.Notifier = (*Driver)(nil)

func (d *Driver) Notify(_ context.Context, event domain.Event) {
	if event.Type != domain.EventOrderPlaced || event.Order == nil {
		return
	}
	d.Schedule(event.Order.ID)
}

// Schedule arms one timer per step for orderID.
func (d *Driver) Schedule(orderID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	for _, step := range d.steps {
		s := &scheduled{orderID: orderID, status: step.Status}
		d.timers[s] = struct{}{}
		s.timer = d.clock.AfterFunc(step.After, func() { d.fire(s) })
	}
	d.logger.Debug("fulfillment simulation scheduled",
		zap.String("order_id", orderID),
		zap.Int("steps", len(d.steps)))
}

func (d *Driver) fire(s *scheduled) {
	d.mu.Lock()
	if _, ok := d.timers[s]; !ok || d.stopped {
		d.mu.Unlock()
		return
	}
	delete(d.timers, s)
	d.inflight.Add(1)
	d.mu.Unlock()
	defer d.inflight.Done()

	_, err := d.advancer.AdvanceStatus(d.ctx, s.orderID, s.status)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
	case errors.Is(err, service.ErrIllegalTransition), errors.Is(err, service.ErrOrderNotFound):
		d.logger.Info("skipping simulated status change",
			zap.String("order_id", s.orderID),
			zap.String("status", s.status.String()),
			zap.Error(err))
	default:
		d.logger.Error("simulated status change failed",
			zap.String("order_id", s.orderID),
			zap.String("status", s.status.String()),
			zap.Error(err))
	}
}

// Pending returns the number of armed timers.
func (d *Driver) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.timers)
}

// Stop disarms every timer and waits for status changes already under way.
// Scheduling after Stop is a no-op.
func (d *Driver) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	d.cancel()
	for s := range d.timers {
		s.timer.Stop()
	}
	d.timers = make(map[*scheduled]struct{})
	d.mu.Unlock()

	d.inflight.Wait()
}
