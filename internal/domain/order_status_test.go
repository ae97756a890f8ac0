package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_Rank(t *testing.T) {
	assert.Equal(t, 0, OrderStatusPending.Rank())
	assert.Equal(t, 1, OrderStatusProcessing.Rank())
	assert.Equal(t, 2, OrderStatusShipped.Rank())
	assert.Equal(t, 3, OrderStatusDelivered.Rank())
	assert.Equal(t, -1, OrderStatus("returned").Rank())
	assert.False(t, OrderStatus("").Valid())
}

func TestOrderStatus_Next(t *testing.T) {
	next, ok := OrderStatusPending.Next()
	assert.True(t, ok)
	assert.Equal(t, OrderStatusProcessing, next)

	_, ok = OrderStatusDelivered.Next()
	assert.False(t, ok)

	_, ok = OrderStatus("bogus").Next()
	assert.False(t, ok)
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	flow := StatusFlow()
	for i, from := range flow {
		for j, to := range flow {
			assert.Equal(t, j == i+1, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
	assert.False(t, OrderStatusPending.CanTransitionTo("bogus"))
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.False(t, OrderStatusShipped.IsTerminal())
}

func TestOrderStatus_Text(t *testing.T) {
	assert.Equal(t, "Order received and being processed", OrderStatusPending.Description())
	assert.Equal(t, "Order is being prepared for shipment", OrderStatusProcessing.Description())
	assert.Equal(t, "Order has been shipped and is on the way", OrderStatusShipped.Description())
	assert.Equal(t, "Order has been successfully delivered", OrderStatusDelivered.Description())
	assert.Equal(t, "mystery", OrderStatus("mystery").Description())

	assert.Equal(t, "Order Placed", OrderStatusPending.Label())
	assert.Equal(t, "Delivered", OrderStatusDelivered.Label())
}

func TestStatusFlow_IsACopy(t *testing.T) {
	flow := StatusFlow()
	flow[0] = "changed"
	assert.Equal(t, OrderStatusPending, StatusFlow()[0])
}

func TestEstimatedDelivery(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		status OrderStatus
		want   time.Time
	}{
		{OrderStatusPending, time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)},
		{OrderStatusProcessing, time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)},
		{OrderStatusShipped, time.Date(2024, 3, 3, 10, 0, 0, 0, time.UTC)},
		{OrderStatus("unknown"), time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			est := EstimatedDelivery(tt.status, now)
			assert.False(t, est.Delivered)
			assert.Equal(t, tt.want, est.Date)
		})
	}

	est := EstimatedDelivery(OrderStatusDelivered, now)
	assert.True(t, est.Delivered)
	assert.True(t, est.Date.IsZero())
	assert.Equal(t, "Order has been delivered", est.String())

	assert.Equal(t, "6 March 2024", EstimatedDelivery(OrderStatusPending, now).String())
}
