package domain

import "time"

type EventType string

const (
	EventCartUpdated        EventType = "cart_updated"
	EventOrderPlaced        EventType = "order_placed"
	EventOrderStatusChanged EventType = "order_status_changed"
)

// Event is emitted after a mutation has been persisted. Cart and Order are
// snapshots owned by the receiver.
type Event struct {
	Type       EventType `json:"type"`
	Message    string    `json:"message"`
	Cart       *Cart     `json:"cart,omitempty"`
	Order      *Order    `json:"order,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
