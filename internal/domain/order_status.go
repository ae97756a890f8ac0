package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
)

var statusFlow = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
}

var statusDescriptions = map[OrderStatus]string{
	OrderStatusPending:    "Order received and being processed",
	OrderStatusProcessing: "Order is being prepared for shipment",
	OrderStatusShipped:    "Order has been shipped and is on the way",
	OrderStatusDelivered:  "Order has been successfully delivered",
}

var statusLabels = map[OrderStatus]string{
	OrderStatusPending:    "Order Placed",
	OrderStatusProcessing: "Processing",
	OrderStatusShipped:    "Shipped",
	OrderStatusDelivered:  "Delivered",
}

// deliveryOffsets are days from now until the estimated delivery.
var deliveryOffsets = map[OrderStatus]int{
	OrderStatusPending:    5,
	OrderStatusProcessing: 3,
	OrderStatusShipped:    2,
}

const defaultDeliveryOffset = 5

// StatusFlow returns the statuses in fulfillment order.
func StatusFlow() []OrderStatus {
	out := make([]OrderStatus, len(statusFlow))
	copy(out, statusFlow)
	return out
}

// Rank is the position of s in the fulfillment flow, or -1 for unknown values.
func (s OrderStatus) Rank() int {
	for i, known := range statusFlow {
		if s == known {
			return i
		}
	}
	return -1
}

func (s OrderStatus) Valid() bool {
	return s.Rank() >= 0
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered
}

// Next returns the status that follows s. ok is false for terminal or unknown statuses.
func (s OrderStatus) Next() (next OrderStatus, ok bool) {
	r := s.Rank()
	if r < 0 || r == len(statusFlow)-1 {
		return "", false
	}
	return statusFlow[r+1], true
}

// CanTransitionTo reports whether to is exactly one step after s.
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	next, ok := s.Next()
	return ok && next == to
}

func (s OrderStatus) Description() string {
	if d, ok := statusDescriptions[s]; ok {
		return d
	}
	return string(s)
}

func (s OrderStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// DeliveryEstimate is the expected delivery date for an order in a given
// status. Date is zero when Delivered is set.
type DeliveryEstimate struct {
	Delivered bool      `json:"delivered"`
	Date      time.Time `json:"date,omitempty"`
}

func (e DeliveryEstimate) String() string {
	if e.Delivered {
		return "Order has been delivered"
	}
	return e.Date.Format("2 January 2006")
}

// EstimatedDelivery is a pure function of the status and the current time.
func EstimatedDelivery(status OrderStatus, now time.Time) DeliveryEstimate {
	if status == OrderStatusDelivered {
		return DeliveryEstimate{Delivered: true}
	}
	days, ok := deliveryOffsets[status]
	if !ok {
		days = defaultDeliveryOffset
	}
	return DeliveryEstimate{Date: now.AddDate(0, 0, days)}
}
