package domain

import (
	"strings"
	"time"
)

type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// MissingFields lists the required fields that are empty or whitespace only.
func (c Customer) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(c.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(c.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(c.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(c.Address) == "" {
		missing = append(missing, "address")
	}
	return missing
}

// Order is immutable once placed except for Status and UpdatedAt.
type Order struct {
	ID        string      `json:"id"`
	Items     []CartLine  `json:"items"`
	Total     int64       `json:"total"`
	Customer  Customer    `json:"customer"`
	Date      time.Time   `json:"date"`
	Status    OrderStatus `json:"status"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (o *Order) Clone() *Order {
	out := *o
	out.Items = CloneLines(o.Items)
	return &out
}

// TrackingStep is one stage of the fulfillment timeline.
type TrackingStep struct {
	Status    OrderStatus `json:"status"`
	Label     string      `json:"label"`
	Completed bool        `json:"completed"`
	Current   bool        `json:"current"`
}

type Tracking struct {
	OrderID     string           `json:"order_id"`
	Date        time.Time        `json:"date"`
	Status      OrderStatus      `json:"status"`
	Description string           `json:"description"`
	Steps       []TrackingStep   `json:"steps"`
	Estimate    DeliveryEstimate `json:"estimated_delivery"`
}

// Track builds the fulfillment timeline of o as seen at now.
func Track(o *Order, now time.Time) Tracking {
	current := o.Status.Rank()
	steps := make([]TrackingStep, 0, len(statusFlow))
	for i, s := range statusFlow {
		steps = append(steps, TrackingStep{
			Status:    s,
			Label:     s.Label(),
			Completed: i <= current,
			Current:   i == current,
		})
	}
	return Tracking{
		OrderID:     o.ID,
		Date:        o.Date,
		Status:      o.Status,
		Description: o.Status.Description(),
		Steps:       steps,
		Estimate:    EstimatedDelivery(o.Status, now),
	}
}
