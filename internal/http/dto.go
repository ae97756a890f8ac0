package http

import (
	"time"

	"github.com/VedantKadlaKK/bookverse/internal/domain"
	"github.com/VedantKadlaKK/bookverse/internal/payment"
)

type BookIDRequestDTO struct {
	BookID int64 `json:"book_id"`
}

type ChangeQuantityRequestDTO struct {
	Delta int `json:"delta"`
}

type UpdateStatusRequestDTO struct {
	Status domain.OrderStatus `json:"status"`
}

type PlaceOrderRequestDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (p PlaceOrderRequestDTO) customer() domain.Customer {
	return domain.Customer{Name: p.Name, Email: p.Email, Phone: p.Phone, Address: p.Address}
}

type LineDTO struct {
	domain.CartLine
	Subtotal int64 `json:"subtotal"`
}

func linesToDTO(lines []domain.CartLine) []LineDTO {
	out := make([]LineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, LineDTO{CartLine: l, Subtotal: l.Subtotal()})
	}
	return out
}

type CartResponseDTO struct {
	Items     []LineDTO `json:"items"`
	Total     int64     `json:"total"`
	Count     int       `json:"count"`
	UpdatedAt time.Time `json:"updated_at"`
}

func cartToDTO(c *domain.Cart) CartResponseDTO {
	return CartResponseDTO{
		Items:     linesToDTO(c.Items),
		Total:     c.Total(),
		Count:     c.Count(),
		UpdatedAt: c.UpdatedAt,
	}
}

type CheckoutResponseDTO struct {
	Source domain.CheckoutSource `json:"source"`
	Items  []domain.CheckoutLine `json:"items"`
	Total  int64                 `json:"total"`
}

func checkoutToDTO(c *domain.Checkout) CheckoutResponseDTO {
	return CheckoutResponseDTO{Source: c.Source, Items: c.Summary(), Total: c.Total}
}

type OrderResponseDTO struct {
	ID                string             `json:"id"`
	Items             []LineDTO          `json:"items"`
	Total             int64              `json:"total"`
	Customer          domain.Customer    `json:"customer"`
	Date              time.Time          `json:"date"`
	Status            domain.OrderStatus `json:"status"`
	StatusLabel       string             `json:"status_label"`
	StatusDescription string             `json:"status_description"`
	UpdatedAt         time.Time          `json:"updated_at"`
	Payment           *payment.Reference `json:"payment,omitempty"`
}

func orderToDTO(o *domain.Order) OrderResponseDTO {
	return OrderResponseDTO{
		ID:                o.ID,
		Items:             linesToDTO(o.Items),
		Total:             o.Total,
		Customer:          o.Customer,
		Date:              o.Date,
		Status:            o.Status,
		StatusLabel:       o.Status.Label(),
		StatusDescription: o.Status.Description(),
		UpdatedAt:         o.UpdatedAt,
	}
}

type TrackingResponseDTO struct {
	domain.Tracking
	EstimatedDeliveryText string `json:"estimated_delivery_text"`
}
