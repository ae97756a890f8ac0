package payment

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/VedantKadlaKK/bookverse/internal/domain"
)

const (
	DefaultPayee     = "bookverse@paytm"
	DefaultPayeeName = "BookVerse"
	currency         = "INR"
)

var ErrNoPayee = errors.New("upi payee address is not configured")

type Config struct {
	Payee     string
	PayeeName string
}

// Reference is the advisory payment instruction shown next to a placed order.
type Reference struct {
	Link   string `json:"link"`
	Note   string `json:"note"`
	Amount int64  `json:"amount"`
	Payee  string `json:"payee"`
}

// UPILink builds a upi://pay deep link for the order total. Nothing is
// charged; the link only pre-fills a payment app.
func UPILink(order *domain.Order, cfg Config) (Reference, error) {
	payee := strings.TrimSpace(cfg.Payee)
	if payee == "" {
		return Reference{}, ErrNoPayee
	}
	name := cfg.PayeeName
	if name == "" {
		name = DefaultPayeeName
	}

	note := fmt.Sprintf("BookVerse Order %s", order.ID)
	amount := strconv.FormatInt(order.Total, 10)

	link := "upi://pay?pa=" + queryComponent(payee) +
		"&pn=" + queryComponent(name) +
		"&am=" + amount +
		"&cu=" + currency +
		"&tn=" + queryComponent(note)

	return Reference{
		Link:   link,
		Note:   note,
		Amount: order.Total,
		Payee:  payee,
	}, nil
}

// queryComponent escapes s for a query value, spaces as %20.
func queryComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
