package domain

type CheckoutSource string

const (
	CheckoutSourceCart   CheckoutSource = "cart"
	CheckoutSourceBuyNow CheckoutSource = "buy_now"
)

type CheckoutLine struct {
	CartLine
	Subtotal int64 `json:"subtotal"`
}

// Checkout is a staged, not yet committed order.
type Checkout struct {
	Source CheckoutSource `json:"source"`
	Items  []CartLine     `json:"items"`
	Total  int64          `json:"total"`
}

func NewCheckout(source CheckoutSource, lines []CartLine) *Checkout {
	items := CloneLines(lines)
	return &Checkout{
		Source: source,
		Items:  items,
		Total:  LinesTotal(items),
	}
}

// Summary returns the lines with their subtotals for display.
func (c *Checkout) Summary() []CheckoutLine {
	out := make([]CheckoutLine, 0, len(c.Items))
	for _, item := range c.Items {
		out = append(out, CheckoutLine{CartLine: item, Subtotal: item.Subtotal()})
	}
	return out
}

func (c *Checkout) Clone() *Checkout {
	out := *c
	out.Items = CloneLines(c.Items)
	return &out
}
