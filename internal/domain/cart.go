package domain

import "time"

// MaxLineQuantity caps the units of one book in a cart line.
const MaxLineQuantity = 999

// CartLine holds a copy of the book taken when the line was first added.
type CartLine struct {
	Book
	Quantity int `json:"quantity"`
}

func (l CartLine) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

type Cart struct {
	Items     []CartLine `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Total is the sum of price x quantity over every line.
func (c *Cart) Total() int64 {
	return LinesTotal(c.Items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Count returns the number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// Find returns the index of the line for bookID, or -1.
func (c *Cart) Find(bookID int64) int {
	for i := range c.Items {
		if c.Items[i].ID == bookID {
			return i
		}
	}
	return -1
}

// Merge adds quantity units of line to the cart, appending a copy when the
// book is not in the cart yet.
func (c *Cart) Merge(line CartLine) {
	if line.Quantity <= 0 {
		return
	}
	if i := c.Find(line.ID); i >= 0 {
		c.Items[i].Quantity += line.Quantity
		return
	}
	c.Items = append(c.Items, line)
}

// CanAdd reports whether n more units of bookID stay within MaxLineQuantity.
func (c *Cart) CanAdd(bookID int64, n int) bool {
	current := 0
	if i := c.Find(bookID); i >= 0 {
		current = c.Items[i].Quantity
	}
	return n <= 0 || current <= MaxLineQuantity-n
}

// Remove drops the line for bookID. It reports whether a line was removed.
func (c *Cart) Remove(bookID int64) bool {
	i := c.Find(bookID)
	if i < 0 {
		return false
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return true
}

func (c *Cart) Clone() *Cart {
	out := &Cart{UpdatedAt: c.UpdatedAt}
	out.Items = CloneLines(c.Items)
	return out
}

func CloneLines(lines []CartLine) []CartLine {
	if lines == nil {
		return []CartLine{}
	}
	out := make([]CartLine, len(lines))
	copy(out, lines)
	return out
}

func LinesTotal(lines []CartLine) int64 {
	var total int64
	for _, line := range lines {
		total += line.Subtotal()
	}
	return total
}
