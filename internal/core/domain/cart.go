package domain

import (
	"errors"
	"time"
)

var (
	ErrNoCart       = errors.New("no cart loaded")
	ErrLineNotFound = errors.New("cart line not found")
	ErrEmptyCart    = errors.New("cart is empty")
)

// CartLine is one product entry in the cart. UnitPrice is expressed in major
// currency units; the backend is the source of truth for both price and name.
type CartLine struct {
	ProductID  string    `json:"product_id"`
	Name       string    `json:"name"`
	UnitPrice  float64   `json:"unit_price"`
	Quantity   int       `json:"quantity"`
	AddedAt    time.Time `json:"added_at"`
	VendorName string    `json:"vendor_name"`
	ImagePath  string    `json:"image_path"`
}

// CartSnapshot is the client's in-memory mirror of the server-side cart.
// The server remains authoritative: a snapshot is only valid until the next
// response replaces it.
type CartSnapshot struct {
	CartID   string     `json:"cart_id"`
	ClientID string     `json:"client_id"`
	Lines    []CartLine `json:"lines"`
}

// Subtotal is the sum of unit price times quantity over all lines,
// recomputed on every render.
func (c CartSnapshot) Subtotal() float64 {
	var total float64
	for _, l := range c.Lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total
}

// LineCount returns the number of distinct lines, used for the badge.
func (c CartSnapshot) LineCount() int {
	return len(c.Lines)
}

// Clone returns a deep copy so callers can render without racing the owner.
func (c CartSnapshot) Clone() CartSnapshot {
	out := c
	out.Lines = make([]CartLine, len(c.Lines))
	copy(out.Lines, c.Lines)
	return out
}

// ClampQuantity enforces the minimum line quantity of 1. Any requested value
// below that, including zero and negatives, is raised to 1.
func ClampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}
