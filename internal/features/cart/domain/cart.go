package domain

import (
	"errors"

	catalog "storefront-checkout/internal/features/catalog/domain"

	"github.com/shopspring/decimal"
)

// ErrInvalidQuantity is returned when an added quantity is not positive.
var ErrInvalidQuantity = errors.New("quantity must be positive")

// Line is one product in the cart. UnitPrice is captured when the product is added.
type Line struct {
	ProductID string              `json:"productId"`
	Title     string              `json:"title"`
	UnitPrice decimal.Decimal     `json:"unitPrice"`
	Type      catalog.ProductType `json:"type"`
	Quantity  int                 `json:"quantity"`
}

// Total is unit price times quantity.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the persisted shopping cart.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Add increases the quantity of p, appending a new line when p is not in the cart yet.
func (c *Cart) Add(p catalog.Product, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == p.ID {
			c.Lines[i].Quantity += qty
			return nil
		}
	}
	c.Lines = append(c.Lines, Line{
		ProductID: p.ID,
		Title:     p.Title,
		UnitPrice: p.Price,
		Type:      p.Type,
		Quantity:  qty,
	})
	return nil
}

// SetQuantity changes a line's quantity. Zero or less removes the line.
// Returns false when the product is not in the cart.
func (c *Cart) SetQuantity(productID string, qty int) bool {
	for i := range c.Lines {
		if c.Lines[i].ProductID != productID {
			continue
		}
		if qty <= 0 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		} else {
			c.Lines[i].Quantity = qty
		}
		return true
	}
	return false
}

// Remove drops the line for productID.
func (c *Cart) Remove(productID string) {
	c.SetQuantity(productID, 0)
}

// Quantity returns how many units of productID are in the cart.
func (c *Cart) Quantity(productID string) int {
	for _, l := range c.Lines {
		if l.ProductID == productID {
			return l.Quantity
		}
	}
	return 0
}

// ItemCount is the sum of quantities.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Subtotal is the sum of line totals.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.Lines {
		sum = sum.Add(l.Total())
	}
	return sum
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// OnlyEbooks reports whether every line is an ebook.
func (c *Cart) OnlyEbooks() bool {
	if c.IsEmpty() {
		return false
	}
	for _, l := range c.Lines {
		if l.Type != catalog.ProductEbook {
			return false
		}
	}
	return true
}

// Summary is the cart as returned to clients.
type Summary struct {
	Lines     []Line          `json:"lines"`
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Summarize builds the client view of c.
func (c *Cart) Summarize() Summary {
	lines := c.Lines
	if lines == nil {
		lines = []Line{}
	}
	return Summary{Lines: lines, ItemCount: c.ItemCount(), Subtotal: c.Subtotal()}
}
