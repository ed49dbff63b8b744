// Package cart holds the cashier's cart as an immutable value. Every
// transition returns a new Cart; a rejected transition returns the receiver
// unchanged together with the error.
package cart

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/smash-arena/pos-terminal/internal/domain/product"
)

type Line struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal is price x quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Cart struct {
	lines []Line
}

// New builds a cart from lines, dropping any with a non-positive quantity.
func New(lines ...Line) Cart {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.Quantity > 0 {
			out = append(out, l)
		}
	}
	return Cart{lines: out}
}

// Lines returns a copy of the cart lines in insertion order.
func (c Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c Cart) Len() int {
	return len(c.lines)
}

// Quantity returns the quantity held for productID, 0 if absent.
func (c Cart) Quantity(productID int64) int {
	if i := c.indexOf(productID); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

// Total is recomputed from the lines on every call.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// AddItem adds one unit of p.
func (c Cart) AddItem(p product.Product) (Cart, error) {
	i := c.indexOf(p.ID)
	current := 0
	if i >= 0 {
		current = c.lines[i].Quantity
	}
	if current+1 > p.Stock {
		return c, stockExceeded(p)
	}

	lines := c.Lines()
	if i >= 0 {
		lines[i].Product = p
		lines[i].Quantity++
	} else {
		lines = append(lines, Line{Product: p, Quantity: 1})
	}
	return Cart{lines: lines}, nil
}

// ChangeQuantity applies delta to the line for productID. The stock ceiling
// is the line's product snapshot. A line that reaches zero or below is
// removed.
func (c Cart) ChangeQuantity(productID int64, delta int) (Cart, error) {
	i := c.indexOf(productID)
	if i < 0 {
		return c, ErrLineNotFound
	}
	if delta == 0 {
		return c, nil
	}

	line := c.lines[i]
	next := line.Quantity + delta
	if delta > 0 && next > line.Product.Stock {
		return c, stockExceeded(line.Product)
	}

	lines := c.Lines()
	if next <= 0 {
		return Cart{lines: append(lines[:i], lines[i+1:]...)}, nil
	}
	lines[i].Quantity = next
	return Cart{lines: lines}, nil
}

// Remove drops the line for productID.
func (c Cart) Remove(productID int64) (Cart, error) {
	i := c.indexOf(productID)
	if i < 0 {
		return c, ErrLineNotFound
	}
	lines := c.Lines()
	return Cart{lines: append(lines[:i], lines[i+1:]...)}, nil
}

// Clear returns an empty cart.
func (c Cart) Clear() Cart {
	return Cart{}
}

// Adjustment reports how Reconcile changed a line.
type Adjustment struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	OldQuantity int    `json:"old_quantity"`
	NewQuantity int    `json:"new_quantity"`
}

// Reconcile refreshes line snapshots from a freshly loaded catalog. Lines
// whose product disappeared or ran out are removed and quantities above the
// new stock are clamped.
func (c Cart) Reconcile(catalog []product.Product) (Cart, []Adjustment) {
	var adjustments []Adjustment
	lines := make([]Line, 0, len(c.lines))
	for _, l := range c.lines {
		fresh, ok := product.Find(catalog, l.Product.ID)
		qty := l.Quantity
		if !ok {
			qty = 0
		} else if qty > fresh.Stock {
			qty = fresh.Stock
		}
		if qty != l.Quantity {
			adjustments = append(adjustments, Adjustment{
				ProductID:   l.Product.ID,
				ProductName: l.Product.Name,
				OldQuantity: l.Quantity,
				NewQuantity: qty,
			})
		}
		if qty <= 0 {
			continue
		}
		lines = append(lines, Line{Product: fresh, Quantity: qty})
	}
	return Cart{lines: lines}, adjustments
}

func (c Cart) indexOf(productID int64) int {
	for i, l := range c.lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

func stockExceeded(p product.Product) error {
	return fmt.Errorf("%w: %s has %d left", ErrStockExceeded, p.Name, p.Stock)
}

// ChangeDue is cashGiven - total. A negative result means the cash offered
// does not cover the bill.
func ChangeDue(cashGiven, total decimal.Decimal) decimal.Decimal {
	return cashGiven.Sub(total)
}
