package pos

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smash-arena/pos-terminal/internal/domain/booking"
	"github.com/smash-arena/pos-terminal/internal/domain/cart"
	"github.com/smash-arena/pos-terminal/internal/domain/order"
	"github.com/smash-arena/pos-terminal/internal/domain/product"
	"github.com/smash-arena/pos-terminal/internal/domain/shift"
)

// Draft is a confirmed but not yet submitted checkout. It is only valid for
// the cart version it was confirmed against.
type Draft struct {
	ID            string              `json:"id"`
	PaymentMethod order.PaymentMethod `json:"payment_method"`
	BookingID     *int64              `json:"booking_id,omitempty"`
	Booking       string              `json:"booking,omitempty"`
	Lines         []CartLine          `json:"lines"`
	Total         decimal.Decimal     `json:"total"`
	CartVersion   uint64              `json:"cart_version"`
	CreatedAt     time.Time           `json:"created_at"`
}

// LoadResult reports a catalog load. A failed half leaves the previous data
// of that half in place.
type LoadResult struct {
	Products     []product.Product `json:"products"`
	OpenBookings []booking.Booking `json:"open_bookings"`
	Adjustments  []cart.Adjustment `json:"adjustments,omitempty"`
	ProductsErr  error             `json:"-"`
	BookingsErr  error             `json:"-"`
}

// Err joins the per-half errors, nil when both halves loaded.
func (r LoadResult) Err() error {
	return errors.Join(r.ProductsErr, r.BookingsErr)
}

// Warnings renders the per-half errors for the API.
func (r LoadResult) Warnings() map[string]string {
	warnings := map[string]string{}
	if r.ProductsErr != nil {
		warnings["products"] = r.ProductsErr.Error()
	}
	if r.BookingsErr != nil {
		warnings["open_bookings"] = r.BookingsErr.Error()
	}
	return warnings
}

type CartLine struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Stock     int             `json:"stock"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type CartView struct {
	Lines     []CartLine      `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
	Version   uint64          `json:"version"`
}

// NewCartView snapshots a cart for the API.
func NewCartView(c cart.Cart, version uint64) CartView {
	view := CartView{Lines: CartLines(c), Total: c.Total(), Version: version}
	for _, l := range view.Lines {
		view.ItemCount += l.Quantity
	}
	return view
}

// CartLines flattens cart lines.
func CartLines(c cart.Cart) []CartLine {
	lines := make([]CartLine, 0, c.Len())
	for _, l := range c.Lines() {
		lines = append(lines, CartLine{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Price:     l.Product.Price,
			Quantity:  l.Quantity,
			Stock:     l.Product.Stock,
			Subtotal:  l.Subtotal(),
		})
	}
	return lines
}

// BookingOption is one entry of the open-bill selector.
type BookingOption struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

type CatalogView struct {
	Products     []product.Product `json:"products"`
	OpenBookings []BookingOption   `json:"open_bookings"`
	LoadedAt     *time.Time        `json:"loaded_at,omitempty"`
}

// CloseResult is the outcome of closing a shift.
type CloseResult struct {
	Summary shift.ClosingSummary `json:"summary"`
	Shift   shift.CashShift      `json:"shift"`
	Report  string               `json:"report"`
}

// Printout is rendered receipt text ready for a thermal printer.
type Printout struct {
	Text       string `json:"text"`
	OpenDrawer bool   `json:"open_drawer"`
}

// ExecuteInput carries what the cashier supplies at submission time.
type ExecuteInput struct {
	CashGiven   *decimal.Decimal
	CashierName string
}
