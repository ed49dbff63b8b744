package booking

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusBooked    Status = "booked"
	StatusPaid      Status = "paid"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Court struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Customer struct {
	Name string `json:"name"`
}

type OrderProduct struct {
	Name string `json:"name"`
}

// LinkedOrder is a POS order charged to the booking (open bill).
type LinkedOrder struct {
	ID            int64             `json:"id"`
	InvoiceCode   string            `json:"invoice_code"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	PaymentStatus string            `json:"payment_status"`
	Items         []LinkedOrderItem `json:"order_items"`
}

type LinkedOrderItem struct {
	ProductName string          `json:"product_name"`
	Product     *OrderProduct   `json:"product,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Name prefers the nested product name; "Item" when neither is present.
func (i LinkedOrderItem) Name() string {
	if i.Product != nil && i.Product.Name != "" {
		return i.Product.Name
	}
	if i.ProductName != "" {
		return i.ProductName
	}
	return "Item"
}

// Subtotal is price times quantity.
func (i LinkedOrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Transaction struct {
	PaymentMethod string    `json:"payment_method"`
	ProcessedBy   *Customer `json:"processed_by,omitempty"`
}

// Booking is owned by the backend; the terminal reads it for open-bill
// linkage and settlement receipts.
type Booking struct {
	ID           int64           `json:"id"`
	BookingCode  string          `json:"booking_code"`
	CustomerName string          `json:"customer_name"`
	User         *Customer       `json:"user,omitempty"`
	CourtID      int64           `json:"court_id"`
	Court        *Court          `json:"court,omitempty"`
	StartTime    string          `json:"start_time"`
	EndTime      string          `json:"end_time"`
	Status       Status          `json:"status"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	Orders       []LinkedOrder   `json:"orders,omitempty"`
	Transaction  *Transaction    `json:"transaction,omitempty"`
}

// IsSettled reports whether the booking has been paid.
func (b Booking) IsSettled() bool {
	return b.Status == StatusPaid || b.Status == StatusCompleted
}

// PaymentMethod is the settlement method, "cash" when none is recorded.
func (b Booking) PaymentMethod() string {
	if b.Transaction != nil && b.Transaction.PaymentMethod != "" {
		return b.Transaction.PaymentMethod
	}
	return "cash"
}

// ProcessedBy is the cashier who settled the booking, if known.
func (b Booking) ProcessedBy() string {
	if b.Transaction != nil && b.Transaction.ProcessedBy != nil {
		return b.Transaction.ProcessedBy.Name
	}
	return ""
}

func (b Booking) courtName() string {
	if b.Court != nil && b.Court.Name != "" {
		return b.Court.Name
	}
	return fmt.Sprintf("Court #%d", b.CourtID)
}

// Customer prefers the registered user's name over the walk-in name.
func (b Booking) Customer() string {
	if b.User != nil && b.User.Name != "" {
		return b.User.Name
	}
	if b.CustomerName != "" {
		return b.CustomerName
	}
	return "Guest"
}

// Label is the open-bill selector text, e.g. "Budi - Court A (19:00)".
func (b Booking) Label() string {
	return fmt.Sprintf("%s - %s (%s)", b.Customer(), b.courtName(), clock(b.StartTime))
}

// CourtLine describes the rental on a receipt, e.g. "Court A (Sewa)".
func (b Booking) CourtLine() string {
	return b.courtName() + " (Sewa)"
}

// Slot renders "19:00 - 21:00".
func (b Booking) Slot() string {
	return clock(b.StartTime) + " - " + clock(b.EndTime)
}

// BillableOrders returns the open-bill orders that belong on the bill. While
// the booking is unsettled only unpaid orders count; once paid or completed
// every linked order is history and is shown.
func (b Booking) BillableOrders() []LinkedOrder {
	settled := b.IsSettled()
	out := make([]LinkedOrder, 0, len(b.Orders))
	for _, o := range b.Orders {
		if settled || o.PaymentStatus == "unpaid" {
			out = append(out, o)
		}
	}
	return out
}

// OrdersTotal sums BillableOrders.
func (b Booking) OrdersTotal() decimal.Decimal {
	total := decimal.Zero
	for _, o := range b.BillableOrders() {
		total = total.Add(o.TotalAmount)
	}
	return total
}

// GrandTotal is the court rental plus billable open-bill orders.
func (b Booking) GrandTotal() decimal.Decimal {
	return b.TotalPrice.Add(b.OrdersTotal())
}

// Find returns the booking with the given id.
func Find(bookings []Booking, id int64) (Booking, bool) {
	for _, b := range bookings {
		if b.ID == id {
			return b, true
		}
	}
	return Booking{}, false
}

// clock trims "19:00:00" to "19:00"; full timestamps are reduced to their
// time of day.
func clock(s string) string {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("15:04")
	}
	if len(s) >= 5 {
		return s[:5]
	}
	return s
}
