package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentQRIS     PaymentMethod = "qris"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentOpenBill PaymentMethod = "open_bill"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentQRIS, PaymentTransfer, PaymentOpenBill:
		return true
	}
	return false
}

// Label is the receipt text for non-cash methods, e.g. "open bill".
func (m PaymentMethod) Label() string {
	return strings.ReplaceAll(string(m), "_", " ")
}

type Item struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Order is the transaction the backend creates from a submitted cart.
type Order struct {
	ID            int64           `json:"id"`
	InvoiceCode   string          `json:"invoice_code"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	BookingID     *int64          `json:"booking_id,omitempty"`
	Items         []Item          `json:"items,omitempty"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentStatus string          `json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at"`
}
