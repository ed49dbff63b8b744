package receipt

import (
	"time"

	"github.com/shopspring/decimal"
)

type Item struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Receipt is the printable record of a completed sale. It is also the
// print_data blob handed to the print view.
type Receipt struct {
	InvoiceCode   string           `json:"invoice_code"`
	Items         []Item           `json:"items"`
	TotalAmount   decimal.Decimal  `json:"total_amount"`
	PaymentMethod string           `json:"payment_method"`
	Booking       string           `json:"booking,omitempty"`
	CashGiven     *decimal.Decimal `json:"cash_given,omitempty"`
	Change        *decimal.Decimal `json:"change,omitempty"`
	AmountDue     *decimal.Decimal `json:"amount_due,omitempty"` // cash still owed when the server total exceeds cash given
	CashierName   string           `json:"cashier_name"`
	Timestamp     time.Time        `json:"timestamp"`
}

// DefaultCashier is printed when the session carries no name.
const DefaultCashier = "Admin"

// Collected is what the sale put in the drawer, net of change.
func (r Receipt) Collected() decimal.Decimal {
	if r.AmountDue != nil {
		return r.TotalAmount.Sub(*r.AmountDue)
	}
	return r.TotalAmount
}
