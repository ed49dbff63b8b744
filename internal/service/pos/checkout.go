package pos

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smash-arena/pos-terminal/internal/domain/booking"
	"github.com/smash-arena/pos-terminal/internal/domain/cart"
	"github.com/smash-arena/pos-terminal/internal/domain/order"
	"github.com/smash-arena/pos-terminal/internal/domain/pos"
	"github.com/smash-arena/pos-terminal/internal/domain/receipt"
	"github.com/smash-arena/pos-terminal/internal/domain/shift"
	"github.com/smash-arena/pos-terminal/internal/pkg/backend"
	"github.com/smash-arena/pos-terminal/internal/pkg/sse"
)

// Confirm checks the payment preconditions against the current cart and
// holds the result as the pending draft. A new confirm replaces the old
// draft.
func (s *POSServiceImpl) Confirm(method order.PaymentMethod, bookingID *int64) (pos.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sellableLocked(); err != nil {
		return pos.Draft{}, err
	}
	if s.cart.IsEmpty() {
		return pos.Draft{}, order.ErrEmptyCart
	}
	if !method.Valid() {
		return pos.Draft{}, order.ErrInvalidPaymentMethod
	}

	draft := pos.Draft{
		ID:            uuid.NewString(),
		PaymentMethod: method,
		Lines:         pos.CartLines(s.cart),
		Total:         s.cart.Total(),
		CartVersion:   s.cartVersion,
		CreatedAt:     s.now(),
	}

	if method == order.PaymentOpenBill {
		if bookingID == nil {
			return pos.Draft{}, order.ErrMissingBookingLink
		}
		b, ok := booking.Find(s.openBookings, *bookingID)
		if !ok {
			return pos.Draft{}, booking.ErrBookingNotOpen
		}
		id := b.ID
		draft.BookingID = &id
		draft.Booking = b.Label()
	}

	s.draft = &draft
	return draft, nil
}

// CancelCheckout discards the pending draft; the cart stays.
func (s *POSServiceImpl) CancelCheckout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy == opCheckout {
		return order.ErrCheckoutInProgress
	}
	s.draft = nil
	return nil
}

// ChangeDue previews the change for cash given against the cart total.
func (s *POSServiceImpl) ChangeDue(cashGiven decimal.Decimal) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cart.ChangeDue(cashGiven, s.cart.Total())
}

// Execute submits the pending draft. Cash is checked before anything is
// sent. On success the cart is cleared and the receipt stored for printing;
// on failure the cart and draft are kept so the cashier can retry.
func (s *POSServiceImpl) Execute(ctx context.Context, draftID string, in pos.ExecuteInput) (receipt.Receipt, error) {
	s.mu.Lock()
	if s.shift == nil {
		s.mu.Unlock()
		return receipt.Receipt{}, shift.ErrShiftClosed
	}
	if s.draft == nil || s.draft.ID != draftID {
		s.mu.Unlock()
		return receipt.Receipt{}, order.ErrDraftNotFound
	}
	if err := s.beginLocked(opCheckout); err != nil {
		s.mu.Unlock()
		return receipt.Receipt{}, err
	}
	draft := *s.draft
	if draft.CartVersion != s.cartVersion {
		s.busy = opNone
		s.mu.Unlock()
		return receipt.Receipt{}, order.ErrDraftStale
	}
	if draft.PaymentMethod == order.PaymentCash && (in.CashGiven == nil || in.CashGiven.LessThan(draft.Total)) {
		s.busy = opNone
		s.mu.Unlock()
		return receipt.Receipt{}, order.ErrInsufficientCash
	}
	s.mu.Unlock()

	created, err := s.backend.CreateOrder(ctx, orderRequest(draft), draft.ID)
	if err != nil {
		s.end()
		slog.Warn("Checkout rejected",
			"terminal_id", s.terminalID,
			"draft_id", draft.ID,
			"payment_method", draft.PaymentMethod,
			"error", err,
		)
		s.publish(sse.EventCheckoutFailed, map[string]string{"draft_id": draft.ID, "message": rejectionMessage(err)})
		return receipt.Receipt{}, err
	}

	r := s.buildReceipt(draft, created, in)
	if !r.TotalAmount.Equal(draft.Total) {
		slog.Warn("Server total differs from cart total",
			"terminal_id", s.terminalID,
			"invoice_code", r.InvoiceCode,
			"cart_total", draft.Total.String(),
			"server_total", r.TotalAmount.String(),
		)
		mismatch := map[string]interface{}{
			"invoice_code": r.InvoiceCode,
			"cart_total":   draft.Total,
			"server_total": r.TotalAmount,
		}
		if r.AmountDue != nil {
			mismatch["amount_due"] = *r.AmountDue
		}
		s.publish(sse.EventCheckoutMismatch, mismatch)
	}

	s.mu.Lock()
	for _, line := range draft.Lines {
		s.decrementStockLocked(line.ProductID, line.Quantity)
	}
	s.resetSessionLocked()
	if s.shift != nil {
		s.shift.RecordSale(string(draft.PaymentMethod), r.Collected())
	}
	s.busy = opNone
	s.mu.Unlock()

	slog.Info("Checkout completed",
		"terminal_id", s.terminalID,
		"invoice_code", r.InvoiceCode,
		"payment_method", draft.PaymentMethod,
		"total", r.TotalAmount.String(),
	)

	if s.prints != nil {
		if err := s.prints.Save(r); err != nil {
			slog.Warn("Failed to store receipt for printing", "invoice_code", r.InvoiceCode, "error", err)
		}
	}
	s.publish(sse.EventCheckoutCompleted, r)

	if _, err := s.LoadCatalog(ctx); err != nil && !errors.Is(err, pos.ErrCatalogSuperseded) {
		slog.Warn("Catalog reload after checkout failed", "terminal_id", s.terminalID, "error", err)
	}

	return r, nil
}

func orderRequest(draft pos.Draft) order.CreateOrderRequest {
	items := make([]order.LineItem, 0, len(draft.Lines))
	for _, l := range draft.Lines {
		items = append(items, order.LineItem{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	req := order.CreateOrderRequest{PaymentMethod: draft.PaymentMethod, Items: items}
	if draft.PaymentMethod == order.PaymentOpenBill {
		req.BookingID = draft.BookingID
	}
	return req
}

func (s *POSServiceImpl) buildReceipt(draft pos.Draft, created order.Order, in pos.ExecuteInput) receipt.Receipt {
	total := draft.Total
	if !created.TotalAmount.IsZero() {
		total = created.TotalAmount
	}
	timestamp := created.CreatedAt
	if timestamp.IsZero() {
		timestamp = s.now()
	}
	cashier := strings.TrimSpace(in.CashierName)
	if cashier == "" {
		cashier = receipt.DefaultCashier
	}

	r := receipt.Receipt{
		InvoiceCode:   created.InvoiceCode,
		Items:         receiptItems(draft.Lines, created.Items),
		TotalAmount:   total,
		PaymentMethod: string(draft.PaymentMethod),
		Booking:       draft.Booking,
		CashierName:   cashier,
		Timestamp:     timestamp,
	}
	if draft.PaymentMethod == order.PaymentCash && in.CashGiven != nil {
		cash := *in.CashGiven
		change := cart.ChangeDue(cash, total)
		r.CashGiven = &cash
		if change.IsNegative() {
			due := change.Neg()
			change = decimal.Zero
			r.AmountDue = &due
		}
		r.Change = &change
	}
	return r
}

// receiptItems prints the server's priced items when it returns them, so the
// lines add up to the server total. Names come from the cart.
func receiptItems(lines []pos.CartLine, served []order.Item) []receipt.Item {
	if len(served) == 0 {
		items := make([]receipt.Item, 0, len(lines))
		for _, l := range lines {
			items = append(items, receipt.Item{
				ProductID: l.ProductID,
				Name:      l.Name,
				Quantity:  l.Quantity,
				Price:     l.Price,
				Subtotal:  l.Subtotal,
			})
		}
		return items
	}

	names := make(map[int64]string, len(lines))
	for _, l := range lines {
		names[l.ProductID] = l.Name
	}
	items := make([]receipt.Item, 0, len(served))
	for _, it := range served {
		name, ok := names[it.ProductID]
		if !ok {
			name = fmt.Sprintf("Item #%d", it.ProductID)
		}
		items = append(items, receipt.Item{
			ProductID: it.ProductID,
			Name:      name,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Subtotal:  it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))),
		})
	}
	return items
}

// decrementStockLocked applies the sale to the cached stock until the
// reload brings the server's figure.
func (s *POSServiceImpl) decrementStockLocked(productID int64, quantity int) {
	for i := range s.products {
		if s.products[i].ID != productID {
			continue
		}
		s.products[i].Stock -= quantity
		if s.products[i].Stock < 0 {
			s.products[i].Stock = 0
		}
		return
	}
}

func rejectionMessage(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
