package pos

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smash-arena/pos-terminal/internal/domain/booking"
	"github.com/smash-arena/pos-terminal/internal/domain/order"
	"github.com/smash-arena/pos-terminal/internal/domain/product"
	"github.com/smash-arena/pos-terminal/internal/domain/receipt"
	"github.com/smash-arena/pos-terminal/internal/domain/shift"
)

// Backend is the booking backend as seen by the terminal.
type Backend interface {
	CashSessionStatus(ctx context.Context) (shift.StatusResponse, error)
	OpenCashSession(ctx context.Context, startingCash decimal.Decimal) (shift.CashShift, error)
	CloseCashSession(ctx context.Context, endingCashActual decimal.Decimal, note *string) (shift.ClosingSummary, error)
	CashSessionHistory(ctx context.Context, page int) (shift.Page, error)
	ActiveProducts(ctx context.Context) ([]product.Product, error)
	OpenBookings(ctx context.Context, day time.Time) ([]booking.Booking, error)
	GetBooking(ctx context.Context, id int64) (booking.Booking, error)
	SettleBooking(ctx context.Context, id int64, req booking.SettleRequest) error
	CreateOrder(ctx context.Context, req order.CreateOrderRequest, idempotencyKey string) (order.Order, error)
}

// PrintStore keeps the last receipt for reprinting.
type PrintStore interface {
	Save(r receipt.Receipt) error
	Load() (receipt.Receipt, error)
}

// Notifier pushes events to the terminal UI.
type Notifier interface {
	Publish(terminalID, name string, data interface{})
}

// Service is the POS session of one terminal.
type Service interface {
	// Shift
	Status(ctx context.Context) (shift.StatusResponse, error)
	OpenShift(ctx context.Context, startingCash decimal.Decimal) (shift.CashShift, error)
	CloseShift(ctx context.Context, endingCashActual decimal.Decimal, note *string) (CloseResult, error)
	History(ctx context.Context, page int) (shift.Page, error)

	// Catalog
	LoadCatalog(ctx context.Context) (LoadResult, error)
	Catalog(filter product.Filter) CatalogView

	// Cart
	Cart() CartView
	AddItem(productID int64) (CartView, error)
	ChangeQuantity(productID int64, delta int) (CartView, error)
	RemoveItem(productID int64) (CartView, error)
	ClearCart() (CartView, error)

	// Checkout
	Confirm(method order.PaymentMethod, bookingID *int64) (Draft, error)
	Execute(ctx context.Context, draftID string, in ExecuteInput) (receipt.Receipt, error)
	CancelCheckout() error
	ChangeDue(cashGiven decimal.Decimal) decimal.Decimal

	// Printing and bookings
	Render(r receipt.Receipt) Printout
	LastReceipt() (receipt.Receipt, Printout, error)
	SettleBooking(ctx context.Context, bookingID int64, req booking.SettleRequest) error
	BookingReceipt(ctx context.Context, bookingID int64, cashierName string) (Printout, error)
}
