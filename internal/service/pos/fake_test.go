package pos

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smash-arena/pos-terminal/internal/domain/booking"
	"github.com/smash-arena/pos-terminal/internal/domain/order"
	"github.com/smash-arena/pos-terminal/internal/domain/product"
	"github.com/smash-arena/pos-terminal/internal/domain/receipt"
	"github.com/smash-arena/pos-terminal/internal/domain/shift"
	"github.com/smash-arena/pos-terminal/internal/pkg/printer"
	"github.com/smash-arena/pos-terminal/internal/pkg/printstore"
)

// fakeBackend emulates the booking backend in memory. Hooks override the
// default behaviour of a call.
type fakeBackend struct {
	mu       sync.Mutex
	products []product.Product
	bookings []booking.Booking
	status   shift.StatusResponse
	summary  shift.ClosingSummary

	orders          []order.CreateOrderRequest
	idempotencyKeys []string
	settled         []int64

	productsHook    func(ctx context.Context) ([]product.Product, error)
	bookingsErr     error
	createOrderHook func(ctx context.Context, req order.CreateOrderRequest) (order.Order, error)
	closeErr        error
}

func newFakeBackend(products ...product.Product) *fakeBackend {
	return &fakeBackend{
		products: products,
		status:   shift.StatusResponse{Status: shift.StatusClosed},
	}
}

func (f *fakeBackend) CashSessionStatus(ctx context.Context) (shift.StatusResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status, nil
}

func (f *fakeBackend) OpenCashSession(ctx context.Context, startingCash decimal.Decimal) (shift.CashShift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	opened := shift.CashShift{
		ID:           1,
		Status:       shift.StatusOpen,
		OpenedAt:     time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC),
		StartingCash: startingCash,
		User:         &shift.Cashier{Name: "Rina"},
	}
	f.status = shift.StatusResponse{Status: shift.StatusOpen, Shift: &opened}
	return opened, nil
}

func (f *fakeBackend) CloseCashSession(ctx context.Context, endingCashActual decimal.Decimal, note *string) (shift.ClosingSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closeErr != nil {
		return shift.ClosingSummary{}, f.closeErr
	}
	f.status = shift.StatusResponse{Status: shift.StatusClosed}
	return f.summary, nil
}

func (f *fakeBackend) CashSessionHistory(ctx context.Context, page int) (shift.Page, error) {
	return shift.Page{Data: []shift.CashShift{}, CurrentPage: page, LastPage: 1}, nil
}

func (f *fakeBackend) ActiveProducts(ctx context.Context) ([]product.Product, error) {
	if f.productsHook != nil {
		return f.productsHook(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]product.Product(nil), f.products...), nil
}

func (f *fakeBackend) OpenBookings(ctx context.Context, day time.Time) ([]booking.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bookingsErr != nil {
		return nil, f.bookingsErr
	}
	return append([]booking.Booking(nil), f.bookings...), nil
}

func (f *fakeBackend) GetBooking(ctx context.Context, id int64) (booking.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return booking.Booking{}, notFound()
}

func (f *fakeBackend) SettleBooking(ctx context.Context, id int64, req booking.SettleRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settled = append(f.settled, id)
	return nil
}

func (f *fakeBackend) CreateOrder(ctx context.Context, req order.CreateOrderRequest, idempotencyKey string) (order.Order, error) {
	f.mu.Lock()
	f.orders = append(f.orders, req)
	f.idempotencyKeys = append(f.idempotencyKeys, idempotencyKey)
	hook := f.createOrderHook
	f.mu.Unlock()

	if hook != nil {
		return hook(ctx, req)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	total := decimal.Zero
	for _, item := range req.Items {
		for i := range f.products {
			if f.products[i].ID == item.ProductID {
				f.products[i].Stock -= item.Quantity
				total = total.Add(f.products[i].Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			}
		}
	}
	return order.Order{
		ID:            int64(len(f.orders)),
		InvoiceCode:   fmt.Sprintf("INV-%03d", len(f.orders)),
		PaymentMethod: req.PaymentMethod,
		BookingID:     req.BookingID,
		TotalAmount:   total,
		PaymentStatus: "paid",
		CreatedAt:     time.Date(2024, 1, 5, 19, 5, 0, 0, time.UTC),
	}, nil
}

func (f *fakeBackend) orderCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

type recordedEvent struct {
	Name string
	Data interface{}
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (n *fakeNotifier) Publish(terminalID, name string, data interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{Name: name, Data: data})
}

func (n *fakeNotifier) names() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.Name)
	}
	return out
}

type memoryPrintStore struct {
	mu   sync.Mutex
	last *receipt.Receipt
}

func (m *memoryPrintStore) Save(r receipt.Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = &r
	return nil
}

func (m *memoryPrintStore) Load() (receipt.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.last == nil {
		return receipt.Receipt{}, printstore.ErrNothingToPrint
	}
	return *m.last, nil
}

func testLayout() printer.Layout {
	return printer.Layout{
		Columns:  printer.Columns58mm,
		Business: printer.Business{Name: "SMASH ARENA"},
		Location: time.UTC,
	}
}

type fixture struct {
	svc     *POSServiceImpl
	backend *fakeBackend
	events  *fakeNotifier
	prints  *memoryPrintStore
}

func newFixture(products ...product.Product) *fixture {
	fb := newFakeBackend(products...)
	events := &fakeNotifier{}
	prints := &memoryPrintStore{}
	svc := NewPOSService(fb, prints, events, Config{
		TerminalID: "kasir-1",
		Layout:     testLayout(),
		Now:        func() time.Time { return time.Date(2024, 1, 5, 19, 0, 0, 0, time.UTC) },
	})
	return &fixture{svc: svc, backend: fb, events: events, prints: prints}
}

func aqua(stock int) product.Product {
	return product.Product{ID: 1, Name: "Aqua 600ml", Category: product.CategoryDrink, Price: decimal.NewFromInt(5000), Stock: stock, IsActive: true}
}

func indomie(stock int) product.Product {
	return product.Product{ID: 2, Name: "Indomie Goreng", Category: product.CategoryFood, Price: decimal.NewFromInt(12000), Stock: stock, IsActive: true}
}

func rp(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}
