package pos

import (
	"sync"
	"time"

	"github.com/smash-arena/pos-terminal/internal/domain/booking"
	"github.com/smash-arena/pos-terminal/internal/domain/cart"
	"github.com/smash-arena/pos-terminal/internal/domain/order"
	"github.com/smash-arena/pos-terminal/internal/domain/pos"
	"github.com/smash-arena/pos-terminal/internal/domain/product"
	"github.com/smash-arena/pos-terminal/internal/domain/shift"
	"github.com/smash-arena/pos-terminal/internal/pkg/printer"
)

type operation int

const (
	opNone operation = iota
	opCheckout
	opShift
)

// Config wires a POS controller.
type Config struct {
	TerminalID string
	Layout     printer.Layout
	// Now defaults to time.Now.
	Now func() time.Time
}

// POSServiceImpl owns the session state of one terminal. State is guarded
// by mu; backend calls are never made while holding it.
type POSServiceImpl struct {
	backend pos.Backend
	prints  pos.PrintStore
	events  pos.Notifier

	terminalID string
	layout     printer.Layout
	now        func() time.Time

	mu           sync.Mutex
	shift        *shift.CashShift
	products     []product.Product
	openBookings []booking.Booking
	loadedAt     *time.Time
	generation   uint64
	cart         cart.Cart
	cartVersion  uint64
	draft        *pos.Draft
	busy         operation
}

// NewPOSService creates the controller. The terminal starts closed until
// Status or OpenShift says otherwise.
func NewPOSService(backend pos.Backend, prints pos.PrintStore, events pos.Notifier, cfg Config) *POSServiceImpl {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Layout.Location == nil {
		cfg.Layout.Location = time.Local
	}
	return &POSServiceImpl{
		backend:    backend,
		prints:     prints,
		events:     events,
		terminalID: cfg.TerminalID,
		layout:     cfg.Layout,
		now:        cfg.Now,
		cart:       cart.New(),
	}
}

var _ pos.Service = (*POSServiceImpl)(nil)

func (s *POSServiceImpl) publish(name string, data interface{}) {
	if s.events != nil {
		s.events.Publish(s.terminalID, name, data)
	}
}

// beginLocked claims the busy slot for op. Callers hold mu.
func (s *POSServiceImpl) beginLocked(op operation) error {
	switch s.busy {
	case opNone:
		s.busy = op
		return nil
	case opCheckout:
		if op == opShift {
			return shift.ErrShiftBusy
		}
		return order.ErrCheckoutInProgress
	default:
		return shift.ErrShiftBusy
	}
}

func (s *POSServiceImpl) end() {
	s.mu.Lock()
	s.busy = opNone
	s.mu.Unlock()
}

// sellableLocked checks that cart and checkout operations may run.
func (s *POSServiceImpl) sellableLocked() error {
	if s.shift == nil || s.shift.Status != shift.StatusOpen {
		return shift.ErrShiftClosed
	}
	switch s.busy {
	case opCheckout:
		return order.ErrCheckoutInProgress
	case opShift:
		return shift.ErrShiftBusy
	}
	return nil
}

// setCartLocked replaces the cart and invalidates any draft confirmed
// against the old one.
func (s *POSServiceImpl) setCartLocked(next cart.Cart) pos.CartView {
	s.cart = next
	s.cartVersion++
	return pos.NewCartView(s.cart, s.cartVersion)
}

// resetSessionLocked discards the cart and the pending draft.
func (s *POSServiceImpl) resetSessionLocked() {
	s.cart = cart.New()
	s.cartVersion++
	s.draft = nil
}
