package pos

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/smash-arena/pos-terminal/internal/domain/booking"
	"github.com/smash-arena/pos-terminal/internal/domain/order"
	"github.com/smash-arena/pos-terminal/internal/domain/pos"
	"github.com/smash-arena/pos-terminal/internal/domain/receipt"
	"github.com/smash-arena/pos-terminal/internal/pkg/backend"
	"github.com/smash-arena/pos-terminal/internal/pkg/printer"
	"github.com/smash-arena/pos-terminal/internal/pkg/printstore"
)

// Render prints a sale receipt; cash sales also open the drawer.
func (s *POSServiceImpl) Render(r receipt.Receipt) pos.Printout {
	return pos.Printout{
		Text:       printer.RenderSale(r, s.layout),
		OpenDrawer: r.PaymentMethod == string(order.PaymentCash),
	}
}

// LastReceipt returns the stored receipt and its printout.
func (s *POSServiceImpl) LastReceipt() (receipt.Receipt, pos.Printout, error) {
	if s.prints == nil {
		return receipt.Receipt{}, pos.Printout{}, printstore.ErrNothingToPrint
	}
	r, err := s.prints.Load()
	if err != nil {
		return receipt.Receipt{}, pos.Printout{}, err
	}
	return r, s.Render(r), nil
}

// SettleBooking pays a booking together with its open-bill orders. The
// booking stops being an open-bill target.
func (s *POSServiceImpl) SettleBooking(ctx context.Context, bookingID int64, req booking.SettleRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.backend.SettleBooking(ctx, bookingID, req); err != nil {
		if isNotFound(err) {
			return booking.ErrBookingNotFound
		}
		slog.Warn("Booking settlement rejected", "booking_id", bookingID, "error", err)
		return err
	}

	s.mu.Lock()
	remaining := make([]booking.Booking, 0, len(s.openBookings))
	for _, b := range s.openBookings {
		if b.ID != bookingID {
			remaining = append(remaining, b)
		}
	}
	s.openBookings = remaining
	s.mu.Unlock()

	slog.Info("Booking settled", "terminal_id", s.terminalID, "booking_id", bookingID, "payment_method", req.PaymentMethod)
	return nil
}

// BookingReceipt renders the settlement receipt of a booking.
func (s *POSServiceImpl) BookingReceipt(ctx context.Context, bookingID int64, cashierName string) (pos.Printout, error) {
	b, err := s.backend.GetBooking(ctx, bookingID)
	if err != nil {
		if isNotFound(err) {
			return pos.Printout{}, booking.ErrBookingNotFound
		}
		return pos.Printout{}, err
	}
	return pos.Printout{Text: printer.RenderBooking(b, cashierName, s.now(), s.layout)}, nil
}

func isNotFound(err error) bool {
	var apiErr *backend.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
