package pos

import (
	"context"
	"errors"
	"log/slog"

	"github.com/smash-arena/pos-terminal/internal/domain/booking"
	"github.com/smash-arena/pos-terminal/internal/domain/cart"
	"github.com/smash-arena/pos-terminal/internal/domain/pos"
	"github.com/smash-arena/pos-terminal/internal/domain/product"
	"github.com/smash-arena/pos-terminal/internal/pkg/sse"
	"golang.org/x/sync/errgroup"
)

// LoadCatalog fetches active products and today's open bookings in
// parallel. Whichever half succeeds is applied; when both fail the joined
// error is returned. A load overtaken by a newer one is dropped with
// ErrCatalogSuperseded.
func (s *POSServiceImpl) LoadCatalog(ctx context.Context) (pos.LoadResult, error) {
	s.mu.Lock()
	s.generation++
	generation := s.generation
	s.mu.Unlock()

	var (
		g      errgroup.Group
		result pos.LoadResult
	)
	today := s.now().In(s.layout.Location)

	// Each half keeps its own error so that one failure does not stop the
	// other from being applied.
	g.Go(func() error {
		result.Products, result.ProductsErr = s.backend.ActiveProducts(ctx)
		return nil
	})
	g.Go(func() error {
		result.OpenBookings, result.BookingsErr = s.backend.OpenBookings(ctx, today)
		return nil
	})
	_ = g.Wait()

	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		slog.Debug("Discarding superseded catalog load", "terminal_id", s.terminalID, "generation", generation)
		return pos.LoadResult{}, pos.ErrCatalogSuperseded
	}

	var cartView *pos.CartView
	if result.ProductsErr == nil {
		s.products = append([]product.Product(nil), result.Products...)
		if s.busy != opCheckout {
			next, adjustments := s.cart.Reconcile(result.Products)
			if cartDiffers(s.cart, next) {
				view := s.setCartLocked(next)
				cartView = &view
			} else {
				s.cart = next
			}
			result.Adjustments = adjustments
		}
	} else {
		result.Products = s.products
	}
	if result.BookingsErr == nil {
		s.openBookings = result.OpenBookings
	} else {
		result.OpenBookings = s.openBookings
	}
	if result.ProductsErr == nil || result.BookingsErr == nil {
		loadedAt := s.now()
		s.loadedAt = &loadedAt
	}
	s.mu.Unlock()

	if result.ProductsErr != nil {
		slog.Warn("Failed to load products", "terminal_id", s.terminalID, "error", result.ProductsErr)
		s.publish(sse.EventCatalogError, map[string]string{"part": "products", "message": result.ProductsErr.Error()})
	}
	if result.BookingsErr != nil {
		slog.Warn("Failed to load open bookings", "terminal_id", s.terminalID, "error", result.BookingsErr)
		s.publish(sse.EventCatalogError, map[string]string{"part": "open_bookings", "message": result.BookingsErr.Error()})
	}
	if result.ProductsErr != nil && result.BookingsErr != nil {
		return result, result.Err()
	}

	s.publish(sse.EventCatalogLoaded, map[string]int{
		"products":      len(result.Products),
		"open_bookings": len(result.OpenBookings),
	})
	if len(result.Adjustments) > 0 {
		slog.Info("Cart adjusted to fresh stock", "terminal_id", s.terminalID, "adjustments", len(result.Adjustments))
		s.publish(sse.EventCartReconciled, result.Adjustments)
	}
	if cartView != nil {
		s.publish(sse.EventCartUpdated, *cartView)
	}

	return result, nil
}

// RefreshCatalog is the scheduled reload. It does nothing while no shift is
// open, and a superseded load is not a failure.
func (s *POSServiceImpl) RefreshCatalog(ctx context.Context) error {
	s.mu.Lock()
	open := s.shift != nil
	s.mu.Unlock()
	if !open {
		return nil
	}

	_, err := s.LoadCatalog(ctx)
	if errors.Is(err, pos.ErrCatalogSuperseded) {
		return nil
	}
	return err
}

// Catalog returns the cached products matching filter and the open-bill
// booking options.
func (s *POSServiceImpl) Catalog(filter product.Filter) pos.CatalogView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := pos.CatalogView{
		Products:     filter.Apply(s.products),
		OpenBookings: bookingOptions(s.openBookings),
	}
	if s.loadedAt != nil {
		loadedAt := *s.loadedAt
		view.LoadedAt = &loadedAt
	}
	return view
}

func bookingOptions(bookings []booking.Booking) []pos.BookingOption {
	options := make([]pos.BookingOption, 0, len(bookings))
	for _, b := range bookings {
		options = append(options, pos.BookingOption{ID: b.ID, Label: b.Label()})
	}
	return options
}

// cartDiffers reports whether reconciliation changed what a draft would
// submit or charge. Stock-only changes do not count.
func cartDiffers(before, after cart.Cart) bool {
	if before.Len() != after.Len() {
		return true
	}
	a, b := before.Lines(), after.Lines()
	for i := range a {
		if a[i].Product.ID != b[i].Product.ID ||
			a[i].Quantity != b[i].Quantity ||
			!a[i].Product.Price.Equal(b[i].Product.Price) {
			return true
		}
	}
	return false
}
