package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/smash-arena/pos-terminal/internal/domain/booking"
	"github.com/smash-arena/pos-terminal/internal/domain/cart"
	"github.com/smash-arena/pos-terminal/internal/domain/order"
	"github.com/smash-arena/pos-terminal/internal/domain/pos"
	"github.com/smash-arena/pos-terminal/internal/domain/product"
	"github.com/smash-arena/pos-terminal/internal/domain/shift"
	"github.com/smash-arena/pos-terminal/internal/pkg/backend"
	"github.com/smash-arena/pos-terminal/internal/pkg/jwt"
	"github.com/smash-arena/pos-terminal/internal/pkg/printstore"
	"github.com/smash-arena/pos-terminal/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Session errors
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, jwt.ErrAdminOnly):
		Forbidden(w, err.Error())

	// Shift errors
	case errors.Is(err, shift.ErrShiftClosed):
		ConflictWithCode(w, "SHIFT_CLOSED", err.Error())
	case errors.Is(err, shift.ErrShiftAlreadyOpen),
		errors.Is(err, shift.ErrShiftBusy):
		Conflict(w, err.Error())

	// Cart errors
	case errors.Is(err, cart.ErrStockExceeded):
		ConflictWithCode(w, "STOCK_EXCEEDED", err.Error())
	case errors.Is(err, cart.ErrLineNotFound),
		errors.Is(err, product.ErrProductNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, pos.ErrInvalidQuantity):
		BadRequest(w, err.Error(), nil)

	// Checkout errors
	case errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrMissingBookingLink),
		errors.Is(err, order.ErrInsufficientCash),
		errors.Is(err, order.ErrInvalidPaymentMethod),
		errors.Is(err, booking.ErrBookingNotOpen):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, order.ErrCheckoutInProgress),
		errors.Is(err, order.ErrDraftStale),
		errors.Is(err, pos.ErrCatalogSuperseded):
		Conflict(w, err.Error())
	case errors.Is(err, order.ErrDraftNotFound),
		errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, printstore.ErrNothingToPrint):
		NotFound(w, err.Error())

	// Backend errors
	case errors.Is(err, backend.ErrServerRejected):
		handleServerRejected(w, err)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

// handleServerRejected forwards the backend's own message to the cashier.
func handleServerRejected(w http.ResponseWriter, err error) {
	var apiErr *backend.APIError
	if !errors.As(err, &apiErr) {
		BadGateway(w, err.Error(), nil)
		return
	}
	message := apiErr.Message
	if apiErr.StatusCode == 0 {
		message = "Booking backend is unreachable"
	}
	BadGateway(w, message, apiErr.Details)
}
