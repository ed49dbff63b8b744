package order

import "errors"

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrMissingBookingLink   = errors.New("select a booking for open bill")
	ErrInsufficientCash     = errors.New("cash given is less than the total")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrCheckoutInProgress   = errors.New("a checkout is already in progress")
	ErrDraftNotFound        = errors.New("checkout draft not found")
	ErrDraftStale           = errors.New("cart changed since checkout was confirmed")
)
