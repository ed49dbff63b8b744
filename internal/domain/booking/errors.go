package booking

import "errors"

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrBookingNotOpen  = errors.New("booking is not open for billing")
)
