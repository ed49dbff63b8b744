package cart

import "errors"

var (
	ErrStockExceeded = errors.New("insufficient stock")
	ErrLineNotFound  = errors.New("product is not in the cart")
)
