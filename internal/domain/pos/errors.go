package pos

import "errors"

var (
	ErrCatalogSuperseded = errors.New("catalog load was superseded by a newer one")
	ErrInvalidQuantity   = errors.New("quantity change must not be zero")
)
