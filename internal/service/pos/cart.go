package pos

import (
	"errors"

	"github.com/smash-arena/pos-terminal/internal/domain/cart"
	"github.com/smash-arena/pos-terminal/internal/domain/pos"
	"github.com/smash-arena/pos-terminal/internal/domain/product"
	"github.com/smash-arena/pos-terminal/internal/pkg/sse"
)

// Cart returns the current cart.
func (s *POSServiceImpl) Cart() pos.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pos.NewCartView(s.cart, s.cartVersion)
}

// AddItem adds one unit of a cached product.
func (s *POSServiceImpl) AddItem(productID int64) (pos.CartView, error) {
	return s.mutateCart(productID, func(current cart.Cart, products []product.Product) (cart.Cart, error) {
		p, ok := product.Find(products, productID)
		if !ok {
			return current, product.ErrProductNotFound
		}
		return current.AddItem(p)
	})
}

// ChangeQuantity moves a line's quantity by delta; at zero the line goes.
func (s *POSServiceImpl) ChangeQuantity(productID int64, delta int) (pos.CartView, error) {
	if delta == 0 {
		return pos.CartView{}, pos.ErrInvalidQuantity
	}
	return s.mutateCart(productID, func(current cart.Cart, _ []product.Product) (cart.Cart, error) {
		return current.ChangeQuantity(productID, delta)
	})
}

// RemoveItem drops a line.
func (s *POSServiceImpl) RemoveItem(productID int64) (pos.CartView, error) {
	return s.mutateCart(productID, func(current cart.Cart, _ []product.Product) (cart.Cart, error) {
		return current.Remove(productID)
	})
}

// ClearCart empties the cart.
func (s *POSServiceImpl) ClearCart() (pos.CartView, error) {
	return s.mutateCart(0, func(current cart.Cart, _ []product.Product) (cart.Cart, error) {
		return current.Clear(), nil
	})
}

func (s *POSServiceImpl) mutateCart(productID int64, fn func(cart.Cart, []product.Product) (cart.Cart, error)) (pos.CartView, error) {
	s.mu.Lock()
	if err := s.sellableLocked(); err != nil {
		s.mu.Unlock()
		return pos.CartView{}, err
	}

	next, err := fn(s.cart, s.products)
	if err != nil {
		view := pos.NewCartView(s.cart, s.cartVersion)
		inCart := s.cart.Quantity(productID)
		s.mu.Unlock()
		if errors.Is(err, cart.ErrStockExceeded) {
			s.publish(sse.EventStockExceeded, map[string]interface{}{
				"product_id": productID,
				"quantity":   inCart,
				"message":    err.Error(),
			})
		}
		return view, err
	}

	view := s.setCartLocked(next)
	s.mu.Unlock()

	s.publish(sse.EventCartUpdated, view)
	return view, nil
}
