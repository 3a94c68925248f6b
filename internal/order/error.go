package order

import (
	"errors"
	"fmt"
)

var (
	// -- Validation & Input --
	ErrMissingShippingAddress = errors.New("shipping address is required")

	// -- Business Rules --
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrCartChanged       = errors.New("cart was modified during checkout")

	// -- Authorization --
	ErrForbidden = errors.New("not the owner of this order")

	// -- Resource State --
	ErrOrderNotFound = errors.New("order not found")
)

// StockError reports the cart line whose conditional stock decrement failed.
type StockError struct {
	ProductID   string
	ProductName string
}

// Label names the product for client messages, falling back to its id once
// the listing has been deleted.
func (e *StockError) Label() string {
	if e.ProductName != "" {
		return e.ProductName
	}
	return e.ProductID
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.Label())
}

func (e *StockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
