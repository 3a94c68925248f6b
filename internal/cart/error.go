package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrMissingProductID = errors.New("product id is required")

	// -- Business Rules --
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrProductUnavailable = errors.New("product is not available")

	// -- Resource State --
	ErrCartNotFound = errors.New("cart not found")
	ErrItemNotFound = errors.New("product not in cart")

	// -- Database & Operation Failures --
	ErrConcurrentUpdate = errors.New("cart was modified concurrently")
)
