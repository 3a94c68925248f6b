package product

import "errors"

var (
	// -- Validation & Input --
	ErrMissingFields   = errors.New("missing required fields")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidUnit     = errors.New("invalid unit")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrPriceTooLarge   = errors.New("price exceeds the maximum")
	ErrInvalidDiscount = errors.New("discount must be between 0 and 100")
	ErrInvalidStock    = errors.New("stock must not be negative")

	// -- Authorization --
	ErrUpdateForbidden = errors.New("not the owner of this product (update)")
	ErrDeleteForbidden = errors.New("not the owner of this product (delete)")

	// -- Resource State --
	ErrProductNotFound = errors.New("product not found")
)
