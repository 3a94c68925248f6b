package user

import "errors"

var (
	// -- Validation & Input --
	ErrMissingFields      = errors.New("missing required fields")
	ErrMissingCredentials = errors.New("missing email or password")
	ErrInvalidRole        = errors.New("invalid role")
	ErrRoleNotAllowed     = errors.New("role cannot be self-registered")
	ErrNotShopkeeper      = errors.New("user is not a shopkeeper")

	// -- Authentication/Authorization --
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrInvalidAdminCredentials = errors.New("invalid admin credentials")
	ErrShopkeeperNotApproved   = errors.New("shopkeeper account not approved")
	ErrAdminLoginRequired      = errors.New("admin accounts must use admin login")

	// -- Resource State --
	ErrAccountExists      = errors.New("account already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrShopkeeperNotFound = errors.New("shopkeeper not found")

	ErrShopkeeperAlreadyApproved = errors.New("shopkeeper already approved")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)
