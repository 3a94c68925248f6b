package user

import (
	"database/sql/driver"
	"fmt"
)

// Role is the closed set of account kinds. The zero value is not a valid role
// and grants no capability.
type Role int

const (
	RoleCustomer Role = iota + 1
	RoleShopkeeper
	RoleAdmin
)

func ParseRole(s string) (Role, error) {
	switch s {
	case "customer":
		return RoleCustomer, nil
	case "shopkeeper":
		return RoleShopkeeper, nil
	case "admin":
		return RoleAdmin, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleShopkeeper:
		return "shopkeeper"
	case RoleAdmin:
		return "admin"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleShopkeeper, RoleAdmin:
		return true
	}
	return false
}

// CanShop reports whether the role may own a cart and place orders.
func (r Role) CanShop() bool {
	switch r {
	case RoleCustomer, RoleShopkeeper:
		return true
	case RoleAdmin:
		return false
	}
	return false
}

// CanManageCatalog reports whether the role may own product listings.
func (r Role) CanManageCatalog() bool {
	switch r {
	case RoleShopkeeper:
		return true
	case RoleCustomer, RoleAdmin:
		return false
	}
	return false
}

// CanAdminister reports whether the role may review shopkeeper registrations.
func (r Role) CanAdminister() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleCustomer, RoleShopkeeper:
		return false
	}
	return false
}

// RequiresApproval reports whether accounts of this role start pending.
func (r Role) RequiresApproval() bool {
	switch r {
	case RoleShopkeeper:
		return true
	case RoleCustomer, RoleAdmin:
		return false
	}
	return false
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRole, int(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Value stores the role by name.
func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRole, int(r))
	}
	return r.String(), nil
}

func (r *Role) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return r.UnmarshalText([]byte(v))
	case []byte:
		return r.UnmarshalText(v)
	}
	return fmt.Errorf("%w: unsupported type %T", ErrInvalidRole, src)
}
