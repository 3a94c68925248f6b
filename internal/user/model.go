package user

import "time"

type Account struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsApproved   bool      `json:"isApproved"`
	ShopName     string    `json:"shopName,omitempty"`
	PhoneNumber  string    `json:"phoneNumber,omitempty"`
	Address      string    `json:"address,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsApprovedShopkeeper reports whether the account may mutate the catalog.
func (a *Account) IsApprovedShopkeeper() bool {
	return a.Role.CanManageCatalog() && a.IsApproved
}

// CanShop reports whether the account may use a cart and place orders.
// Pending shopkeepers are locked out until an admin approves them.
func (a *Account) CanShop() bool {
	if !a.Role.CanShop() {
		return false
	}
	if a.Role.RequiresApproval() {
		return a.IsApproved
	}
	return true
}

type RegisterParams struct {
	Username    string
	Email       string
	Password    string
	Role        string
	ShopName    string
	PhoneNumber string
	Address     string
}
