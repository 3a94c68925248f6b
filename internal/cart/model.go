package cart

import (
	"time"

	"marketmate-be/internal/product"

	"github.com/shopspring/decimal"
)

// Item is one cart line. Price is the product's final price when the line was
// last added or updated; it is shown to the client but never used for totals.
type Item struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

type Cart struct {
	ID        string
	UserID    string
	Items     []Item
	CreatedAt time.Time
	UpdatedAt time.Time

	// Version increments on every write and guards document-store updates.
	Version int64
}

// LineView is a cart line joined with the live catalog record.
// Product is nil when the listing has since been deleted.
type LineView struct {
	Product   *product.Product `json:"product"`
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	Price     decimal.Decimal  `json:"price"`
}

type View struct {
	ID        string     `json:"_id"`
	UserID    string     `json:"user"`
	Items     []LineView `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
