package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const StatusPending Status = "pending"

const PaymentCashOnDelivery = "cash_on_delivery"

// Item is an immutable snapshot of a product at checkout time.
type Item struct {
	ProductID   string          `json:"product"`
	ProductName string          `json:"productName"`
	ShopName    string          `json:"shopName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
	FinalPrice  decimal.Decimal `json:"finalPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// newItem snapshots a decremented product row. Line totals use the final price.
func newItem(productID, name, shop string, qty int, price, discount, finalPrice decimal.Decimal) Item {
	return Item{
		ProductID:   productID,
		ProductName: name,
		ShopName:    shop,
		Quantity:    qty,
		Price:       price,
		Discount:    discount,
		FinalPrice:  finalPrice,
		LineTotal:   finalPrice.Mul(decimal.NewFromInt(int64(qty))),
	}
}

type Order struct {
	ID              string          `json:"_id"`
	UserID          string          `json:"user"`
	Items           []Item          `json:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ShippingAddress string          `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// addItem appends a snapshot and folds its line total into the order total.
func (o *Order) addItem(it Item) {
	o.Items = append(o.Items, it)
	o.TotalAmount = o.TotalAmount.Add(it.LineTotal)
}

// cartLine is the part of a cart line checkout reads.
type cartLine struct {
	ProductID string
	Quantity  int
}

type CreateParams struct {
	ShippingAddress string
	PaymentMethod   string
}
