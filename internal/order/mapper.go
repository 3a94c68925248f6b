package order

import (
	"time"

	"marketmate-be/internal/db"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type itemDocument struct {
	ProductID   string               `bson:"product"`
	ProductName string               `bson:"productName"`
	ShopName    string               `bson:"shopName"`
	Quantity    int                  `bson:"quantity"`
	Price       primitive.Decimal128 `bson:"price"`
	Discount    primitive.Decimal128 `bson:"discount"`
	FinalPrice  primitive.Decimal128 `bson:"finalPrice"`
	LineTotal   primitive.Decimal128 `bson:"lineTotal"`
}

type orderDocument struct {
	ID              string               `bson:"_id"`
	UserID          string               `bson:"userId"`
	Items           []itemDocument       `bson:"items"`
	TotalAmount     primitive.Decimal128 `bson:"totalAmount"`
	ShippingAddress string               `bson:"shippingAddress"`
	PaymentMethod   string               `bson:"paymentMethod"`
	Status          string               `bson:"status"`
	CreatedAt       time.Time            `bson:"createdAt"`
}

// reservedProduct is the product state returned by the stock decrement.
type reservedProduct struct {
	ProductName string               `bson:"productName"`
	ShopName    string               `bson:"shopName"`
	Price       primitive.Decimal128 `bson:"price"`
	Discount    primitive.Decimal128 `bson:"discount"`
	FinalPrice  primitive.Decimal128 `bson:"finalPrice"`
}

type cartLineDocument struct {
	ProductID string `bson:"productId"`
	Quantity  int    `bson:"quantity"`
}

type cartDocument struct {
	ID      string             `bson:"_id"`
	Items   []cartLineDocument `bson:"items"`
	Version int64              `bson:"version"`
}

func toDocument(o *Order) orderDocument {
	items := make([]itemDocument, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, itemDocument{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ShopName:    it.ShopName,
			Quantity:    it.Quantity,
			Price:       db.Decimal128(it.Price),
			Discount:    db.Decimal128(it.Discount),
			FinalPrice:  db.Decimal128(it.FinalPrice),
			LineTotal:   db.Decimal128(it.LineTotal),
		})
	}
	return orderDocument{
		ID:              o.ID,
		UserID:          o.UserID,
		Items:           items,
		TotalAmount:     db.Decimal128(o.TotalAmount),
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
		Status:          string(o.Status),
		CreatedAt:       o.CreatedAt,
	}
}

func fromDocument(d orderDocument) (*Order, error) {
	o := &Order{
		ID:              d.ID,
		UserID:          d.UserID,
		Items:           make([]Item, 0, len(d.Items)),
		ShippingAddress: d.ShippingAddress,
		PaymentMethod:   d.PaymentMethod,
		Status:          Status(d.Status),
		CreatedAt:       d.CreatedAt.UTC(),
	}

	var err error
	if o.TotalAmount, err = db.FromDecimal128(d.TotalAmount); err != nil {
		return nil, err
	}

	for _, it := range d.Items {
		item := Item{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ShopName:    it.ShopName,
			Quantity:    it.Quantity,
		}
		if item.Price, err = db.FromDecimal128(it.Price); err != nil {
			return nil, err
		}
		if item.Discount, err = db.FromDecimal128(it.Discount); err != nil {
			return nil, err
		}
		if item.FinalPrice, err = db.FromDecimal128(it.FinalPrice); err != nil {
			return nil, err
		}
		if item.LineTotal, err = db.FromDecimal128(it.LineTotal); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	return o, nil
}

// snapshot converts the decremented product into an order line.
func (p reservedProduct) snapshot(productID string, qty int) (Item, error) {
	price, err := db.FromDecimal128(p.Price)
	if err != nil {
		return Item{}, err
	}
	discount, err := db.FromDecimal128(p.Discount)
	if err != nil {
		return Item{}, err
	}
	final, err := db.FromDecimal128(p.FinalPrice)
	if err != nil {
		return Item{}, err
	}
	return newItem(productID, p.ProductName, p.ShopName, qty, price, discount, final), nil
}
