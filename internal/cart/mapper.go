package cart

import (
	"time"

	"marketmate-be/internal/db"
	"marketmate-be/internal/product"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type itemDocument struct {
	ProductID string               `bson:"productId"`
	Quantity  int                  `bson:"quantity"`
	Price     primitive.Decimal128 `bson:"price"`
}

type cartDocument struct {
	ID        string         `bson:"_id"`
	UserID    string         `bson:"userId"`
	Items     []itemDocument `bson:"items"`
	Version   int64          `bson:"version"`
	CreatedAt time.Time      `bson:"createdAt"`
	UpdatedAt time.Time      `bson:"updatedAt"`
}

func toDocument(c *Cart) cartDocument {
	items := make([]itemDocument, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, itemDocument{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     db.Decimal128(it.Price),
		})
	}
	return cartDocument{
		ID:        c.ID,
		UserID:    c.UserID,
		Items:     items,
		Version:   c.Version,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func fromDocument(d cartDocument) (*Cart, error) {
	items := make([]Item, 0, len(d.Items))
	for _, it := range d.Items {
		price, err := db.FromDecimal128(it.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, Item{ProductID: it.ProductID, Quantity: it.Quantity, Price: price})
	}
	return &Cart{
		ID:        d.ID,
		UserID:    d.UserID,
		Items:     items,
		Version:   d.Version,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}, nil
}

// toView joins the cart with live catalog records keyed by product id.
func toView(c *Cart, products map[string]*product.Product) *View {
	lines := make([]LineView, 0, len(c.Items))
	for _, it := range c.Items {
		lines = append(lines, LineView{
			Product:   products[it.ProductID],
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return &View{
		ID:        c.ID,
		UserID:    c.UserID,
		Items:     lines,
		UpdatedAt: c.UpdatedAt,
	}
}
