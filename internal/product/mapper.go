package product

import (
	"time"

	"marketmate-be/internal/db"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type productDocument struct {
	ID            string               `bson:"_id"`
	ShopkeeperID  string               `bson:"shopkeeperId"`
	ShopName      string               `bson:"shopName"`
	ProductName   string               `bson:"productName"`
	Category      string               `bson:"category"`
	Description   string               `bson:"description"`
	Price         primitive.Decimal128 `bson:"price"`
	Discount      primitive.Decimal128 `bson:"discount"`
	FinalPrice    primitive.Decimal128 `bson:"finalPrice"`
	Stock         int                  `bson:"stock"`
	Unit          string               `bson:"unit"`
	ImageURL      string               `bson:"imageUrl"`
	ImagePublicID string               `bson:"imagePublicId,omitempty"`
	IsAvailable   bool                 `bson:"isAvailable"`
	CreatedAt     time.Time            `bson:"createdAt"`
	LastUpdated   time.Time            `bson:"lastUpdated"`
}

type shopDocument struct {
	ID          string `bson:"_id"`
	ShopName    string `bson:"shopName"`
	PhoneNumber string `bson:"phoneNumber"`
	Address     string `bson:"address"`
}

func toDocument(p *Product) productDocument {
	return productDocument{
		ID:            p.ID,
		ShopkeeperID:  p.ShopkeeperID,
		ShopName:      p.ShopName,
		ProductName:   p.ProductName,
		Category:      string(p.Category),
		Description:   p.Description,
		Price:         db.Decimal128(p.Price),
		Discount:      db.Decimal128(p.Discount),
		FinalPrice:    db.Decimal128(p.FinalPrice),
		Stock:         p.Stock,
		Unit:          string(p.Unit),
		ImageURL:      p.ImageURL,
		ImagePublicID: p.ImagePublicID,
		IsAvailable:   p.IsAvailable,
		CreatedAt:     p.CreatedAt,
		LastUpdated:   p.LastUpdated,
	}
}

func fromDocument(d productDocument) (*Product, error) {
	price, err := db.FromDecimal128(d.Price)
	if err != nil {
		return nil, err
	}
	discount, err := db.FromDecimal128(d.Discount)
	if err != nil {
		return nil, err
	}
	finalPrice, err := db.FromDecimal128(d.FinalPrice)
	if err != nil {
		return nil, err
	}

	return &Product{
		ID:            d.ID,
		ShopkeeperID:  d.ShopkeeperID,
		ShopName:      d.ShopName,
		ProductName:   d.ProductName,
		Category:      Category(d.Category),
		Description:   d.Description,
		Price:         price,
		Discount:      discount,
		FinalPrice:    finalPrice,
		Stock:         d.Stock,
		Unit:          Unit(d.Unit),
		ImageURL:      d.ImageURL,
		ImagePublicID: d.ImagePublicID,
		IsAvailable:   d.IsAvailable,
		CreatedAt:     d.CreatedAt.UTC(),
		LastUpdated:   d.LastUpdated.UTC(),
	}, nil
}
