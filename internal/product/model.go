package product

import (
	"time"

	"github.com/shopspring/decimal"
)

const PlaceholderImageURL = "https://via.placeholder.com/300x300?text=No+Image"

type Category string

const (
	CategoryGroceries  Category = "Groceries"
	CategoryVegetables Category = "Vegetables"
	CategoryFruits     Category = "Fruits"
	CategoryDairy      Category = "Dairy"
	CategoryBakery     Category = "Bakery"
	CategoryBeverages  Category = "Beverages"
	CategorySnacks     Category = "Snacks"
	CategoryOther      Category = "Other"
)

// CategoryAll is the listing wildcard; it is never stored.
const CategoryAll = "All"

var Categories = []Category{
	CategoryGroceries, CategoryVegetables, CategoryFruits, CategoryDairy,
	CategoryBakery, CategoryBeverages, CategorySnacks, CategoryOther,
}

func (c Category) Valid() bool {
	switch c {
	case CategoryGroceries, CategoryVegetables, CategoryFruits, CategoryDairy,
		CategoryBakery, CategoryBeverages, CategorySnacks, CategoryOther:
		return true
	}
	return false
}

type Unit string

const (
	UnitKg     Unit = "kg"
	UnitGram   Unit = "gram"
	UnitG      Unit = "g"
	UnitLiter  Unit = "liter"
	UnitL      Unit = "L"
	UnitMl     Unit = "ml"
	UnitPiece  Unit = "piece"
	UnitPieces Unit = "pieces"
	UnitPacket Unit = "packet"
	UnitPack   Unit = "pack"
	UnitDozen  Unit = "dozen"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitKg, UnitGram, UnitG, UnitLiter, UnitL, UnitMl,
		UnitPiece, UnitPieces, UnitPacket, UnitPack, UnitDozen:
		return true
	}
	return false
}

type SortKey string

const (
	SortNewest    SortKey = ""
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortDiscount  SortKey = "discount"
)

// Shop is the public contact card of the shopkeeper owning a listing.
type Shop struct {
	ID          string `json:"_id"`
	ShopName    string `json:"shopName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

type Product struct {
	ID            string          `json:"_id"`
	ShopkeeperID  string          `json:"shopkeeperId"`
	Shop          *Shop           `json:"shopkeeper,omitempty"`
	ShopName      string          `json:"shopName"`
	ProductName   string          `json:"productName"`
	Category      Category        `json:"category"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Discount      decimal.Decimal `json:"discount"`
	FinalPrice    decimal.Decimal `json:"finalPrice"`
	Stock         int             `json:"stock"`
	Unit          Unit            `json:"unit"`
	ImageURL      string          `json:"imageUrl"`
	ImagePublicID string          `json:"imagePublicId,omitempty"`
	IsAvailable   bool            `json:"isAvailable"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdated   time.Time       `json:"lastUpdated"`
}

// ListQuery is the public catalog query.
type ListQuery struct {
	Category string
	Search   string
	Sort     SortKey
}

// Filter is what repositories understand; every service listing maps onto it.
type Filter struct {
	Category       Category
	NameContains   string
	ShopkeeperID   string
	OnlyAvailable  bool
	OnlyDiscounted bool
	Sort           SortKey
}

// Owner identifies the approved shopkeeper acting on the catalog.
type Owner struct {
	ID       string
	ShopName string
}

type CreateParams struct {
	ProductName   string
	Category      string
	Description   string
	Price         *decimal.Decimal
	Discount      *decimal.Decimal
	Stock         *int
	Unit          string
	ImageURL      string
	ImagePublicID string
}

// UpdateParams is a partial update; nil fields are left unchanged.
type UpdateParams struct {
	ProductName   *string
	Category      *string
	Description   *string
	Price         *decimal.Decimal
	Discount      *decimal.Decimal
	Stock         *int
	Unit          *string
	IsAvailable   *bool
	ImageURL      *string
	ImagePublicID *string
}
