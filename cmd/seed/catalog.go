package main

import (
	"marketmate-be/internal/product"
	"marketmate-be/internal/user"

	"github.com/shopspring/decimal"
)

type seedAccount struct {
	Username    string
	Email       string
	Password    string
	Role        user.Role
	ShopName    string
	PhoneNumber string
	Address     string
}

type seedProduct struct {
	Shop        int
	Name        string
	Category    product.Category
	Price       int64
	Discount    int64
	Stock       int
	Unit        product.Unit
	Description string
}

var seedAdmin = seedAccount{
	Username: "admin",
	Email:    "admin@marketmate.com",
	Password: "admin123",
	Role:     user.RoleAdmin,
}

var seedShops = []seedAccount{
	{
		Username: "freshmart", Email: "freshmart@example.com", Password: "password123", Role: user.RoleShopkeeper,
		ShopName: "FreshMart Superstore", PhoneNumber: "9876543210", Address: "12 Market Road, City Center",
	},
	{
		Username: "greenbasket", Email: "greenbasket@example.com", Password: "password123", Role: user.RoleShopkeeper,
		ShopName: "Green Basket Organics", PhoneNumber: "9876501234", Address: "5 Park Lane, North Block",
	},
}

var seedCatalog = []seedProduct{
	{0, "Basmati Rice Premium 5kg", product.CategoryGroceries, 650, 10, 40, product.UnitPacket, "Premium long-grain aromatic rice, perfect for biryani."},
	{1, "Sunflower Oil 1L", product.CategoryGroceries, 180, 5, 60, product.UnitLiter, "Refined, light and healthy cooking oil."},
	{0, "Wheat Flour 5kg", product.CategoryGroceries, 320, 0, 50, product.UnitPacket, "Premium whole wheat flour for rotis and breads."},

	{0, "Fresh Tomatoes 1kg", product.CategoryVegetables, 40, 0, 100, product.UnitKg, "Bright red and juicy tomatoes, farm fresh."},
	{1, "Potatoes 5kg", product.CategoryVegetables, 150, 0, 120, product.UnitKg, "Clean and firm potatoes, best for cooking."},
	{0, "Onions 2kg", product.CategoryVegetables, 60, 10, 80, product.UnitKg, "Fresh yellow onions with strong flavor."},

	{0, "Bananas 1 Dozen", product.CategoryFruits, 60, 15, 80, product.UnitDozen, "Sweet ripe bananas, rich in potassium."},
	{1, "Apples Kashmir 1kg", product.CategoryFruits, 180, 8, 70, product.UnitKg, "Crisp Kashmir apples, fresh and sweet."},
	{0, "Oranges 1kg", product.CategoryFruits, 80, 5, 60, product.UnitKg, "Juicy oranges loaded with vitamin C."},

	{0, "Toned Milk 1L", product.CategoryDairy, 52, 0, 100, product.UnitLiter, "Fresh toned milk, delivered daily."},
	{1, "Curd 500g", product.CategoryDairy, 45, 0, 90, product.UnitPacket, "Thick and creamy homemade style curd."},
	{0, "Ghee 500ml", product.CategoryDairy, 450, 12, 30, product.UnitPacket, "Pure desi ghee, made from cow milk."},

	{0, "Whole Wheat Bread", product.CategoryBakery, 45, 0, 50, product.UnitPacket, "Freshly baked whole wheat bread daily."},
	{1, "Chocolate Muffins (6)", product.CategoryBakery, 150, 12, 30, product.UnitPacket, "Soft and rich chocolate muffins."},
	{0, "Croissants (4 pcs)", product.CategoryBakery, 120, 8, 25, product.UnitPacket, "Buttery French croissants, perfect breakfast."},

	{0, "Orange Juice 1L", product.CategoryBeverages, 120, 5, 40, product.UnitLiter, "100% pure orange juice, no added sugar."},
	{1, "Green Tea (100 bags)", product.CategoryBeverages, 220, 0, 35, product.UnitPacket, "Refreshing green tea for healthy living."},
	{0, "Coffee Powder 250g", product.CategoryBeverages, 280, 10, 45, product.UnitPacket, "Premium coffee powder, rich aroma."},

	{0, "Potato Chips Family Pack", product.CategorySnacks, 95, 10, 80, product.UnitPacket, "Crispy classic salted potato chips."},
	{1, "Dark Chocolate 70%", product.CategorySnacks, 120, 15, 25, product.UnitPiece, "Rich cocoa dark chocolate, premium quality."},
	{0, "Almonds 250g", product.CategorySnacks, 380, 0, 20, product.UnitPacket, "Premium roasted almonds, protein rich."},

	{1, "Honey 500ml", product.CategoryOther, 320, 8, 35, product.UnitPacket, "Pure natural honey, no additives."},
	{0, "Salt 1kg", product.CategoryOther, 25, 0, 200, product.UnitPacket, "Pure iodized salt for cooking."},
	{1, "Spice Mix 100g", product.CategoryOther, 80, 5, 50, product.UnitPacket, "Traditional masala blend for curries."},
}

func (p seedProduct) params() product.CreateParams {
	price := decimal.NewFromInt(p.Price)
	discount := decimal.NewFromInt(p.Discount)
	stock := p.Stock
	return product.CreateParams{
		ProductName: p.Name,
		Category:    string(p.Category),
		Description: p.Description,
		Price:       &price,
		Discount:    &discount,
		Stock:       &stock,
		Unit:        string(p.Unit),
	}
}
