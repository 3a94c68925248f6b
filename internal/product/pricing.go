package product

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// MaxPrice is the largest price the catalog stores.
var MaxPrice = decimal.New(1, 10).Sub(decimal.New(1, -2))

// ComputeFinalPrice applies a percentage discount, rounded to two decimals.
func ComputeFinalPrice(price, discount decimal.Decimal) decimal.Decimal {
	if !discount.IsPositive() {
		return price.Round(2)
	}
	return price.Sub(price.Mul(discount).Div(hundred)).Round(2)
}

// Reprice recomputes the derived final price and must run before every write.
func (p *Product) Reprice() {
	p.FinalPrice = ComputeFinalPrice(p.Price, p.Discount)
}
