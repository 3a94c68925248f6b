package db

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Decimal128 converts a money value to its BSON representation.
func Decimal128(d decimal.Decimal) primitive.Decimal128 {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		// decimal.String never produces a value ParseDecimal128 rejects within money ranges.
		panic(fmt.Sprintf("decimal %s out of Decimal128 range: %v", d, err))
	}
	return v
}

// FromDecimal128 converts a stored BSON decimal back to a money value.
func FromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	return decimal.NewFromString(v.String())
}
