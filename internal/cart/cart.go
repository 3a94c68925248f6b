package cart

import "github.com/shopspring/decimal"

func (c *Cart) indexOf(productID string) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

// Has reports whether the cart holds a line for productID.
func (c *Cart) Has(productID string) bool {
	return c.indexOf(productID) >= 0
}

// Add merges qty into the product's line, or appends a new line. The merged
// quantity must not exceed the current stock.
func (c *Cart) Add(productID string, qty int, price decimal.Decimal, stock int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}

	i := c.indexOf(productID)
	merged := qty
	if i >= 0 {
		merged += c.Items[i].Quantity
	}
	if merged > stock {
		return ErrInsufficientStock
	}

	if i >= 0 {
		c.Items[i].Quantity = merged
		c.Items[i].Price = price
		return nil
	}

	c.Items = append(c.Items, Item{ProductID: productID, Quantity: qty, Price: price})
	return nil
}

// SetQuantity replaces the quantity of an existing line.
func (c *Cart) SetQuantity(productID string, qty int, price decimal.Decimal, stock int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}

	i := c.indexOf(productID)
	if i < 0 {
		return ErrItemNotFound
	}
	if qty > stock {
		return ErrInsufficientStock
	}

	c.Items[i].Quantity = qty
	c.Items[i].Price = price
	return nil
}

// Remove drops the product's line. Removing an absent line is a no-op.
func (c *Cart) Remove(productID string) {
	kept := c.Items[:0]
	for _, it := range c.Items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	c.Items = kept
}

func (c *Cart) Clear() {
	c.Items = []Item{}
}

func (c *Cart) TotalQuantity() int {
	total := 0
	for _, it := range c.Items {
		total += it.Quantity
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
