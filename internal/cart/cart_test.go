package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eighty = decimal.NewFromInt(80)

func TestCart_Add(t *testing.T) {
	t.Run("New line then merge", func(t *testing.T) {
		c := &Cart{}
		require.NoError(t, c.Add("p-1", 3, eighty, 5))
		require.NoError(t, c.Add("p-1", 2, decimal.NewFromInt(75), 5))

		require.Len(t, c.Items, 1)
		assert.Equal(t, 5, c.Items[0].Quantity)
		assert.True(t, decimal.NewFromInt(75).Equal(c.Items[0].Price))
	})

	t.Run("Merged quantity over stock", func(t *testing.T) {
		c := &Cart{Items: []Item{{ProductID: "p-1", Quantity: 4}}}
		err := c.Add("p-1", 2, eighty, 5)

		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Equal(t, 4, c.Items[0].Quantity)
	})

	t.Run("Quantity below one", func(t *testing.T) {
		c := &Cart{}
		assert.ErrorIs(t, c.Add("p-1", 0, eighty, 5), ErrInvalidQuantity)
		assert.True(t, c.IsEmpty())
	})

	t.Run("Lines keep insertion order", func(t *testing.T) {
		c := &Cart{}
		require.NoError(t, c.Add("b", 1, eighty, 9))
		require.NoError(t, c.Add("a", 1, eighty, 9))
		require.NoError(t, c.Add("b", 1, eighty, 9))

		assert.Equal(t, "b", c.Items[0].ProductID)
		assert.Equal(t, "a", c.Items[1].ProductID)
	})
}

func TestCart_SetQuantity(t *testing.T) {
	c := &Cart{Items: []Item{{ProductID: "p-1", Quantity: 2}, {ProductID: "p-2", Quantity: 1}}}

	require.NoError(t, c.SetQuantity("p-1", 4, eighty, 4))
	assert.Equal(t, 5, c.TotalQuantity())

	// Same quantity leaves the total unchanged.
	require.NoError(t, c.SetQuantity("p-1", 4, eighty, 4))
	assert.Equal(t, 5, c.TotalQuantity())

	assert.ErrorIs(t, c.SetQuantity("p-1", 5, eighty, 4), ErrInsufficientStock)
	assert.ErrorIs(t, c.SetQuantity("p-1", 0, eighty, 4), ErrInvalidQuantity)
	assert.ErrorIs(t, c.SetQuantity("p-9", 1, eighty, 4), ErrItemNotFound)
	assert.Equal(t, 5, c.TotalQuantity())
}

func TestCart_RemoveAndClear(t *testing.T) {
	c := &Cart{Items: []Item{{ProductID: "p-1", Quantity: 2}, {ProductID: "p-2", Quantity: 1}}}

	c.Remove("p-9")
	assert.Len(t, c.Items, 2)

	c.Remove("p-1")
	require.Len(t, c.Items, 1)
	assert.Equal(t, "p-2", c.Items[0].ProductID)
	assert.True(t, c.Has("p-2"))
	assert.False(t, c.Has("p-1"))

	c.Remove("p-2")
	assert.True(t, c.IsEmpty())

	c.Items = []Item{{ProductID: "p-3", Quantity: 7}}
	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.NotNil(t, c.Items)
	assert.Equal(t, 0, c.TotalQuantity())
}
