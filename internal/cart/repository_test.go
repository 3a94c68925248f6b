package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	cartCols = []string{"id", "user_id", "version", "created_at", "updated_at"}
	itemCols = []string{"product_id", "quantity", "price"}
)

func TestRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Loads items in position order", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		now := time.Now()
		mock.ExpectQuery(`SELECT id, user_id, version, created_at, updated_at FROM carts WHERE user_id = \$1$`).
			WithArgs("u-1").
			WillReturnRows(sqlmock.NewRows(cartCols).AddRow("c-1", "u-1", 4, now, now))
		mock.ExpectQuery(`SELECT product_id, quantity, price FROM cart_items WHERE cart_id = \$1 ORDER BY position`).
			WithArgs("c-1").
			WillReturnRows(sqlmock.NewRows(itemCols).
				AddRow("p-1", 3, "80.00").
				AddRow("p-2", 1, "12.50"))

		c, err := NewRepository(db).Get(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, "c-1", c.ID)
		assert.Equal(t, int64(4), c.Version)
		require.Len(t, c.Items, 2)
		assert.Equal(t, "p-1", c.Items[0].ProductID)
		assert.True(t, decimal.RequireFromString("12.5").Equal(c.Items[1].Price))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing cart", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM carts WHERE user_id = \$1`).
			WithArgs("u-1").
			WillReturnRows(sqlmock.NewRows(cartCols))

		_, err = NewRepository(db).Get(ctx, "u-1")
		assert.ErrorIs(t, err, ErrCartNotFound)
	})
}

func TestRepository_GetOrCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectExec(`INSERT INTO carts .* ON CONFLICT \(user_id\) DO NOTHING`).
		WithArgs(sqlmock.AnyArg(), "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM carts WHERE user_id = \$1`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(cartCols).AddRow("c-1", "u-1", 0, now, now))
	mock.ExpectQuery(`FROM cart_items`).
		WithArgs("c-1").
		WillReturnRows(sqlmock.NewRows(itemCols))

	c, err := NewRepository(db).GetOrCreate(context.Background(), "u-1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.NotNil(t, c.Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Mutate(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("Rewrites items and bumps version", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO carts`).
			WithArgs(sqlmock.AnyArg(), "u-1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT id, user_id, version, created_at, updated_at FROM carts WHERE user_id = \$1 FOR UPDATE`).
			WithArgs("u-1").
			WillReturnRows(sqlmock.NewRows(cartCols).AddRow("c-1", "u-1", 2, now, now))
		mock.ExpectQuery(`FROM cart_items`).
			WithArgs("c-1").
			WillReturnRows(sqlmock.NewRows(itemCols).AddRow("p-1", 1, "80.00"))
		mock.ExpectExec(`DELETE FROM cart_items WHERE cart_id = \$1`).
			WithArgs("c-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO cart_items`).
			WithArgs("c-1", "p-1", 3, sqlmock.AnyArg(), 0).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO cart_items`).
			WithArgs("c-1", "p-2", 1, sqlmock.AnyArg(), 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE carts SET version = \$1, updated_at = \$2 WHERE id = \$3`).
			WithArgs(int64(3), sqlmock.AnyArg(), "c-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		c, err := NewRepository(db).Mutate(ctx, "u-1", true, func(c *Cart) error {
			if err := c.Add("p-1", 2, eighty, 5); err != nil {
				return err
			}
			return c.Add("p-2", 1, decimal.NewFromInt(10), 5)
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), c.Version)
		assert.Equal(t, 4, c.TotalQuantity())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Callback error rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`FOR UPDATE`).
			WithArgs("u-1").
			WillReturnRows(sqlmock.NewRows(cartCols).AddRow("c-1", "u-1", 2, now, now))
		mock.ExpectQuery(`FROM cart_items`).
			WithArgs("c-1").
			WillReturnRows(sqlmock.NewRows(itemCols))
		mock.ExpectRollback()

		_, err = NewRepository(db).Mutate(ctx, "u-1", false, func(c *Cart) error {
			return ErrItemNotFound
		})
		assert.ErrorIs(t, err, ErrItemNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing cart without create", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`FOR UPDATE`).
			WithArgs("u-1").
			WillReturnRows(sqlmock.NewRows(cartCols))
		mock.ExpectRollback()

		called := false
		_, err = NewRepository(db).Mutate(ctx, "u-1", false, func(c *Cart) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, ErrCartNotFound)
		assert.False(t, called)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Item insert failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows(cartCols).AddRow("c-1", "u-1", 0, now, now))
		mock.ExpectQuery(`FROM cart_items`).
			WillReturnRows(sqlmock.NewRows(itemCols).AddRow("p-1", 1, "80.00"))
		mock.ExpectExec(`DELETE FROM cart_items`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO cart_items`).
			WillReturnError(errors.New("fk violation"))
		mock.ExpectRollback()

		_, err = NewRepository(db).Mutate(ctx, "u-1", false, func(c *Cart) error { return nil })
		assert.EqualError(t, err, "insert cart item p-1: fk violation")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
