package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"marketmate-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MutateFunc edits a loaded cart in place. Returning an error aborts the write.
type MutateFunc func(c *Cart) error

type Repository interface {
	Get(ctx context.Context, userID string) (*Cart, error)
	GetOrCreate(ctx context.Context, userID string) (*Cart, error)
	// Mutate loads the account's cart, applies fn and persists the result.
	// Concurrent mutations of the same account's cart are serialized.
	// With create=false a missing cart fails with ErrCartNotFound.
	Mutate(ctx context.Context, userID string, create bool, fn MutateFunc) (*Cart, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const insertCartIfMissing = `
	INSERT INTO carts (id, user_id, version, created_at, updated_at)
	VALUES ($1, $2, 0, NOW(), NOW())
	ON CONFLICT (user_id) DO NOTHING`

func loadCart(ctx context.Context, q queryer, userID string, forUpdate bool) (*Cart, error) {
	query := `SELECT id, user_id, version, created_at, updated_at FROM carts WHERE user_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var c Cart
	err := q.QueryRowContext(ctx, query, userID).
		Scan(&c.ID, &c.UserID, &c.Version, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT product_id, quantity, price
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY position`, c.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	c.Items = []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		c.Items = append(c.Items, it)
	}

	return &c, rows.Err()
}

func (r *repository) Get(ctx context.Context, userID string) (*Cart, error) {
	return loadCart(ctx, r.db, userID, false)
}

func (r *repository) GetOrCreate(ctx context.Context, userID string) (*Cart, error) {
	if _, err := r.db.ExecContext(ctx, insertCartIfMissing, uuid.NewString(), userID); err != nil {
		return nil, err
	}
	return loadCart(ctx, r.db, userID, false)
}

func (r *repository) Mutate(ctx context.Context, userID string, create bool, fn MutateFunc) (_ *Cart, err error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "MutateCart"),
		zap.String("user_id", userID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if create {
		if _, err = tx.ExecContext(ctx, insertCartIfMissing, uuid.NewString(), userID); err != nil {
			return nil, err
		}
	}

	// The row lock serializes every mutation of this account's cart.
	c, err := loadCart(ctx, tx, userID, true)
	if err != nil {
		return nil, err
	}

	if err = fn(c); err != nil {
		return nil, err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, c.ID); err != nil {
		return nil, err
	}
	for pos, it := range c.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO cart_items (cart_id, product_id, quantity, price, position)
			VALUES ($1, $2, $3, $4, $5)`,
			c.ID, it.ProductID, it.Quantity, it.Price, pos,
		)
		if err != nil {
			return nil, fmt.Errorf("insert cart item %s: %w", it.ProductID, err)
		}
	}

	c.UpdatedAt = time.Now().UTC()
	c.Version++
	if _, err = tx.ExecContext(ctx,
		`UPDATE carts SET version = $1, updated_at = $2 WHERE id = $3`,
		c.Version, c.UpdatedAt, c.ID,
	); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		log.Error("failed to commit cart", zap.Error(err))
		return nil, err
	}

	return c, nil
}
