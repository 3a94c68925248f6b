package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"marketmate-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	// CreateFromCart checks out the account's cart into o: it decrements stock
	// for every line, fills o's snapshots and total, stores o and destroys
	// the cart. Either all of it happens or none of it does.
	CreateFromCart(ctx context.Context, o *Order) error
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	FindByID(ctx context.Context, id string) (*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const decrementStock = `
	UPDATE products
	SET stock = stock - $1, last_updated = NOW()
	WHERE id = $2 AND stock >= $1 AND is_available
	RETURNING product_name, shop_name, price, discount, final_price`

func (r *repository) CreateFromCart(ctx context.Context, o *Order) (err error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderFromCart"),
		zap.String("user_id", o.UserID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// 1. Lock the cart so concurrent cart edits wait for checkout.
	var cartID string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM carts WHERE user_id = $1 FOR UPDATE`, o.UserID,
	).Scan(&cartID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrEmptyCart
	}
	if err != nil {
		return err
	}

	lines, err := loadCartLines(ctx, tx, cartID)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return ErrEmptyCart
	}

	// 2. Conditional decrement per line, snapshotting the updated row.
	for _, line := range lines {
		var (
			name, shop string
			it         Item
		)
		err = tx.QueryRowContext(ctx, decrementStock, line.Quantity, line.ProductID).
			Scan(&name, &shop, &it.Price, &it.Discount, &it.FinalPrice)
		if errors.Is(err, sql.ErrNoRows) {
			err = stockError(ctx, tx, line.ProductID)
			log.Info("checkout rejected", zap.Error(err))
			return err
		}
		if err != nil {
			return err
		}
		o.addItem(newItem(line.ProductID, name, shop, line.Quantity, it.Price, it.Discount, it.FinalPrice))
	}

	// 3. Insert order and its snapshots.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, user_id, total_amount, shipping_address,
			payment_method, status, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		o.ID, o.UserID, o.TotalAmount, o.ShippingAddress,
		o.PaymentMethod, o.Status, o.CreatedAt,
	)
	if err != nil {
		return err
	}

	for pos, it := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (
				order_id, product_id, product_name, shop_name, quantity,
				price, discount, final_price, line_total, position
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			o.ID, it.ProductID, it.ProductName, it.ShopName, it.Quantity,
			it.Price, it.Discount, it.FinalPrice, it.LineTotal, pos,
		)
		if err != nil {
			return fmt.Errorf("insert order item %s: %w", it.ProductID, err)
		}
	}

	// 4. Destroy the cart; cart_items cascade.
	if _, err = tx.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, cartID); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Error("failed to commit order", zap.Error(err))
		return err
	}
	return nil
}

func loadCartLines(ctx context.Context, tx *sql.Tx, cartID string) ([]cartLine, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT product_id, quantity
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY position`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []cartLine
	for rows.Next() {
		var l cartLine
		if err := rows.Scan(&l.ProductID, &l.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// stockError names the product whose decrement matched no row.
func stockError(ctx context.Context, tx *sql.Tx, productID string) error {
	se := &StockError{ProductID: productID}
	err := tx.QueryRowContext(ctx,
		`SELECT product_name FROM products WHERE id = $1`, productID,
	).Scan(&se.ProductName)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	return se
}

const selectOrder = `
	SELECT id, user_id, total_amount, shipping_address, payment_method, status, created_at
	FROM orders`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.ShippingAddress,
		&o.PaymentMethod, &o.Status, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	o.Items = []Item{}
	return &o, nil
}

// attachItems loads snapshots for the given orders in one query.
func (r *repository) attachItems(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[string]*Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT order_id, product_id, product_name, shop_name, quantity,
			price, discount, final_price, line_total
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, position`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID string
			it      Item
		)
		if err := rows.Scan(&orderID, &it.ProductID, &it.ProductName, &it.ShopName, &it.Quantity,
			&it.Price, &it.Discount, &it.FinalPrice, &it.LineTotal); err != nil {
			return err
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx,
		selectOrder+` WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ptrs []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		ptrs = append(ptrs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if err := r.attachItems(ctx, ptrs); err != nil {
		return nil, err
	}

	orders := make([]Order, 0, len(ptrs))
	for _, o := range ptrs {
		orders = append(orders, *o)
	}
	return orders, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, selectOrder+` WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, []*Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}
