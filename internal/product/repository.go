package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"marketmate-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*Product, error)
	List(ctx context.Context, f Filter) ([]Product, error)
	// Update writes the editable fields. Stock is written only when setStock is
	// true; either way p.Stock is refreshed from the stored row.
	Update(ctx context.Context, p *Product, setStock bool) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectProduct = `
	SELECT
		p.id, p.shopkeeper_id, p.shop_name, p.product_name, p.category, p.description,
		p.price, p.discount, p.final_price, p.stock, p.unit,
		p.image_url, p.image_public_id, p.is_available, p.created_at, p.last_updated,
		COALESCE(u.shop_name, ''), COALESCE(u.phone_number, ''), COALESCE(u.address, ''),
		u.id IS NOT NULL
	FROM products p
	LEFT JOIN users u ON u.id = p.shopkeeper_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var (
		p        Product
		shop     Shop
		hasOwner bool
	)
	err := row.Scan(
		&p.ID, &p.ShopkeeperID, &p.ShopName, &p.ProductName, &p.Category, &p.Description,
		&p.Price, &p.Discount, &p.FinalPrice, &p.Stock, &p.Unit,
		&p.ImageURL, &p.ImagePublicID, &p.IsAvailable, &p.CreatedAt, &p.LastUpdated,
		&shop.ShopName, &shop.PhoneNumber, &shop.Address,
		&hasOwner,
	)
	if err != nil {
		return nil, err
	}
	if hasOwner {
		shop.ID = p.ShopkeeperID
		p.Shop = &shop
	}
	return &p, nil
}

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func orderBy(sort SortKey) string {
	switch sort {
	case SortPriceLow:
		return "p.final_price ASC, p.created_at DESC"
	case SortPriceHigh:
		return "p.final_price DESC, p.created_at DESC"
	case SortDiscount:
		return "p.discount DESC, p.created_at DESC"
	default:
		return "p.created_at DESC"
	}
}

// buildListQuery renders the WHERE/ORDER BY clause for a filter.
func buildListQuery(f Filter) (string, []any) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.OnlyAvailable {
		where = append(where, "p.is_available = TRUE")
	}
	if f.OnlyDiscounted {
		where = append(where, "p.discount > 0")
	}
	if f.Category != "" {
		where = append(where, "p.category = "+arg(string(f.Category)))
	}
	if f.ShopkeeperID != "" {
		where = append(where, "p.shopkeeper_id = "+arg(f.ShopkeeperID))
	}
	if f.NameContains != "" {
		where = append(where, "p.product_name ILIKE "+arg("%"+escapeLike(f.NameContains)+"%"))
	}

	query := selectProduct
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + orderBy(f.Sort)

	return query, args
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
	)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (
			id, shopkeeper_id, shop_name, product_name, category, description,
			price, discount, final_price, stock, unit,
			image_url, image_public_id, is_available, created_at, last_updated
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		p.ID, p.ShopkeeperID, p.ShopName, p.ProductName, p.Category, p.Description,
		p.Price, p.Discount, p.FinalPrice, p.Stock, p.Unit,
		p.ImageURL, p.ImagePublicID, p.IsAvailable, p.CreatedAt, p.LastUpdated,
	)
	if err != nil {
		log.Error("db: failed to insert product", zap.String("product_name", p.ProductName), zap.Error(err))
	}
	return err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, selectProduct+` WHERE p.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	return p, err
}

func (r *repository) FindByIDs(ctx context.Context, ids []string) (map[string]*Product, error) {
	found := make(map[string]*Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	rows, err := r.db.QueryContext(ctx, selectProduct+` WHERE p.id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		found[p.ID] = p
	}
	return found, rows.Err()
}

func (r *repository) List(ctx context.Context, f Filter) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	query, args := buildListQuery(f)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("db: failed to list products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}

	return products, rows.Err()
}

func (r *repository) Update(ctx context.Context, p *Product, setStock bool) error {
	var stock sql.NullInt64
	if setStock {
		stock = sql.NullInt64{Int64: int64(p.Stock), Valid: true}
	}

	err := r.db.QueryRowContext(ctx, `
		UPDATE products SET
			product_name = $1, category = $2, description = $3,
			price = $4, discount = $5, final_price = $6, stock = COALESCE($7, stock), unit = $8,
			image_url = $9, image_public_id = $10, is_available = $11, last_updated = $12
		WHERE id = $13
		RETURNING stock`,
		p.ProductName, p.Category, p.Description,
		p.Price, p.Discount, p.FinalPrice, stock, p.Unit,
		p.ImageURL, p.ImagePublicID, p.IsAvailable, p.LastUpdated,
		p.ID,
	).Scan(&p.Stock)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProductNotFound
	}
	return err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
