package user

import (
	"context"
	"database/sql"
	"errors"

	"marketmate-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, a *Account) error
	FindByID(ctx context.Context, id string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	ListShopkeepers(ctx context.Context, approved bool) ([]Account, error)
	SetApproved(ctx context.Context, id string, approved bool) (*Account, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const accountColumns = `id, username, email, password_hash, role, is_approved,
	shop_name, phone_number, address, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*Account, error) {
	var a Account
	err := row.Scan(
		&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.Role, &a.IsApproved,
		&a.ShopName, &a.PhoneNumber, &a.Address, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) Create(ctx context.Context, a *Account) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
	)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.ID, a.Username, a.Email, a.PasswordHash, a.Role, a.IsApproved,
		a.ShopName, a.PhoneNumber, a.Address, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
			return ErrAccountExists
		}
		log.Error("db: failed to insert user", zap.String("email", a.Email), zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM users WHERE id = $1`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	return a, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM users WHERE email = $1`, email,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	return a, err
}

func (r *repository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR username = $2)`,
		email, username,
	).Scan(&exists)
	return exists, err
}

func (r *repository) ListShopkeepers(ctx context.Context, approved bool) ([]Account, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListShopkeepers"),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+accountColumns+`
		FROM users
		WHERE role = $1 AND is_approved = $2
		ORDER BY created_at DESC`,
		RoleShopkeeper, approved,
	)
	if err != nil {
		log.Error("db: failed to list shopkeepers", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	accounts := []Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}

	return accounts, rows.Err()
}

func (r *repository) SetApproved(ctx context.Context, id string, approved bool) (*Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx, `
		UPDATE users
		SET is_approved = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+accountColumns,
		approved, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	return a, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAccountNotFound
	}

	return nil
}
