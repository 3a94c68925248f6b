package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"marketmate-be/internal/auth"
	"marketmate-be/internal/config"
	"marketmate-be/internal/db"
	"marketmate-be/internal/logger"
	"marketmate-be/internal/product"
	"marketmate-be/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// seeder loads demo accounts and a sample catalog. Accounts that already exist
// are reused and shops that already list products are left alone, so it is
// safe to run more than once.
type seeder struct {
	users    user.Repository
	products product.Service
	now      func() time.Time
	log      *zap.Logger
}

func (s *seeder) ensureAccount(ctx context.Context, a seedAccount) (*user.Account, error) {
	existing, err := s.users.FindByEmail(ctx, a.Email)
	if err == nil {
		s.log.Info("account exists", zap.String("email", a.Email))
		return existing, nil
	}
	if !errors.Is(err, user.ErrAccountNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(a.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	acct := &user.Account{
		ID:           uuid.NewString(),
		Username:     a.Username,
		Email:        a.Email,
		PasswordHash: hash,
		Role:         a.Role,
		IsApproved:   true,
		ShopName:     a.ShopName,
		PhoneNumber:  a.PhoneNumber,
		Address:      a.Address,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, acct); err != nil {
		return nil, fmt.Errorf("create %s: %w", a.Email, err)
	}
	s.log.Info("account created", zap.String("email", a.Email), zap.Stringer("role", a.Role))
	return acct, nil
}

func (s *seeder) run(ctx context.Context) error {
	if _, err := s.ensureAccount(ctx, seedAdmin); err != nil {
		return err
	}

	owners := make([]product.Owner, 0, len(seedShops))
	skip := make(map[int]bool, len(seedShops))
	for i, shop := range seedShops {
		acct, err := s.ensureAccount(ctx, shop)
		if err != nil {
			return err
		}
		owners = append(owners, product.Owner{ID: acct.ID, ShopName: acct.ShopName})

		listed, err := s.products.Mine(ctx, acct.ID)
		if err != nil {
			return err
		}
		skip[i] = len(listed) > 0
	}

	created := 0
	for _, p := range seedCatalog {
		if skip[p.Shop] {
			continue
		}
		if _, err := s.products.Create(ctx, owners[p.Shop], p.params()); err != nil {
			return fmt.Errorf("create product %q: %w", p.Name, err)
		}
		created++
	}

	s.log.Info("seeding complete", zap.Int("products", created))
	return nil
}

func main() {
	cfg, err := config.LoadStoreConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Init(cfg.AppEnv, cfg.LogLevel)
	log := logger.L()
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var (
		users    user.Repository
		products product.Repository
	)
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, database, err := db.ConnectMongo(ctx, cfg)
		if err != nil {
			log.Fatal("mongo unavailable", zap.Error(err))
		}
		defer client.Disconnect(context.Background())
		if err := db.EnsureIndexes(ctx, database); err != nil {
			log.Fatal("index setup failed", zap.Error(err))
		}
		users, products = user.NewMongoRepository(database), product.NewMongoRepository(database)
	default:
		database := db.InitDB(cfg)
		defer database.Close()
		users, products = user.NewRepository(database), product.NewRepository(database)
	}

	s := &seeder{
		users:    users,
		products: product.NewService(products, nil),
		now:      time.Now,
		log:      log,
	}
	if err := s.run(ctx); err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}
}
