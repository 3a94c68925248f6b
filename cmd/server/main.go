package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketmate-be/internal/auth"
	"marketmate-be/internal/cart"
	"marketmate-be/internal/config"
	"marketmate-be/internal/db"
	"marketmate-be/internal/handler"
	"marketmate-be/internal/logger"
	"marketmate-be/internal/media"
	"marketmate-be/internal/metrics"
	"marketmate-be/internal/order"
	"marketmate-be/internal/product"
	"marketmate-be/internal/user"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// store is one backing database behind the four repositories.
type store struct {
	users    user.Repository
	products product.Repository
	carts    cart.Repository
	orders   order.Repository

	ping  func(ctx context.Context) error
	close func()
}

func postgresStore(database *sql.DB) *store {
	return &store{
		users:    user.NewRepository(database),
		products: product.NewRepository(database),
		carts:    cart.NewRepository(database),
		orders:   order.NewRepository(database),
		ping:     database.PingContext,
		close:    func() { _ = database.Close() },
	}
}

func mongoStore(client *mongo.Client, database *mongo.Database) *store {
	return &store{
		users:    user.NewMongoRepository(database),
		products: product.NewMongoRepository(database),
		carts:    cart.NewMongoRepository(database),
		orders:   order.NewMongoRepository(database),
		ping:     func(ctx context.Context) error { return client.Ping(ctx, nil) },
		close:    func() { _ = client.Disconnect(context.Background()) },
	}
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		return postgresStore(db.InitDB(cfg)), nil
	case config.DriverMongo:
		client, database, err := db.ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := db.EnsureIndexes(ctx, database); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return mongoStore(client, database), nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}

func imageRemover(cfg *config.Config) (media.Remover, error) {
	if cfg.CloudinaryEnabled() {
		return media.NewCloudinaryRemover(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	}
	return media.NewNoopRemover(), nil
}

func setupRouter(cfg *config.Config, st *store, tokens *auth.Issuer, images media.Remover) *gin.Engine {
	counters := metrics.NewRegistry()

	return handler.NewRouter(handler.Deps{
		Users:       user.NewService(st.users, tokens, counters),
		Products:    product.NewService(st.products, images),
		Carts:       cart.NewService(st.carts, st.products),
		Orders:      order.NewService(st.orders, counters),
		Tokens:      tokens,
		Counters:    counters,
		Ping:        st.ping,
		CORSOrigins: cfg.CORSOrigins,
		RateLimit:   cfg.RateLimitEnabled,
	})
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger.Init(cfg.AppEnv, cfg.LogLevel)
	log := logger.L()
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal("store unavailable", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer st.close()

	tokens, err := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal("token issuer", zap.Error(err))
	}

	images, err := imageRemover(cfg)
	if err != nil {
		log.Fatal("image host", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           setupRouter(cfg, st, tokens, images),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("MarketMate server running",
			zap.String("port", cfg.AppPort),
			zap.String("store", cfg.StoreDriver),
			zap.Bool("cloudinary", cfg.CloudinaryEnabled()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
