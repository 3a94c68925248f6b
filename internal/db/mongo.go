package db

import (
	"context"
	"fmt"
	"time"

	"marketmate-be/internal/config"
	"marketmate-be/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Collection names shared by the mongo repositories.
const (
	CollUsers    = "users"
	CollProducts = "products"
	CollCarts    = "carts"
	CollOrders   = "orders"
)

const mongoConnectTimeout = 10 * time.Second

// ConnectMongo opens a client, pings the primary and returns the configured database.
func ConnectMongo(ctx context.Context, cfg *config.Config) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.L().Info("mongo connection established", zap.String("database", cfg.MongoDatabase))
	return client, client.Database(cfg.MongoDatabase), nil
}

// mongoIndexes are the uniqueness guarantees the Postgres schema gets from constraints.
func mongoIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		CollUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_username")},
		},
		CollProducts: {
			{Keys: bson.D{{Key: "shopkeeperId", Value: 1}}, Options: options.Index().SetName("idx_shopkeeper")},
			{Keys: bson.D{{Key: "category", Value: 1}}, Options: options.Index().SetName("idx_category")},
		},
		CollCarts: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_cart_user")},
		},
		CollOrders: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("idx_user_created")},
		},
	}
}

// EnsureIndexes creates the indexes every mongo repository relies on. It is idempotent.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	for coll, models := range mongoIndexes() {
		names, err := database.Collection(coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
		logger.FromCtx(ctx).Info("mongo indexes ensured",
			zap.String("collection", coll),
			zap.Strings("indexes", names),
		)
	}
	return nil
}
