package cart

import (
	"context"
	"errors"
	"time"

	"marketmate-be/internal/db"
	"marketmate-be/internal/logger"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// maxMutateAttempts bounds the compare-and-swap loop of Mutate.
const maxMutateAttempts = 3

type mongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) Repository {
	return &mongoRepository{coll: database.Collection(db.CollCarts)}
}

func (r *mongoRepository) Get(ctx context.Context, userID string) (*Cart, error) {
	var doc cartDocument
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

func (r *mongoRepository) GetOrCreate(ctx context.Context, userID string) (*Cart, error) {
	now := time.Now().UTC()

	var doc cartDocument
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"userId": userID},
		bson.M{"$setOnInsert": bson.M{
			"_id":       uuid.NewString(),
			"items":     bson.A{},
			"version":   int64(0),
			"createdAt": now,
			"updatedAt": now,
		}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

func (r *mongoRepository) Mutate(ctx context.Context, userID string, create bool, fn MutateFunc) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "MutateCart"),
		zap.String("user_id", userID),
	)

	for attempt := 1; attempt <= maxMutateAttempts; attempt++ {
		var (
			c   *Cart
			err error
		)
		if create {
			c, err = r.GetOrCreate(ctx, userID)
		} else {
			c, err = r.Get(ctx, userID)
		}
		if err != nil {
			return nil, err
		}

		if err := fn(c); err != nil {
			return nil, err
		}

		expected := c.Version
		c.Version++
		c.UpdatedAt = time.Now().UTC()

		res, err := r.coll.ReplaceOne(ctx,
			bson.M{"_id": c.ID, "version": expected},
			toDocument(c),
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 1 {
			return c, nil
		}

		log.Warn("cart version conflict, retrying", zap.Int("attempt", attempt))
	}

	return nil, ErrConcurrentUpdate
}
