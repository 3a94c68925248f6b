package user

import (
	"context"
	"errors"
	"time"

	"marketmate-be/internal/db"
	"marketmate-be/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type mongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) Repository {
	return &mongoRepository{coll: database.Collection(db.CollUsers)}
}

func (r *mongoRepository) Create(ctx context.Context, a *Account) error {
	_, err := r.coll.InsertOne(ctx, toDocument(a))
	if mongo.IsDuplicateKeyError(err) {
		return ErrAccountExists
	}
	if err != nil {
		logger.FromCtx(ctx).Error("mongo: failed to insert user",
			zap.String("layer", "repository"),
			zap.String("email", a.Email),
			zap.Error(err),
		)
	}
	return err
}

func (r *mongoRepository) findOne(ctx context.Context, filter bson.M) (*Account, error) {
	var doc accountDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

func (r *mongoRepository) FindByID(ctx context.Context, id string) (*Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx,
		bson.M{"$or": bson.A{bson.M{"email": email}, bson.M{"username": username}}},
		options.Count().SetLimit(1),
	)
	return n > 0, err
}

func (r *mongoRepository) ListShopkeepers(ctx context.Context, approved bool) ([]Account, error) {
	cur, err := r.coll.Find(ctx,
		bson.M{"role": RoleShopkeeper.String(), "isApproved": approved},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	accounts := []Account{}
	for cur.Next(ctx) {
		var doc accountDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		a, err := fromDocument(doc)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}

	return accounts, cur.Err()
}

func (r *mongoRepository) SetApproved(ctx context.Context, id string, approved bool) (*Account, error) {
	var doc accountDocument
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isApproved": approved, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

func (r *mongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrAccountNotFound
	}
	return nil
}
