package order

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
	orders   *mongo.Collection
	products *mongo.Collection
	carts    *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) Repository {
	return &mongoRepository{
		orders:   database.Collection(db.CollOrders),
		products: database.Collection(db.CollProducts),
		carts:    database.Collection(db.CollCarts),
	}
}

type reservation struct {
	productID string
	quantity  int
}

// release gives reserved stock back. It runs detached from the request
// context so a cancelled request still compensates.
func (r *mongoRepository) release(ctx context.Context, reserved []reservation) {
	ctx = context.WithoutCancel(ctx)
	log := logger.FromCtx(ctx).With(zap.String("layer", "repository"), zap.String("method", "ReleaseStock"))

	for _, res := range reserved {
		_, err := r.products.UpdateOne(ctx,
			bson.M{"_id": res.productID},
			bson.M{"$inc": bson.M{"stock": res.quantity}},
		)
		if err != nil {
			log.Error("failed to release stock",
				zap.String("product_id", res.productID),
				zap.Int("quantity", res.quantity),
				zap.Error(err),
			)
		}
	}
}

func (r *mongoRepository) stockError(ctx context.Context, productID string) error {
	se := &StockError{ProductID: productID}

	var doc struct {
		ProductName string `bson:"productName"`
	}
	err := r.products.FindOne(ctx,
		bson.M{"_id": productID},
		options.FindOne().SetProjection(bson.M{"productName": 1}),
	).Decode(&doc)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	se.ProductName = doc.ProductName
	return se
}

func (r *mongoRepository) CreateFromCart(ctx context.Context, o *Order) (err error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderFromCart"),
		zap.String("user_id", o.UserID),
	)

	var c cartDocument
	err = r.carts.FindOne(ctx, bson.M{"userId": o.UserID}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrEmptyCart
	}
	if err != nil {
		return err
	}
	if len(c.Items) == 0 {
		return ErrEmptyCart
	}

	var reserved []reservation
	defer func() {
		if err != nil && len(reserved) > 0 {
			r.release(ctx, reserved)
		}
	}()

	// Reserve: conditional decrement per line, in cart order.
	for _, line := range c.Items {
		var p reservedProduct
		err = r.products.FindOneAndUpdate(ctx,
			bson.M{
				"_id":         line.ProductID,
				"stock":       bson.M{"$gte": line.Quantity},
				"isAvailable": true,
			},
			bson.M{
				"$inc": bson.M{"stock": -line.Quantity},
				"$set": bson.M{"lastUpdated": time.Now().UTC()},
			},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&p)
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = r.stockError(ctx, line.ProductID)
			log.Info("checkout rejected", zap.Error(err))
			return err
		}
		if err != nil {
			return err
		}
		reserved = append(reserved, reservation{productID: line.ProductID, quantity: line.Quantity})

		var it Item
		if it, err = p.snapshot(line.ProductID, line.Quantity); err != nil {
			return err
		}
		o.addItem(it)
	}

	// Commit: store the order, then destroy the cart it was built from.
	if _, err = r.orders.InsertOne(ctx, toDocument(o)); err != nil {
		return err
	}

	res, err := r.carts.DeleteOne(ctx, bson.M{"_id": c.ID, "version": c.Version})
	if err == nil && res.DeletedCount == 0 {
		err = ErrCartChanged
	}
	if err != nil {
		if _, derr := r.orders.DeleteOne(context.WithoutCancel(ctx), bson.M{"_id": o.ID}); derr != nil {
			log.Error("failed to remove orphaned order", zap.String("order_id", o.ID), zap.Error(derr))
		}
		return err
	}

	return nil
}

func (r *mongoRepository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	cur, err := r.orders.Find(ctx,
		bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []orderDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	orders := make([]Order, 0, len(docs))
	for _, d := range docs {
		o, err := fromDocument(d)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id string) (*Order, error) {
	var doc orderDocument
	err := r.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromDocument(doc)
}
