package product

import (
	"context"
	"errors"
	"regexp"

	"marketmate-be/internal/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepository struct {
	coll  *mongo.Collection
	users *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) Repository {
	return &mongoRepository{
		coll:  database.Collection(db.CollProducts),
		users: database.Collection(db.CollUsers),
	}
}

func mongoFilter(f Filter) bson.M {
	filter := bson.M{}
	if f.OnlyAvailable {
		filter["isAvailable"] = true
	}
	if f.OnlyDiscounted {
		filter["discount"] = bson.M{"$gt": primitive.NewDecimal128(0, 0)}
	}
	if f.Category != "" {
		filter["category"] = string(f.Category)
	}
	if f.ShopkeeperID != "" {
		filter["shopkeeperId"] = f.ShopkeeperID
	}
	if f.NameContains != "" {
		filter["productName"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.NameContains), Options: "i"}
	}
	return filter
}

func mongoSort(sort SortKey) bson.D {
	switch sort {
	case SortPriceLow:
		return bson.D{{Key: "finalPrice", Value: 1}, {Key: "createdAt", Value: -1}}
	case SortPriceHigh:
		return bson.D{{Key: "finalPrice", Value: -1}, {Key: "createdAt", Value: -1}}
	case SortDiscount:
		return bson.D{{Key: "discount", Value: -1}, {Key: "createdAt", Value: -1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

func (r *mongoRepository) Create(ctx context.Context, p *Product) error {
	_, err := r.coll.InsertOne(ctx, toDocument(p))
	return err
}

func (r *mongoRepository) FindByID(ctx context.Context, id string) (*Product, error) {
	var doc productDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	p, err := fromDocument(doc)
	if err != nil {
		return nil, err
	}

	products := []Product{*p}
	if err := r.attachShops(ctx, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

func (r *mongoRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*Product, error) {
	found := make(map[string]*Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	products, err := r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
	if err != nil {
		return nil, err
	}
	for i := range products {
		found[products[i].ID] = &products[i]
	}
	return found, nil
}

func (r *mongoRepository) List(ctx context.Context, f Filter) ([]Product, error) {
	return r.find(ctx, mongoFilter(f), options.Find().SetSort(mongoSort(f.Sort)))
}

func (r *mongoRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]Product, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	products := []Product{}
	for cur.Next(ctx) {
		var doc productDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		p, err := fromDocument(doc)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	if err := r.attachShops(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

// attachShops populates the owning shopkeeper's contact card on each product.
func (r *mongoRepository) attachShops(ctx context.Context, products []Product) error {
	if len(products) == 0 {
		return nil
	}

	seen := map[string]bool{}
	ids := []string{}
	for _, p := range products {
		if !seen[p.ShopkeeperID] {
			seen[p.ShopkeeperID] = true
			ids = append(ids, p.ShopkeeperID)
		}
	}

	cur, err := r.users.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"shopName": 1, "phoneNumber": 1, "address": 1}),
	)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	shops := map[string]*Shop{}
	for cur.Next(ctx) {
		var doc shopDocument
		if err := cur.Decode(&doc); err != nil {
			return err
		}
		shops[doc.ID] = &Shop{
			ID:          doc.ID,
			ShopName:    doc.ShopName,
			PhoneNumber: doc.PhoneNumber,
			Address:     doc.Address,
		}
	}
	if err := cur.Err(); err != nil {
		return err
	}

	for i := range products {
		products[i].Shop = shops[products[i].ShopkeeperID]
	}
	return nil
}

func (r *mongoRepository) Update(ctx context.Context, p *Product, setStock bool) error {
	doc := toDocument(p)
	set := bson.M{
		"productName":   doc.ProductName,
		"category":      doc.Category,
		"description":   doc.Description,
		"price":         doc.Price,
		"discount":      doc.Discount,
		"finalPrice":    doc.FinalPrice,
		"unit":          doc.Unit,
		"imageUrl":      doc.ImageURL,
		"imagePublicId": doc.ImagePublicID,
		"isAvailable":   doc.IsAvailable,
		"lastUpdated":   doc.LastUpdated,
	}
	if setStock {
		set["stock"] = doc.Stock
	}

	var stored struct {
		Stock int `bson:"stock"`
	}
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": p.ID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.M{"stock": 1}),
	).Decode(&stored)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}
	p.Stock = stored.Stock
	return nil
}

func (r *mongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}
