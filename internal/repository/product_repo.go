package repository

import (
	"Sabzee/internal/model"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductListQuery describes one page of the product catalogue.
type ProductListQuery struct {
	Category string
	Farmer   *primitive.ObjectID
	Organic  *bool
	Search   string
	MinPrice *float64
	MaxPrice *float64
	Page     int
	Limit    int
}

type ProductRepo interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error)
	List(ctx context.Context, q *ProductListQuery) ([]*model.Product, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*model.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int64) (*model.Product, error)
	IncrementStock(ctx context.Context, id primitive.ObjectID, qty int64) error
	AllImageStorageIDs(ctx context.Context) (map[string]struct{}, error)
}

type productRepoImpl struct {
	col *mongo.Collection
}

func NewProductRepo(db *mongo.Database) ProductRepo {
	return &productRepoImpl{
		col: db.Collection("products"),
	}
}

func (s *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	res, err := s.col.InsertOne(ctx, product)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return nil
}

func (s *productRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	var product model.Product
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func buildProductFilter(q *ProductListQuery) bson.M {
	filter := bson.M{}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.Farmer != nil {
		filter["farmer"] = *q.Farmer
	}
	if q.Organic != nil {
		filter["organic"] = *q.Organic
	}
	if q.Search != "" {
		filter["name"] = bson.M{"$regex": q.Search, "$options": "i"}
	}
	price := bson.M{}
	if q.MinPrice != nil {
		price["$gte"] = *q.MinPrice
	}
	if q.MaxPrice != nil {
		price["$lte"] = *q.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}
	return filter
}

func (s *productRepoImpl) List(ctx context.Context, q *ProductListQuery) ([]*model.Product, int64, error) {
	filter := buildProductFilter(q)

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	products := make([]*model.Product, 0)
	if err = cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (s *productRepoImpl) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*model.Product, error) {
	set["updatedAt"] = time.Now()

	var product model.Product
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (s *productRepoImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// DecrementStock atomically takes qty units, refusing to oversell; a
// product drained to zero flips to sold_out in the same update.
func (s *productRepoImpl) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int64) (*model.Product, error) {
	var product model.Product
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "quantity": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"quantity": -qty}, "$set": bson.M{"updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	if product.Quantity == 0 && product.Status != model.ProductStatusSoldOut {
		updated, err := s.Update(ctx, id, bson.M{"status": model.ProductStatusSoldOut})
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return &product, nil
}

// IncrementStock returns qty units, e.g. when an order is cancelled.
func (s *productRepoImpl) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int64) error {
	_, err := s.col.UpdateByID(ctx, id, bson.M{
		"$inc": bson.M{"quantity": qty},
		"$set": bson.M{"status": model.ProductStatusAvailable, "updatedAt": time.Now()},
	})
	return err
}

func (s *productRepoImpl) AllImageStorageIDs(ctx context.Context) (map[string]struct{}, error) {
	cursor, err := s.col.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"images.storageId": 1}))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []struct {
		Images []model.PostImage `bson:"images"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make(map[string]struct{})
	for _, doc := range docs {
		for _, img := range doc.Images {
			ids[img.StorageID] = struct{}{}
		}
	}
	return ids, nil
}
