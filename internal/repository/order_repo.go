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

// FarmerAnalytics aggregates a farmer's sales across all orders.
type FarmerAnalytics struct {
	TotalRevenue float64              `bson:"totalRevenue" json:"totalRevenue"`
	OrderCount   int64                `bson:"orderCount" json:"orderCount"`
	UnitsSold    int64                `bson:"unitsSold" json:"unitsSold"`
	TopProducts  []ProductSalesByName `bson:"topProducts" json:"topProducts"`
}

type ProductSalesByName struct {
	Name    string  `bson:"_id" json:"name"`
	Units   int64   `bson:"units" json:"units"`
	Revenue float64 `bson:"revenue" json:"revenue"`
}

type OrderRepo interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error)
	ListByConsumer(ctx context.Context, consumer primitive.ObjectID) ([]*model.Order, error)
	ListByFarmer(ctx context.Context, farmer primitive.ObjectID) ([]*model.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*model.Order, error)
	Analytics(ctx context.Context, farmer primitive.ObjectID) (*FarmerAnalytics, error)
}

type orderRepoImpl struct {
	col *mongo.Collection
}

func NewOrderRepo(db *mongo.Database) OrderRepo {
	return &orderRepoImpl{
		col: db.Collection("orders"),
	}
}

func (s *orderRepoImpl) Create(ctx context.Context, order *model.Order) error {
	res, err := s.col.InsertOne(ctx, order)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}
	return nil
}

func (s *orderRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error) {
	var order model.Order
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (s *orderRepoImpl) list(ctx context.Context, filter bson.M) ([]*model.Order, error) {
	cursor, err := s.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	orders := make([]*model.Order, 0)
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderRepoImpl) ListByConsumer(ctx context.Context, consumer primitive.ObjectID) ([]*model.Order, error) {
	return s.list(ctx, bson.M{"consumer": consumer})
}

func (s *orderRepoImpl) ListByFarmer(ctx context.Context, farmer primitive.ObjectID) ([]*model.Order, error) {
	return s.list(ctx, bson.M{"items.farmer": farmer})
}

func (s *orderRepoImpl) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*model.Order, error) {
	var order model.Order
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// Analytics unwinds order items belonging to the farmer and folds them
// into revenue, order and unit counts plus a per-product top list.
func (s *orderRepoImpl) Analytics(ctx context.Context, farmer primitive.ObjectID) (*FarmerAnalytics, error) {
	base := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"items.farmer": farmer, "status": bson.M{"$ne": model.OrderStatusCancelled}}}},
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$match", Value: bson.M{"items.farmer": farmer}}},
	}

	topPipeline := append(append(mongo.Pipeline{}, base...),
		bson.D{{Key: "$group", Value: bson.M{
			"_id":     "$items.name",
			"units":   bson.M{"$sum": "$items.quantity"},
			"revenue": bson.M{"$sum": bson.M{"$multiply": bson.A{"$items.price", "$items.quantity"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "revenue", Value: -1}}}},
		bson.D{{Key: "$limit", Value: int64(5)}},
	)

	totalPipeline := append(append(mongo.Pipeline{}, base...),
		bson.D{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"totalRevenue": bson.M{"$sum": bson.M{"$multiply": bson.A{"$items.price", "$items.quantity"}}},
			"unitsSold":    bson.M{"$sum": "$items.quantity"},
			"orders":       bson.M{"$addToSet": "$_id"},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"totalRevenue": 1,
			"unitsSold":    1,
			"orderCount":   bson.M{"$size": "$orders"},
		}}},
	)

	analytics := &FarmerAnalytics{TopProducts: make([]ProductSalesByName, 0)}

	cursor, err := s.col.Aggregate(ctx, totalPipeline)
	if err != nil {
		return nil, err
	}
	var totals []FarmerAnalytics
	if err = cursor.All(ctx, &totals); err != nil {
		return nil, err
	}
	if len(totals) > 0 {
		analytics.TotalRevenue = totals[0].TotalRevenue
		analytics.OrderCount = totals[0].OrderCount
		analytics.UnitsSold = totals[0].UnitsSold
	}

	topCursor, err := s.col.Aggregate(ctx, topPipeline)
	if err != nil {
		return nil, err
	}
	if err = topCursor.All(ctx, &analytics.TopProducts); err != nil {
		return nil, err
	}

	return analytics, nil
}
