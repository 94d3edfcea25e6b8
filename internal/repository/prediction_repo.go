package repository

import (
	"Sabzee/internal/model"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PredictionRepo interface {
	SaveCropScan(ctx context.Context, scan *model.CropScan) error
	GetCropScan(ctx context.Context, id primitive.ObjectID) (*model.CropScan, error)
	ListCropScans(ctx context.Context, farmer primitive.ObjectID) ([]*model.CropScan, error)
	SaveYieldPrediction(ctx context.Context, pred *model.YieldPrediction) error
	GetYieldPrediction(ctx context.Context, id primitive.ObjectID) (*model.YieldPrediction, error)
	ListYieldPredictions(ctx context.Context, farmer primitive.ObjectID) ([]*model.YieldPrediction, error)
}

type predictionRepoImpl struct {
	scans  *mongo.Collection
	yields *mongo.Collection
}

func NewPredictionRepo(db *mongo.Database) PredictionRepo {
	return &predictionRepoImpl{
		scans:  db.Collection("crop_scans"),
		yields: db.Collection("yield_predictions"),
	}
}

func (s *predictionRepoImpl) SaveCropScan(ctx context.Context, scan *model.CropScan) error {
	res, err := s.scans.InsertOne(ctx, scan)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		scan.ID = oid
	}
	return nil
}

func (s *predictionRepoImpl) GetCropScan(ctx context.Context, id primitive.ObjectID) (*model.CropScan, error) {
	var scan model.CropScan
	err := s.scans.FindOne(ctx, bson.M{"_id": id}).Decode(&scan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &scan, nil
}

func (s *predictionRepoImpl) ListCropScans(ctx context.Context, farmer primitive.ObjectID) ([]*model.CropScan, error) {
	cursor, err := s.scans.Find(ctx,
		bson.M{"farmer": farmer},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	scans := make([]*model.CropScan, 0)
	if err = cursor.All(ctx, &scans); err != nil {
		return nil, err
	}
	return scans, nil
}

func (s *predictionRepoImpl) SaveYieldPrediction(ctx context.Context, pred *model.YieldPrediction) error {
	res, err := s.yields.InsertOne(ctx, pred)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		pred.ID = oid
	}
	return nil
}

func (s *predictionRepoImpl) GetYieldPrediction(ctx context.Context, id primitive.ObjectID) (*model.YieldPrediction, error) {
	var pred model.YieldPrediction
	err := s.yields.FindOne(ctx, bson.M{"_id": id}).Decode(&pred)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &pred, nil
}

func (s *predictionRepoImpl) ListYieldPredictions(ctx context.Context, farmer primitive.ObjectID) ([]*model.YieldPrediction, error) {
	cursor, err := s.yields.Find(ctx,
		bson.M{"farmer": farmer},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	preds := make([]*model.YieldPrediction, 0)
	if err = cursor.All(ctx, &preds); err != nil {
		return nil, err
	}
	return preds, nil
}
