package service

import (
	"Sabzee/internal/api/dto"
	"Sabzee/internal/model"
	"Sabzee/internal/pkg/consts"
	"Sabzee/internal/pkg/predict"
	"Sabzee/internal/repository"
	"context"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PredictionService interface {
	DetectDisease(ctx context.Context, farmerID primitive.ObjectID, imageURL string) (*model.CropScan, error)
	ScanImage(ctx context.Context, farmerID primitive.ObjectID, upload *ImageUpload) (*model.CropScan, error)
	GetCropScan(ctx context.Context, farmerID, id primitive.ObjectID) (*model.CropScan, error)
	ListCropScans(ctx context.Context, farmerID primitive.ObjectID) ([]*model.CropScan, error)
	PredictYield(ctx context.Context, farmerID primitive.ObjectID, yieldDTO *dto.YieldPredictionDTO) (*model.YieldPrediction, error)
	GetYieldPrediction(ctx context.Context, farmerID, id primitive.ObjectID) (*model.YieldPrediction, error)
	ListYieldPredictions(ctx context.Context, farmerID primitive.ObjectID) ([]*model.YieldPrediction, error)
}

type predictionServiceImpl struct {
	predRepo      repository.PredictionRepo
	store         ImageStore
	diseaseClient *predict.DiseaseClient
	yieldClient   *predict.YieldClient
}

func NewPredictionService(predRepo repository.PredictionRepo, store ImageStore, diseaseClient *predict.DiseaseClient, yieldClient *predict.YieldClient) PredictionService {
	return &predictionServiceImpl{
		predRepo:      predRepo,
		store:         store,
		diseaseClient: diseaseClient,
		yieldClient:   yieldClient,
	}
}

// DetectDisease sends an already hosted image to the disease model and
// records the verdict.
func (s *predictionServiceImpl) DetectDisease(ctx context.Context, farmerID primitive.ObjectID, imageURL string) (*model.CropScan, error) {
	result, err := s.diseaseClient.Predict(ctx, imageURL)
	if err != nil {
		log.ErrorContext(ctx, "disease prediction failed", "err", err)
		return nil, ErrPredictionUpstream
	}

	scan := &model.CropScan{
		Farmer:   farmerID,
		ImageURL: imageURL,
		Result: model.CropScanResult{
			Disease:     result.Disease,
			Confidence:  result.Confidence,
			Description: result.Description,
			Treatment:   result.Treatment,
		},
		CreatedAt: time.Now(),
	}
	if err = s.predRepo.SaveCropScan(ctx, scan); err != nil {
		return nil, err
	}
	return scan, nil
}

// ScanImage stores the uploaded photo first so the model can fetch it by
// URL, then delegates to DetectDisease.
func (s *predictionServiceImpl) ScanImage(ctx context.Context, farmerID primitive.ObjectID, upload *ImageUpload) (*model.CropScan, error) {
	img, err := uploadOneImage(ctx, s.store, consts.FolderCropScans, upload)
	if err != nil {
		return nil, err
	}
	return s.DetectDisease(ctx, farmerID, img.URL)
}

func (s *predictionServiceImpl) GetCropScan(ctx context.Context, farmerID, id primitive.ObjectID) (*model.CropScan, error) {
	scan, err := s.predRepo.GetCropScan(ctx, id)
	if err != nil {
		return nil, err
	}
	if scan == nil {
		return nil, ErrPredictionNotFound
	}
	if scan.Farmer != farmerID {
		return nil, ErrNotOwner
	}
	return scan, nil
}

func (s *predictionServiceImpl) ListCropScans(ctx context.Context, farmerID primitive.ObjectID) ([]*model.CropScan, error) {
	return s.predRepo.ListCropScans(ctx, farmerID)
}

func (s *predictionServiceImpl) PredictYield(ctx context.Context, farmerID primitive.ObjectID, yieldDTO *dto.YieldPredictionDTO) (*model.YieldPrediction, error) {
	input := &predict.YieldInput{
		Latitude:   yieldDTO.Latitude,
		Longitude:  yieldDTO.Longitude,
		Crop:       yieldDTO.Crop,
		Season:     yieldDTO.Season,
		AreaOfLand: yieldDTO.AreaOfLand,
		SoilType:   yieldDTO.SoilType,
	}

	result, err := s.yieldClient.Predict(ctx, input)
	if err != nil {
		log.ErrorContext(ctx, "yield prediction failed", "err", err)
		return nil, ErrPredictionUpstream
	}

	pred := &model.YieldPrediction{
		Farmer: farmerID,
		Input: model.YieldInput{
			Latitude:   yieldDTO.Latitude,
			Longitude:  yieldDTO.Longitude,
			Crop:       yieldDTO.Crop,
			Season:     yieldDTO.Season,
			AreaOfLand: yieldDTO.AreaOfLand,
			SoilType:   yieldDTO.SoilType,
		},
		Result: model.YieldResult{
			PredictedYieldKg: result.PredictedYieldKg,
			SuggestedCrops:   result.SuggestedCrops,
			Confidence:       result.Confidence,
			Weather: model.YieldWeather{
				Temperature: result.Weather.Temperature,
				Humidity:    result.Weather.Humidity,
				Rainfall:    result.Weather.Rainfall,
			},
		},
		CreatedAt: time.Now(),
	}
	if err = s.predRepo.SaveYieldPrediction(ctx, pred); err != nil {
		return nil, err
	}
	return pred, nil
}

func (s *predictionServiceImpl) GetYieldPrediction(ctx context.Context, farmerID, id primitive.ObjectID) (*model.YieldPrediction, error) {
	pred, err := s.predRepo.GetYieldPrediction(ctx, id)
	if err != nil {
		return nil, err
	}
	if pred == nil {
		return nil, ErrPredictionNotFound
	}
	if pred.Farmer != farmerID {
		return nil, ErrNotOwner
	}
	return pred, nil
}

func (s *predictionServiceImpl) ListYieldPredictions(ctx context.Context, farmerID primitive.ObjectID) ([]*model.YieldPrediction, error) {
	return s.predRepo.ListYieldPredictions(ctx, farmerID)
}
