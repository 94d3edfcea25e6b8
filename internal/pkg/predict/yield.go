package predict

import (
	"Sabzee/internal/api/config"
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// YieldInput is the crop/plot description sent to the yield service.
type YieldInput struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Crop       string  `json:"crop"`
	Season     string  `json:"season"`
	AreaOfLand float64 `json:"area_of_land"`
	SoilType   string  `json:"soil_type"`
}

// YieldResult is the yield service response.
type YieldResult struct {
	PredictedYieldKg float64  `json:"predicted_yield_kg"`
	SuggestedCrops   []string `json:"suggested_crops"`
	Confidence       float64  `json:"confidence"`
	Weather          Weather  `json:"weather"`
}

type Weather struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Rainfall    float64 `json:"rainfall"`
}

type YieldClient struct {
	httpClient *resty.Client
}

func NewYieldClient() *YieldClient {
	cfg := config.Cfg.Predict

	client := resty.New().
		SetBaseURL(cfg.YieldURL).
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	return &YieldClient{httpClient: client}
}

// Predict asks the yield service for an estimate.
func (s *YieldClient) Predict(ctx context.Context, input *YieldInput) (*YieldResult, error) {
	var result YieldResult
	var apiErr struct {
		Error string `json:"error"`
	}

	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetBody(input).
		SetResult(&result).
		SetError(&apiErr).
		Post("/predict")
	if err != nil {
		return nil, errors.Wrap(err, "yield prediction request failed")
	}
	if resp.IsError() {
		return nil, errors.Errorf("yield prediction service returned %d: %s", resp.StatusCode(), apiErr.Error)
	}

	return &result, nil
}
