package predict

import (
	"Sabzee/internal/api/config"
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// DiseaseResult is the crop-disease service response.
type DiseaseResult struct {
	Disease     string  `json:"disease"`
	Confidence  float64 `json:"confidence"`
	Description string  `json:"description"`
	Treatment   string  `json:"treatment"`
}

type DiseaseClient struct {
	httpClient *resty.Client
}

func NewDiseaseClient() *DiseaseClient {
	cfg := config.Cfg.Predict

	client := resty.New().
		SetBaseURL(cfg.DiseaseURL).
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	return &DiseaseClient{httpClient: client}
}

// Predict sends the image URL to the disease service and returns its verdict.
func (s *DiseaseClient) Predict(ctx context.Context, imageURL string) (*DiseaseResult, error) {
	var result DiseaseResult
	var apiErr struct {
		Error string `json:"error"`
	}

	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]string{"image_url": imageURL}).
		SetResult(&result).
		SetError(&apiErr).
		Post("/predict")
	if err != nil {
		return nil, errors.Wrap(err, "disease prediction request failed")
	}
	if resp.IsError() {
		return nil, errors.Errorf("disease prediction service returned %d: %s", resp.StatusCode(), apiErr.Error)
	}

	return &result, nil
}
