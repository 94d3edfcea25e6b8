package handler

import (
	"Sabzee/internal/api/dto"
	"Sabzee/internal/pkg/response"
	"Sabzee/internal/service"

	"github.com/gin-gonic/gin"
)

type PredictionHandler struct {
	predictionSvc service.PredictionService
}

func NewPredictionHandler(predictionSvc service.PredictionService) *PredictionHandler {
	return &PredictionHandler{
		predictionSvc: predictionSvc,
	}
}

// ScanCrop accepts either an uploaded photo or a URL of an already
// hosted one and runs disease detection on it.
func (s *PredictionHandler) ScanCrop(c *gin.Context) {
	uploads, closeAll, err := openUploads(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeAll()

	if len(uploads) > 0 {
		scan, err := s.predictionSvc.ScanImage(c.Request.Context(), currentUserID(c), uploads[0])
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, scan)
		return
	}

	var scanDTO dto.CropScanDTO
	if err = c.ShouldBind(&scanDTO); err != nil {
		response.Error(c, err)
		return
	}
	scan, err := s.predictionSvc.DetectDisease(c.Request.Context(), currentUserID(c), scanDTO.ImageURL)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, scan)
}

func (s *PredictionHandler) GetCropScan(c *gin.Context) {
	scanID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	scan, err := s.predictionSvc.GetCropScan(c.Request.Context(), currentUserID(c), scanID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, scan)
}

func (s *PredictionHandler) ListCropScans(c *gin.Context) {
	scans, err := s.predictionSvc.ListCropScans(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, scans)
}

func (s *PredictionHandler) PredictYield(c *gin.Context) {
	var yieldDTO dto.YieldPredictionDTO
	if err := c.ShouldBind(&yieldDTO); err != nil {
		response.Error(c, err)
		return
	}
	pred, err := s.predictionSvc.PredictYield(c.Request.Context(), currentUserID(c), &yieldDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pred)
}

func (s *PredictionHandler) GetYieldPrediction(c *gin.Context) {
	predID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	pred, err := s.predictionSvc.GetYieldPrediction(c.Request.Context(), currentUserID(c), predID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pred)
}

func (s *PredictionHandler) ListYieldPredictions(c *gin.Context) {
	preds, err := s.predictionSvc.ListYieldPredictions(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, preds)
}
