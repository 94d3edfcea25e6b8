package handler

import (
	"Sabzee/internal/pkg/response"
	"Sabzee/internal/service"

	"github.com/gin-gonic/gin"
)

type FarmerHandler struct {
	farmerSvc service.FarmerService
}

func NewFarmerHandler(farmerSvc service.FarmerService) *FarmerHandler {
	return &FarmerHandler{
		farmerSvc: farmerSvc,
	}
}

func (s *FarmerHandler) ListFarmers(c *gin.Context) {
	farmers, err := s.farmerSvc.ListFarmers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, farmers)
}

func (s *FarmerHandler) GetFarmer(c *gin.Context) {
	farmerID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	farmer, err := s.farmerSvc.GetFarmer(c.Request.Context(), farmerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, farmer)
}

// Analytics returns sales figures for the authenticated farmer.
func (s *FarmerHandler) Analytics(c *gin.Context) {
	analytics, err := s.farmerSvc.Analytics(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, analytics)
}
