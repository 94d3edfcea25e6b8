package handler

import (
	"Sabzee/internal/api/dto"
	"Sabzee/internal/model"
	"Sabzee/internal/pkg/response"
	"Sabzee/internal/service"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderSvc service.OrderService
}

func NewOrderHandler(orderSvc service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderSvc: orderSvc,
	}
}

func (s *OrderHandler) CreateOrder(c *gin.Context) {
	var createDTO dto.CreateOrderDTO
	if err := c.ShouldBind(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	order, err := s.orderSvc.CreateOrder(c.Request.Context(), currentUserID(c), &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, order)
}

func (s *OrderHandler) GetOrder(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	order, err := s.orderSvc.GetOrder(c.Request.Context(), currentUserID(c), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, order)
}

// ListOrders returns the caller's orders: purchases for consumers,
// incoming orders for farmers.
func (s *OrderHandler) ListOrders(c *gin.Context) {
	var orders []*model.Order
	var err error

	if c.GetString("role") == model.RoleFarmer {
		orders, err = s.orderSvc.ListFarmerOrders(c.Request.Context(), currentUserID(c))
	} else {
		orders, err = s.orderSvc.ListConsumerOrders(c.Request.Context(), currentUserID(c))
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, orders)
}

func (s *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var statusDTO dto.UpdateOrderStatusDTO
	if err = c.ShouldBind(&statusDTO); err != nil {
		response.Error(c, err)
		return
	}

	order, err := s.orderSvc.UpdateStatus(c.Request.Context(), currentUserID(c), orderID, statusDTO.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, order)
}

func (s *OrderHandler) CancelOrder(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	order, err := s.orderSvc.CancelOrder(c.Request.Context(), currentUserID(c), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, order)
}
