package dto

type CreateOrderDTO struct {
	Items           []OrderItemDTO `json:"items" binding:"required,min=1,dive"`
	ShippingAddress string         `json:"shippingAddress" binding:"required,min=5,max=500"`
	ContactNumber   string         `json:"contactNumber" binding:"required,min=7,max=15"`
}

type OrderItemDTO struct {
	Product  string `json:"product" binding:"required"`
	Quantity int64  `json:"quantity" binding:"required,gt=0"`
}

type UpdateOrderStatusDTO struct {
	Status string `json:"status" binding:"required,oneof=confirmed shipped delivered cancelled"`
}
