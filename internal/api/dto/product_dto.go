package dto

import (
	"Sabzee/internal/model"
)

type ProductListDTO struct {
	Category string   `form:"category" binding:"omitempty,oneof=vegetables fruits grains dairy other"`
	Farmer   string   `form:"farmer"`
	Organic  *bool    `form:"organic"`
	Search   string   `form:"search"`
	MinPrice *float64 `form:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice *float64 `form:"maxPrice" binding:"omitempty,gte=0"`
	Page     int      `form:"page"`
	Limit    int      `form:"limit"`
}

type CreateProductDTO struct {
	Name        string  `form:"name" binding:"required,min=1,max=150"`
	Description string  `form:"description" binding:"omitempty,max=2000"`
	Category    string  `form:"category" binding:"required,oneof=vegetables fruits grains dairy other"`
	Price       float64 `form:"price" binding:"required,gt=0"`
	Unit        string  `form:"unit" binding:"required,oneof=kg g piece dozen litre"`
	Quantity    int64   `form:"quantity" binding:"required,gte=0"`
	Organic     bool    `form:"organic"`
}

type UpdateProductDTO struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=150"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	Category    *string  `json:"category" binding:"omitempty,oneof=vegetables fruits grains dairy other"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Unit        *string  `json:"unit" binding:"omitempty,oneof=kg g piece dozen litre"`
	Quantity    *int64   `json:"quantity" binding:"omitempty,gte=0"`
	Organic     *bool    `json:"organic"`
}

type ProductPageDTO struct {
	Products []*model.Product `json:"products"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
	Total    int64            `json:"total"`
}
