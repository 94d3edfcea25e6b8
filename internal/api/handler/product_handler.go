package handler

import (
	"Sabzee/internal/api/dto"
	"Sabzee/internal/pkg/response"
	"Sabzee/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productSvc service.ProductService
}

func NewProductHandler(productSvc service.ProductService) *ProductHandler {
	return &ProductHandler{
		productSvc: productSvc,
	}
}

func (s *ProductHandler) ListProducts(c *gin.Context) {
	var listDTO dto.ProductListDTO
	if err := c.ShouldBindQuery(&listDTO); err != nil {
		response.Error(c, err)
		return
	}
	page, err := s.productSvc.ListProducts(c.Request.Context(), &listDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *ProductHandler) GetProduct(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	product, err := s.productSvc.GetProduct(c.Request.Context(), productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, product)
}

func (s *ProductHandler) CreateProduct(c *gin.Context) {
	var createDTO dto.CreateProductDTO
	if err := c.ShouldBind(&createDTO); err != nil {
		response.Error(c, err)
		return
	}

	uploads, closeAll, err := openUploads(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeAll()

	product, err := s.productSvc.CreateProduct(c.Request.Context(), currentUserID(c), &createDTO, uploads)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, product)
}

func (s *ProductHandler) UpdateProduct(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var updateDTO dto.UpdateProductDTO
	if err = c.ShouldBind(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}

	product, err := s.productSvc.UpdateProduct(c.Request.Context(), currentUserID(c), productID, &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, product)
}

func (s *ProductHandler) DeleteProduct(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = s.productSvc.DeleteProduct(c.Request.Context(), currentUserID(c), productID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ProductHandler) AddImages(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	uploads, closeAll, err := openUploads(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeAll()

	product, err := s.productSvc.AddProductImages(c.Request.Context(), currentUserID(c), productID, uploads)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, product)
}

func (s *ProductHandler) DeleteImage(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	imageID, err := parseIDParam(c, "imageId")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = s.productSvc.DeleteProductImage(c.Request.Context(), currentUserID(c), productID, imageID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
