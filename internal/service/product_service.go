package service

import (
	"Sabzee/internal/api/dto"
	"Sabzee/internal/model"
	"Sabzee/internal/pkg/consts"
	"Sabzee/internal/pkg/util"
	"Sabzee/internal/repository"
	"context"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductService interface {
	ListProducts(ctx context.Context, listDTO *dto.ProductListDTO) (*dto.ProductPageDTO, error)
	GetProduct(ctx context.Context, id primitive.ObjectID) (*model.Product, error)
	CreateProduct(ctx context.Context, farmerID primitive.ObjectID, createDTO *dto.CreateProductDTO, uploads []*ImageUpload) (*model.Product, error)
	UpdateProduct(ctx context.Context, farmerID, productID primitive.ObjectID, updateDTO *dto.UpdateProductDTO) (*model.Product, error)
	DeleteProduct(ctx context.Context, farmerID, productID primitive.ObjectID) error
	AddProductImages(ctx context.Context, farmerID, productID primitive.ObjectID, uploads []*ImageUpload) (*model.Product, error)
	DeleteProductImage(ctx context.Context, farmerID, productID, imageID primitive.ObjectID) error
}

type productServiceImpl struct {
	productRepo repository.ProductRepo
	store       ImageStore
}

func NewProductService(productRepo repository.ProductRepo, store ImageStore) ProductService {
	return &productServiceImpl{
		productRepo: productRepo,
		store:       store,
	}
}

func (s *productServiceImpl) ListProducts(ctx context.Context, listDTO *dto.ProductListDTO) (*dto.ProductPageDTO, error) {
	page, limit := util.NormalizePagination(listDTO.Page, listDTO.Limit)

	query := &repository.ProductListQuery{
		Category: listDTO.Category,
		Organic:  listDTO.Organic,
		Search:   listDTO.Search,
		MinPrice: listDTO.MinPrice,
		MaxPrice: listDTO.MaxPrice,
		Page:     page,
		Limit:    limit,
	}
	if listDTO.Farmer != "" {
		farmerID, err := primitive.ObjectIDFromHex(listDTO.Farmer)
		if err != nil {
			return nil, ErrParamInvalid
		}
		query.Farmer = &farmerID
	}

	products, total, err := s.productRepo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	return &dto.ProductPageDTO{
		Products: products,
		Page:     page,
		Pages:    util.TotalPages(total, limit),
		Total:    total,
	}, nil
}

func (s *productServiceImpl) GetProduct(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, farmerID primitive.ObjectID, createDTO *dto.CreateProductDTO, uploads []*ImageUpload) (*model.Product, error) {
	images := make([]model.PostImage, 0)
	if len(uploads) > 0 {
		uploaded, err := uploadImageBatch(ctx, s.store, consts.FolderProducts, uploads)
		if err != nil {
			return nil, err
		}
		images = uploaded
	}

	status := model.ProductStatusAvailable
	if createDTO.Quantity == 0 {
		status = model.ProductStatusSoldOut
	}

	now := time.Now()
	product := &model.Product{
		Farmer:      farmerID,
		Name:        createDTO.Name,
		Description: createDTO.Description,
		Category:    createDTO.Category,
		Price:       createDTO.Price,
		Unit:        createDTO.Unit,
		Quantity:    createDTO.Quantity,
		Organic:     createDTO.Organic,
		Images:      images,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productServiceImpl) UpdateProduct(ctx context.Context, farmerID, productID primitive.ObjectID, updateDTO *dto.UpdateProductDTO) (*model.Product, error) {
	product, err := s.getOwnedProduct(ctx, farmerID, productID)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if updateDTO.Name != nil {
		set["name"] = *updateDTO.Name
	}
	if updateDTO.Description != nil {
		set["description"] = *updateDTO.Description
	}
	if updateDTO.Category != nil {
		set["category"] = *updateDTO.Category
	}
	if updateDTO.Price != nil {
		set["price"] = *updateDTO.Price
	}
	if updateDTO.Unit != nil {
		set["unit"] = *updateDTO.Unit
	}
	if updateDTO.Quantity != nil {
		set["quantity"] = *updateDTO.Quantity
		// Availability follows the stock level.
		if *updateDTO.Quantity > 0 {
			set["status"] = model.ProductStatusAvailable
		} else {
			set["status"] = model.ProductStatusSoldOut
		}
	}
	if updateDTO.Organic != nil {
		set["organic"] = *updateDTO.Organic
	}
	if len(set) == 0 {
		return product, nil
	}

	updated, err := s.productRepo.Update(ctx, productID, set)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrProductNotFound
	}
	return updated, nil
}

func (s *productServiceImpl) DeleteProduct(ctx context.Context, farmerID, productID primitive.ObjectID) error {
	product, err := s.getOwnedProduct(ctx, farmerID, productID)
	if err != nil {
		return err
	}

	deleteImageBatch(ctx, s.store, product.Images)

	return s.productRepo.Delete(ctx, productID)
}

func (s *productServiceImpl) AddProductImages(ctx context.Context, farmerID, productID primitive.ObjectID, uploads []*ImageUpload) (*model.Product, error) {
	product, err := s.getOwnedProduct(ctx, farmerID, productID)
	if err != nil {
		return nil, err
	}

	images, err := uploadImageBatch(ctx, s.store, consts.FolderProducts, uploads)
	if err != nil {
		return nil, err
	}

	updated, err := s.productRepo.Update(ctx, productID, bson.M{"images": append(product.Images, images...)})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrProductNotFound
	}
	return updated, nil
}

func (s *productServiceImpl) DeleteProductImage(ctx context.Context, farmerID, productID, imageID primitive.ObjectID) error {
	product, err := s.getOwnedProduct(ctx, farmerID, productID)
	if err != nil {
		return err
	}

	idx := -1
	for i, img := range product.Images {
		if img.ID == imageID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrImageNotFound
	}

	if err = s.store.Delete(ctx, product.Images[idx].StorageID); err != nil {
		log.WarnContext(ctx, "failed to delete product image", "storageId", product.Images[idx].StorageID, "err", err)
	}

	images := append(product.Images[:idx:idx], product.Images[idx+1:]...)
	_, err = s.productRepo.Update(ctx, productID, bson.M{"images": images})
	return err
}

func (s *productServiceImpl) getOwnedProduct(ctx context.Context, farmerID, productID primitive.ObjectID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if product.Farmer != farmerID {
		return nil, ErrNotOwner
	}
	return product, nil
}
