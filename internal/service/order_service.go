package service

import (
	"Sabzee/internal/api/dto"
	"Sabzee/internal/model"
	"Sabzee/internal/repository"
	"context"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderService interface {
	CreateOrder(ctx context.Context, consumerID primitive.ObjectID, createDTO *dto.CreateOrderDTO) (*model.Order, error)
	GetOrder(ctx context.Context, userID, orderID primitive.ObjectID) (*model.Order, error)
	ListConsumerOrders(ctx context.Context, consumerID primitive.ObjectID) ([]*model.Order, error)
	ListFarmerOrders(ctx context.Context, farmerID primitive.ObjectID) ([]*model.Order, error)
	UpdateStatus(ctx context.Context, farmerID, orderID primitive.ObjectID, status string) (*model.Order, error)
	CancelOrder(ctx context.Context, consumerID, orderID primitive.ObjectID) (*model.Order, error)
}

type orderServiceImpl struct {
	orderRepo   repository.OrderRepo
	productRepo repository.ProductRepo
}

func NewOrderService(orderRepo repository.OrderRepo, productRepo repository.ProductRepo) OrderService {
	return &orderServiceImpl{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// CreateOrder reserves stock item by item; if any line cannot be
// fulfilled the already reserved lines are put back.
func (s *orderServiceImpl) CreateOrder(ctx context.Context, consumerID primitive.ObjectID, createDTO *dto.CreateOrderDTO) (*model.Order, error) {
	items := make([]model.OrderItem, 0, len(createDTO.Items))
	var total float64

	release := func() {
		for _, item := range items {
			if err := s.productRepo.IncrementStock(ctx, item.Product, item.Quantity); err != nil {
				log.ErrorContext(ctx, "failed to release reserved stock", "product", item.Product.Hex(), "err", err)
			}
		}
	}

	for _, line := range createDTO.Items {
		productID, err := primitive.ObjectIDFromHex(line.Product)
		if err != nil {
			release()
			return nil, ErrParamInvalid
		}

		product, err := s.productRepo.DecrementStock(ctx, productID, line.Quantity)
		if err != nil {
			release()
			return nil, err
		}
		if product == nil {
			release()
			return nil, ErrOutOfStock
		}

		items = append(items, model.OrderItem{
			Product:  product.ID,
			Farmer:   product.Farmer,
			Name:     product.Name,
			Price:    product.Price,
			Quantity: line.Quantity,
		})
		total += product.Price * float64(line.Quantity)
	}

	now := time.Now()
	order := &model.Order{
		Consumer:        consumerID,
		Items:           items,
		TotalAmount:     total,
		Status:          model.OrderStatusPending,
		ShippingAddress: createDTO.ShippingAddress,
		ContactNumber:   createDTO.ContactNumber,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		release()
		return nil, err
	}
	return order, nil
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, userID, orderID primitive.ObjectID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Consumer != userID && !orderInvolvesFarmer(order, userID) {
		return nil, ErrNotOwner
	}
	return order, nil
}

func (s *orderServiceImpl) ListConsumerOrders(ctx context.Context, consumerID primitive.ObjectID) ([]*model.Order, error) {
	return s.orderRepo.ListByConsumer(ctx, consumerID)
}

func (s *orderServiceImpl) ListFarmerOrders(ctx context.Context, farmerID primitive.ObjectID) ([]*model.Order, error) {
	return s.orderRepo.ListByFarmer(ctx, farmerID)
}

// UpdateStatus moves an order along the fulfilment chain. Cancellation
// goes through CancelOrder so stock is restored.
func (s *orderServiceImpl) UpdateStatus(ctx context.Context, farmerID, orderID primitive.ObjectID, status string) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !orderInvolvesFarmer(order, farmerID) {
		return nil, ErrNotOwner
	}
	if status == model.OrderStatusCancelled || !model.CanTransitionOrder(order.Status, status) {
		return nil, ErrOrderTransition
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrOrderNotFound
	}
	return updated, nil
}

// CancelOrder returns every line's quantity to stock before flipping the
// status.
func (s *orderServiceImpl) CancelOrder(ctx context.Context, consumerID, orderID primitive.ObjectID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Consumer != consumerID {
		return nil, ErrNotOwner
	}
	if !model.CanTransitionOrder(order.Status, model.OrderStatusCancelled) {
		return nil, ErrOrderTransition
	}

	for _, item := range order.Items {
		if err = s.productRepo.IncrementStock(ctx, item.Product, item.Quantity); err != nil {
			log.ErrorContext(ctx, "failed to restore stock on cancellation", "product", item.Product.Hex(), "err", err)
		}
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, orderID, model.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrOrderNotFound
	}
	return updated, nil
}

func orderInvolvesFarmer(order *model.Order, farmerID primitive.ObjectID) bool {
	for _, item := range order.Items {
		if item.Farmer == farmerID {
			return true
		}
	}
	return false
}
