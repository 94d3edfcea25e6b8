package service

import (
	"Sabzee/internal/api/dto"
	"Sabzee/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newOrderFixture() (*fakeOrderRepo, *fakeProductRepo, OrderService, *model.Product, *model.Product) {
	farmer := primitive.NewObjectID()
	tomatoes := &model.Product{
		ID:       primitive.NewObjectID(),
		Farmer:   farmer,
		Name:     "Tomatoes",
		Price:    40,
		Unit:     "kg",
		Quantity: 10,
		Status:   model.ProductStatusAvailable,
	}
	eggs := &model.Product{
		ID:       primitive.NewObjectID(),
		Farmer:   farmer,
		Name:     "Eggs",
		Price:    90,
		Unit:     "dozen",
		Quantity: 2,
		Status:   model.ProductStatusAvailable,
	}
	orderRepo := newFakeOrderRepo()
	productRepo := newFakeProductRepo(tomatoes, eggs)
	svc := NewOrderService(orderRepo, productRepo)
	return orderRepo, productRepo, svc, tomatoes, eggs
}

func TestCreateOrderSnapshotsAndReservesStock(t *testing.T) {
	_, _, svc, tomatoes, eggs := newOrderFixture()
	consumer := primitive.NewObjectID()

	order, err := svc.CreateOrder(context.Background(), consumer, &dto.CreateOrderDTO{
		Items: []dto.OrderItemDTO{
			{Product: tomatoes.ID.Hex(), Quantity: 3},
			{Product: eggs.ID.Hex(), Quantity: 2},
		},
		ShippingAddress: "12 Market Road",
		ContactNumber:   "9876543210",
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, float64(3*40+2*90), order.TotalAmount)
	assert.Equal(t, "Tomatoes", order.Items[0].Name)
	assert.Equal(t, float64(40), order.Items[0].Price)

	assert.Equal(t, int64(7), tomatoes.Quantity)
	assert.Equal(t, int64(0), eggs.Quantity)
	assert.Equal(t, model.ProductStatusSoldOut, eggs.Status)
}

func TestCreateOrderRollsBackOnShortStock(t *testing.T) {
	_, productRepo, svc, tomatoes, eggs := newOrderFixture()
	consumer := primitive.NewObjectID()

	_, err := svc.CreateOrder(context.Background(), consumer, &dto.CreateOrderDTO{
		Items: []dto.OrderItemDTO{
			{Product: tomatoes.ID.Hex(), Quantity: 3},
			{Product: eggs.ID.Hex(), Quantity: 5},
		},
		ShippingAddress: "12 Market Road",
		ContactNumber:   "9876543210",
	})
	assert.ErrorIs(t, err, ErrOutOfStock)

	// The tomato reservation is undone.
	assert.Equal(t, int64(10), tomatoes.Quantity)
	assert.Equal(t, int64(3), productRepo.restored[tomatoes.ID])
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	_, _, svc, _, _ := newOrderFixture()

	_, err := svc.CreateOrder(context.Background(), primitive.NewObjectID(), &dto.CreateOrderDTO{
		Items:           []dto.OrderItemDTO{{Product: primitive.NewObjectID().Hex(), Quantity: 1}},
		ShippingAddress: "12 Market Road",
		ContactNumber:   "9876543210",
	})
	assert.ErrorIs(t, err, ErrOutOfStock)
}

func TestUpdateStatusFollowsTransitions(t *testing.T) {
	orderRepo, _, svc, tomatoes, _ := newOrderFixture()
	order := &model.Order{
		ID:       primitive.NewObjectID(),
		Consumer: primitive.NewObjectID(),
		Status:   model.OrderStatusPending,
		Items:    []model.OrderItem{{Product: tomatoes.ID, Farmer: tomatoes.Farmer, Quantity: 1}},
	}
	orderRepo.orders[order.ID] = order

	_, err := svc.UpdateStatus(context.Background(), primitive.NewObjectID(), order.ID, model.OrderStatusConfirmed)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.UpdateStatus(context.Background(), tomatoes.Farmer, order.ID, model.OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrOrderTransition)

	_, err = svc.UpdateStatus(context.Background(), tomatoes.Farmer, order.ID, model.OrderStatusCancelled)
	assert.ErrorIs(t, err, ErrOrderTransition)

	updated, err := svc.UpdateStatus(context.Background(), tomatoes.Farmer, order.ID, model.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, updated.Status)

	updated, err = svc.UpdateStatus(context.Background(), tomatoes.Farmer, order.ID, model.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, updated.Status)
}

func TestCancelOrderRestoresStock(t *testing.T) {
	orderRepo, productRepo, svc, tomatoes, _ := newOrderFixture()
	consumer := primitive.NewObjectID()
	order := &model.Order{
		ID:       primitive.NewObjectID(),
		Consumer: consumer,
		Status:   model.OrderStatusPending,
		Items:    []model.OrderItem{{Product: tomatoes.ID, Farmer: tomatoes.Farmer, Quantity: 4}},
	}
	orderRepo.orders[order.ID] = order

	_, err := svc.CancelOrder(context.Background(), primitive.NewObjectID(), order.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	cancelled, err := svc.CancelOrder(context.Background(), consumer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, int64(4), productRepo.restored[tomatoes.ID])
}

func TestCancelOrderRejectedAfterShipping(t *testing.T) {
	orderRepo, _, svc, tomatoes, _ := newOrderFixture()
	consumer := primitive.NewObjectID()
	order := &model.Order{
		ID:       primitive.NewObjectID(),
		Consumer: consumer,
		Status:   model.OrderStatusShipped,
		Items:    []model.OrderItem{{Product: tomatoes.ID, Farmer: tomatoes.Farmer, Quantity: 1}},
	}
	orderRepo.orders[order.ID] = order

	_, err := svc.CancelOrder(context.Background(), consumer, order.ID)
	assert.ErrorIs(t, err, ErrOrderTransition)
}

func TestGetOrderVisibility(t *testing.T) {
	orderRepo, _, svc, tomatoes, _ := newOrderFixture()
	consumer := primitive.NewObjectID()
	order := &model.Order{
		ID:       primitive.NewObjectID(),
		Consumer: consumer,
		Status:   model.OrderStatusPending,
		Items:    []model.OrderItem{{Product: tomatoes.ID, Farmer: tomatoes.Farmer, Quantity: 1}},
	}
	orderRepo.orders[order.ID] = order

	_, err := svc.GetOrder(context.Background(), consumer, order.ID)
	assert.NoError(t, err)

	_, err = svc.GetOrder(context.Background(), tomatoes.Farmer, order.ID)
	assert.NoError(t, err)

	_, err = svc.GetOrder(context.Background(), primitive.NewObjectID(), order.ID)
	assert.ErrorIs(t, err, ErrNotOwner)
}
