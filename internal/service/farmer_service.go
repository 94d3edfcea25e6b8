package service

import (
	"Sabzee/internal/api/dto"
	"Sabzee/internal/model"
	"Sabzee/internal/repository"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FarmerService interface {
	ListFarmers(ctx context.Context) ([]*dto.UserDTO, error)
	GetFarmer(ctx context.Context, id primitive.ObjectID) (*dto.UserDTO, error)
	Analytics(ctx context.Context, farmerID primitive.ObjectID) (*repository.FarmerAnalytics, error)
}

type farmerServiceImpl struct {
	userRepo  repository.UserRepo
	orderRepo repository.OrderRepo
}

func NewFarmerService(userRepo repository.UserRepo, orderRepo repository.OrderRepo) FarmerService {
	return &farmerServiceImpl{
		userRepo:  userRepo,
		orderRepo: orderRepo,
	}
}

func (s *farmerServiceImpl) ListFarmers(ctx context.Context) ([]*dto.UserDTO, error) {
	farmers, err := s.userRepo.ListFarmers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.UserDTO, 0, len(farmers))
	for _, farmer := range farmers {
		farmerDTO, err := toUserDTO(farmer)
		if err != nil {
			return nil, err
		}
		out = append(out, farmerDTO)
	}
	return out, nil
}

func (s *farmerServiceImpl) GetFarmer(ctx context.Context, id primitive.ObjectID) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != model.RoleFarmer {
		return nil, ErrUserNotFound
	}
	return toUserDTO(user)
}

func (s *farmerServiceImpl) Analytics(ctx context.Context, farmerID primitive.ObjectID) (*repository.FarmerAnalytics, error) {
	return s.orderRepo.Analytics(ctx, farmerID)
}
