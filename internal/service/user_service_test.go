package service

import (
	"Sabzee/internal/api/dto"
	"Sabzee/internal/model"
	"Sabzee/internal/pkg/security"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, &fakeImageStore{})

	token, err := svc.Register(context.Background(), &dto.RegisterDTO{
		Name:     "Asha",
		Email:    " Asha@Farm.example ",
		Password: "harvest42",
		Role:     model.RoleFarmer,
		FarmDetails: &dto.FarmDetailsDTO{
			FarmName:    "Green Acres",
			Coordinates: []float64{73.85, 18.52},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, token.Token)

	assert.Equal(t, "asha@farm.example", userRepo.created.Email)
	assert.NotEqual(t, "harvest42", userRepo.created.Password)
	require.NotNil(t, userRepo.created.FarmDetails)
	assert.Equal(t, "Point", userRepo.created.FarmDetails.Location.Type)

	claims, err := security.ValidateToken(token.Token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleFarmer, claims.Role)
	assert.Equal(t, userRepo.created.ID.Hex(), claims.UserID)

	logged, err := svc.Login(context.Background(), &dto.LoginDTO{Email: "asha@farm.example", Password: "harvest42"})
	require.NoError(t, err)
	assert.Equal(t, token.User.ID, logged.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, &fakeImageStore{})

	reg := &dto.RegisterDTO{Name: "Asha", Email: "a@b.example", Password: "harvest42", Role: model.RoleConsumer}
	_, err := svc.Register(context.Background(), reg)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), reg)
	assert.ErrorIs(t, err, ErrEmailExist)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, &fakeImageStore{})

	_, err := svc.Register(context.Background(), &dto.RegisterDTO{
		Name: "Asha", Email: "a@b.example", Password: "harvest42", Role: model.RoleConsumer,
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginDTO{Email: "nobody@b.example", Password: "harvest42"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)

	_, err = svc.Login(context.Background(), &dto.LoginDTO{Email: "a@b.example", Password: "wrong"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)
}

func TestConsumerRegistrationIgnoresFarmDetails(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, &fakeImageStore{})

	_, err := svc.Register(context.Background(), &dto.RegisterDTO{
		Name:     "Ravi",
		Email:    "ravi@b.example",
		Password: "harvest42",
		Role:     model.RoleConsumer,
		FarmDetails: &dto.FarmDetailsDTO{
			Coordinates: []float64{0, 0},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, userRepo.created.FarmDetails)
}
