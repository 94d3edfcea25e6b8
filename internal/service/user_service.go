package service

import (
	"Sabzee/internal/api/dto"
	"Sabzee/internal/model"
	"Sabzee/internal/pkg/consts"
	"Sabzee/internal/pkg/redis"
	"Sabzee/internal/pkg/security"
	"Sabzee/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService interface {
	Register(ctx context.Context, regDTO *dto.RegisterDTO) (*dto.TokenDTO, error)
	Login(ctx context.Context, loginDTO *dto.LoginDTO) (*dto.TokenDTO, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, id primitive.ObjectID) (*dto.UserDTO, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, updateDTO *dto.UpdateProfileDTO) (*dto.UserDTO, error)
	UpdateProfileImage(ctx context.Context, id primitive.ObjectID, upload *ImageUpload) (*dto.UserDTO, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepo
	store    ImageStore
}

func NewUserService(userRepo repository.UserRepo, store ImageStore) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		store:    store,
	}
}

func (s *userServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) (*dto.TokenDTO, error) {
	email := strings.ToLower(strings.TrimSpace(regDTO.Email))

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExist
	}

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &model.User{
		Name:          regDTO.Name,
		Email:         email,
		Password:      passwordHash,
		Role:          regDTO.Role,
		ContactNumber: regDTO.ContactNumber,
		ProfileImage:  &model.Image{URL: consts.DefaultProfileImageURL},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if user.Role == model.RoleFarmer {
		user.FarmDetails = farmDetailsFromDTO(regDTO.FarmDetails)
	}

	if err = s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

func (s *userServiceImpl) Login(ctx context.Context, loginDTO *dto.LoginDTO) (*dto.TokenDTO, error) {
	email := strings.ToLower(strings.TrimSpace(loginDTO.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrPasswordIncorrect
	}

	if err = security.CheckPasswordHash(loginDTO.Password, user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}

	return s.issueToken(user)
}

// Logout blacklists the token's signature until the token itself would
// have expired.
func (s *userServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrParamInvalid
	}

	err = redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, "1", security.JWTExpirationTime)
	if err != nil {
		log.ErrorContext(ctx, "failed to blacklist token", "err", err)
		return UnExpectedError
	}
	return nil
}

func (s *userServiceImpl) GetUserInfo(ctx context.Context, id primitive.ObjectID) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserDTO(user)
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, id primitive.ObjectID, updateDTO *dto.UpdateProfileDTO) (*dto.UserDTO, error) {
	set := bson.M{}
	if updateDTO.Name != nil {
		set["name"] = *updateDTO.Name
	}
	if updateDTO.ContactNumber != nil {
		set["contactNumber"] = *updateDTO.ContactNumber
	}
	if updateDTO.FarmDetails != nil {
		set["farmDetails"] = farmDetailsFromDTO(updateDTO.FarmDetails)
	}
	if len(set) == 0 {
		return s.GetUserInfo(ctx, id)
	}

	user, err := s.userRepo.Update(ctx, id, set)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserDTO(user)
}

func (s *userServiceImpl) UpdateProfileImage(ctx context.Context, id primitive.ObjectID, upload *ImageUpload) (*dto.UserDTO, error) {
	current, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrUserNotFound
	}

	img, err := uploadOneImage(ctx, s.store, consts.FolderProfileImages, upload)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Update(ctx, id, bson.M{"profileImage": &model.Image{
		URL:       img.URL,
		StorageID: img.StorageID,
	}})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// The previous image, if it was an uploaded one, is no longer referenced.
	if current.ProfileImage != nil && current.ProfileImage.StorageID != "" {
		if err = s.store.Delete(ctx, current.ProfileImage.StorageID); err != nil {
			log.WarnContext(ctx, "failed to delete previous profile image", "storageId", current.ProfileImage.StorageID, "err", err)
		}
	}

	return toUserDTO(user)
}

func (s *userServiceImpl) issueToken(user *model.User) (*dto.TokenDTO, error) {
	token, err := security.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, err
	}

	userDTO, err := toUserDTO(user)
	if err != nil {
		return nil, err
	}

	return &dto.TokenDTO{
		Token: token,
		User:  userDTO,
	}, nil
}

func toUserDTO(user *model.User) (*dto.UserDTO, error) {
	userDTO := &dto.UserDTO{}
	if err := copier.Copy(userDTO, user); err != nil {
		return nil, err
	}
	return userDTO, nil
}

func farmDetailsFromDTO(d *dto.FarmDetailsDTO) *model.FarmDetails {
	if d == nil {
		return nil
	}
	return &model.FarmDetails{
		FarmName:    d.FarmName,
		Description: d.Description,
		Location: model.GeoPoint{
			Type:        "Point",
			Coordinates: d.Coordinates,
		},
		LocationName: d.LocationName,
	}
}
