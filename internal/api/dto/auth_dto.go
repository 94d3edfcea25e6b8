package dto

import (
	"Sabzee/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RegisterDTO struct {
	Name          string          `json:"name" binding:"required,min=2,max=100"`
	Email         string          `json:"email" binding:"required,email"`
	Password      string          `json:"password" binding:"required,min=6,max=72"`
	ContactNumber string          `json:"contactNumber" binding:"omitempty,min=7,max=15"`
	Role          string          `json:"role" binding:"required,oneof=farmer consumer"`
	FarmDetails   *FarmDetailsDTO `json:"farmDetails" binding:"omitempty"`
}

type FarmDetailsDTO struct {
	FarmName     string    `json:"farmName" binding:"omitempty,max=150"`
	Description  string    `json:"description" binding:"omitempty,max=2000"`
	Coordinates  []float64 `json:"coordinates" binding:"required,len=2"`
	LocationName string    `json:"locationName" binding:"omitempty,max=200"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileDTO struct {
	Name          *string         `json:"name" binding:"omitempty,min=2,max=100"`
	ContactNumber *string         `json:"contactNumber" binding:"omitempty,min=7,max=15"`
	FarmDetails   *FarmDetailsDTO `json:"farmDetails" binding:"omitempty"`
}

type UserDTO struct {
	ID            primitive.ObjectID `json:"id"`
	Name          string             `json:"name"`
	Email         string             `json:"email"`
	Role          string             `json:"role"`
	ContactNumber string             `json:"contactNumber,omitempty"`
	ProfileImage  *model.Image       `json:"profileImage,omitempty"`
	FarmDetails   *model.FarmDetails `json:"farmDetails,omitempty"`
}

type TokenDTO struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}
