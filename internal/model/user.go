package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleFarmer   = "farmer"
	RoleConsumer = "consumer"
)

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Password      string             `bson:"password" json:"-"`
	Role          string             `bson:"role" json:"role"`
	ContactNumber string             `bson:"contactNumber,omitempty" json:"contactNumber,omitempty"`
	ProfileImage  *Image             `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	FarmDetails   *FarmDetails       `bson:"farmDetails,omitempty" json:"farmDetails,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FarmDetails is present only for farmer accounts.
type FarmDetails struct {
	FarmName     string   `bson:"farmName,omitempty" json:"farmName,omitempty"`
	Description  string   `bson:"description,omitempty" json:"description,omitempty"`
	Location     GeoPoint `bson:"location" json:"location"`
	LocationName string   `bson:"locationName,omitempty" json:"locationName,omitempty"`
}

// GeoPoint is a GeoJSON point, coordinates ordered [lng, lat].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// Image pairs the public URL with the storage key needed to delete it.
type Image struct {
	URL       string `bson:"url" json:"url"`
	StorageID string `bson:"storageId" json:"storageId"`
}

// AuthorSummary is the denormalized author projection attached to posts
// and comments for display without a separate lookup.
type AuthorSummary struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	Name         string             `bson:"name" json:"name"`
	ProfileImage *Image             `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	UserType     string             `bson:"userType" json:"userType"`
}

func (s *User) Summary() *AuthorSummary {
	return &AuthorSummary{
		ID:           s.ID,
		Name:         s.Name,
		ProfileImage: s.ProfileImage,
		UserType:     s.Role,
	}
}
