package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ProductCategories = []string{"vegetables", "fruits", "grains", "dairy", "other"}

var ProductUnits = []string{"kg", "g", "piece", "dozen", "litre"}

const (
	ProductStatusAvailable = "available"
	ProductStatusSoldOut   = "sold_out"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Farmer      primitive.ObjectID `bson:"farmer" json:"farmer"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Price       float64            `bson:"price" json:"price"`
	Unit        string             `bson:"unit" json:"unit"`
	Quantity    int64              `bson:"quantity" json:"quantity"`
	Organic     bool               `bson:"organic" json:"organic"`
	Images      []PostImage        `bson:"images" json:"images"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
