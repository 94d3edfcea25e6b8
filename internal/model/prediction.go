package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CropScan records one disease-detection request and its verdict.
type CropScan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Farmer    primitive.ObjectID `bson:"farmer" json:"farmer"`
	ImageURL  string             `bson:"imageUrl" json:"imageUrl"`
	Result    CropScanResult     `bson:"result" json:"result"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type CropScanResult struct {
	Disease     string  `bson:"disease" json:"disease"`
	Confidence  float64 `bson:"confidence" json:"confidence"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	Treatment   string  `bson:"treatment,omitempty" json:"treatment,omitempty"`
}

// YieldPrediction records one yield-estimation request and its result.
type YieldPrediction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Farmer    primitive.ObjectID `bson:"farmer" json:"farmer"`
	Input     YieldInput         `bson:"input" json:"input"`
	Result    YieldResult        `bson:"result" json:"result"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type YieldInput struct {
	Latitude   float64 `bson:"latitude" json:"latitude"`
	Longitude  float64 `bson:"longitude" json:"longitude"`
	Crop       string  `bson:"crop" json:"crop"`
	Season     string  `bson:"season" json:"season"`
	AreaOfLand float64 `bson:"areaOfLand" json:"areaOfLand"`
	SoilType   string  `bson:"soilType" json:"soilType"`
}

type YieldResult struct {
	PredictedYieldKg float64      `bson:"predictedYieldKg" json:"predictedYieldKg"`
	SuggestedCrops   []string     `bson:"suggestedCrops" json:"suggestedCrops"`
	Confidence       float64      `bson:"confidence" json:"confidence"`
	Weather          YieldWeather `bson:"weather" json:"weather"`
}

type YieldWeather struct {
	Temperature float64 `bson:"temperature" json:"temperature"`
	Humidity    float64 `bson:"humidity" json:"humidity"`
	Rainfall    float64 `bson:"rainfall" json:"rainfall"`
}
