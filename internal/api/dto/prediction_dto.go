package dto

type CropScanDTO struct {
	ImageURL string `json:"imageUrl" binding:"required,url"`
}

type YieldPredictionDTO struct {
	Latitude   float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude  float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
	Crop       string  `json:"crop" binding:"required,min=2,max=100"`
	Season     string  `json:"season" binding:"required,min=2,max=50"`
	AreaOfLand float64 `json:"areaOfLand" binding:"required,gt=0"`
	SoilType   string  `json:"soilType" binding:"required,min=2,max=100"`
}
