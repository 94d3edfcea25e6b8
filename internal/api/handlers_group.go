package api

import "Sabzee/internal/api/handler"

// HandlersGroup bundles every initialized handler instance.
type HandlersGroup struct {
	AuthHandler       *handler.AuthHandler
	ForumHandler      *handler.ForumHandler
	ProductHandler    *handler.ProductHandler
	OrderHandler      *handler.OrderHandler
	FarmerHandler     *handler.FarmerHandler
	PredictionHandler *handler.PredictionHandler
}
