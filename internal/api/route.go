package api

import (
	"Sabzee/internal/api/middleware"
	"Sabzee/internal/model"
	"Sabzee/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", group.AuthHandler.Register)
			authGroup.POST("/login", group.AuthHandler.Login)

			meGroup := authGroup.Group("")
			meGroup.Use(middleware.AuthMiddleware())
			{
				meGroup.POST("/logout", group.AuthHandler.Logout)
				meGroup.GET("/me", group.AuthHandler.Me)
				meGroup.PUT("/me", group.AuthHandler.UpdateProfile)
				meGroup.POST("/me/avatar", group.AuthHandler.UpdateProfileImage)
			}
		}

		forumGroup := apiGroup.Group("/forum")
		{
			forumGroup.GET("/posts", group.ForumHandler.ListPosts)
			forumGroup.GET("/posts/:id", group.ForumHandler.GetPost)

			authedForum := forumGroup.Group("")
			authedForum.Use(middleware.AuthMiddleware())
			{
				authedForum.POST("/posts", group.ForumHandler.CreatePost)
				authedForum.PUT("/posts/:id", group.ForumHandler.UpdatePost)
				authedForum.DELETE("/posts/:id", group.ForumHandler.DeletePost)

				authedForum.POST("/posts/:id/comments", group.ForumHandler.AddComment)
				authedForum.DELETE("/posts/:id/comments/:commentId", group.ForumHandler.DeleteComment)

				authedForum.POST("/posts/:id/like", group.ForumHandler.LikePost)
				authedForum.DELETE("/posts/:id/like", group.ForumHandler.UnlikePost)

				authedForum.POST("/posts/:id/images", group.ForumHandler.AddImages)
				authedForum.DELETE("/posts/:id/images/:imageId", group.ForumHandler.DeleteImage)
			}
		}

		productGroup := apiGroup.Group("/products")
		{
			productGroup.GET("", group.ProductHandler.ListProducts)
			productGroup.GET("/:id", group.ProductHandler.GetProduct)

			farmerProducts := productGroup.Group("")
			farmerProducts.Use(middleware.AuthMiddleware(), middleware.CheckRole(model.RoleFarmer))
			{
				farmerProducts.POST("", group.ProductHandler.CreateProduct)
				farmerProducts.PUT("/:id", group.ProductHandler.UpdateProduct)
				farmerProducts.DELETE("/:id", group.ProductHandler.DeleteProduct)
				farmerProducts.POST("/:id/images", group.ProductHandler.AddImages)
				farmerProducts.DELETE("/:id/images/:imageId", group.ProductHandler.DeleteImage)
			}
		}

		orderGroup := apiGroup.Group("/orders")
		orderGroup.Use(middleware.AuthMiddleware())
		{
			orderGroup.GET("", group.OrderHandler.ListOrders)
			orderGroup.GET("/:id", group.OrderHandler.GetOrder)

			consumerOrders := orderGroup.Group("")
			consumerOrders.Use(middleware.CheckRole(model.RoleConsumer))
			{
				consumerOrders.POST("", group.OrderHandler.CreateOrder)
				consumerOrders.POST("/:id/cancel", group.OrderHandler.CancelOrder)
			}

			farmerOrders := orderGroup.Group("")
			farmerOrders.Use(middleware.CheckRole(model.RoleFarmer))
			{
				farmerOrders.PUT("/:id/status", group.OrderHandler.UpdateStatus)
			}
		}

		farmerGroup := apiGroup.Group("/farmers")
		{
			farmerGroup.GET("", group.FarmerHandler.ListFarmers)

			analyticsGroup := farmerGroup.Group("")
			analyticsGroup.Use(middleware.AuthMiddleware(), middleware.CheckRole(model.RoleFarmer))
			{
				analyticsGroup.GET("/me/analytics", group.FarmerHandler.Analytics)
			}

			farmerGroup.GET("/:id", group.FarmerHandler.GetFarmer)
		}

		predictionGroup := apiGroup.Group("/predictions")
		predictionGroup.Use(middleware.AuthMiddleware(), middleware.CheckRole(model.RoleFarmer))
		{
			predictionGroup.POST("/crop-scans", group.PredictionHandler.ScanCrop)
			predictionGroup.GET("/crop-scans", group.PredictionHandler.ListCropScans)
			predictionGroup.GET("/crop-scans/:id", group.PredictionHandler.GetCropScan)

			predictionGroup.POST("/yields", group.PredictionHandler.PredictYield)
			predictionGroup.GET("/yields", group.PredictionHandler.ListYieldPredictions)
			predictionGroup.GET("/yields/:id", group.PredictionHandler.GetYieldPrediction)
		}
	}

	return r
}
