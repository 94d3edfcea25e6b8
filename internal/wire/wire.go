package wire

import (
	"Sabzee/internal/api"
	"Sabzee/internal/api/handler"
	"Sabzee/internal/job"
	"Sabzee/internal/pkg/cron"
	"Sabzee/internal/pkg/predict"
	"Sabzee/internal/repository"
	"Sabzee/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApplicationContainer holds every top-level component the app runs.
type ApplicationContainer struct {
	Router  *gin.Engine
	CronMgr *cron.Manager
}

func BuildApplication(db *mongo.Database) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	forumRepo := repository.NewForumRepo(db)
	productRepo := repository.NewProductRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	predictionRepo := repository.NewPredictionRepo(db)

	imageStore := service.NewImageStore()
	diseaseClient := predict.NewDiseaseClient()
	yieldClient := predict.NewYieldClient()

	userService := service.NewUserService(userRepo, imageStore)
	forumService := service.NewForumService(forumRepo, userRepo, imageStore)
	productService := service.NewProductService(productRepo, imageStore)
	orderService := service.NewOrderService(orderRepo, productRepo)
	farmerService := service.NewFarmerService(userRepo, orderRepo)
	predictionService := service.NewPredictionService(predictionRepo, imageStore, diseaseClient, yieldClient)

	handlers := &api.HandlersGroup{
		AuthHandler:       handler.NewAuthHandler(userService),
		ForumHandler:      handler.NewForumHandler(forumService),
		ProductHandler:    handler.NewProductHandler(productService),
		OrderHandler:      handler.NewOrderHandler(orderService),
		FarmerHandler:     handler.NewFarmerHandler(farmerService),
		PredictionHandler: handler.NewPredictionHandler(predictionService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(job.NewStorageCleanupJob(forumRepo, productRepo))

	return &ApplicationContainer{
		Router:  router,
		CronMgr: cronMgr,
	}, nil
}
