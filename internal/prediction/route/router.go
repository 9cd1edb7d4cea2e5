package route

import (
	"sync"

	"github.com/exoplanet-intelligence/exoserve/internal/configs"
	"github.com/exoplanet-intelligence/exoserve/internal/prediction/controller"
	"github.com/exoplanet-intelligence/exoserve/pkg/httpframework"
)

var initPredictionRouterOnce sync.Once

func Init(config configs.Configs) {
	initPredictionRouterOnce.Do(func() {
		api := httpframework.Instance().Group("/api")
		{
			api.GET("/health", controller.NewPredictionController(config).Health)

			predict := api.Group("/predict")
			{
				predict.POST("/classification", controller.NewPredictionController(config).PredictClassification)
				predict.POST("/regression", controller.NewPredictionController(config).PredictRegression)
			}

			api.GET("/predictions/history", controller.NewPredictionController(config).History)
			api.GET("/models/info", controller.NewPredictionController(config).ModelInfo)
			api.GET("/features", controller.NewPredictionController(config).Features)
		}
	})
}
