package main

import (
	"strconv"

	"github.com/gin-contrib/cors"

	"github.com/exoplanet-intelligence/exoserve/internal/configs"
	"github.com/exoplanet-intelligence/exoserve/internal/model"
	predictionRouter "github.com/exoplanet-intelligence/exoserve/internal/prediction/route"
	"github.com/exoplanet-intelligence/exoserve/pkg/httpframework"
	"github.com/exoplanet-intelligence/exoserve/pkg/infra"
	"github.com/exoplanet-intelligence/exoserve/pkg/logger"
	"github.com/exoplanet-intelligence/exoserve/pkg/metric"
	"github.com/rs/zerolog/log"
)

type AppConfig struct {
	Configs configs.Configs
}

func (cfg *AppConfig) GetStaticConfig() interface{} {
	return &cfg.Configs
}

var (
	appConfig AppConfig
)

func main() {
	configs.InitConfig(&appConfig)

	logger.Init(appConfig.Configs)

	// Model artifacts load before anything can serve; a bad artifact is fatal
	model.Init(appConfig.Configs)

	infra.InitDBConnectors(appConfig.Configs)

	metric.Init(appConfig.Configs)

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	httpframework.Init(cors.New(corsConfig))

	predictionRouter.Init(appConfig.Configs)

	port := appConfig.Configs.AppPort
	if port == 0 {
		port = 8000
		log.Warn().Int("port", port).Msg("App port not set, defaulting to 8000")
	}
	httpframework.Instance().Run(":" + strconv.Itoa(port))
}
