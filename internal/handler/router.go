package handler

import (
	"valuescore/internal/config"
	"valuescore/internal/model"
	"valuescore/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires every route of the scoring API
func NewRouter(cfg *config.Config, scoringService *service.ScoringService, build model.VersionResponse, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(RequestLogger(logger))
	router.Use(Recovery(logger))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	origins := config.SplitList(cfg.Server.AllowedOrigins)
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowMethods = config.SplitList(cfg.Server.AllowedMethods)
	corsConfig.AllowHeaders = config.SplitList(cfg.Server.AllowedHeaders)
	router.Use(cors.New(corsConfig))

	infoHandler := NewInfoHandler(scoringService, build, logger)
	predictHandler := NewPredictHandler(scoringService, cfg.Schema.Strict, logger)

	router.GET("/", infoHandler.Root)
	router.GET("/health", infoHandler.Health)
	router.GET("/ready", infoHandler.Ready)
	router.GET("/version", infoHandler.Version)
	router.POST("/predict", predictHandler.Predict)

	router.NoRoute(NotFound)
	router.NoMethod(MethodNotAllowed)

	return router
}
