package http

import (
	"github.com/gin-gonic/gin"
	"github.com/vendorscout/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		discovery := v1.Group("/discovery")
		{
			discovery.POST("/jobs", handler.CreateJob)
			discovery.GET("/jobs", handler.ListJobs)
			discovery.GET("/jobs/:id", handler.GetJob)
			discovery.POST("/jobs/:id/cancel", handler.CancelJob)
			discovery.GET("/jobs/:id/results", handler.ListResults)

			discovery.POST("/results/import-batch", handler.ImportResults)
			discovery.POST("/results/:id/import", handler.ImportResult)
			discovery.POST("/results/:id/skip", handler.SkipResult)
		}
	}

	return router
}
