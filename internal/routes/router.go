// Package router assembles the gin engine, adapted from the teacher's
// internal/routes/router.go: CORS setup and route groups, generalized from
// the heating-prediction endpoints to the assimilation core's admin and
// event-ingestion surface.
package router

import (
	"github.com/aquarian247/AquaMind-sub005/internal/config"
	"github.com/aquarian247/AquaMind-sub005/internal/handler"
	"github.com/aquarian247/AquaMind-sub005/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires handlers under /api and returns the configured engine.
func SetupRouter(cfg *config.Config, db *gorm.DB, svc *service.AssimilationService) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	corsConfig.AllowMethods = cfg.CORS.AllowedMethods
	corsConfig.AllowHeaders = cfg.CORS.AllowedHeaders
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	recomputeHandler := handler.NewRecomputeHandler(svc)
	eventsHandler := handler.NewEventsHandler(db, svc)
	dailyStateHandler := handler.NewDailyStateHandler(db)

	api := r.Group("/api")
	{
		api.POST("/recompute", recomputeHandler.Recompute)
		api.POST("/recompute/sync", recomputeHandler.RecomputeSync)

		api.POST("/events/feeding", eventsHandler.FeedingEventCreated)
		api.POST("/events/growth-sample", eventsHandler.GrowthSampleCreated)

		api.GET("/assignments/:assignmentId/daily-states", dailyStateHandler.List)
		api.GET("/assignments/:assignmentId/daily-states/export", dailyStateHandler.Export)

		api.GET("/health", func(c *gin.Context) {
			c.String(200, "OK")
		})
	}

	return r
}
