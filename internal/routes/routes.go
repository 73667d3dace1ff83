package routes

import (
	"microhub-backend/internal/config"
	"microhub-backend/internal/guard"
	"microhub-backend/internal/handlers"
	"microhub-backend/internal/middleware"
	"microhub-backend/internal/services"
	"microhub-backend/pkg/validator"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, store guard.Store, cfg *config.Config) *gin.Engine {
	router := gin.New()

	auditService := services.NewAuditService(db)
	trackingService := services.NewTrackingService(db, cfg.Tracking.MaxDurationSeconds)
	statsService := services.NewStatsService(db)

	g := guard.New(store, auditService, guard.Options{
		HashSecret:  cfg.Guard.HashSecret,
		RateLimit:   cfg.Guard.RateLimit,
		RateWindow:  time.Duration(cfg.Guard.RateWindowSeconds) * time.Second,
		HoneypotTTL: time.Duration(cfg.Guard.HoneypotBlockMinutes) * time.Minute,
		// The trap itself must stay reachable no matter what state a
		// visitor is in, so it bypasses the pipeline.
		BypassPrefixes: append(cfg.Guard.BypassPrefixes, handlers.TrapPath),
	})

	router.Use(middleware.LoggerMiddleware())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	if !cfg.Guard.Disabled {
		// The guard sits before everything else so blocked requests never
		// reach expensive handling.
		router.Use(middleware.GuardMiddleware(g))
	}

	trackingHandler := handlers.NewTrackingHandler(trackingService, g, cfg, validator.GetValidator())
	honeypotHandler := handlers.NewHoneypotHandler(g)
	statsHandler := handlers.NewStatsHandler(statsService)

	api := router.Group("/api")

	track := api.Group("/track")
	{
		track.POST("/pageview", trackingHandler.RecordPageView)
		track.POST("/duration", trackingHandler.UpdateDuration)
		track.POST("/event", trackingHandler.RecordEvent)

		// The trap answers both the invisible link (GET) and form (POST).
		track.GET("/archive", honeypotHandler.Trigger)
		track.POST("/archive", honeypotHandler.Trigger)

		track.GET("/honeypot-markup", honeypotHandler.Markup)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AdminMiddleware(cfg.Admin.Token))
	{
		stats := admin.Group("/stats")
		{
			stats.GET("/summary", statsHandler.GetSummary)
			stats.GET("/blocks", statsHandler.GetBlocks)
			stats.GET("/views/daily", statsHandler.GetDailyViews)
			stats.GET("/views/top", statsHandler.GetTopPages)
			stats.GET("/events", statsHandler.GetEvents)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router
}
