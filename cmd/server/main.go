package main

import (
	"fmt"
	"log"
	"microhub-backend/internal/config"
	"microhub-backend/internal/database"
	"microhub-backend/internal/guard"
	"microhub-backend/internal/routes"
	"microhub-backend/internal/services"
	"microhub-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Log)

	if cfg.HasInsecureSecret() {
		logrus.Warn("GUARD_HASH_SECRET not configured, visitor hashes use the insecure default salt")
	}

	gin.SetMode(cfg.Server.Mode)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	// Redis backs rate windows and block flags. Without it the guard falls
	// back to the in-process store: good enough for a single instance, and
	// the site stays up either way.
	var store guard.Store
	if redisClient, err := database.ConnectRedis(cfg.Redis); err != nil {
		logrus.WithError(err).Warn("redis unavailable, guard using in-memory store")
		store = guard.NewMemoryStore()
	} else {
		store = guard.NewRedisStore(redisClient)
	}

	retention := services.NewRetentionService(db, cfg.Retention.Days)
	retention.Start()
	defer retention.Stop()

	router := routes.Setup(db, store, cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
