// Package app assembles the whole service: config, database, redis,
// services, handlers, middleware and the HTTP server.
package app

import (
	"context"
	"fmt"
	"time"

	"creatordna_backend/database"
	"creatordna_backend/internal/config"
	"creatordna_backend/internal/email"
	"creatordna_backend/internal/fairness"
	"creatordna_backend/internal/handlers"
	"creatordna_backend/internal/logger"
	"creatordna_backend/internal/middleware"
	"creatordna_backend/internal/routes"
	"creatordna_backend/internal/services"
	"creatordna_backend/internal/validator"
	"creatordna_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run boots the service and blocks serving HTTP.
func Run() error {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)
	validator.Init()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warn("redis unreachable, falling back to in-memory fairness window", "error", err)
			redisClient = nil
		}
	}

	fairnessWindow := newFairnessWindow(cfg, redisClient)
	emailSender := newEmailSender(cfg)

	svc := services.NewServiceContainer(db, fairnessWindow, emailSender)

	worker := workers.NewMatchingWorker(svc.Matching, svc.CollabRequests, 64)
	worker.Start(context.Background())
	svc.Collab.SetProposer(worker)

	router := SetupRouter(svc, redisClient)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "addr", addr, "env", cfg.Server.Env)
	return router.Run(addr)
}

// SetupRouter builds the gin engine with the full middleware chain and
// all routes. Split out from Run so tests can mount the real router.
func SetupRouter(svc *services.ServiceContainer, redisClient *redis.Client) *gin.Engine {
	cfg := config.GetConfig()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	if redisClient != nil {
		router.Use(middleware.RateLimitMiddleware(
			redisClient,
			cfg.RateLimit.Requests,
			time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
		))
	}

	routes.SetupRoutes(router, handlers.NewAppHandlers(svc))
	return router
}

func newFairnessWindow(cfg *config.Config, redisClient *redis.Client) fairness.Window {
	window := time.Duration(cfg.Matching.FairnessWindowMin) * time.Minute
	saturation := int64(cfg.Matching.FairnessSaturation)
	if redisClient != nil {
		return fairness.NewRedisWindow(redisClient, window, saturation)
	}
	return fairness.NewMemoryWindow(window, saturation)
}

func newEmailSender(cfg *config.Config) services.EmailSender {
	sender := email.NewSMTPSender(cfg)
	if sender == nil {
		return nil
	}
	return sender
}
