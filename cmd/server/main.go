package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/msaedi/instructly-sub007/api/swagger"
	"github.com/msaedi/instructly-sub007/internal/handler"
	"github.com/msaedi/instructly-sub007/internal/middleware"
	"github.com/msaedi/instructly-sub007/internal/repository"
	"github.com/msaedi/instructly-sub007/internal/service"
	"github.com/msaedi/instructly-sub007/pkg/cache"
	"github.com/msaedi/instructly-sub007/pkg/config"
	"github.com/msaedi/instructly-sub007/pkg/database"
	"github.com/msaedi/instructly-sub007/pkg/logger"
	corsmiddleware "github.com/msaedi/instructly-sub007/pkg/middleware/cors"
	reqidmiddleware "github.com/msaedi/instructly-sub007/pkg/middleware/requestid"
)

// @title Instructly Availability API
// @version 0.1.0
// @description Bitmap-based weekly instructor availability engine
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			repo := repository.NewCacheRepository(redisClient, logr)
			defer repo.Close() //nolint:errcheck
			cacheRepo = repo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.DayTTL, cfg.Cache.WeekTTL, logr, cfg.Cache.Enabled && cacheRepo != nil)

	validate := validator.New()

	availabilityRepo := repository.NewAvailabilityRepository(db)
	instructorRepo := repository.NewInstructorRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	outboxRepo := repository.NewOutboxRepository(db)

	availabilitySvc := service.NewAvailabilityService(
		availabilityRepo,
		instructorRepo,
		auditRepo,
		outboxRepo,
		cacheSvc,
		validate,
		logr,
		metricsSvc,
		cfg.Availability,
		service.SystemClock(),
	)
	admissionSvc := service.NewAdmissionService(availabilitySvc, logr, metricsSvc)

	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	admissionHandler := handler.NewAdmissionHandler(admissionSvc)

	if cfg.Outbox.Enabled {
		dispatcher := service.NewOutboxDispatcher(outboxRepo, service.LogPublisher{Logger: logr}, logr, cfg.Outbox)
		dispatcher.Start(context.Background())
		defer dispatcher.Stop()
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.Actor(cfg.JWT))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/instructors/:id/availability", availabilityHandler.GetWeek)
		api.PUT("/instructors/:id/availability", availabilityHandler.SaveWeek)
		api.POST("/instructors/:id/availability/dates", availabilityHandler.AddDate)
		api.POST("/instructors/:id/availability/blackouts", availabilityHandler.Blackout)
		api.POST("/bookings/validate", admissionHandler.Validate)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
