package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/classforge/timetable-api/api/swagger"
	"github.com/classforge/timetable-api/internal/handler"
	"github.com/classforge/timetable-api/internal/middleware"
	"github.com/classforge/timetable-api/internal/service"
	"github.com/classforge/timetable-api/pkg/cache"
	"github.com/classforge/timetable-api/pkg/config"
	"github.com/classforge/timetable-api/pkg/logger"
	corsmiddleware "github.com/classforge/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/classforge/timetable-api/pkg/middleware/requestid"
)

// @title ClassForge Timetable API
// @version 1.0.0
// @description Genetic-algorithm weekly class timetable generator
// @BasePath /api/v1
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	var store service.ResultStore = service.NewMemoryResultStore(cfg.Scheduler.ResultTTL)
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, falling back to in-memory result store", "error", err)
		} else {
			store = service.NewRedisResultStore(redisClient, cfg.Scheduler.ResultTTL)
		}
	}

	metrics := service.NewMetricsService()
	timetableService := service.NewTimetableService(cfg, store, metrics, logr)
	timetableHandler := handler.NewTimetableHandler(timetableService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group(cfg.APIPrefix)
	{
		timetable := api.Group("/timetable")
		timetable.POST("/validate", timetableHandler.Validate)
		timetable.POST("/generate", timetableHandler.Generate)
		timetable.GET("/:institutionId", timetableHandler.Get)
		timetable.POST("/export/:institutionId", timetableHandler.Export)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
