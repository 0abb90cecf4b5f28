package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/config"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/database"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/handlers"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/middleware"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/models"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/routes"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	logger.Info().Str("environment", env).Msg("Starting diary-workout-tracker backend...")

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	database.Connect()
	database.InitRedis()

	logger.Info().Msg("Running database migrations...")
	if err := database.DB.AutoMigrate(
		&models.User{},
		&models.Day{},
		&models.History{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.MotivationalPhrase{},
		&models.RecreationPhrase{},
	); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	handlers.Init()

	var limits middleware.LimitStore
	if database.Redis != nil {
		limits = middleware.RedisLimitStore{Client: database.Redis}
	} else {
		limits = middleware.NewLocalLimitStore()
	}

	r := gin.New()
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RateLimit(limits, 600, time.Minute))

	api := r.Group("/api/v1")
	{
		routes.RegisterAuthRoutes(api, limits)
		routes.RegisterUserRoutes(api)
		routes.RegisterRunningRoutes(api)
	}

	r.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		redisStatus := "ok"

		sqlDB, err := database.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "error"
		}
		if database.Redis != nil {
			if _, err := database.Redis.Ping(context.Background()).Result(); err != nil {
				redisStatus = "error"
			}
		} else {
			redisStatus = "not configured"
		}

		status := "ok"
		if dbStatus != "ok" || (redisStatus != "ok" && redisStatus != "not configured") {
			status = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{
			"status": status,
			"checks": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		})
	})

	port := config.AppConfig.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", port).Str("env", env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited gracefully")
}
