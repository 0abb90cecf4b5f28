package routes

import (
	"time"

	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/handlers"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes wires registration, code delivery and token issuance.
// Auth endpoints get a tighter per-identity limit on top of the general one.
func RegisterAuthRoutes(r gin.IRouter, limits middleware.LimitStore) {
	auth := r.Group("/auth")
	auth.Use(middleware.RateLimit(limits, 20, time.Minute))
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/code", handlers.RequestAuthCode)
		auth.POST("/token", handlers.ObtainToken)
		auth.POST("/refresh", handlers.RefreshToken)
	}
}

// RegisterUserRoutes wires the authenticated profile and streak endpoints.
func RegisterUserRoutes(r gin.IRouter) {
	me := r.Group("/me")
	me.Use(middleware.AuthMiddleware())
	{
		me.GET("", handlers.GetMe)
		me.PATCH("", handlers.UpdateMe)
		me.DELETE("", handlers.DeleteMe)
		me.PATCH("/timezone", handlers.UpdateTimezone)
		me.PATCH("/reset", handlers.ResetMe)
	}
}

// RegisterRunningRoutes wires the training plan, history and achievements.
func RegisterRunningRoutes(r gin.IRouter) {
	run := r.Group("")
	run.Use(middleware.AuthMiddleware())
	{
		run.GET("/training", handlers.ListTrainingPlan)
		run.GET("/history", handlers.ListHistory)
		run.POST("/history", handlers.CreateHistory)
		run.GET("/achievements", handlers.ListAchievements)
	}
}
