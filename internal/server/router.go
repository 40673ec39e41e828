package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/waliet/waliet-backend/internal/http/handlers"
	"github.com/waliet/waliet-backend/internal/http/middleware"
)

type RouterConfig struct {
	SessionHandler    *handlers.SessionHandler
	SessionMiddleware *middleware.SessionMiddleware
	AllowOrigins      []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Whop-User-Token"},
		AllowCredentials: true,
	}))

	router.Use(middleware.AttachRequestContext())

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	api.Use(cfg.SessionMiddleware.WithSession())
	{
		api.GET("/me", cfg.SessionHandler.GetMe)
		api.POST("/auth/login", cfg.SessionHandler.Login)
		api.POST("/auth/logout", cfg.SessionHandler.Logout)
	}

	return router
}
