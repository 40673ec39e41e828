package app

import (
	"github.com/gin-gonic/gin"

	"github.com/waliet/waliet-backend/internal/server"
)

func wireRouter(cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		SessionHandler:    handlers.Session,
		SessionMiddleware: middleware.Session,
		AllowOrigins:      cfg.AllowOrigins,
	})
}
