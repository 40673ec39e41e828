package app

import (
	"github.com/waliet/waliet-backend/internal/http/middleware"
	"github.com/waliet/waliet-backend/internal/platform/logger"
)

type Middleware struct {
	Session *middleware.SessionMiddleware
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Session: middleware.NewSessionMiddleware(log, services.Session),
	}
}
