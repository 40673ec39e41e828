package app

import (
	"github.com/waliet/waliet-backend/internal/http/handlers"
	"github.com/waliet/waliet-backend/internal/platform/logger"
)

type Handlers struct {
	Session *handlers.SessionHandler
}

func wireHandlers(log *logger.Logger) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Session: handlers.NewSessionHandler(log),
	}
}
