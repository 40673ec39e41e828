package app

import (
	"strings"

	"github.com/waliet/waliet-backend/internal/platform/envutil"
	"github.com/waliet/waliet-backend/internal/platform/logger"
)

type Config struct {
	AppEnv       string
	AllowOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	appEnv := envutil.String("APP_ENV", "development")

	var origins []string
	for _, o := range strings.Split(envutil.String("CORS_ALLOW_ORIGINS", ""), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	log.Debug("Config loaded", "app_env", appEnv, "cors_origins", origins)
	return Config{
		AppEnv:       appEnv,
		AllowOrigins: origins,
	}
}
