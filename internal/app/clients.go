package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/waliet/waliet-backend/internal/auth"
	redisclient "github.com/waliet/waliet-backend/internal/clients/redis"
	"github.com/waliet/waliet-backend/internal/clients/supabase"
	"github.com/waliet/waliet-backend/internal/clients/whop"
	"github.com/waliet/waliet-backend/internal/platform/envutil"
	"github.com/waliet/waliet-backend/internal/platform/logger"
)

type Clients struct {
	Whop          whop.Client
	Supabase      supabase.Client
	IdentityCache auth.IdentityCache
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	whopClient, err := whop.NewFromEnv(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init whop client: %w", err)
	}

	supabaseClient, err := supabase.NewFromEnv(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init supabase client: %w", err)
	}

	// The identity cache is optional: no REDIS_ADDR, no cache. The toggle
	// lets a deployment keep REDIS_ADDR set while bypassing the cache.
	var cache auth.IdentityCache
	if !envutil.Bool("IDENTITY_CACHE_ENABLED", true) {
		log.Info("identity cache disabled by IDENTITY_CACHE_ENABLED")
	} else if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		cache, err = redisclient.NewIdentityCache(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init identity cache: %w", err)
		}
	} else {
		log.Info("REDIS_ADDR not set, identity cache disabled")
	}

	return Clients{
		Whop:          whopClient,
		Supabase:      supabaseClient,
		IdentityCache: cache,
	}, nil
}
