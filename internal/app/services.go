package app

import (
	"gorm.io/gorm"

	"github.com/waliet/waliet-backend/internal/auth"
	"github.com/waliet/waliet-backend/internal/clients/supabase"
	"github.com/waliet/waliet-backend/internal/platform/logger"
	"github.com/waliet/waliet-backend/internal/services"
)

type Services struct {
	Resolver *auth.Resolver
	Account  services.AccountService
	Session  services.SessionService
}

func wireServices(db *gorm.DB, log *logger.Logger, clients Clients, repos Repos) Services {
	log.Info("Wiring services...")

	whopAdapter := auth.NewWhopAdapter(log, clients.Whop, clients.IdentityCache, auth.WhopAdapterConfigFromEnv())
	supabaseAdapter := auth.NewSupabaseAdapter(log, clients.Supabase, supabase.ConfigFromEnv().CookieName)
	resolver := auth.NewResolver(log, whopAdapter, supabaseAdapter)

	account := services.NewAccountService(db, log, repos.User, repos.SellerProfile)
	session := services.NewSessionService(log, resolver, account)

	return Services{
		Resolver: resolver,
		Account:  account,
		Session:  session,
	}
}
