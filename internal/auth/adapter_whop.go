package auth

import (
	"context"
	"net/http"
	"os"
	"strings"

	types "github.com/waliet/waliet-backend/internal/domain"

	"github.com/waliet/waliet-backend/internal/clients/whop"
	"github.com/waliet/waliet-backend/internal/platform/envutil"
	"github.com/waliet/waliet-backend/internal/platform/logger"
)

// TokenHeader is set by the Whop iframe proxy on every embedded-app request.
const TokenHeader = "X-Whop-User-Token"

type WhopAdapterConfig struct {
	// DevUserID bypasses token verification entirely and must never be set
	// in production; NewWhopAdapter refuses it there.
	DevUserID string
	AppEnv    string
}

func WhopAdapterConfigFromEnv() WhopAdapterConfig {
	return WhopAdapterConfig{
		DevUserID: strings.TrimSpace(os.Getenv("WHOP_DEV_USER_ID")),
		AppEnv:    envutil.String("APP_ENV", "development"),
	}
}

type whopAdapter struct {
	log       *logger.Logger
	client    whop.Client
	cache     IdentityCache
	devUserID string
}

func NewWhopAdapter(log *logger.Logger, client whop.Client, cache IdentityCache, cfg WhopAdapterConfig) Adapter {
	devUserID := cfg.DevUserID
	if devUserID != "" && strings.EqualFold(cfg.AppEnv, "production") {
		log.Warn("WHOP_DEV_USER_ID ignored in production")
		devUserID = ""
	}
	return &whopAdapter{
		log:       log.With("adapter", "WhopAdapter"),
		client:    client,
		cache:     cache,
		devUserID: devUserID,
	}
}

func (a *whopAdapter) Provider() types.Provider { return types.ProviderWhop }

func (a *whopAdapter) TryResolve(ctx context.Context, r *http.Request) *ExternalIdentity {
	token := strings.TrimSpace(r.Header.Get(TokenHeader))

	var userID string
	switch {
	case token != "":
		if a.cache != nil {
			if identity := a.cache.Get(ctx, token); identity != nil {
				return identity
			}
		}
		id, err := a.client.VerifyUserToken(ctx, token)
		if err != nil {
			a.log.Debug("whop token did not verify", "error", err)
			return nil
		}
		userID = id
	case a.devUserID != "":
		userID = a.devUserID
	default:
		return nil
	}

	profile, err := a.client.GetUser(ctx, userID)
	if err != nil {
		a.log.Warn("whop profile fetch failed", "user_id", userID, "error", err)
		return nil
	}

	identity := &ExternalIdentity{
		Provider:       types.ProviderWhop,
		ProviderUserID: profile.ID,
		DisplayName:    displayName(profile),
	}
	if profile.Email != "" {
		identity.Email = &profile.Email
	}
	if profile.ProfilePicURL != "" {
		identity.AvatarURL = &profile.ProfilePicURL
	}

	if a.cache != nil && token != "" {
		a.cache.Set(ctx, token, identity)
	}
	return identity
}

func displayName(u *whop.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}
