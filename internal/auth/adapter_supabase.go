package auth

import (
	"context"
	"net/http"
	"strings"

	types "github.com/waliet/waliet-backend/internal/domain"

	"github.com/waliet/waliet-backend/internal/clients/supabase"
	"github.com/waliet/waliet-backend/internal/platform/logger"
)

type supabaseAdapter struct {
	log        *logger.Logger
	client     supabase.Client
	cookieName string
}

// NewSupabaseAdapter resolves the session cookie written by the Supabase JS
// SDK. cookieName may be empty, in which case any "sb-*-auth-token" cookie
// is accepted (the project ref is part of the cookie name).
func NewSupabaseAdapter(log *logger.Logger, client supabase.Client, cookieName string) Adapter {
	return &supabaseAdapter{
		log:        log.With("adapter", "SupabaseAdapter"),
		client:     client,
		cookieName: cookieName,
	}
}

func (a *supabaseAdapter) Provider() types.Provider { return types.ProviderSupabase }

func (a *supabaseAdapter) TryResolve(ctx context.Context, r *http.Request) *ExternalIdentity {
	accessToken := a.sessionToken(r)
	if accessToken == "" {
		return nil
	}

	u, err := a.client.GetSessionUser(ctx, accessToken)
	if err != nil {
		a.log.Debug("supabase session did not resolve", "error", err)
		return nil
	}

	identity := &ExternalIdentity{
		Provider:       types.ProviderSupabase,
		ProviderUserID: u.ID,
		DisplayName:    u.DisplayName,
	}
	if identity.DisplayName == "" && u.Email != "" {
		identity.DisplayName = u.Email
	}
	if u.Email != "" {
		email := u.Email
		identity.Email = &email
	}
	if u.AvatarURL != "" {
		avatar := u.AvatarURL
		identity.AvatarURL = &avatar
	}
	return identity
}

func (a *supabaseAdapter) sessionToken(r *http.Request) string {
	if a.cookieName != "" {
		c, err := r.Cookie(a.cookieName)
		if err != nil {
			return ""
		}
		return supabase.AccessTokenFromCookie(c.Value)
	}
	for _, c := range r.Cookies() {
		if strings.HasPrefix(c.Name, "sb-") && strings.HasSuffix(c.Name, "-auth-token") {
			if token := supabase.AccessTokenFromCookie(c.Value); token != "" {
				return token
			}
		}
	}
	return ""
}
