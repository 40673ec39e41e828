package services

import (
	"context"
	"net/http"

	"github.com/waliet/waliet-backend/internal/auth"
	types "github.com/waliet/waliet-backend/internal/domain"
	"github.com/waliet/waliet-backend/internal/platform/dbctx"
	"github.com/waliet/waliet-backend/internal/platform/logger"
)

// IdentityResolver is what SessionService needs from internal/auth.
type IdentityResolver interface {
	Resolve(ctx context.Context, r *http.Request) *auth.ExternalIdentity
}

// SessionService is the only authentication contract the rest of the
// application uses. (nil, nil) means anonymous; a non-nil error means
// authentication could not be completed and the request must not be treated
// as anonymous.
type SessionService interface {
	GetAuthenticatedUser(ctx context.Context, r *http.Request) (*types.AuthenticatedUser, error)
}

type sessionService struct {
	log      *logger.Logger
	resolver IdentityResolver
	accounts AccountService
}

func NewSessionService(log *logger.Logger, resolver IdentityResolver, accounts AccountService) SessionService {
	return &sessionService{
		log:      log.With("service", "SessionService"),
		resolver: resolver,
		accounts: accounts,
	}
}

func (s *sessionService) GetAuthenticatedUser(ctx context.Context, r *http.Request) (*types.AuthenticatedUser, error) {
	identity := s.resolver.Resolve(ctx, r)
	if identity == nil {
		return nil, nil
	}

	u, err := s.accounts.Provision(dbctx.Context{Ctx: ctx}, identity)
	if err != nil {
		s.log.Error("provisioning failed", "provider", identity.Provider, "error", err)
		return nil, err
	}

	return &types.AuthenticatedUser{
		UserID:         u.ID,
		DisplayName:    u.DisplayName,
		Email:          u.Email,
		AvatarURL:      u.AvatarURL,
		Provider:       identity.Provider,
		ProviderUserID: identity.ProviderUserID,
		SellerProfile:  u.SellerProfile,
	}, nil
}
