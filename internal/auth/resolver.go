package auth

import (
	"context"
	"net/http"

	types "github.com/waliet/waliet-backend/internal/domain"

	"github.com/waliet/waliet-backend/internal/platform/logger"
)

// Adapter attempts to resolve one provider's credentials on an inbound
// request. A nil result means "no usable identity on this path": missing
// credentials, failed verification and provider outages all look the same
// from here. Adapters never write to the database.
type Adapter interface {
	Provider() types.Provider
	TryResolve(ctx context.Context, r *http.Request) *ExternalIdentity
}

// Resolver arbitrates between the two identity sources in fixed priority
// order: Whop first (unless suppressed by the logout flag), then Supabase.
// First success wins; partial results are never merged.
type Resolver struct {
	log      *logger.Logger
	whop     Adapter
	supabase Adapter
}

func NewResolver(log *logger.Logger, whop, supabase Adapter) *Resolver {
	return &Resolver{
		log:      log.With("component", "Resolver"),
		whop:     whop,
		supabase: supabase,
	}
}

// Resolve returns the first identity a provider yields, or nil for an
// anonymous request. Evaluation is sequential with early exit so the common
// single-credential request costs at most one provider round trip.
func (r *Resolver) Resolve(ctx context.Context, req *http.Request) *ExternalIdentity {
	if r.whop != nil {
		if IsWhopSuppressed(req) {
			r.log.Debug("whop resolution suppressed by logout flag")
		} else if identity := r.whop.TryResolve(ctx, req); identity != nil {
			r.log.Debug("identity resolved", "provider", r.whop.Provider())
			return identity
		}
	}
	if r.supabase != nil {
		if identity := r.supabase.TryResolve(ctx, req); identity != nil {
			r.log.Debug("identity resolved", "provider", r.supabase.Provider())
			return identity
		}
	}
	return nil
}
