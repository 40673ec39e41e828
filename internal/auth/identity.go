package auth

import (
	"context"

	types "github.com/waliet/waliet-backend/internal/domain"
)

// ExternalIdentity is the normalized, request-scoped result of a successful
// provider lookup. It contains facts only, no decisions, and is never
// persisted as-is. Adapters populate it completely; nothing downstream
// reaches back into provider payloads.
type ExternalIdentity struct {
	Provider       types.Provider `json:"provider"`
	ProviderUserID string         `json:"provider_user_id"`
	DisplayName    string         `json:"display_name"`
	Email          *string        `json:"email,omitempty"`
	AvatarURL      *string        `json:"avatar_url,omitempty"`
}

// IdentityCache is an optional short-TTL cache in front of the Whop adapter
// so a burst of requests with the same token does not re-verify remotely
// every time. A cache hit never skips provisioning, only the network calls.
type IdentityCache interface {
	Get(ctx context.Context, token string) *ExternalIdentity
	Set(ctx context.Context, token string, identity *ExternalIdentity)
}
