package domain

import (
	"github.com/google/uuid"

	"github.com/waliet/waliet-backend/internal/domain/user"
)

type (
	User          = user.User
	SellerProfile = user.SellerProfile
)

// Provider names the external identity source that authenticated a request.
type Provider string

const (
	ProviderWhop     Provider = "whop"
	ProviderSupabase Provider = "supabase"
)

// AuthenticatedUser is the only shape the rest of the application may depend
// on for "who is making this request".
type AuthenticatedUser struct {
	UserID         uuid.UUID `json:"user_id"`
	DisplayName    string    `json:"display_name"`
	Email          *string   `json:"email,omitempty"`
	AvatarURL      *string   `json:"avatar_url,omitempty"`
	Provider       Provider  `json:"provider"`
	ProviderUserID string    `json:"provider_user_id"`

	SellerProfile *SellerProfile `json:"seller_profile,omitempty"`
}
