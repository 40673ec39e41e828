package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SellerProfile is the 1:1 dependent record that lets an account offer paid
// work. Exactly one exists per provisioned user; the unique index on user_id
// is what makes concurrent provisioning safe, not any prior read.
type SellerProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	HourlyRate float64 `gorm:"column:hourly_rate;not null;default:0" json:"hourly_rate"`
	IsActive   bool    `gorm:"column:is_active;not null;default:true" json:"is_active"`

	// Display/aggregate fields owned by other subsystems (bio, links, review
	// stats). Kept schemaless here so those writers don't need migrations in
	// this service.
	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (SellerProfile) TableName() string { return "seller_profiles" }
