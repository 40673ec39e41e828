package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the canonical account every external identity resolves to. A user
// is linked to at most one identity per provider; whop_user_id and
// supabase_user_id are nullable so the unique indexes only apply when the
// linkage exists.
// IDs are generated in Go (the repos call uuid.New before insert), not by the
// database, so the schema migrates on both postgres and sqlite.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WhopUserID     *string   `gorm:"column:whop_user_id;uniqueIndex" json:"whop_user_id,omitempty"`
	SupabaseUserID *string   `gorm:"column:supabase_user_id;uniqueIndex" json:"supabase_user_id,omitempty"`

	DisplayName string  `gorm:"column:display_name;not null" json:"display_name"`
	Email       *string `gorm:"column:email" json:"email,omitempty"`
	AvatarURL   *string `gorm:"column:avatar_url" json:"avatar_url,omitempty"`

	SellerProfile *SellerProfile `gorm:"foreignKey:UserID" json:"seller_profile,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }
