package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/waliet/waliet-backend/internal/domain"
	"github.com/waliet/waliet-backend/internal/platform/dbctx"
	"github.com/waliet/waliet-backend/internal/platform/logger"
)

// ProfileFields are the mutable display fields refreshed from the identity
// provider on every successful resolution.
type ProfileFields struct {
	DisplayName string
	Email       *string
	AvatarURL   *string
}

type UserRepo interface {
	// UpsertByWhopID and UpsertBySupabaseID are single
	// INSERT ... ON CONFLICT DO UPDATE statements keyed by the provider's
	// unique column, so two concurrent requests for the same identity can
	// never create two rows. The returned row is the canonical one.
	UpsertByWhopID(dbc dbctx.Context, whopUserID string, fields ProfileFields) (*types.User, error)
	UpsertBySupabaseID(dbc dbctx.Context, supabaseUserID string, fields ProfileFields) (*types.User, error)
	GetByID(dbc dbctx.Context, userID uuid.UUID) (*types.User, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) UpsertByWhopID(dbc dbctx.Context, whopUserID string, fields ProfileFields) (*types.User, error) {
	row := &types.User{
		ID:          uuid.New(),
		WhopUserID:  &whopUserID,
		DisplayName: fields.DisplayName,
		Email:       fields.Email,
		AvatarURL:   fields.AvatarURL,
	}
	return r.upsert(dbc, row, "whop_user_id", whopUserID)
}

func (r *userRepo) UpsertBySupabaseID(dbc dbctx.Context, supabaseUserID string, fields ProfileFields) (*types.User, error) {
	row := &types.User{
		ID:             uuid.New(),
		SupabaseUserID: &supabaseUserID,
		DisplayName:    fields.DisplayName,
		Email:          fields.Email,
		AvatarURL:      fields.AvatarURL,
	}
	return r.upsert(dbc, row, "supabase_user_id", supabaseUserID)
}

func (r *userRepo) upsert(dbc dbctx.Context, row *types.User, column, providerUserID string) (*types.User, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}

	row.UpdatedAt = time.Now().UTC()
	if err := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: column}},
			DoUpdates: clause.AssignmentColumns([]string{
				"display_name",
				"email",
				"avatar_url",
				"updated_at",
			}),
		}).
		Create(row).Error; err != nil {
		return nil, err
	}

	// On conflict the insert updated the pre-existing row, not row.ID; the
	// canonical id always comes from a refetch.
	var out types.User
	if err := t.WithContext(dbc.Ctx).
		Where(column+" = ?", providerUserID).
		First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *userRepo) GetByID(dbc dbctx.Context, userID uuid.UUID) (*types.User, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return nil, nil
	}
	var row types.User
	if err := t.WithContext(dbc.Ctx).
		Preload("SellerProfile").
		Where("id = ?", userID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}
