package user

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/waliet/waliet-backend/internal/domain"
	"github.com/waliet/waliet-backend/internal/platform/dbctx"
	"github.com/waliet/waliet-backend/internal/platform/logger"
)

type SellerProfileRepo interface {
	// EnsureForUser creates the profile with default values if it does not
	// exist yet. The insert is ON CONFLICT (user_id) DO NOTHING, so losing
	// the race to another request is success, not an error.
	EnsureForUser(dbc dbctx.Context, userID uuid.UUID) (*types.SellerProfile, error)
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.SellerProfile, error)
}

type sellerProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSellerProfileRepo(db *gorm.DB, baseLog *logger.Logger) SellerProfileRepo {
	return &sellerProfileRepo{db: db, log: baseLog.With("repo", "SellerProfileRepo")}
}

func (r *sellerProfileRepo) EnsureForUser(dbc dbctx.Context, userID uuid.UUID) (*types.SellerProfile, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return nil, nil
	}

	row := &types.SellerProfile{
		ID:         uuid.New(),
		UserID:     userID,
		HourlyRate: 0,
		IsActive:   true,
		Metadata:   datatypes.JSON([]byte("{}")),
	}
	if err := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(row).Error; err != nil {
		return nil, err
	}

	return r.GetByUserID(dbc, userID)
}

func (r *sellerProfileRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.SellerProfile, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return nil, nil
	}
	var row types.SellerProfile
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}
