package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/waliet/waliet-backend/internal/auth"
	userrepo "github.com/waliet/waliet-backend/internal/data/repos/user"
	types "github.com/waliet/waliet-backend/internal/domain"
	"github.com/waliet/waliet-backend/internal/platform/dbctx"
	"github.com/waliet/waliet-backend/internal/platform/logger"
)

// ProvisioningError marks a database failure while finding or creating the
// canonical account. It is fatal to the request; callers must not degrade it
// to "anonymous", or a valid user would intermittently appear logged out.
type ProvisioningError struct {
	Step string
	Err  error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("provisioning failed at %s: %v", e.Step, e.Err)
}

func (e *ProvisioningError) Unwrap() error { return e.Err }

// AccountService owns all writes to user and seller_profiles. Provisioning
// is idempotent: any number of calls with the same identity converge on one
// user row and one seller profile row. Row-level uniqueness constraints are
// what make this race-safe, not the transaction.
type AccountService interface {
	Provision(dbc dbctx.Context, identity *auth.ExternalIdentity) (*types.User, error)
}

type accountService struct {
	db         *gorm.DB
	log        *logger.Logger
	userRepo   userrepo.UserRepo
	sellerRepo userrepo.SellerProfileRepo
}

func NewAccountService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo userrepo.UserRepo,
	sellerRepo userrepo.SellerProfileRepo,
) AccountService {
	return &accountService{
		db:         db,
		log:        log.With("service", "AccountService"),
		userRepo:   userRepo,
		sellerRepo: sellerRepo,
	}
}

func (s *accountService) Provision(dbc dbctx.Context, identity *auth.ExternalIdentity) (*types.User, error) {
	if identity == nil || identity.ProviderUserID == "" {
		return nil, &ProvisioningError{Step: "identity", Err: fmt.Errorf("empty identity")}
	}
	if identity.Provider != types.ProviderWhop && identity.Provider != types.ProviderSupabase {
		return nil, &ProvisioningError{Step: "identity", Err: fmt.Errorf("unknown provider %q", identity.Provider)}
	}

	var full *types.User
	run := func(tx *gorm.DB) error {
		c := dbctx.Context{Ctx: dbc.Ctx, Tx: tx}

		fields := userrepo.ProfileFields{
			DisplayName: identity.DisplayName,
			Email:       identity.Email,
			AvatarURL:   identity.AvatarURL,
		}

		var u *types.User
		var err error
		if identity.Provider == types.ProviderWhop {
			u, err = s.userRepo.UpsertByWhopID(c, identity.ProviderUserID, fields)
		} else {
			u, err = s.userRepo.UpsertBySupabaseID(c, identity.ProviderUserID, fields)
		}
		if err != nil {
			return &ProvisioningError{Step: "user upsert", Err: err}
		}

		if _, err := s.sellerRepo.EnsureForUser(c, u.ID); err != nil {
			return &ProvisioningError{Step: "seller profile", Err: err}
		}

		// Refetch so the returned user carries the now-guaranteed profile.
		full, err = s.userRepo.GetByID(c, u.ID)
		if err != nil {
			return &ProvisioningError{Step: "refetch", Err: err}
		}
		if full == nil {
			return &ProvisioningError{Step: "refetch", Err: fmt.Errorf("user %s vanished after upsert", u.ID)}
		}
		return nil
	}

	var err error
	if dbc.Tx != nil {
		err = run(dbc.Tx)
	} else {
		err = s.db.WithContext(dbc.Ctx).Transaction(run)
	}
	if err != nil {
		return nil, err
	}
	return full, nil
}
