package user

import (
	"context"
	"testing"

	types "github.com/waliet/waliet-backend/internal/domain"

	"github.com/waliet/waliet-backend/internal/data/repos/testutil"
	"github.com/waliet/waliet-backend/internal/platform/dbctx"
)

func TestSellerProfileRepoEnsureForUser(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewSellerProfileRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	u := testutil.SeedWhopUser(t, context.Background(), tx, "u_7", "Seven")

	first, err := repo.EnsureForUser(dbc, u.ID)
	if err != nil {
		t.Fatalf("EnsureForUser: %v", err)
	}
	if first == nil {
		t.Fatalf("expected profile")
	}
	if first.HourlyRate != 0 || !first.IsActive {
		t.Fatalf("unexpected defaults: %+v", first)
	}

	second, err := repo.EnsureForUser(dbc, u.ID)
	if err != nil {
		t.Fatalf("EnsureForUser (again): %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("ensure created a second profile: %s vs %s", first.ID, second.ID)
	}

	var count int64
	if err := tx.Model(&types.SellerProfile{}).Where("user_id = ?", u.ID).Count(&count).Error; err != nil {
		t.Fatalf("count profiles: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one profile, got %d", count)
	}
}

func TestSellerProfileRepoGetByUserIDMissing(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewSellerProfileRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	u := testutil.SeedWhopUser(t, context.Background(), tx, "u_8", "Eight")
	got, err := repo.GetByUserID(dbc, u.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil before provisioning, got %+v", got)
	}
}
