package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/waliet/waliet-backend/internal/domain"
)

func SeedWhopUser(tb testing.TB, ctx context.Context, tx *gorm.DB, whopUserID, displayName string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:          uuid.New(),
		WhopUserID:  &whopUserID,
		DisplayName: displayName,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed whop user: %v", err)
	}
	return u
}

func SeedSupabaseUser(tb testing.TB, ctx context.Context, tx *gorm.DB, supabaseUserID, displayName string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:             uuid.New(),
		SupabaseUserID: &supabaseUserID,
		DisplayName:    displayName,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed supabase user: %v", err)
	}
	return u
}
