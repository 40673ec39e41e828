package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	types "github.com/waliet/waliet-backend/internal/domain"
	"github.com/waliet/waliet-backend/internal/platform/logger"
)

type fakeAdapter struct {
	provider types.Provider
	identity *ExternalIdentity
	calls    int
}

func (f *fakeAdapter) Provider() types.Provider { return f.provider }

func (f *fakeAdapter) TryResolve(ctx context.Context, r *http.Request) *ExternalIdentity {
	f.calls++
	return f.identity
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func whopIdentity(id string) *ExternalIdentity {
	return &ExternalIdentity{Provider: types.ProviderWhop, ProviderUserID: id, DisplayName: "Whop " + id}
}

func supabaseIdentity(id string) *ExternalIdentity {
	return &ExternalIdentity{Provider: types.ProviderSupabase, ProviderUserID: id, DisplayName: "Supabase " + id}
}

func TestResolvePrefersWhop(t *testing.T) {
	whop := &fakeAdapter{provider: types.ProviderWhop, identity: whopIdentity("u_1")}
	supabase := &fakeAdapter{provider: types.ProviderSupabase, identity: supabaseIdentity("s_1")}
	r := NewResolver(testLogger(t), whop, supabase)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	got := r.Resolve(context.Background(), req)

	if got == nil || got.Provider != types.ProviderWhop || got.ProviderUserID != "u_1" {
		t.Fatalf("expected whop identity, got %+v", got)
	}
	if supabase.calls != 0 {
		t.Fatalf("supabase adapter should not run when whop succeeds, ran %d times", supabase.calls)
	}
}

func TestResolveFallsBackToSupabase(t *testing.T) {
	whop := &fakeAdapter{provider: types.ProviderWhop}
	supabase := &fakeAdapter{provider: types.ProviderSupabase, identity: supabaseIdentity("s_1")}
	r := NewResolver(testLogger(t), whop, supabase)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	got := r.Resolve(context.Background(), req)

	if got == nil || got.Provider != types.ProviderSupabase {
		t.Fatalf("expected supabase identity, got %+v", got)
	}
	if whop.calls != 1 {
		t.Fatalf("whop adapter should have been attempted once, ran %d times", whop.calls)
	}
}

func TestResolveAnonymous(t *testing.T) {
	whop := &fakeAdapter{provider: types.ProviderWhop}
	supabase := &fakeAdapter{provider: types.ProviderSupabase}
	r := NewResolver(testLogger(t), whop, supabase)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := r.Resolve(context.Background(), req); got != nil {
		t.Fatalf("expected anonymous, got %+v", got)
	}
}

func TestLogoutFlagSuppressesWhopOnly(t *testing.T) {
	whop := &fakeAdapter{provider: types.ProviderWhop, identity: whopIdentity("u_1")}
	supabase := &fakeAdapter{provider: types.ProviderSupabase}
	r := NewResolver(testLogger(t), whop, supabase)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(NewLogoutCookie())

	if got := r.Resolve(context.Background(), req); got != nil {
		t.Fatalf("expected anonymous while suppressed, got %+v", got)
	}
	if whop.calls != 0 {
		t.Fatalf("whop adapter must not be queried while suppressed, ran %d times", whop.calls)
	}
	if supabase.calls != 1 {
		t.Fatalf("supabase adapter should still run, ran %d times", supabase.calls)
	}
}

func TestLogoutFlagDoesNotBlockSupabase(t *testing.T) {
	whop := &fakeAdapter{provider: types.ProviderWhop, identity: whopIdentity("u_1")}
	supabase := &fakeAdapter{provider: types.ProviderSupabase, identity: supabaseIdentity("s_1")}
	r := NewResolver(testLogger(t), whop, supabase)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(NewLogoutCookie())

	got := r.Resolve(context.Background(), req)
	if got == nil || got.Provider != types.ProviderSupabase {
		t.Fatalf("expected supabase identity while whop suppressed, got %+v", got)
	}
}

func TestClearLogoutCookieReenablesWhop(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(NewLogoutCookie())
	if !IsWhopSuppressed(req) {
		t.Fatalf("expected suppression with logout cookie present")
	}

	cleared := httptest.NewRequest(http.MethodGet, "/", nil)
	cleared.AddCookie(ClearLogoutCookie())
	if IsWhopSuppressed(cleared) {
		t.Fatalf("expected no suppression with cleared cookie")
	}
}
