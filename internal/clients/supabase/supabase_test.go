package supabase

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/waliet/waliet-backend/internal/platform/logger"
)

const testSecret = "super-secret"

func testClient(t *testing.T, cfg Config) Client {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	c, err := New(log, cfg)
	if err != nil {
		t.Fatalf("init client: %v", err)
	}
	return c
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestGetSessionUserLocalVerification(t *testing.T) {
	c := testClient(t, Config{URL: "https://proj.supabase.co", JWTSecret: testSecret})

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "s_1",
		"email": "ann@x.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"user_metadata": map[string]interface{}{
			"full_name":  "Ann",
			"avatar_url": "https://img/a.png",
		},
	})

	u, err := c.GetSessionUser(context.Background(), token)
	if err != nil {
		t.Fatalf("GetSessionUser: %v", err)
	}
	if u.ID != "s_1" || u.Email != "ann@x.com" || u.DisplayName != "Ann" || u.AvatarURL != "https://img/a.png" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestGetSessionUserRejectsBadSignature(t *testing.T) {
	c := testClient(t, Config{URL: "https://proj.supabase.co", JWTSecret: testSecret})

	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "s_1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, err := c.GetSessionUser(context.Background(), token); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestGetSessionUserRejectsExpiredToken(t *testing.T) {
	c := testClient(t, Config{URL: "https://proj.supabase.co", JWTSecret: testSecret})

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "s_1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	if _, err := c.GetSessionUser(context.Background(), token); err == nil {
		t.Fatalf("expected expiry error")
	}
}

func TestGetSessionUserRemoteFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/user" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("apikey"); got != "anon" {
			t.Errorf("expected anon key header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"s_1","email":"ann@x.com","user_metadata":{"name":"Ann"}}`))
	}))
	defer srv.Close()

	c := testClient(t, Config{URL: srv.URL, AnonKey: "anon"})
	u, err := c.GetSessionUser(context.Background(), "opaque-token")
	if err != nil {
		t.Fatalf("GetSessionUser: %v", err)
	}
	if u.ID != "s_1" || u.DisplayName != "Ann" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestGetSessionUserRemoteUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := testClient(t, Config{URL: srv.URL, AnonKey: "anon"})
	if _, err := c.GetSessionUser(context.Background(), "bad"); err == nil {
		t.Fatalf("expected error on 401")
	}
}

func TestAccessTokenFromCookie(t *testing.T) {
	sessionJSON := `{"access_token":"header.payload.sig","refresh_token":"r"}`
	b64 := "base64-" + base64.RawURLEncoding.EncodeToString([]byte(sessionJSON))

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"bare jwt", "header.payload.sig", "header.payload.sig"},
		{"json session", sessionJSON, "header.payload.sig"},
		{"json array", `["header.payload.sig","r"]`, "header.payload.sig"},
		{"base64 session", b64, "header.payload.sig"},
		{"empty", "", ""},
		{"garbage", "not a token", ""},
		{"bad base64", "base64-!!!", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := AccessTokenFromCookie(tc.value); got != tc.want {
				t.Fatalf("AccessTokenFromCookie(%q) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}
