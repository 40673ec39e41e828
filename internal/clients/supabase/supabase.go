package supabase

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/waliet/waliet-backend/internal/platform/envutil"
	"github.com/waliet/waliet-backend/internal/platform/logger"
)

// Client resolves a Supabase session access token to the user it belongs to.
// When the project's JWT secret is configured the token is verified locally
// (HS256), which is how Supabase intends backends to check sessions; without
// the secret we fall back to the auth server's /auth/v1/user endpoint.
type Client interface {
	GetSessionUser(ctx context.Context, accessToken string) (*SessionUser, error)
}

type SessionUser struct {
	ID          string
	Email       string
	DisplayName string
	AvatarURL   string
}

type Config struct {
	URL        string
	AnonKey    string
	JWTSecret  string
	CookieName string
	Timeout    time.Duration
}

func ConfigFromEnv() Config {
	timeoutSec := envutil.Int("SUPABASE_TIMEOUT_SECONDS", 10)
	return Config{
		URL:        strings.TrimSpace(os.Getenv("SUPABASE_URL")),
		AnonKey:    strings.TrimSpace(os.Getenv("SUPABASE_ANON_KEY")),
		JWTSecret:  strings.TrimSpace(os.Getenv("SUPABASE_JWT_SECRET")),
		CookieName: envutil.String("SUPABASE_AUTH_COOKIE", ""),
		Timeout:    time.Duration(timeoutSec) * time.Second,
	}
}

func NewFromEnv(log *logger.Logger) (Client, error) {
	return New(log, ConfigFromEnv())
}

func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.URL == "" {
		return nil, fmt.Errorf("missing SUPABASE_URL")
	}
	if cfg.JWTSecret == "" && cfg.AnonKey == "" {
		return nil, fmt.Errorf("missing SUPABASE_JWT_SECRET or SUPABASE_ANON_KEY")
	}
	cfg.URL = strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &client{
		log:        log.With("client", "SupabaseClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
}

func (c *client) GetSessionUser(ctx context.Context, accessToken string) (*SessionUser, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, fmt.Errorf("empty access token")
	}
	if c.cfg.JWTSecret != "" {
		return c.userFromToken(accessToken)
	}
	return c.userFromAuthServer(ctx, accessToken)
}

type sessionClaims struct {
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	jwt.RegisteredClaims
}

func (c *client) userFromToken(accessToken string) (*SessionUser, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(accessToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(c.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("supabase token: %w", err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("supabase token: missing sub claim")
	}

	u := &SessionUser{ID: claims.Subject, Email: claims.Email}
	if v, ok := claims.UserMetadata["full_name"].(string); ok && v != "" {
		u.DisplayName = v
	} else if v, ok := claims.UserMetadata["name"].(string); ok {
		u.DisplayName = v
	}
	if v, ok := claims.UserMetadata["avatar_url"].(string); ok {
		u.AvatarURL = v
	}
	return u, nil
}

func (c *client) userFromAuthServer(ctx context.Context, accessToken string) (*SessionUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL+"/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("apikey", c.cfg.AnonKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("supabase get user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("supabase get user: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out struct {
		ID           string                 `json:"id"`
		Email        string                 `json:"email"`
		UserMetadata map[string]interface{} `json:"user_metadata"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("supabase get user: decode: %w", err)
	}
	if out.ID == "" {
		return nil, fmt.Errorf("supabase get user: response missing user id")
	}

	u := &SessionUser{ID: out.ID, Email: out.Email}
	if v, ok := out.UserMetadata["full_name"].(string); ok && v != "" {
		u.DisplayName = v
	} else if v, ok := out.UserMetadata["name"].(string); ok {
		u.DisplayName = v
	}
	if v, ok := out.UserMetadata["avatar_url"].(string); ok {
		u.AvatarURL = v
	}
	return u, nil
}

// AccessTokenFromCookie extracts the access token from a Supabase auth
// cookie value. The JS SDK has stored this value in several shapes over
// time: a bare JWT, a JSON session object, a JSON array, and the current
// "base64-" prefixed encoding of the session object.
func AccessTokenFromCookie(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	if strings.HasPrefix(value, "base64-") {
		raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(value, "base64-"))
		if err != nil {
			return ""
		}
		value = string(raw)
	}

	switch {
	case strings.HasPrefix(value, "{"):
		var session struct {
			AccessToken string `json:"access_token"`
		}
		if err := json.Unmarshal([]byte(value), &session); err != nil {
			return ""
		}
		return session.AccessToken
	case strings.HasPrefix(value, "["):
		var parts []string
		if err := json.Unmarshal([]byte(value), &parts); err != nil || len(parts) == 0 {
			return ""
		}
		return parts[0]
	case strings.Count(value, ".") == 2:
		return value
	default:
		return ""
	}
}
