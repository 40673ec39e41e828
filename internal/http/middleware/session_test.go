package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/waliet/waliet-backend/internal/domain"
	"github.com/waliet/waliet-backend/internal/platform/ctxutil"
	"github.com/waliet/waliet-backend/internal/platform/logger"
	"github.com/waliet/waliet-backend/internal/services"
)

type fakeSessionService struct {
	user *types.AuthenticatedUser
	err  error
}

func (f *fakeSessionService) GetAuthenticatedUser(ctx context.Context, r *http.Request) (*types.AuthenticatedUser, error) {
	return f.user, f.err
}

func testRouter(t *testing.T, sessions services.SessionService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	sm := NewSessionMiddleware(log, sessions)

	router := gin.New()
	router.Use(sm.WithSession())
	router.GET("/open", func(c *gin.Context) {
		u := ctxutil.GetSessionUser(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"authenticated": u != nil})
	})
	router.GET("/locked", sm.RequireSession(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestWithSessionAnonymousPassthrough(t *testing.T) {
	router := testRouter(t, &fakeSessionService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Body.String(); got != `{"authenticated":false}` {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestWithSessionAttachesUser(t *testing.T) {
	router := testRouter(t, &fakeSessionService{user: &types.AuthenticatedUser{
		UserID:      uuid.New(),
		DisplayName: "Ann",
		Provider:    types.ProviderWhop,
	}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Body.String(); got != `{"authenticated":true}` {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestWithSessionProvisioningFailureIsNotAnonymous(t *testing.T) {
	router := testRouter(t, &fakeSessionService{err: fmt.Errorf("db down")})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestRequireSessionRejectsAnonymous(t *testing.T) {
	router := testRouter(t, &fakeSessionService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/locked", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireSessionAdmitsAuthenticated(t *testing.T) {
	router := testRouter(t, &fakeSessionService{user: &types.AuthenticatedUser{
		UserID:   uuid.New(),
		Provider: types.ProviderSupabase,
	}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/locked", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
