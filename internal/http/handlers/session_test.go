package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/waliet/waliet-backend/internal/auth"
	"github.com/waliet/waliet-backend/internal/platform/logger"
)

func testHandler(t *testing.T) *SessionHandler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return NewSessionHandler(log)
}

func TestLogoutSetsFlagCookie(t *testing.T) {
	h := testHandler(t)
	router := gin.New()
	router.POST("/api/auth/logout", h.Logout)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var flag *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.LogoutCookieName {
			flag = c
		}
	}
	if flag == nil {
		t.Fatalf("logout must set the %s cookie", auth.LogoutCookieName)
	}
	if flag.MaxAge != int(auth.LogoutCookieTTL.Seconds()) {
		t.Fatalf("expected 24h max-age, got %d", flag.MaxAge)
	}
}

func TestLoginClearsFlagCookie(t *testing.T) {
	h := testHandler(t)
	router := gin.New()
	router.POST("/api/auth/login", h.Login)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var flag *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.LogoutCookieName {
			flag = c
		}
	}
	if flag == nil {
		t.Fatalf("login must clear the %s cookie", auth.LogoutCookieName)
	}
	if flag.MaxAge >= 0 {
		t.Fatalf("expected expired cookie, got max-age %d", flag.MaxAge)
	}
}
