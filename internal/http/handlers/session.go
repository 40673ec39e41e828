package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/waliet/waliet-backend/internal/auth"
	"github.com/waliet/waliet-backend/internal/platform/ctxutil"
	"github.com/waliet/waliet-backend/internal/platform/logger"
)

type SessionHandler struct {
	log *logger.Logger
}

func NewSessionHandler(log *logger.Logger) *SessionHandler {
	return &SessionHandler{log: log.With("handler", "SessionHandler")}
}

// GET /api/me
func (sh *SessionHandler) GetMe(c *gin.Context) {
	me := ctxutil.GetSessionUser(c.Request.Context())
	if me == nil {
		c.JSON(http.StatusOK, gin.H{"me": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"me": me})
}

// POST /api/auth/logout
//
// Sets the sticky logout flag so Whop resolution stays suppressed for 24h
// even though the Whop proxy keeps sending a valid token. Supabase sessions
// are ended by the Supabase SDK on the client; this endpoint only owns the
// flag cookie.
func (sh *SessionHandler) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, auth.NewLogoutCookie())
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /api/auth/login
//
// Clears the logout flag so a deliberate sign-in works immediately instead
// of waiting out the 24h window.
func (sh *SessionHandler) Login(c *gin.Context) {
	http.SetCookie(c.Writer, auth.ClearLogoutCookie())
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
