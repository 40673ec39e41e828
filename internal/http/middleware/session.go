package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/waliet/waliet-backend/internal/platform/apierr"
	"github.com/waliet/waliet-backend/internal/platform/ctxutil"
	"github.com/waliet/waliet-backend/internal/platform/logger"
	"github.com/waliet/waliet-backend/internal/services"
)

type SessionMiddleware struct {
	log      *logger.Logger
	sessions services.SessionService
}

func NewSessionMiddleware(log *logger.Logger, sessions services.SessionService) *SessionMiddleware {
	return &SessionMiddleware{log: log.With("middleware", "SessionMiddleware"), sessions: sessions}
}

// WithSession resolves the caller's identity once per request and attaches
// the result to the request context. Anonymous requests pass through;
// handlers decide what an anonymous caller may do. A provisioning failure is
// surfaced as 503, never as anonymous.
func (sm *SessionMiddleware) WithSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := sm.sessions.GetAuthenticatedUser(c.Request.Context(), c.Request)
		if err != nil {
			apiErr := apierr.New(http.StatusServiceUnavailable, "auth_unavailable", err)
			if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
				sm.log.Error("session resolution failed", "request_id", td.RequestID, "error", err)
			} else {
				sm.log.Error("session resolution failed", "error", err)
			}
			c.AbortWithStatusJSON(apiErr.Status, gin.H{
				"error": gin.H{"message": "authentication temporarily unavailable", "code": apiErr.Code},
			})
			return
		}
		if u != nil {
			c.Request = c.Request.WithContext(ctxutil.WithSessionUser(c.Request.Context(), u))
		}
		c.Next()
	}
}

// RequireSession aborts anonymous requests. It expects WithSession to have
// run already.
func (sm *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ctxutil.GetSessionUser(c.Request.Context()) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "not logged in", "code": "unauthorized"},
			})
			return
		}
		c.Next()
	}
}
