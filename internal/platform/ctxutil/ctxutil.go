package ctxutil

import (
	"context"

	types "github.com/waliet/waliet-backend/internal/domain"
)

type traceDataKey struct{}

type TraceData struct {
	TraceID   string
	RequestID string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	if td, ok := ctx.Value(traceDataKey{}).(*TraceData); ok {
		return td
	}
	return nil
}

type sessionKey struct{}

// WithSessionUser attaches the resolved account for this request. A nil user
// marks the request as anonymous.
func WithSessionUser(ctx context.Context, u *types.AuthenticatedUser) context.Context {
	return context.WithValue(ctx, sessionKey{}, u)
}

func GetSessionUser(ctx context.Context) *types.AuthenticatedUser {
	if u, ok := ctx.Value(sessionKey{}).(*types.AuthenticatedUser); ok {
		return u
	}
	return nil
}
