package httpx

import (
	"context"

	"github.com/gatehouseio/gatehouse/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyClaims ctxKey = "claims"
)

// UserIDFromContext returns the authenticated subject's user id, or "" if
// the request did not pass the bearer gate.
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}

// ClaimsFromContext returns the verified claims attached by AuthnMiddleware.
// The boolean is false on unauthenticated requests; callers must treat that
// as a programming error (a protected route missing its middleware).
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}
