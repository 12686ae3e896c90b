package httpx

import (
	"context"

	"github.com/aussiebroadwan/gatepass/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyStation ctxKey = "station"
	CtxKeyScopes  ctxKey = "scopes"
	CtxKeyClaims  ctxKey = "claims"
)

// StationFromContext returns the authenticated station subject, or "" when
// the request was not authenticated.
func StationFromContext(ctx context.Context) string {
	s, _ := ctx.Value(CtxKeyStation).(string)
	return s
}

// ClaimsFromContext returns the verified token claims, if any.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}

func scopesFromCtx(ctx context.Context) []string {
	if v, ok := ctx.Value(CtxKeyScopes).([]string); ok {
		return v
	}
	return nil
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyStation, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyScopes, c.Scopes)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}
