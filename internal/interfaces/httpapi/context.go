package httpapi

import "context"

type contextKey string

const principalContextKey contextKey = "auth_principal"

// principal is the caller identity forwarded by the gateway.
type principal struct {
	UserID string
}

func withPrincipal(ctx context.Context, p principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (principal, bool) {
	p, ok := ctx.Value(principalContextKey).(principal)
	return p, ok
}
