package auth

import "context"

type ctxKey struct{}

// WithSession returns a context carrying the authenticated claims.
func WithSession(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// SessionFromContext returns the claims stored by WithSession.
func SessionFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(*Claims)
	return c, ok && c != nil
}
