package identity

import "context"

type tokenKey struct{}

// WithToken stashes the caller's raw session token in ctx. The transport
// layer calls this; providers read it back when an operation needs the
// caller's identity.
func WithToken(ctx context.Context, raw string) context.Context {
	return context.WithValue(ctx, tokenKey{}, raw)
}

// TokenFromContext returns the raw session token carried by ctx, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	raw, ok := ctx.Value(tokenKey{}).(string)
	return raw, ok && raw != ""
}
