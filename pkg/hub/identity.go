package hub

import "context"

// Identity is the external identity attached to a call. Subject is the
// provider's opaque user id; the service resolves it to a local User row
// before any ownership check.
type Identity struct {
	Subject string
}

type identityKey struct{}

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, ident)
}

// IdentityFromContext extracts the identity attached to ctx, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(identityKey{}).(Identity)
	return ident, ok && ident.Subject != ""
}
