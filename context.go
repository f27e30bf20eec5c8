package gotenant

import "context"

// Identity is the authenticated caller: a tenant and a principal within it.
// Middleware places it in the request context; request handlers read it back
// to drive Authorize and ResourceScope calls.
type Identity struct {
	Tenant    TenantID
	Principal PrincipalID
}

// identityCtxKey is a private type to prevent collisions with other context keys.
type identityCtxKey struct{}

// WithIdentity stores an identity in the context.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, identity)
}

// IdentityFromContext retrieves the identity from the context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(Identity)
	return identity, ok
}
