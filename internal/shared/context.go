package shared

import "context"

// Identity is the verified caller extracted from the bearer credential.
// OwnerKey is the stable external identity string that scopes cart and
// order rows; it is never taken from a client-supplied field.
type Identity struct {
	OwnerKey string
	Email    string
}

type identityContextKey struct{}

// ContextWithIdentity stores the verified identity in context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the verified identity from context.
// The boolean is false when the request was not authenticated.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok
}
