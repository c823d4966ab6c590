package shared

import "context"

// Identity is the per-request binding of an authenticated account. It is
// attached by the bearer-token middleware and discarded with the request.
type Identity struct {
	ID    int64
	Email string
	Admin bool
}

type identityContextKey struct{}

// ContextWithIdentity stores the identity in context.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the identity from context. Nil means the
// request is anonymous.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityContextKey{}).(*Identity)
	return id
}
