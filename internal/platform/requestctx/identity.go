// Package requestctx carries request-scoped values through context.Context.
package requestctx

import "context"

// Identity is the authenticated caller attached to a request.
type Identity struct {
	AccountID int64
	Login     string
}

// Authenticated reports whether the identity names a real account.
func (i Identity) Authenticated() bool {
	return i.AccountID > 0 && i.Login != ""
}

// identityContextKey is the context key for authenticated caller identity.
type identityContextKey struct{}

// WithIdentity stores a caller identity in context.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// IdentityFromContext returns the caller identity stored in context.
//
// The boolean is false when the request is anonymous.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	value, ok := ctx.Value(identityContextKey{}).(Identity)
	if !ok || !value.Authenticated() {
		return Identity{}, false
	}
	return value, true
}
