package auth

import "context"

// Identity is the authenticated caller attached to a request.
type Identity struct {
	UserID int64
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the caller identity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// ViewerID returns the caller id or nil for anonymous requests.
func ViewerID(ctx context.Context) *int64 {
	id, ok := IdentityFromContext(ctx)
	if !ok {
		return nil
	}
	v := id.UserID
	return &v
}
