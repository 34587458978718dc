package auth

import (
	"context"
	"log/slog"
)

// AuthUser is the request-scoped security principal: the authenticated
// username plus the authorities derived from its stored roles. It is created
// by the principal middleware and discarded at end of request.
type AuthUser struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

func (u AuthUser) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", u.Username),
		slog.Any("roles", u.Roles),
	)
}

// HasAnyRole reports whether the principal carries at least one of the given
// roles. Plain set membership, no hierarchy.
func (u AuthUser) HasAnyRole(roles ...string) bool {
	for _, have := range u.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// contextKey is a value for use with context.WithValue. It's used as
// a pointer so it fits in an interface{} without allocation.
type contextKey struct {
	name string
}

func (k *contextKey) String() string {
	return "auth context value " + k.name
}

var authUserKey = &contextKey{"AuthUser"}

// WithAuthUser returns a context carrying the principal.
func WithAuthUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, authUserKey, user)
}

// FromContext returns the request's principal, if one was installed.
func FromContext(ctx context.Context) (*AuthUser, bool) {
	user, ok := ctx.Value(authUserKey).(*AuthUser)
	return user, ok && user != nil
}
