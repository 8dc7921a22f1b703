package auth

import (
	"context"
	"slices"
)

// PermissionAdmin grants the same rights as the is_admin flag.
const PermissionAdmin = "admin"

// Principal is the authenticated actor of a request.
type Principal struct {
	UserID      string
	Email       string
	IsAdmin     bool
	Permissions []string
}

// Admin reports whether the principal holds administrative rights.
func (p Principal) Admin() bool {
	return p.IsAdmin || slices.Contains(p.Permissions, PermissionAdmin)
}

type principalKey struct{}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext extracts the principal set by the auth middleware.
func FromContext(ctx context.Context) (Principal, error) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	if !ok || p.UserID == "" {
		return Principal{}, ErrMissingPrincipal
	}
	return p, nil
}
