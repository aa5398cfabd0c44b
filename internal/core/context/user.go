// Package context provides request-scoped values extraction.
package context

import (
	"context"
	"strings"
)

// RoleAdmin is the role that grants unrestricted visibility.
const RoleAdmin = "Admin"

// UserContext contains authenticated user information.
type UserContext struct {
	UserID string
	Email  string
	Role   string
	Name   string
}

// DisplayName returns the best human-readable identity for audit records:
// full name when present, otherwise the email.
func (u *UserContext) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// IsAdmin reports whether the user carries the admin role.
// Role comparison is case-insensitive, matching how tokens are issued.
func (u *UserContext) IsAdmin() bool {
	return u != nil && strings.EqualFold(u.Role, RoleAdmin)
}

// NormalizedEmail returns the email lowercased for ownership comparisons.
func (u *UserContext) NormalizedEmail() string {
	if u == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(u.Email))
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or empty string.
func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}

// GetUserEmail returns the user's email from context or empty string.
func GetUserEmail(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.Email
	}
	return ""
}

// IsAdmin reports whether the context user has the admin role.
func IsAdmin(ctx context.Context) bool {
	return GetUser(ctx).IsAdmin()
}
