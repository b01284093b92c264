// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package appcontext provides typed context keys and accessors shared across
// handlers, middleware and templates.
package appcontext

import (
	"context"

	"codeberg.org/oliverandrich/superlists/internal/models"
)

// Context keys for storing values in context.Context.
type (
	// CSRFToken is the context key for the CSRF token.
	CSRFToken struct{}
	// User is the context key for the authenticated user.
	User struct{}
)

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, User{}, user)
}

// GetUser returns the authenticated user from the context, or nil if not
// authenticated.
func GetUser(ctx context.Context) *models.User {
	if user, ok := ctx.Value(User{}).(*models.User); ok {
		return user
	}
	return nil
}

// IsAuthenticated returns true if the context has an authenticated user.
func IsAuthenticated(ctx context.Context) bool {
	return GetUser(ctx) != nil
}
