// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package templates renders the application's few server-side pages as templ
// components. The pages are deliberately minimal; presentation is not a
// concern of this application's core.
package templates

import (
	"context"

	"codeberg.org/oliverandrich/superlists/internal/appcontext"
	"codeberg.org/oliverandrich/superlists/internal/i18n"
	"codeberg.org/oliverandrich/superlists/internal/models"
)

// CSRFToken returns the CSRF token from the context.
func CSRFToken(ctx context.Context) string {
	if token, ok := ctx.Value(appcontext.CSRFToken{}).(string); ok {
		return token
	}
	return ""
}

// T translates a message by ID.
func T(ctx context.Context, messageID string) string {
	return i18n.T(ctx, messageID)
}

// TData translates a message with template data.
func TData(ctx context.Context, messageID string, data map[string]any) string {
	return i18n.TData(ctx, messageID, data)
}

// Locale returns the current locale.
func Locale(ctx context.Context) string {
	return i18n.GetLocale(ctx)
}

// GetUser returns the authenticated user from context, or nil if not logged in.
func GetUser(ctx context.Context) *models.User {
	return appcontext.GetUser(ctx)
}

// IsAuthenticated returns true if a user is logged in.
func IsAuthenticated(ctx context.Context) bool {
	return appcontext.IsAuthenticated(ctx)
}
