// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package i18n_test

import (
	"context"
	"testing"

	"codeberg.org/oliverandrich/superlists/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestMain(m *testing.M) {
	if err := i18n.Init(); err != nil {
		panic(err)
	}
	m.Run()
}

func TestT(t *testing.T) {
	ctx := i18n.WithLocale(context.Background(), language.English)

	assert.Equal(t, "You can't have an empty list item", i18n.T(ctx, "error_empty_item"))
	assert.Equal(t, "You've already got this in your list", i18n.T(ctx, "error_duplicate_item"))
}

func TestT_German(t *testing.T) {
	ctx := i18n.WithLocale(context.Background(), language.German)

	msg := i18n.T(ctx, "error_empty_item")
	require.NotEmpty(t, msg)
	assert.NotEqual(t, "error_empty_item", msg)
	assert.NotEqual(t, "You can't have an empty list item", msg)
}

func TestT_UnknownMessageID(t *testing.T) {
	ctx := i18n.WithLocale(context.Background(), language.English)

	assert.Equal(t, "does_not_exist", i18n.T(ctx, "does_not_exist"))
}

func TestT_NoLocaleInContext(t *testing.T) {
	// Falls back to English
	assert.Equal(t, "You can't have an empty list item",
		i18n.T(context.Background(), "error_empty_item"))
}

func TestTData(t *testing.T) {
	ctx := i18n.WithLocale(context.Background(), language.English)

	body := i18n.TData(ctx, "login_email_body", map[string]any{
		"LoginURL": "http://localhost:8080/accounts/login?token=abc",
	})

	assert.Contains(t, body, "http://localhost:8080/accounts/login?token=abc")
}

func TestGetLocale(t *testing.T) {
	assert.Equal(t, "en", i18n.GetLocale(context.Background()))

	ctx := i18n.WithLocale(context.Background(), language.German)
	assert.Equal(t, "de", i18n.GetLocale(ctx))
}

func TestMatchLanguage(t *testing.T) {
	tests := []struct {
		header string
		want   language.Tag
	}{
		{"de-DE,de;q=0.9,en;q=0.8", language.German},
		{"en-US,en;q=0.9", language.English},
		{"fr-FR", language.English},
		{"", language.English},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, i18n.MatchLanguage(tt.header))
		})
	}
}
