// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"net/http"
	"testing"

	"codeberg.org/oliverandrich/superlists/internal/handlers"
	"codeberg.org/oliverandrich/superlists/internal/i18n"
	"codeberg.org/oliverandrich/superlists/internal/repository"
	"codeberg.org/oliverandrich/superlists/internal/services/lists"
	"codeberg.org/oliverandrich/superlists/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
)

func TestMain(m *testing.M) {
	if err := i18n.Init(); err != nil {
		panic(err)
	}
	m.Run()
}

func newTestHandlers(t *testing.T) (*handlers.Handlers, *repository.Repository, *sqlx.DB) {
	t.Helper()
	db, repo := testutil.NewTestDB(t)
	return handlers.New(repo, lists.NewService(repo)), repo, db
}

func TestHealth(t *testing.T) {
	h, _, _ := newTestHandlers(t)
	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/health", nil)

	err := h.Health(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHome(t *testing.T) {
	h, _, _ := newTestHandlers(t)
	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/", nil)

	err := h.Home(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "id_text")
	assert.Contains(t, rec.Body.String(), `action="/lists/new"`)
}

func TestNotFound(t *testing.T) {
	h, _, _ := newTestHandlers(t)
	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/no-such-page", nil)

	err := h.NotFound(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
