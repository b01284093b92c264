// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"codeberg.org/oliverandrich/superlists/internal/config"
	"codeberg.org/oliverandrich/superlists/internal/handlers"
	"codeberg.org/oliverandrich/superlists/internal/repository"
	"codeberg.org/oliverandrich/superlists/internal/services/auth"
	"codeberg.org/oliverandrich/superlists/internal/services/session"
	"codeberg.org/oliverandrich/superlists/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	to   []string
	uids []string
}

func (m *recordingMailer) SendLoginLink(_ context.Context, to, uid string) error {
	m.to = append(m.to, to)
	m.uids = append(m.uids, uid)
	return nil
}

func newAuthHandlers(t *testing.T) (*handlers.AuthHandlers, *repository.Repository, *recordingMailer, *session.Manager) {
	t.Helper()
	_, repo := testutil.NewTestDB(t)
	mailer := &recordingMailer{}
	authSvc := auth.NewService(repo, mailer, &config.AuthConfig{TokenMaxAge: 24 * time.Hour})

	sessions, err := session.NewManager(&config.SessionConfig{
		CookieName: "_session",
		HashKey:    strings.Repeat("ab", 32),
		MaxAge:     3600,
	}, false)
	require.NoError(t, err)

	return handlers.NewAuth(authSvc, sessions), repo, mailer, sessions
}

func sessionCookie(rec interface{ Result() *http.Response }, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestSendLoginEmail(t *testing.T) {
	h, repo, mailer, _ := newAuthHandlers(t)
	e := echo.New()
	c, rec := testutil.NewFormContext(e, http.MethodPost, "/accounts/send-login-email",
		url.Values{"email": {"a@b.com"}})

	err := h.SendLoginEmail(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Check your email")

	require.Len(t, mailer.to, 1)
	assert.Equal(t, "a@b.com", mailer.to[0])

	token, err := repo.GetTokenByUID(context.Background(), mailer.uids[0])
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", token.Email)
}

func TestLogin_ValidToken(t *testing.T) {
	h, repo, _, sessions := newAuthHandlers(t)
	token, err := repo.CreateToken(context.Background(), "a@b.com")
	require.NoError(t, err)

	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/accounts/login?token="+token.UID, nil)

	err = h.Login(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	cookie := sessionCookie(rec, sessions.CookieName())
	require.NotNil(t, cookie)

	user, err := sessions.Parse(cookie)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", user.Email)
}

func TestLogin_InvalidToken(t *testing.T) {
	h, _, _, sessions := newAuthHandlers(t)
	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/accounts/login?token=bogus", nil)

	err := h.Login(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	assert.Nil(t, sessionCookie(rec, sessions.CookieName()))
}

func TestLogin_MissingToken(t *testing.T) {
	h, _, _, sessions := newAuthHandlers(t)
	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/accounts/login", nil)

	err := h.Login(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Nil(t, sessionCookie(rec, sessions.CookieName()))
}

func TestLogout(t *testing.T) {
	h, _, _, sessions := newAuthHandlers(t)
	e := echo.New()
	c, rec := testutil.NewFormContext(e, http.MethodPost, "/accounts/logout", url.Values{})

	err := h.Logout(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	cookie := sessionCookie(rec, sessions.CookieName())
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
}
