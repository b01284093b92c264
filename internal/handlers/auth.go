// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"codeberg.org/oliverandrich/superlists/internal/services/auth"
	"codeberg.org/oliverandrich/superlists/internal/services/session"
	"codeberg.org/oliverandrich/superlists/internal/templates"
	"github.com/labstack/echo/v4"
)

// AuthHandlers contains handlers for the passwordless login flow.
type AuthHandlers struct {
	auth     *auth.Service
	sessions *session.Manager
}

// NewAuth creates a new AuthHandlers instance.
func NewAuth(authSvc *auth.Service, sessions *session.Manager) *AuthHandlers {
	return &AuthHandlers{
		auth:     authSvc,
		sessions: sessions,
	}
}

// SendLoginEmail handles POST /accounts/send-login-email. It always renders
// the same confirmation page, regardless of whether the address belongs to a
// known account.
func (h *AuthHandlers) SendLoginEmail(c echo.Context) error {
	email := c.FormValue("email")

	if err := h.auth.SendLoginEmail(c.Request().Context(), email); err != nil {
		return err
	}

	return Render(c, http.StatusOK, templates.LoginEmailSent())
}

// Login handles GET /accounts/login?token=<uid>. A valid token sets the
// session cookie; an invalid or missing one is treated the same as no
// credential. Either way the user lands on the home page.
func (h *AuthHandlers) Login(c echo.Context) error {
	uid := c.QueryParam("token")

	user, err := h.auth.Authenticate(c.Request().Context(), uid)
	if err != nil {
		return err
	}

	if user != nil {
		cookie, err := h.sessions.Create(user.ID, user.Email)
		if err != nil {
			return err
		}
		c.SetCookie(cookie)
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout clears the session cookie.
func (h *AuthHandlers) Logout(c echo.Context) error {
	c.SetCookie(h.sessions.Clear())
	return c.Redirect(http.StatusSeeOther, "/")
}
