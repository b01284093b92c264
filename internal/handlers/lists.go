// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"codeberg.org/oliverandrich/superlists/internal/appcontext"
	"codeberg.org/oliverandrich/superlists/internal/i18n"
	"codeberg.org/oliverandrich/superlists/internal/repository"
	"codeberg.org/oliverandrich/superlists/internal/services/lists"
	"codeberg.org/oliverandrich/superlists/internal/templates"
	"github.com/labstack/echo/v4"
)

// NewList handles POST /lists/new: create a list with its first item and
// redirect to the list page. Validation failures re-render the home page
// with the message; the owner is set when the request is authenticated.
func (h *Handlers) NewList(c echo.Context) error {
	ctx := c.Request().Context()
	text := c.FormValue("text")
	owner := appcontext.GetUser(ctx)

	item, err := h.lists.AddItem(ctx, nil, text, owner)
	if err != nil {
		if lists.IsValidationError(err) {
			form := templates.ItemForm{Text: text, Error: validationMessage(c, err)}
			return Render(c, http.StatusOK, templates.Home(form))
		}
		return err
	}

	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/lists/%d", item.ListID))
}

// ViewList handles GET /lists/:id.
func (h *Handlers) ViewList(c echo.Context) error {
	return h.renderList(c, templates.ItemForm{})
}

// AddItem handles POST /lists/:id: append an item and redirect back to the
// list. Validation failures re-render the list page with the message and
// leave the list unchanged.
func (h *Handlers) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	listID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	if _, err := h.repo.GetListByID(ctx, listID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}

	text := c.FormValue("text")
	if _, err := h.lists.AddItem(ctx, &listID, text, nil); err != nil {
		if lists.IsValidationError(err) {
			return h.renderList(c, templates.ItemForm{Text: text, Error: validationMessage(c, err)})
		}
		return err
	}

	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/lists/%d", listID))
}

// MyLists handles GET /lists/users/:email, the lists owned by that user.
func (h *Handlers) MyLists(c echo.Context) error {
	ctx := c.Request().Context()
	email := c.Param("email")

	user, err := h.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}

	overview, err := h.repo.GetListsByOwner(ctx, user.ID)
	if err != nil {
		return err
	}

	return Render(c, http.StatusOK, templates.MyLists(user.Email, overview))
}

// renderList loads a list and its items and renders the list page with the
// given form state.
func (h *Handlers) renderList(c echo.Context, form templates.ItemForm) error {
	ctx := c.Request().Context()
	listID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	list, err := h.repo.GetListByID(ctx, listID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}

	items, err := h.repo.GetListItems(ctx, listID)
	if err != nil {
		return err
	}

	return Render(c, http.StatusOK, templates.List(list, items, form))
}

// validationMessage maps a validation sentinel to its localized message.
func validationMessage(c echo.Context, err error) string {
	ctx := c.Request().Context()
	switch {
	case errors.Is(err, lists.ErrEmptyItem):
		return i18n.T(ctx, "error_empty_item")
	case errors.Is(err, lists.ErrDuplicateItem):
		return i18n.T(ctx, "error_duplicate_item")
	}
	return ""
}
