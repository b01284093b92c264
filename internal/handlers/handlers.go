// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"codeberg.org/oliverandrich/superlists/internal/repository"
	"codeberg.org/oliverandrich/superlists/internal/services/lists"
	"codeberg.org/oliverandrich/superlists/internal/templates"
	"github.com/labstack/echo/v4"
)

// Handlers contains the HTTP handlers for the list pages.
type Handlers struct {
	repo  *repository.Repository
	lists *lists.Service
}

// New creates a new Handlers instance.
func New(repo *repository.Repository, listSvc *lists.Service) *Handlers {
	return &Handlers{repo: repo, lists: listSvc}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Home renders the home page with the new-list form.
func (h *Handlers) Home(c echo.Context) error {
	return Render(c, http.StatusOK, templates.Home(templates.ItemForm{}))
}

// NotFound renders the 404 page.
func (h *Handlers) NotFound(c echo.Context) error {
	return Render(c, http.StatusNotFound, templates.NotFound())
}
