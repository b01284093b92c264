// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package templates

import (
	"context"
	"fmt"
	"io"

	"codeberg.org/oliverandrich/superlists/internal/models"
	"github.com/a-h/templ"
)

// ItemForm carries the state of the add-item form between a failed submit
// and the re-rendered page.
type ItemForm struct {
	Text  string
	Error string // localized message, empty when the form is clean
}

// Home renders the start page with the new-list form.
func Home(form ItemForm) templ.Component {
	return page("app_title", func(ctx context.Context, w io.Writer) error {
		if err := writef(w, "<h1>%s</h1>\n", esc(T(ctx, "home_header"))); err != nil {
			return err
		}
		return itemForm(ctx, w, "/lists/new", form)
	})
}

// List renders a single list with its items in creation order and the
// add-item form.
func List(list *models.List, items []models.Item, form ItemForm) templ.Component {
	return page("app_title", func(ctx context.Context, w io.Writer) error {
		name := ""
		if len(items) > 0 {
			name = items[0].Text
		}
		if err := writef(w, "<h1>%s</h1>\n", esc(name)); err != nil {
			return err
		}

		if err := writef(w, "<table id=\"id_list_table\">\n"); err != nil {
			return err
		}
		for i, item := range items {
			if err := writef(w, "<tr><td>%d: %s</td></tr>\n", i+1, esc(item.Text)); err != nil {
				return err
			}
		}
		if err := writef(w, "</table>\n"); err != nil {
			return err
		}

		return itemForm(ctx, w, fmt.Sprintf("/lists/%d", list.ID), form)
	})
}

// MyLists renders the lists owned by a user, each named by its first item.
func MyLists(email string, lists []models.ListOverview) templ.Component {
	return page("app_title", func(ctx context.Context, w io.Writer) error {
		header := TData(ctx, "my_lists_header", map[string]any{"Email": email})
		if err := writef(w, "<h1>%s</h1>\n", esc(header)); err != nil {
			return err
		}
		if len(lists) == 0 {
			return writef(w, "<p>%s</p>\n", esc(T(ctx, "my_lists_empty")))
		}
		if err := writef(w, "<ul>\n"); err != nil {
			return err
		}
		for _, l := range lists {
			if err := writef(w, "<li><a href=\"/lists/%d\">%s</a></li>\n", l.ID, esc(l.Name)); err != nil {
				return err
			}
		}
		return writef(w, "</ul>\n")
	})
}

// LoginEmailSent renders the confirmation shown after a login request,
// independent of whether the address is known.
func LoginEmailSent() templ.Component {
	return page("app_title", func(ctx context.Context, w io.Writer) error {
		return writef(w, "<p class=\"notice\">%s</p>\n", esc(T(ctx, "login_email_sent")))
	})
}

// NotFound renders the 404 page.
func NotFound() templ.Component {
	return page("app_title", func(ctx context.Context, w io.Writer) error {
		return writef(w, "<h1>404</h1>\n<p>%s</p>\n", esc(T(ctx, "error_404_message")))
	})
}

// page wraps a body in the shared layout: title, nav with login/logout, and
// the html scaffolding.
func page(titleID string, body func(ctx context.Context, w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := T(ctx, titleID)
		if err := writef(w,
			"<!doctype html>\n<html lang=\"%s\">\n<head><meta charset=\"utf-8\"><title>%s</title></head>\n<body>\n",
			esc(Locale(ctx)), esc(title)); err != nil {
			return err
		}
		if err := nav(ctx, w); err != nil {
			return err
		}
		if err := body(ctx, w); err != nil {
			return err
		}
		return writef(w, "</body>\n</html>\n")
	})
}

// nav renders the login form or the logged-in header.
func nav(ctx context.Context, w io.Writer) error {
	user := GetUser(ctx)
	if user == nil {
		return writef(w,
			"<nav><form method=\"POST\" action=\"/accounts/send-login-email\">"+
				"<input type=\"hidden\" name=\"csrf_token\" value=\"%s\">"+
				"<input type=\"email\" name=\"email\" placeholder=\"%s\">"+
				"<button type=\"submit\">%s</button></form></nav>\n",
			esc(CSRFToken(ctx)), esc(T(ctx, "login_placeholder")), esc(T(ctx, "login_button")))
	}

	loggedIn := TData(ctx, "logged_in_as", map[string]any{"Email": user.Email})
	return writef(w,
		"<nav><span>%s</span> <a href=\"/lists/users/%s\">%s</a>"+
			"<form method=\"POST\" action=\"/accounts/logout\">"+
			"<input type=\"hidden\" name=\"csrf_token\" value=\"%s\">"+
			"<button type=\"submit\">%s</button></form></nav>\n",
		esc(loggedIn), esc(user.Email), esc(T(ctx, "my_lists_nav")),
		esc(CSRFToken(ctx)), esc(T(ctx, "logout_button")))
}

// itemForm renders the shared add-item form, including a validation message
// when the previous submit failed.
func itemForm(ctx context.Context, w io.Writer, action string, form ItemForm) error {
	if form.Error != "" {
		if err := writef(w, "<div class=\"invalid-feedback\">%s</div>\n", esc(form.Error)); err != nil {
			return err
		}
	}
	return writef(w,
		"<form method=\"POST\" action=\"%s\">"+
			"<input type=\"hidden\" name=\"csrf_token\" value=\"%s\">"+
			"<input type=\"text\" name=\"text\" id=\"id_text\" placeholder=\"%s\" value=\"%s\">"+
			"<button type=\"submit\">%s</button></form>\n",
		esc(action), esc(CSRFToken(ctx)),
		esc(T(ctx, "item_placeholder")), esc(form.Text), esc(T(ctx, "add_item_button")))
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func esc(s string) string {
	return templ.EscapeString(s)
}
