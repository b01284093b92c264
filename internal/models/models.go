// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package models defines the persistent entities of the application.
package models

import "time"

// User is an account identified solely by its email address. There is no
// password; users are provisioned lazily on the first successful login-token
// use.
type User struct { //nolint:govet // fieldalignment not critical for models
	ID        int64     `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Token is a login-link credential sent by email. The uid is an opaque random
// identifier; knowing it is the only credential needed to log in.
type Token struct { //nolint:govet // fieldalignment not critical for models
	ID        int64     `db:"id" json:"id"`
	UID       string    `db:"uid" json:"uid"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// List is an ordered collection of unique-text items, optionally owned by a
// user. A list has no stored name; it is named by its first item.
type List struct { //nolint:govet // fieldalignment not critical for models
	ID        int64     `db:"id" json:"id"`
	OwnerID   *int64    `db:"owner_id" json:"owner_id,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Item is a single entry of a list. Its text is unique within the owning
// list; across lists the same text may repeat freely.
type Item struct { //nolint:govet // fieldalignment not critical for models
	ID        int64     `db:"id" json:"id"`
	ListID    int64     `db:"list_id" json:"list_id"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ListOverview is the read model for the "my lists" page: a list id together
// with its derived name (the text of its first item).
type ListOverview struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
