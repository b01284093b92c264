// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"codeberg.org/oliverandrich/superlists/internal/models"
)

// CreateListWithFirstItem creates a list together with its first item in a
// single transaction, so a list can never exist without at least one item.
// ownerID may be nil for anonymous lists.
func (r *Repository) CreateListWithFirstItem(ctx context.Context, text string, ownerID *int64) (*models.List, *models.Item, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO lists (owner_id, created_at) VALUES (?, ?)`,
		ownerID, now)
	if err != nil {
		return nil, nil, err
	}
	listID, err := res.LastInsertId()
	if err != nil {
		return nil, nil, err
	}

	res, err = tx.ExecContext(ctx,
		`INSERT INTO items (list_id, text, created_at) VALUES (?, ?, ?)`,
		listID, text, now)
	if err != nil {
		return nil, nil, err
	}
	itemID, err := res.LastInsertId()
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}

	list := &models.List{ID: listID, OwnerID: ownerID, CreatedAt: now}
	item := &models.Item{ID: itemID, ListID: listID, Text: text, CreatedAt: now}
	return list, item, nil
}

// CreateItem appends an item to an existing list. A violation of the
// UNIQUE(list_id, text) constraint is translated into ErrDuplicateItem; the
// insert is a single statement, so a rejected duplicate leaves no partial
// write behind. Any other failure is returned untranslated.
func (r *Repository) CreateItem(ctx context.Context, listID int64, text string) (*models.Item, error) {
	now := time.Now().UTC()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO items (list_id, text, created_at) VALUES (?, ?, ?)`,
		listID, text, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateItem
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Item{ID: id, ListID: listID, Text: text, CreatedAt: now}, nil
}

// GetListByID retrieves a list by ID.
func (r *Repository) GetListByID(ctx context.Context, id int64) (*models.List, error) {
	var list models.List
	err := r.db.GetContext(ctx, &list, `SELECT * FROM lists WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &list, nil
}

// GetListItems returns the items of a list in creation (ascending id) order.
func (r *Repository) GetListItems(ctx context.Context, listID int64) ([]models.Item, error) {
	var items []models.Item
	err := r.db.SelectContext(ctx, &items,
		`SELECT * FROM items WHERE list_id = ? ORDER BY id`, listID)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetListName returns the derived name of a list: the text of its first item.
func (r *Repository) GetListName(ctx context.Context, listID int64) (string, error) {
	var name string
	err := r.db.GetContext(ctx, &name,
		`SELECT text FROM items WHERE list_id = ? ORDER BY id LIMIT 1`, listID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return name, nil
}

// GetListsByOwner returns the lists owned by a user, each with its derived
// name, ordered by creation.
func (r *Repository) GetListsByOwner(ctx context.Context, ownerID int64) ([]models.ListOverview, error) {
	var lists []models.ListOverview
	err := r.db.SelectContext(ctx, &lists,
		`SELECT l.id AS id,
		        (SELECT text FROM items WHERE list_id = l.id ORDER BY id LIMIT 1) AS name
		 FROM lists l
		 WHERE l.owner_id = ?
		 ORDER BY l.id`, ownerID)
	if err != nil {
		return nil, err
	}
	return lists, nil
}

// CountListItems returns the number of items in a list.
func (r *Repository) CountListItems(ctx context.Context, listID int64) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT count(*) FROM items WHERE list_id = ?`, listID)
	if err != nil {
		return 0, err
	}
	return count, nil
}
