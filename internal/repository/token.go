// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"codeberg.org/oliverandrich/superlists/internal/models"
	"github.com/google/uuid"
)

// CreateToken issues a login token for the given email address. The uid is a
// fresh random UUID; uniqueness comes from the size of the UUID space, with
// the unique index on uid as a backstop.
func (r *Repository) CreateToken(ctx context.Context, email string) (*models.Token, error) {
	now := time.Now().UTC()
	uid := uuid.NewString()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO login_tokens (uid, email, created_at) VALUES (?, ?, ?)`,
		uid, email, now)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Token{ID: id, UID: uid, Email: email, CreatedAt: now}, nil
}

// GetTokenByUID retrieves a login token by its uid. The lookup is exact; an
// unknown uid yields ErrNotFound.
func (r *Repository) GetTokenByUID(ctx context.Context, uid string) (*models.Token, error) {
	var token models.Token
	err := r.db.GetContext(ctx, &token, `SELECT * FROM login_tokens WHERE uid = ?`, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &token, nil
}

// DeleteToken deletes a login token by ID. Used for the single-use policy.
func (r *Repository) DeleteToken(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM login_tokens WHERE id = ?`, id)
	return err
}

// DeleteExpiredTokens deletes tokens older than maxAge and returns how many
// rows were removed. A maxAge of zero disables expiry and deletes nothing.
func (r *Repository) DeleteExpiredTokens(ctx context.Context, maxAge time.Duration) (int64, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().Add(-maxAge)
	res, err := r.db.ExecContext(ctx, `DELETE FROM login_tokens WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
