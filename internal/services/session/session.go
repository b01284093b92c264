// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package session implements cookie sessions backed by gorilla/securecookie.
// The cookie carries only the user id and email; the full user is loaded from
// the database by middleware on each request.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"

	"codeberg.org/oliverandrich/superlists/internal/config"
	"github.com/gorilla/securecookie"
)

// SessionUser is the payload stored in the session cookie.
type SessionUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Manager creates, parses and clears session cookies.
type Manager struct {
	codec      *securecookie.SecureCookie
	cookieName string
	maxAge     int
	secure     bool
}

// NewManager creates a session manager from the session configuration. The
// hash key must be a 32-byte hex string; when empty a random key is generated
// (sessions then do not survive restarts, acceptable in development). The
// optional block key enables AES encryption of the cookie payload.
func NewManager(cfg *config.SessionConfig, secure bool) (*Manager, error) {
	hashKey, err := decodeKey(cfg.HashKey)
	if err != nil {
		return nil, fmt.Errorf("invalid session hash key: %w", err)
	}
	if hashKey == nil {
		hashKey = securecookie.GenerateRandomKey(32)
	}

	blockKey, err := decodeKey(cfg.BlockKey)
	if err != nil {
		return nil, fmt.Errorf("invalid session block key: %w", err)
	}

	codec := securecookie.New(hashKey, blockKey)
	codec.MaxAge(cfg.MaxAge)

	return &Manager{
		codec:      codec,
		cookieName: cfg.CookieName,
		maxAge:     cfg.MaxAge,
		secure:     secure,
	}, nil
}

// decodeKey decodes a hex-encoded 32-byte key. An empty string yields nil.
func decodeKey(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	raw, err := hex.DecodeString(key)
	if err != nil {
		return nil, err
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("must be 32 bytes, got %d", len(raw))
	}
	return raw, nil
}

// CookieName returns the configured session cookie name.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// Create builds a signed session cookie for the given user.
func (m *Manager) Create(userID int64, email string) (*http.Cookie, error) {
	value, err := m.codec.Encode(m.cookieName, &SessionUser{ID: userID, Email: email})
	if err != nil {
		return nil, fmt.Errorf("encoding session: %w", err)
	}

	return &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   m.maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Parse validates a session cookie and returns its payload. A tampered,
// expired or otherwise undecodable cookie yields an error; callers treat that
// the same as no cookie at all.
func (m *Manager) Parse(cookie *http.Cookie) (*SessionUser, error) {
	var user SessionUser
	if err := m.codec.Decode(m.cookieName, cookie.Value, &user); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &user, nil
}

// Clear returns a cookie that removes the session.
func (m *Manager) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// GenerateKey returns a fresh 32-byte key as a hex string, handy for
// provisioning session-hash-key / session-block-key values.
func GenerateKey() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}
