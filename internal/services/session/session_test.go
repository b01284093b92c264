// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package session_test

import (
	"encoding/hex"
	"net/http"
	"strings"
	"testing"

	"codeberg.org/oliverandrich/superlists/internal/config"
	"codeberg.org/oliverandrich/superlists/internal/services/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.SessionConfig {
	return &config.SessionConfig{
		CookieName: "superlists_session",
		HashKey:    strings.Repeat("ab", 32),
		BlockKey:   strings.Repeat("cd", 32),
		MaxAge:     3600,
	}
}

func TestNewManager(t *testing.T) {
	mgr, err := session.NewManager(testConfig(), false)

	require.NoError(t, err)
	assert.Equal(t, "superlists_session", mgr.CookieName())
}

func TestNewManager_EmptyHashKeyGeneratesOne(t *testing.T) {
	cfg := testConfig()
	cfg.HashKey = ""

	mgr, err := session.NewManager(cfg, false)

	require.NoError(t, err)
	require.NotNil(t, mgr)
}

func TestNewManager_InvalidHashKey(t *testing.T) {
	cfg := testConfig()
	cfg.HashKey = "not-hex"

	_, err := session.NewManager(cfg, false)

	assert.ErrorContains(t, err, "invalid session hash key")
}

func TestNewManager_ShortHashKey(t *testing.T) {
	cfg := testConfig()
	cfg.HashKey = "abcd"

	_, err := session.NewManager(cfg, false)

	require.Error(t, err)
	assert.ErrorContains(t, err, "must be 32 bytes, got 2")
}

func TestNewManager_InvalidBlockKey(t *testing.T) {
	cfg := testConfig()
	cfg.BlockKey = "zz"

	_, err := session.NewManager(cfg, false)

	assert.ErrorContains(t, err, "invalid session block key")
}

func TestCreateAndParse(t *testing.T) {
	mgr, err := session.NewManager(testConfig(), false)
	require.NoError(t, err)

	cookie, err := mgr.Create(42, "a@b.com")
	require.NoError(t, err)

	assert.Equal(t, "superlists_session", cookie.Name)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	user, err := mgr.Parse(cookie)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "a@b.com", user.Email)
}

func TestCreate_SecureFlag(t *testing.T) {
	mgr, err := session.NewManager(testConfig(), true)
	require.NoError(t, err)

	cookie, err := mgr.Create(1, "a@b.com")
	require.NoError(t, err)

	assert.True(t, cookie.Secure)
}

func TestParse_TamperedCookie(t *testing.T) {
	mgr, err := session.NewManager(testConfig(), false)
	require.NoError(t, err)

	cookie, err := mgr.Create(42, "a@b.com")
	require.NoError(t, err)
	cookie.Value += "x"

	_, err = mgr.Parse(cookie)
	assert.Error(t, err)
}

func TestParse_CookieFromOtherManager(t *testing.T) {
	mgr1, err := session.NewManager(testConfig(), false)
	require.NoError(t, err)

	otherCfg := testConfig()
	otherCfg.HashKey = strings.Repeat("ef", 32)
	mgr2, err := session.NewManager(otherCfg, false)
	require.NoError(t, err)

	cookie, err := mgr1.Create(42, "a@b.com")
	require.NoError(t, err)

	_, err = mgr2.Parse(cookie)
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	mgr, err := session.NewManager(testConfig(), false)
	require.NoError(t, err)

	cookie := mgr.Clear()

	assert.Equal(t, "superlists_session", cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
}

func TestGenerateKey(t *testing.T) {
	key, err := session.GenerateKey()
	require.NoError(t, err)

	raw, err := hex.DecodeString(key)
	require.NoError(t, err)
	assert.Len(t, raw, 32)

	other, err := session.GenerateKey()
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}
