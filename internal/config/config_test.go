package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "query", cfg.Router.TargetConvention)
	assert.Equal(t, "url", cfg.Router.TargetParam)
	assert.Equal(t, "json", cfg.Router.ResponseMode)
	assert.Equal(t, []string{"GET", "POST"}, cfg.Router.Methods)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, 5*time.Second, cfg.Store.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Assets.Timeout)
	assert.Equal(t, "viewer.html", cfg.Viewer.ViewerPage)
	assert.Equal(t, "150x150", cfg.QRCode.Size)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ROUTER_TARGET_CONVENTION", "fragment")
	t.Setenv("ROUTER_RESPONSE_MODE", "redirect")
	t.Setenv("ROUTER_METHODS", " get, post ,options,")
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("STORE_TIMEOUT", "250ms")
	t.Setenv("ASSET_TIMEOUT", "not-a-duration")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("QR_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "fragment", cfg.Router.TargetConvention)
	assert.Equal(t, "redirect", cfg.Router.ResponseMode)
	assert.Equal(t, []string{"GET", "POST", "OPTIONS"}, cfg.Router.Methods)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, 250*time.Millisecond, cfg.Store.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Assets.Timeout, "invalid durations fall back")
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.QRCode.Enabled)
}
