package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 60*time.Second, cfg.ListRefresh)
	assert.Equal(t, 10*time.Second, cfg.ChatRefresh)
	assert.Equal(t, 50, cfg.ChatLimit)
	assert.Equal(t, 5*time.Second, cfg.NotifyTTL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.NotEmpty(t, cfg.SessionFile)
	assert.Empty(t, cfg.ChatStreamURL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PANEL_API_URL", "https://panel.example.com")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PANEL_LIST_REFRESH", "2m")
	t.Setenv("PANEL_CHAT_REFRESH", "15")
	t.Setenv("PANEL_CHAT_LIMIT", "100")
	t.Setenv("PANEL_SESSION_FILE", "/tmp/panel-session.json")
	t.Setenv("PANEL_CHAT_STREAM_URL", "https://panel.example.com/api/staff/chat/stream")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://panel.example.com", cfg.APIBaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2*time.Minute, cfg.ListRefresh)
	// Plain numbers are read as seconds.
	assert.Equal(t, 15*time.Second, cfg.ChatRefresh)
	assert.Equal(t, 100, cfg.ChatLimit)
	assert.Equal(t, "/tmp/panel-session.json", cfg.SessionFile)
	assert.Equal(t, "https://panel.example.com/api/staff/chat/stream", cfg.ChatStreamURL)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("PANEL_LIST_REFRESH", "soon")
	t.Setenv("PANEL_CHAT_LIMIT", "-5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 60*time.Second, cfg.ListRefresh)
	assert.Equal(t, 50, cfg.ChatLimit)
}
