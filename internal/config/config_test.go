package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petasbytes/personachat/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "gpt-3.5-turbo", cfg.Model)
	assert.Equal(t, 0.65, cfg.Temperature)
	assert.Equal(t, 512, cfg.MaxTokens)
	assert.Equal(t, "RoastBot", cfg.Persona)
	assert.True(t, cfg.Persist)
	assert.Equal(t, 24, cfg.HistoryWindow)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PCHAT_PROVIDER", "anthropic")
	t.Setenv("PCHAT_MODEL", "claude-sonnet-4-0")
	t.Setenv("PCHAT_TEMPERATURE", "0.2")
	t.Setenv("PCHAT_PERSIST", "false")
	t.Setenv("PCHAT_STATE_DIR", "/tmp/pchat-test")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "claude-sonnet-4-0", cfg.Model)
	assert.Equal(t, 0.2, cfg.Temperature)
	assert.False(t, cfg.Persist)
	assert.Equal(t, filepath.Join("/tmp/pchat-test", "conversation.json"), cfg.SnapshotPath())
	assert.Equal(t, filepath.Join("/tmp/pchat-test", "personas.yaml"), cfg.OverlayPath())
}

func TestLoad_BadValue(t *testing.T) {
	t.Setenv("PCHAT_TEMPERATURE", "warm")

	_, err := config.Load()
	assert.Error(t, err)
}
