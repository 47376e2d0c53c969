package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "mongo", cfg.Plans.Store)
	assert.Equal(t, time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 5*time.Minute, cfg.Cache.ProfileTTL)
	assert.Equal(t, "https://api.groq.com/openai", cfg.Completion.Groq.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.Completion.OpenAI.Timeout)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("server:\n  address: \":9090\"\nplans:\n  store: postgres\njwt:\n  expiration: 30m\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	t.Setenv("COMPLETION_GROQ_API_KEY", "gsk_test")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "postgres", cfg.Plans.Store)
	assert.Equal(t, 30*time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, "gsk_test", cfg.Completion.Groq.APIKey)
}
