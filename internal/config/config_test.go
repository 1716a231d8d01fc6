package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, "/api/auth", cfg.AuthBasePath)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PHARMTEST_API_URL", "https://pharm.example.com")
	t.Setenv("PHARMTEST_DATA_DIR", "/tmp/pharmtest-test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://pharm.example.com", cfg.APIBaseURL)
	assert.Equal(t, "/tmp/pharmtest-test", cfg.DataDir)
	assert.Equal(t, filepath.Join("/tmp/pharmtest-test", "state.db"), cfg.StatePath())
	assert.Equal(t, filepath.Join("/tmp/pharmtest-test", "secret"), cfg.SecretPath())
}

func TestLoadRejectsRelativeURL(t *testing.T) {
	t.Setenv("PHARMTEST_API_URL", "localhost:8000/api")

	_, err := Load()
	assert.Error(t, err)
}
