package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("PORT", "")
	t.Setenv("PREFIX", "")
	t.Setenv("STORAGE_TYPE", "")
	t.Setenv("ENVIRONMENT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.Token)
	assert.Equal(t, "!", cfg.Prefix)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "memory", cfg.StorageType)
	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsDevelopment())

	// Data directory should have been created
	assert.DirExists(t, cfg.DataDir)
}

func TestLoadMissingToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DISCORD_TOKEN")
}

func TestLoadInvalidStorageType(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("STORAGE_TYPE", "postgres")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_TYPE")
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("STORAGE_TYPE", "memory")
	t.Setenv("PORT", "not-a-number")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}
