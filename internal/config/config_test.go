package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("full file", func(t *testing.T) {
		path := writeConfig(t, `
format_version = "0.1.0"
catalog = "/srv/mcp/servers"
default_client = " Cursor "
env_file = "/srv/mcp/.env"
backup = true
log_level = "debug"
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/srv/mcp/servers", cfg.Catalog)
		assert.Equal(t, "Cursor", cfg.DefaultClient)
		assert.Equal(t, "/srv/mcp/.env", cfg.EnvFile)
		assert.True(t, cfg.Backup)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		require.NoError(t, err)
		assert.Equal(t, ConfigFormatVersion, cfg.FormatVersion)
		def, err := DefaultCatalogPath()
		require.NoError(t, err)
		assert.Equal(t, def, cfg.Catalog)
		assert.False(t, cfg.Backup)
	})

	t.Run("patch versions are compatible", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, `format_version = "0.1.7"`))
		require.NoError(t, err)
		assert.Equal(t, "0.1.7", cfg.FormatVersion)
	})

	t.Run("unsupported version", func(t *testing.T) {
		_, err := Load(writeConfig(t, `format_version = "1.0.0"`))
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
		assert.ErrorIs(t, err, ErrConfig)
	})

	t.Run("malformed toml", func(t *testing.T) {
		_, err := Load(writeConfig(t, `catalog = `))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("empty filename", func(t *testing.T) {
		_, err := Load("")
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestIsFormatCompatible(t *testing.T) {
	assert.True(t, IsFormatCompatible("0.1.0"))
	assert.True(t, IsFormatCompatible("0.1.12"))
	assert.False(t, IsFormatCompatible("0.2.0"))
	assert.False(t, IsFormatCompatible("2.0.0"))
	assert.False(t, IsFormatCompatible("not-a-version"))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandHome("~/servers")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "servers"), got)

	got, err = ExpandHome("/abs/path")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", got)

	got, err = ExpandHome("")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultConfigFile)
	cfg := &ConfigParam{
		FormatVersion: ConfigFormatVersion,
		Catalog:       "/srv/catalog.yaml",
		DefaultClient: "claude",
		Backup:        true,
	}
	require.NoError(t, Write(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	assert.Error(t, Write("", cfg))
}
