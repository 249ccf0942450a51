package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	svc := NewConfigService(filepath.Join(t.TempDir(), "config.toml"))

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromPathKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
base_url = "https://photos.example.com"
email = "admin@example.com"

[ui]
columns = 6
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := NewConfigService(path).LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "https://photos.example.com", cfg.Server.BaseURL)
	assert.Equal(t, "admin@example.com", cfg.Server.Email)
	assert.Equal(t, 6, cfg.UISettings.Columns)
	assert.Equal(t, "/admin/photos/delete", cfg.Server.DeletePath)
	assert.Equal(t, "csrf_token", cfg.Server.CSRFCookie)
	assert.True(t, cfg.UISettings.RestoreLabelOnFailure)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nbase_url = \"https://file.example.com\"\n"), 0o600))

	t.Setenv("FOLIO_BASE_URL", "https://env.example.com")
	t.Setenv("FOLIO_PASSWORD", "hunter2")
	t.Setenv("FOLIO_UI_COLUMNS", "3")

	cfg, err := NewConfigService(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.Server.BaseURL)
	assert.Equal(t, "hunter2", cfg.Server.Password)
	assert.Equal(t, 3, cfg.UISettings.Columns)
}

func TestSaveNeverWritesPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	svc := NewConfigService(path)

	cfg := DefaultConfig()
	cfg.Server.Password = "secret"
	require.NoError(t, svc.Save(cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")

	loaded, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Server.BaseURL, loaded.Server.BaseURL)
	assert.Empty(t, loaded.Server.Password)
}

func TestLoadFromPathMissingFile(t *testing.T) {
	_, err := NewConfigService("").LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"relative base url", func(c *Config) { c.Server.BaseURL = "photos.example.com" }, false},
		{"empty delete path", func(c *Config) { c.Server.DeletePath = "" }, false},
		{"empty csrf header", func(c *Config) { c.Server.CSRFHeader = "" }, false},
		{"negative timeout", func(c *Config) { c.Server.RequestTimeoutSeconds = -1 }, false},
		{"zero columns", func(c *Config) { c.UISettings.Columns = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}
