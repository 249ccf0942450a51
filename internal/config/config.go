package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Version    int          `toml:"version"`
	Server     ServerConfig `toml:"server"`
	UISettings UISettings   `toml:"ui"`
	Log        LogConfig    `toml:"log"`
}

// ServerConfig describes how to reach the portfolio admin area
type ServerConfig struct {
	BaseURL       string `toml:"base_url" env:"FOLIO_BASE_URL"`
	Email         string `toml:"email" env:"FOLIO_EMAIL"`
	Password      string `toml:"-" env:"FOLIO_PASSWORD"` // never written to disk
	LoginFormPath string `toml:"login_form_path" env:"FOLIO_LOGIN_FORM_PATH"`
	LoginPath     string `toml:"login_path" env:"FOLIO_LOGIN_PATH"`
	PhotosPath    string `toml:"photos_path" env:"FOLIO_PHOTOS_PATH"`
	DeletePath    string `toml:"delete_path" env:"FOLIO_DELETE_PATH"`
	UploadPath    string `toml:"upload_path" env:"FOLIO_UPLOAD_PATH"`
	CSRFCookie    string `toml:"csrf_cookie" env:"FOLIO_CSRF_COOKIE"`
	CSRFHeader    string `toml:"csrf_header" env:"FOLIO_CSRF_HEADER"`
	// 0 means no timeout; a delete runs until the transport gives up
	RequestTimeoutSeconds int `toml:"request_timeout_seconds" env:"FOLIO_REQUEST_TIMEOUT_SECONDS"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Columns int `toml:"columns" env:"FOLIO_UI_COLUMNS"`
	// After a failed delete, put the count label back instead of leaving
	// the in-progress text on the delete action.
	RestoreLabelOnFailure bool `toml:"restore_label_on_failure" env:"FOLIO_UI_RESTORE_LABEL"`
	Mouse                 bool `toml:"mouse" env:"FOLIO_UI_MOUSE"`
}

// LogConfig controls the log file
type LogConfig struct {
	Path  string `toml:"path" env:"FOLIO_LOG_PATH"`
	Level string `toml:"level" env:"FOLIO_LOG_LEVEL"`
}

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "folioadmin", "config.toml")
}

// NewConfigService creates a config service for path; empty path uses DefaultPath
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration file, falling back to defaults when it does
// not exist, then applies environment overrides.
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
		if err := applyEnv(cfg); err != nil {
			return nil, err
		}
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnv overlays FOLIO_* environment variables on cfg
func applyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks the values the client and UI depend on
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: server.base_url %q must be an absolute URL", ErrInvalidConfig, c.Server.BaseURL)
	}
	if c.Server.DeletePath == "" || c.Server.PhotosPath == "" || c.Server.UploadPath == "" {
		return fmt.Errorf("%w: server paths must not be empty", ErrInvalidConfig)
	}
	if c.Server.CSRFCookie == "" || c.Server.CSRFHeader == "" {
		return fmt.Errorf("%w: csrf cookie and header names must not be empty", ErrInvalidConfig)
	}
	if c.Server.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("%w: request_timeout_seconds must not be negative", ErrInvalidConfig)
	}
	if c.UISettings.Columns < 1 {
		return fmt.Errorf("%w: ui.columns must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server: ServerConfig{
			BaseURL:       "http://localhost:8000",
			LoginFormPath: "/admin/",
			LoginPath:     "/admin/login",
			PhotosPath:    "/admin/photos",
			DeletePath:    "/admin/photos/delete",
			UploadPath:    "/admin/upload",
			CSRFCookie:    "csrf_token",
			CSRFHeader:    "X-CSRF-Token",
		},
		UISettings: UISettings{
			Columns:               4,
			RestoreLabelOnFailure: true,
			Mouse:                 true,
		},
		Log: LogConfig{
			Path:  "folioadmin.log",
			Level: "INFO",
		},
	}
}
