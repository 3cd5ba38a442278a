package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/thenoetrevino/labelpick/internal/config/colors"
	"gopkg.in/yaml.v3"
)

const (
	defaultDebounceMS       = 1500
	defaultRequestTimeoutMS = 30000
	defaultCSRFCookie       = "csrftoken"
)

// Config represents the application configuration
type Config struct {
	// URL is the label endpoint used for both the catalog read and the write
	URL string `yaml:"url"`

	// DebounceMS is the quiet period before a selection is persisted
	DebounceMS int `yaml:"debounce_ms"`

	// CSRFCookie names the cookie holding the anti-forgery token
	CSRFCookie string `yaml:"csrf_cookie"`

	RequestTimeoutMS int `yaml:"request_timeout_ms"`

	// KeepMissing keeps unknown initial label ids as empty entries instead
	// of dropping them
	KeepMissing bool `yaml:"keep_missing"`

	KeyMappings KeyMappings        `yaml:"key_mappings"`
	ColorScheme colors.ColorScheme `yaml:"theme"`
}

// Default returns the built-in configuration
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Debounce returns the quiet period as a duration
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// RequestTimeout returns the HTTP timeout as a duration
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// loadThemeFile loads and merges theme from LABELPICK_THEME_FILE environment variable
func loadThemeFile(config *Config) {
	themeFile := os.Getenv("LABELPICK_THEME_FILE")
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme colors.ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// loadEnv applies LABELPICK_* overrides
func loadEnv(config *Config) {
	if v := os.Getenv("LABELPICK_URL"); v != "" {
		config.URL = v
	}
	if v := os.Getenv("LABELPICK_DEBOUNCE_MS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			config.DebounceMS = parsed
		}
	}
	if v := os.Getenv("LABELPICK_CSRF_COOKIE"); v != "" {
		config.CSRFCookie = v
	}
}

// Load loads config from the user's config directory
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	config := &Config{}

	configPath, err := getConfigPath()
	if err == nil {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, err
			}
		case !os.IsNotExist(err):
			return nil, err
		}
	}

	loadThemeFile(config)
	loadEnv(config)

	// Fill in any missing values with defaults
	config.applyDefaults()

	return config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "labelpick", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "labelpick", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.DebounceMS <= 0 {
		c.DebounceMS = defaultDebounceMS
	}
	if c.RequestTimeoutMS <= 0 {
		c.RequestTimeoutMS = defaultRequestTimeoutMS
	}
	if c.CSRFCookie == "" {
		c.CSRFCookie = defaultCSRFCookie
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}
