// Package config handles XDG configuration directory and file paths.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// AppName is the application directory name.
	AppName = "tasker"

	// DBFile is the task store filename.
	DBFile = "tasks.json"

	// KeyFile is the stored generation API key filename.
	KeyFile = "api_key"

	// APIKeyEnv is the environment variable consulted for the generation
	// API key before the key file.
	APIKeyEnv = "OPENAI_API_KEY"

	// BaseURLEnv optionally points generation at an OpenAI-compatible
	// endpoint other than the default.
	BaseURLEnv = "OPENAI_BASE_URL"

	// ModelEnv optionally overrides the generation model.
	ModelEnv = "TASKER_MODEL"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// User is the username task operations act on.
	User string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/tasker or $HOME/.config/tasker.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// DBPath returns the path to the task store file.
func (c *Config) DBPath() string {
	return filepath.Join(c.Dir, DBFile)
}

// KeyPath returns the path to the stored generation API key file.
func (c *Config) KeyPath() string {
	return filepath.Join(c.Dir, KeyFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// APIKey returns the generation API key: the environment variable if set,
// otherwise the contents of the key file. Empty means no key is configured.
func (c *Config) APIKey() string {
	if key := os.Getenv(APIKeyEnv); key != "" {
		return key
	}
	data, err := os.ReadFile(c.KeyPath())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// HasKey checks whether a generation API key is configured.
func (c *Config) HasKey() bool {
	return c.APIKey() != ""
}

// SaveKey writes the generation API key to the key file with mode 0600.
func (c *Config) SaveKey(key string) error {
	if err := c.EnsureDir(); err != nil {
		return err
	}
	return os.WriteFile(c.KeyPath(), []byte(key+"\n"), 0600)
}

// RemoveKey deletes the key file.
func (c *Config) RemoveKey() error {
	return os.Remove(c.KeyPath())
}

// BaseURL returns the generation endpoint override, if any.
func (c *Config) BaseURL() string {
	return os.Getenv(BaseURLEnv)
}

// Model returns the generation model override, if any.
func (c *Config) Model() string {
	return os.Getenv(ModelEnv)
}
