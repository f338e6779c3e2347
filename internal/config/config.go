package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/msgboard/msgboard/internal/errors"
)

// Config holds the application configuration: UI preferences persisted to
// ~/.msgboard/config.json plus the service connection read from the environment.
type Config struct {
	Theme                string `json:"theme,omitempty"`                 // UI theme name (e.g., "dark-purple", "nord")
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notifications when a refresh brings new messages
	LastEmail            string `json:"last_email,omitempty"`            // Prefills the login form

	// Service is never written to disk; credentials stay in the environment.
	Service ServiceConfig `json:"-"`

	mu       sync.RWMutex
	filePath string
}

// HomeEnv overrides the config directory (default ~/.msgboard).
const HomeEnv = "MSGBOARD_HOME"

// Dir returns the path to the config directory
func Dir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(HomeEnv)); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".msgboard"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads preferences from disk and the service connection from the
// environment. A missing preferences file is not an error.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	if cfg.Service, err = LoadService(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	cfg := &Config{filePath: path}
	switch data, err := os.ReadFile(path); {
	case os.IsNotExist(err):
	case err != nil:
		return nil, errors.ConfigLoadFailed(path, err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.ConfigLoadFailed(path, err)
		}
	}
	return cfg, nil
}

// Save writes the preferences through a temp file and rename, so a crash
// never leaves a truncated config behind. A Config with no path is not saved.
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	path := c.filePath
	if path == "" {
		return nil
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.ConfigSaveFailed(path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.ConfigSaveFailed(path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return errors.ConfigSaveFailed(path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.ConfigSaveFailed(path, err)
	}
	return nil
}

// Path returns the file the preferences are saved to
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// SetFilePath sets where Save writes the preferences
func (c *Config) SetFilePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filePath = path
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetLastEmail returns the email of the last successful sign-in
func (c *Config) GetLastEmail() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LastEmail
}

// SetLastEmail records the email of the last successful sign-in.
// Returns true if the value changed.
func (c *Config) SetLastEmail(email string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.LastEmail == email {
		return false
	}
	c.LastEmail = email
	return true
}
