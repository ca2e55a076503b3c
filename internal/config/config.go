// ABOUTME: Configuration management for inkwell with YAML config loading.
// ABOUTME: Handles API settings, saved session, feed defaults, log paths, and ~ expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAPIURL is used when no API URL is configured.
const DefaultAPIURL = "http://localhost:5000/api"

// Page sizes used by the original web client.
const (
	DefaultFeedPageSize    = 9
	DefaultProfilePageSize = 6
	DefaultCommentPageSize = 10
	DefaultUserPageSize    = 50
)

// Config stores inkwell configuration loaded from ~/.config/inkwell/config.yaml.
type Config struct {
	API  APIConfig  `yaml:"api"`
	Auth AuthConfig `yaml:"auth"`
	Feed FeedConfig `yaml:"feed"`
	Log  LogConfig  `yaml:"log"`
}

// APIConfig holds the REST backend settings.
type APIConfig struct {
	URL     string `yaml:"url"`
	Timeout string `yaml:"timeout,omitempty"`
}

// AuthConfig holds the persisted login session.
type AuthConfig struct {
	Token    string `yaml:"token,omitempty"`
	UserID   string `yaml:"user_id,omitempty"`
	Username string `yaml:"username,omitempty"`
	Role     string `yaml:"role,omitempty"`
}

// FeedConfig holds optional page size overrides.
type FeedConfig struct {
	PageSize        int `yaml:"page_size,omitempty"`
	ProfilePageSize int `yaml:"profile_page_size,omitempty"`
	CommentPageSize int `yaml:"comment_page_size,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// HasSession returns true if a login token is stored.
func (c *Config) HasSession() bool {
	return c.Auth.Token != "" && c.Auth.UserID != ""
}

// ClearSession forgets the stored login.
func (c *Config) ClearSession() {
	c.Auth = AuthConfig{}
}

// GetAPIURL returns the API base URL, honoring INKWELL_API_URL.
func (c *Config) GetAPIURL() string {
	if env := os.Getenv("INKWELL_API_URL"); env != "" {
		return env
	}
	if c.API.URL != "" {
		return c.API.URL
	}
	return DefaultAPIURL
}

// GetTimeout returns the HTTP timeout, defaulting to 30s.
func (c *Config) GetTimeout() (time.Duration, error) {
	if c.API.Timeout == "" {
		return 30 * time.Second, nil
	}
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid api.timeout %q: %w", c.API.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("api.timeout must be positive, got %s", d)
	}
	return d, nil
}

// FeedPageSize returns the home feed page size.
func (c *Config) FeedPageSize() int {
	return positiveOr(c.Feed.PageSize, DefaultFeedPageSize)
}

// ProfilePageSize returns the page size for a profile's post list.
func (c *Config) ProfilePageSize() int {
	return positiveOr(c.Feed.ProfilePageSize, DefaultProfilePageSize)
}

// CommentPageSize returns the page size for comment lists.
func (c *Config) CommentPageSize() int {
	return positiveOr(c.Feed.CommentPageSize, DefaultCommentPageSize)
}

// GetLogPath returns the log file path, defaulting to the state directory.
func (c *Config) GetLogPath() (string, error) {
	if c.Log.File != "" {
		return ExpandPath(c.Log.File)
	}
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "inkwell.log"), nil
}

func positiveOr(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

// StateDir returns the directory for logs and the last deep link.
func StateDir() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, "inkwell"), nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "inkwell", "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Load reads config from disk. Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk. The file holds the session token, so it is 0600.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// SaveLastLink records the most recent feed deep link.
func SaveLastLink(link string) error {
	dir, err := StateDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "last_link"), []byte(link+"\n"), 0600)
}

// LoadLastLink returns the most recent feed deep link, or "" if none was saved.
func LoadLastLink() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(dir, "last_link"))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
