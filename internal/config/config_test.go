// ABOUTME: Tests for inkwell configuration loading and path expansion.
// ABOUTME: Covers YAML parsing, defaults, env overrides, session helpers, and the last-link file.
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"tilde only", "~", home},
		{"tilde slash", "~/foo/bar", filepath.Join(home, "foo", "bar")},
		{"absolute", "/tmp/foo", "/tmp/foo"},
		{"relative", "foo/bar", "foo/bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			if err != nil {
				t.Fatalf("ExpandPath(%q) error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadDefaultConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("INKWELL_API_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.HasSession() {
		t.Error("expected HasSession() to be false for default config")
	}
	if cfg.GetAPIURL() != DefaultAPIURL {
		t.Errorf("expected default API URL %q, got %q", DefaultAPIURL, cfg.GetAPIURL())
	}
	if cfg.FeedPageSize() != DefaultFeedPageSize {
		t.Errorf("expected feed page size %d, got %d", DefaultFeedPageSize, cfg.FeedPageSize())
	}
	if cfg.CommentPageSize() != DefaultCommentPageSize {
		t.Errorf("expected comment page size %d, got %d", DefaultCommentPageSize, cfg.CommentPageSize())
	}
	if cfg.ProfilePageSize() != DefaultProfilePageSize {
		t.Errorf("expected profile page size %d, got %d", DefaultProfilePageSize, cfg.ProfilePageSize())
	}
	timeout, err := cfg.GetTimeout()
	if err != nil {
		t.Fatalf("GetTimeout() error: %v", err)
	}
	if timeout != 30*time.Second {
		t.Errorf("expected 30s default timeout, got %s", timeout)
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("INKWELL_API_URL", "")

	configDir := filepath.Join(tmpDir, "inkwell")
	if err := os.MkdirAll(configDir, 0750); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	configData := `api:
  url: "https://blog.example.com/api"
  timeout: "5s"
auth:
  token: "tok"
  user_id: "u1"
  username: "ada"
  role: "admin"
feed:
  page_size: 12
log:
  level: "debug"
  file: "~/inkwell.log"
`
	configPath := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configData), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.GetAPIURL() != "https://blog.example.com/api" {
		t.Errorf("expected api url from file, got %q", cfg.GetAPIURL())
	}
	if !cfg.HasSession() {
		t.Error("expected HasSession() to be true")
	}
	if cfg.Auth.Role != "admin" {
		t.Errorf("expected role 'admin', got %q", cfg.Auth.Role)
	}
	if cfg.FeedPageSize() != 12 {
		t.Errorf("expected feed page size 12, got %d", cfg.FeedPageSize())
	}
	timeout, err := cfg.GetTimeout()
	if err != nil {
		t.Fatalf("GetTimeout() error: %v", err)
	}
	if timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %s", timeout)
	}

	home, _ := os.UserHomeDir()
	logPath, err := cfg.GetLogPath()
	if err != nil {
		t.Fatalf("GetLogPath() error: %v", err)
	}
	if logPath != filepath.Join(home, "inkwell.log") {
		t.Errorf("expected expanded log path, got %q", logPath)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configDir := filepath.Join(tmpDir, "inkwell")
	if err := os.MkdirAll(configDir, 0750); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("api: [unclosed"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestAPIURLEnvOverride(t *testing.T) {
	t.Setenv("INKWELL_API_URL", "http://override:9999/api")
	cfg := &Config{API: APIConfig{URL: "http://file/api"}}
	if cfg.GetAPIURL() != "http://override:9999/api" {
		t.Errorf("expected env override, got %q", cfg.GetAPIURL())
	}
}

func TestInvalidTimeout(t *testing.T) {
	for _, v := range []string{"soon", "-1s", "0s"} {
		cfg := &Config{API: APIConfig{Timeout: v}}
		if _, err := cfg.GetTimeout(); err == nil {
			t.Errorf("expected error for timeout %q", v)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg := &Config{
		API: APIConfig{URL: "https://saved.example.com/api"},
		Auth: AuthConfig{
			Token:    "saved-token",
			UserID:   "u42",
			Username: "grace",
			Role:     "user",
		},
	}

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	path, _ := GetConfigPath()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 permissions, got %o", info.Mode().Perm())
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Auth.Token != "saved-token" {
		t.Errorf("expected token 'saved-token', got %q", loaded.Auth.Token)
	}
	if loaded.Auth.Username != "grace" {
		t.Errorf("expected username 'grace', got %q", loaded.Auth.Username)
	}
}

func TestClearSession(t *testing.T) {
	cfg := &Config{Auth: AuthConfig{Token: "t", UserID: "u"}}
	cfg.ClearSession()
	if cfg.HasSession() {
		t.Error("expected no session after ClearSession")
	}
}

func TestLastLinkRoundtrip(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	link, err := LoadLastLink()
	if err != nil {
		t.Fatalf("LoadLastLink() error: %v", err)
	}
	if link != "" {
		t.Errorf("expected empty link before save, got %q", link)
	}

	if err := SaveLastLink("page=3&tag=go"); err != nil {
		t.Fatalf("SaveLastLink() error: %v", err)
	}
	link, err = LoadLastLink()
	if err != nil {
		t.Fatalf("LoadLastLink() error: %v", err)
	}
	if link != "page=3&tag=go" {
		t.Errorf("expected saved link, got %q", link)
	}
}
