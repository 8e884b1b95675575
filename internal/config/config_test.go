package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/preptrack/internal/constants"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(constants.APIURLEnv, "")

	cfg, err := Load(LoadOptions{Dir: dir, EnvFile: filepath.Join(dir, "missing.env")})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.API.URL != constants.DefaultAPIURL {
		t.Errorf("API.URL = %q, want %q", cfg.API.URL, constants.DefaultAPIURL)
	}
	if cfg.Session.Backend != constants.SessionBackendKeyring {
		t.Errorf("Session.Backend = %q, want %q", cfg.Session.Backend, constants.SessionBackendKeyring)
	}
	if cfg.Session.Path != filepath.Join(dir, constants.SessionDBName) {
		t.Errorf("Session.Path = %q", cfg.Session.Path)
	}
	if cfg.Toast.TTL != 5*time.Second {
		t.Errorf("Toast.TTL = %v, want 5s", cfg.Toast.TTL)
	}
	if cfg.Notifications.PollInterval != 120*time.Second {
		t.Errorf("PollInterval = %v, want 2m0s", cfg.Notifications.PollInterval)
	}
	if cfg.API.Timeout != 0 {
		t.Errorf("API.Timeout = %v, want 0 (no client timeout)", cfg.API.Timeout)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(constants.APIURLEnv, "")
	writeFile(t, filepath.Join(dir, constants.ConfigFileName), `
api:
  url: https://prep.example.com/api
  timeout: 30s
session:
  backend: sqlite
toast:
  max: 5
`)

	cfg, err := Load(LoadOptions{Dir: dir, EnvFile: filepath.Join(dir, "missing.env")})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.API.URL != "https://prep.example.com/api" {
		t.Errorf("API.URL = %q", cfg.API.URL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("API.Timeout = %v, want 30s", cfg.API.Timeout)
	}
	if cfg.Session.Backend != constants.SessionBackendSQLite {
		t.Errorf("Session.Backend = %q, want sqlite", cfg.Session.Backend)
	}
	if cfg.Toast.Max != 5 {
		t.Errorf("Toast.Max = %d, want 5", cfg.Toast.Max)
	}
	// Unset keys keep their defaults
	if cfg.Toast.TTL != constants.ToastTTL {
		t.Errorf("Toast.TTL = %v, want default", cfg.Toast.TTL)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, constants.ConfigFileName), "api:\n  url: https://file.example.com\n")
	t.Setenv(constants.APIURLEnv, "https://env.example.com")
	t.Setenv(constants.EnvDebug, "true")

	cfg, err := Load(LoadOptions{Dir: dir, EnvFile: filepath.Join(dir, "missing.env")})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.API.URL != "https://env.example.com" {
		t.Errorf("API.URL = %q, want env value", cfg.API.URL)
	}
	if !cfg.Log.Debug {
		t.Error("Log.Debug = false, want true from env")
	}
}

func TestDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(constants.APIURLEnv, "")
	os.Unsetenv(constants.APIURLEnv)
	envFile := filepath.Join(dir, ".env")
	writeFile(t, envFile, constants.APIURLEnv+"=https://dotenv.example.com/api\n")
	t.Cleanup(func() { os.Unsetenv(constants.APIURLEnv) })

	cfg, err := Load(LoadOptions{Dir: dir, EnvFile: envFile})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.API.URL != "https://dotenv.example.com/api" {
		t.Errorf("API.URL = %q, want value from .env", cfg.API.URL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid defaults", mutate: func(c *Config) {}, wantErr: false},
		{name: "empty url", mutate: func(c *Config) { c.API.URL = "" }, wantErr: true},
		{name: "bad scheme", mutate: func(c *Config) { c.API.URL = "ftp://x" }, wantErr: true},
		{name: "unknown backend", mutate: func(c *Config) { c.Session.Backend = "cookies" }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.API.Timeout = -time.Second }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default(t.TempDir())
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFillsZeroValues(t *testing.T) {
	cfg := Default(t.TempDir())
	cfg.Toast.TTL = 0
	cfg.Toast.Max = 0
	cfg.Notifications.PollInterval = 0

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if cfg.Toast.TTL != constants.ToastTTL || cfg.Toast.Max != constants.DefaultToastMax {
		t.Errorf("toast defaults not restored: %+v", cfg.Toast)
	}
	if cfg.Notifications.PollInterval != constants.NotificationPollInterval {
		t.Errorf("poll interval not restored: %v", cfg.Notifications.PollInterval)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandHome("~/.config/preptrack")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if want := filepath.Join(home, ".config/preptrack"); got != want {
		t.Errorf("ExpandHome() = %q, want %q", got, want)
	}
	if got, _ := ExpandHome("/tmp/x"); got != "/tmp/x" {
		t.Errorf("ExpandHome(/tmp/x) = %q", got)
	}
}
