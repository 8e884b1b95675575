package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/config"

	"github.com/julianstephens/preptrack/internal/constants"
)

type Config struct {
	API           APIConfig           `yaml:"api"`
	Session       SessionConfig       `yaml:"session"`
	Toast         ToastConfig         `yaml:"toast"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Log           LogConfig           `yaml:"log"`

	// Dir is the resolved configuration directory; it is not read from YAML.
	Dir string `yaml:"-"`
}

type APIConfig struct {
	URL string `yaml:"url"`
	// Timeout of 0 means requests never time out on the client side.
	Timeout time.Duration `yaml:"timeout"`
}

type SessionConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type ToastConfig struct {
	TTL time.Duration `yaml:"ttl"`
	Max int           `yaml:"max"`
}

type NotificationsConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
}

type LogConfig struct {
	Debug bool `yaml:"debug"`
}

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	Dir     string
	File    string
	EnvFile string
}

// Default returns the built-in configuration rooted at dir
func Default(dir string) Config {
	return Config{
		API: APIConfig{
			URL: constants.DefaultAPIURL,
		},
		Session: SessionConfig{
			Backend: constants.DefaultSessionBackend,
			Path:    filepath.Join(dir, constants.SessionDBName),
		},
		Toast: ToastConfig{
			TTL: constants.ToastTTL,
			Max: constants.DefaultToastMax,
		},
		Notifications: NotificationsConfig{
			PollInterval: constants.NotificationPollInterval,
		},
		Dir: dir,
	}
}

// Load builds the configuration from defaults, the YAML file, the .env file
// and the environment, in that order of precedence (later wins).
func Load(opts LoadOptions) (*Config, error) {
	dir, err := ExpandHome(opts.Dir)
	if err != nil {
		return nil, err
	}
	if dir == "" {
		dir, err = ExpandHome(constants.DefaultConfigDir)
		if err != nil {
			return nil, err
		}
	}

	cfg := Default(dir)

	file := opts.File
	if file == "" {
		file = os.Getenv(constants.EnvConfigFile)
	}
	if file == "" {
		file = filepath.Join(dir, constants.ConfigFileName)
	}
	if err := cfg.loadYAML(file, opts.File != ""); err != nil {
		return nil, err
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = constants.EnvFileName
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
	}

	cfg.overrideFromEnv()

	if cfg.Session.Path, err = ExpandHome(cfg.Session.Path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) loadYAML(path string, required bool) error {
	path, err := ExpandHome(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	provider, err := config.NewYAML(
		config.File(path),
		config.Expand(os.LookupEnv),
	)
	if err != nil {
		return fmt.Errorf("failed to create config provider: %w", err)
	}

	if err := provider.Get(config.Root).Populate(c); err != nil {
		return fmt.Errorf("failed to populate config: %w", err)
	}
	return nil
}

// overrideFromEnv overrides config values with environment variables if present
func (c *Config) overrideFromEnv() {
	if val := os.Getenv(constants.APIURLEnv); val != "" {
		c.API.URL = val
	}
	if val := os.Getenv(constants.EnvSessionBackend); val != "" {
		c.Session.Backend = val
	}
	if val := os.Getenv(constants.EnvHTTPTimeout); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			c.API.Timeout = d
		}
	}
	if val := os.Getenv(constants.EnvDebug); val != "" {
		if debug, err := strconv.ParseBool(val); err == nil {
			c.Log.Debug = debug
		}
	}
}

// Validate checks the configuration for values the client cannot work with
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.URL) == "" {
		return fmt.Errorf("API base URL is not set (export %s)", constants.APIURLEnv)
	}
	if !strings.HasPrefix(c.API.URL, "http://") && !strings.HasPrefix(c.API.URL, "https://") {
		return fmt.Errorf("API base URL must start with http:// or https://: %s", c.API.URL)
	}
	switch c.Session.Backend {
	case constants.SessionBackendKeyring, constants.SessionBackendSQLite:
	default:
		return fmt.Errorf("unknown session backend %q (expected %s or %s)",
			c.Session.Backend, constants.SessionBackendKeyring, constants.SessionBackendSQLite)
	}
	if c.API.Timeout < 0 {
		return errors.New("http timeout cannot be negative")
	}
	if c.Toast.TTL <= 0 {
		c.Toast.TTL = constants.ToastTTL
	}
	if c.Toast.Max <= 0 {
		c.Toast.Max = constants.DefaultToastMax
	}
	if c.Notifications.PollInterval <= 0 {
		c.Notifications.PollInterval = constants.NotificationPollInterval
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
