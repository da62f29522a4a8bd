package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application name used for config directory
	AppName = "studyrec"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
)

// Config represents the application configuration
type Config struct {
	// APIURL is the record API endpoint
	APIURL string `toml:"api_url"`
	// UserName is the record partition identity (free text, no auth)
	UserName string `toml:"user_name"`
	// MessageIntervalSeconds is the support message rotation period
	MessageIntervalSeconds int `toml:"message_interval_seconds"`
	// RefetchDelayMs is the delay before the post-mutation refetch
	RefetchDelayMs int `toml:"refetch_delay_ms"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MessageIntervalSeconds: 20,
		RefetchDelayMs:         1500,
	}
}

// GetConfigPath returns the path to the config file.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the config directory if it doesn't exist.
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, AppName)

	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, ConfigFile), nil
}

// LoadOrDefault reads the config at path, returning defaults when the file
// does not exist. Non-positive interval values fall back to their defaults.
func LoadOrDefault(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	if cfg.MessageIntervalSeconds <= 0 {
		cfg.MessageIntervalSeconds = DefaultConfig().MessageIntervalSeconds
	}
	if cfg.RefetchDelayMs <= 0 {
		cfg.RefetchDelayMs = DefaultConfig().RefetchDelayMs
	}
	return cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString("# studyrec configuration\n\n"); err != nil {
		return err
	}
	return toml.NewEncoder(f).Encode(cfg)
}

// MessageInterval returns the rotation period as a duration.
func (c Config) MessageInterval() time.Duration {
	return time.Duration(c.MessageIntervalSeconds) * time.Second
}

// RefetchDelay returns the reconciliation delay as a duration.
func (c Config) RefetchDelay() time.Duration {
	return time.Duration(c.RefetchDelayMs) * time.Millisecond
}
