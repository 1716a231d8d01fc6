// Package config loads client configuration from the environment and an
// optional .env file using Viper.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the CLI's configuration loaded from the environment.
type Config struct {
	// APIBaseURL is the backend's base URL (e.g. https://pharm.example.com).
	APIBaseURL string `mapstructure:"PHARMTEST_API_URL"`
	// AuthBasePath is the auth endpoint prefix under the base URL.
	AuthBasePath string `mapstructure:"PHARMTEST_AUTH_BASE"`
	// DataDir holds the local state database and machine secret.
	DataDir string `mapstructure:"PHARMTEST_DATA_DIR"`
}

// Load reads .env (if present), then builds and validates Config from the
// environment. Missing .env is ignored; env vars override .env values.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("PHARMTEST_API_URL", "http://localhost:8000")
	v.SetDefault("PHARMTEST_AUTH_BASE", "/api/auth")
	v.SetDefault("PHARMTEST_DATA_DIR", defaultDataDir())

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	parsed, err := url.Parse(c.APIBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("PHARMTEST_API_URL %q is not an absolute URL", c.APIBaseURL)
	}
	if c.DataDir == "" {
		return fmt.Errorf("PHARMTEST_DATA_DIR must not be empty")
	}
	return nil
}

// StatePath returns the path of the local state database.
func (c *Config) StatePath() string {
	return filepath.Join(c.DataDir, "state.db")
}

// SecretPath returns the path of the machine secret file.
func (c *Config) SecretPath() string {
	return filepath.Join(c.DataDir, "secret")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pharmtest"
	}
	return filepath.Join(home, ".pharmtest")
}
