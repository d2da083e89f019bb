// Package config reads the dashboard's TOML configuration: where the OAuth
// client credentials and cached token live, and how the local surfaces run.
// Credential contents themselves are a setup concern handled by the provider
// console; this file only points at them.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"
)

// Config holds the process configuration.
type Config struct {
	// CredentialsPath is the OAuth2 client credentials JSON file.
	CredentialsPath string `toml:"credentials_path"`

	// TokenPath is the cached OAuth2 token file.
	TokenPath string `toml:"token_path"`

	// ListenAddr is the HTTP API bind address (default: 127.0.0.1:8080).
	ListenAddr string `toml:"listen_addr"`

	// PageSize bounds listing pages (default: 100).
	PageSize int64 `toml:"page_size"`
}

// DefaultDir returns the configuration directory under the user home.
func DefaultDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("config: resolving home dir: %w", err)
	}
	return filepath.Join(home, ".config", "drivedash"), nil
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ReadFromFile parses a TOML config file and applies defaults. A missing file
// is not an error: defaults are returned so credentials can still come from
// flags.
func ReadFromFile(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	dir, err := DefaultDir()
	if err != nil {
		dir = "."
	}
	if c.CredentialsPath == "" {
		c.CredentialsPath = filepath.Join(dir, "credentials.json")
	}
	if c.TokenPath == "" {
		c.TokenPath = filepath.Join(dir, "token.json")
	}
	if c.ListenAddr == "" {
		c.ListenAddr = "127.0.0.1:8080"
	}
	if c.PageSize <= 0 {
		c.PageSize = 100
	}
}
