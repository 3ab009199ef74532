// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/CadamTech/agekey-sdk/agekey"
	"github.com/CadamTech/agekey-sdk/env"
	"github.com/CadamTech/agekey-sdk/logging"
)

// Environment variables that override file settings.
const (
	EnvClientID     = "AGEKEY_CLIENT_ID"
	EnvClientSecret = "AGEKEY_CLIENT_SECRET"
	EnvRedirectURI  = "AGEKEY_REDIRECT_URI"
	EnvAPIBaseURL   = "AGEKEY_API_BASE_URL"
	EnvListenAddr   = "AGEKEY_LISTEN_ADDR"
	EnvPolicy       = "AGEKEY_POLICY"
	EnvLogLevel     = "AGEKEY_LOG_LEVEL"
)

// Defaults applied when neither the file nor the environment sets a value.
const (
	DefaultListenAddr      = ":8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
)

// ErrInvalidConfig is returned for a file that cannot be decoded or holds
// invalid values.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the agekey command configuration.
type Config struct {
	Client agekey.Config `yaml:",inline"`
	Server Server        `yaml:"server"`
	Log    Log           `yaml:"log"`
}

// Server configures the demo relying-party server.
type Server struct {
	ListenAddr      string        `yaml:"listen_addr"`
	Policy          string        `yaml:"policy"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Log configures process logging.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Path returns the config file location within configHome.
func Path(configHome string) string {
	return filepath.Join(configHome, "agekey", "config.yaml")
}

// DefaultPath returns the config file location under the XDG config home.
func DefaultPath() string {
	return Path(xdg.ConfigHome)
}

// Load reads the file at path, or the default file when path is empty, and
// applies environment overrides from r.
func Load(path string, r env.Reader) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := &Config{}
	data, err := os.ReadFile(path) // #nosec G304 -- path is operator supplied
	switch {
	case err == nil:
		cfg, err = Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// no default file
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	applyEnv(cfg, r)
	applyDefaults(cfg)
	return cfg, cfg.Validate()
}

// Parse decodes YAML data. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Validate checks values the agekey client does not validate itself.
func (c *Config) Validate() error {
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: server.shutdown_timeout must not be negative", ErrInvalidConfig)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return fmt.Errorf("%w: log.format: %w", ErrInvalidConfig, err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
	}
	return nil
}

// DebugLogging reports whether the configured level enables debug output.
func (l Log) DebugLogging() bool {
	lvl, err := logging.ParseLevel(l.Level)
	return err == nil && lvl <= slog.LevelDebug
}

// StructuredLogging reports whether the configured format is JSON.
func (l Log) StructuredLogging() bool {
	f, err := logging.ParseFormat(l.Format)
	return err == nil && f == logging.FormatJSON
}

func applyEnv(cfg *Config, r env.Reader) {
	if r == nil {
		return
	}
	cfg.Client.ClientID = env.GetOr(r, EnvClientID, cfg.Client.ClientID)
	cfg.Client.ClientSecret = env.GetOr(r, EnvClientSecret, cfg.Client.ClientSecret)
	cfg.Client.RedirectURI = env.GetOr(r, EnvRedirectURI, cfg.Client.RedirectURI)
	cfg.Client.APIBaseURL = env.GetOr(r, EnvAPIBaseURL, cfg.Client.APIBaseURL)
	cfg.Server.ListenAddr = env.GetOr(r, EnvListenAddr, cfg.Server.ListenAddr)
	cfg.Server.Policy = env.GetOr(r, EnvPolicy, cfg.Server.Policy)
	cfg.Log.Level = env.GetOr(r, EnvLogLevel, cfg.Log.Level)
}

func applyDefaults(cfg *Config) {
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = DefaultListenAddr
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}
