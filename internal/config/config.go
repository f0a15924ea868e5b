// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads assetdesk settings from defaults, YAML files,
// ASSETDESK_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Session backends accepted by session.backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config is the on-disk and in-memory shape of assetdesk.yaml.
type Config struct {
	API      API     `mapstructure:"api" yaml:"api"`
	Session  Session `mapstructure:"session" yaml:"session"`
	Language string  `mapstructure:"language" yaml:"language"`
	Log      Log     `mapstructure:"log" yaml:"log"`
}

type API struct {
	BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

type Session struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	Path    string `mapstructure:"path" yaml:"path"`
	Profile string `mapstructure:"profile" yaml:"profile"`
	TTLDays int    `mapstructure:"ttl_days" yaml:"ttl_days"`
}

type Log struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// Timeout returns the HTTP timeout, falling back to 15s for non-positive values.
func (a API) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// TTL returns the credential lifetime, falling back to 7 days.
func (s Session) TTL() time.Duration {
	if s.TTLDays <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(s.TTLDays) * 24 * time.Hour
}

// Defaults returns the built-in values keyed the way viper expects them.
func Defaults() map[string]any {
	return map[string]any{
		"api.base_url":        "https://be-ksp.analitiq.id",
		"api.timeout_seconds": 15,
		"session.backend":     BackendFile,
		"session.path":        "",
		"session.profile":     "default",
		"session.ttl_days":    7,
		"language":            "en",
		"log.level":           "info",
		"log.file":            "",
	}
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Assetdesk")
		default:
			configDir = "/etc/assetdesk"
		}
	} else {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(dir, "assetdesk")
	}

	return filepath.Join(configDir, "assetdesk.yaml"), nil
}

var usedFile string

// UsedFile returns the file read by the last LoadConfig call, or "" when
// only defaults, env and flags were applied.
func UsedFile() string { return usedFile }

// LoadConfig resolves T from defaults, the first assetdesk.yaml found (or the
// explicit path), the environment and the flags of cmd, in rising precedence.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitPath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("assetdesk")
	v.SetConfigType("yaml")

	if explicitPath != nil && *explicitPath != "" {
		v.SetConfigFile(*explicitPath)
	}

	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	usedFile = ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	} else {
		usedFile = v.ConfigFileUsed()
	}

	v.SetEnvPrefix("assetdesk")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, nil
}

// WriteConfigFile writes c as YAML to the user (or system) config path.
func WriteConfigFile[T any](c *T, system bool) error {
	path, err := GetConfigPath(system)
	if err != nil {
		return err
	}
	return WriteConfigTo(c, path)
}

// WriteConfigTo writes c as YAML to path, creating the parent directory.
func WriteConfigTo[T any](c *T, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	return os.WriteFile(path, data, 0o600)
}

// EnsureDefaultFile writes the default config to the user path on first run.
// It reports whether a file was created.
func EnsureDefaultFile() (bool, error) {
	path, err := GetConfigPath(false)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}

	c, err := LoadConfig[Config](nil, Defaults(), nil)
	if err != nil {
		return false, err
	}
	if err := WriteConfigTo(&c, path); err != nil {
		return false, err
	}
	return true, nil
}
