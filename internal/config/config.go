// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads cfgscrub settings from defaults, cfgscrub.yaml,
// CFGSCRUB_* environment variables and command line flags, in increasing
// order of precedence.
package config

import (
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

const (
	appName  = "cfgscrub"
	fileName = appName + ".yaml"
)

// Config is the resolved application configuration.
type Config struct {
	Language string  `mapstructure:"language" yaml:"language"`
	Output   Output  `mapstructure:"output" yaml:"output"`
	Log      Log     `mapstructure:"log" yaml:"log"`
	History  History `mapstructure:"history" yaml:"history"`
	Remote   Remote  `mapstructure:"remote" yaml:"remote"`
}

// Output controls where result files are written.
type Output struct {
	Dir       string `mapstructure:"dir" yaml:"dir"`
	Overwrite bool   `mapstructure:"overwrite" yaml:"overwrite"`
}

// Log controls diagnostics.
type Log struct {
	Level string `mapstructure:"level" yaml:"level"`
	// File receives log output; empty means stderr for the CLI and
	// nowhere for the TUI.
	File string `mapstructure:"file" yaml:"file"`
}

// History selects the run history database.
type History struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Type    string `mapstructure:"type" yaml:"type"`
	DSN     string `mapstructure:"dsn" yaml:"dsn"`
}

// Remote holds SFTP settings.
type Remote struct {
	KnownHosts string `mapstructure:"known_hosts" yaml:"known_hosts"`
	Identity   string `mapstructure:"identity" yaml:"identity"`
	Timeout    string `mapstructure:"timeout" yaml:"timeout"`
}

// TimeoutDuration parses Timeout, falling back to fallback when it is
// empty or malformed.
func (r Remote) TimeoutDuration(fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(r.Timeout))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Defaults returns the built-in value of every known key.
func Defaults() map[string]any {
	dsn := appName + ".db"
	if dir, err := os.UserConfigDir(); err == nil {
		dsn = filepath.Join(dir, appName, "history.db")
	}
	knownHosts := ""
	if home, err := os.UserHomeDir(); err == nil {
		knownHosts = filepath.Join(home, ".ssh", "known_hosts")
	}
	return map[string]any{
		"language":           "en",
		"output.dir":         ".",
		"output.overwrite":   true,
		"log.level":          "info",
		"log.file":           "",
		"history.enabled":    false,
		"history.type":       "sqlite",
		"history.dsn":        dsn,
		"remote.known_hosts": knownHosts,
		"remote.identity":    "",
		"remote.timeout":     "10s",
	}
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), appName)
		default: // Linux, macOS, etc.
			configDir = "/etc/" + appName
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, appName)
	}

	return filepath.Join(configDir, fileName), nil
}

// LoadConfig resolves T from defaults, the first cfgscrub.yaml found (or
// configFile when non-empty), the environment and the flags of cmd.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, configFile string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName(appName)
	v.SetConfigType("yaml")

	// An explicit --config file takes precedence over the search paths.
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine, a broken one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	v.AutomaticEnv()
	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

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

// WriteConfigFile writes c as YAML to the user or system config path and
// returns that path.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}
	return path, WriteConfigTo(c, path)
}

// WriteConfigTo writes c as YAML to path, creating parent directories.
func WriteConfigTo[T any](c *T, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	// The file may carry a database DSN with credentials.
	return os.WriteFile(path, data, 0600)
}
