// Copyright (c) 2026 Keymaster Team
// Credstore - API credential store
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads and persists the credstore application settings
// (credstore.yaml). It uses Viper for file/env/flag parsing and goccy/go-yaml
// to write the file back.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the application configuration. It does not hold credentials;
// those live in the credentials store.
type Config struct {
	Credentials CredentialsConfig `mapstructure:"credentials" yaml:"credentials"`
	Language    string            `mapstructure:"language" yaml:"language"`
	Log         LogConfig         `mapstructure:"log" yaml:"log"`
}

// CredentialsConfig locates the credentials file.
type CredentialsConfig struct {
	// Dir holds credentials.json. Empty selects <project root>/credentials.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// Defaults returns the values used when neither file, env nor flags set a key.
func Defaults() map[string]any {
	return map[string]any{
		"credentials.dir": "",
		"language":        "en",
		"log.level":       "info",
	}
}

// DefaultConfig is Defaults as a Config. It is what gets written on first run,
// so one-off flags and env values never end up in the saved file.
func DefaultConfig() Config {
	d := Defaults()
	return Config{
		Credentials: CredentialsConfig{Dir: d["credentials.dir"].(string)},
		Language:    d["language"].(string),
		Log:         LogConfig{Level: d["log.level"].(string)},
	}
}

// flagBindings maps config keys to the CLI flags that may override them.
var flagBindings = map[string]string{
	"credentials.dir": "dir",
	"language":        "lang",
	"log.level":       "log-level",
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "credstore")
		default: // Linux, macOS, etc.
			configDir = "/etc/credstore"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "credstore")
	}

	return filepath.Join(configDir, "credstore.yaml"), nil
}

// LoadConfig builds a T from defaults, the first credstore.yaml found
// (explicit path, user dir, system dir, then the working directory),
// CREDSTORE_* environment variables and the flags of cmd, in increasing
// precedence. It also returns the config file that was read, or "" if none.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, configFile *string) (T, string, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("credstore")
	v.SetConfigType("yaml")
	if configFile != nil {
		if _, err := os.Stat(*configFile); err != nil {
			return c, "", fmt.Errorf("config file %s not accessible: %w", *configFile, err)
		}
		v.SetConfigFile(*configFile)
	}
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; everything else is fatal.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, "", err
		}
	}

	v.SetEnvPrefix("credstore")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for key, name := range flagBindings {
			if f := cmd.Flags().Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return c, "", err
				}
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, "", err
	}

	return c, v.ConfigFileUsed(), nil
}

// WriteConfigFile writes c to the user (or system) config path, creating
// the directory as needed, and returns the path written.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
