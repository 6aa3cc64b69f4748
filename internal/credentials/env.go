// Copyright (c) 2026 Keymaster Team
// Credstore - API credential store
// This source code is licensed under the MIT license found in the LICENSE file.

package credentials

import (
	"os"
	"strings"

	"github.com/toeirei/credstore/internal/logging"
)

// EnvReader abstracts environment variable access so tests can supply
// their own values.
type EnvReader interface {
	Getenv(key string) string
}

// OSEnv implements EnvReader using the process environment.
type OSEnv struct{}

// Getenv returns the value of the environment variable named by key.
func (OSEnv) Getenv(key string) string {
	return os.Getenv(key)
}

// MapEnv is an EnvReader backed by a fixed map.
type MapEnv map[string]string

// Getenv returns m[key].
func (m MapEnv) Getenv(key string) string {
	return m[key]
}

// EnvName returns the environment variable that overrides the key name.
func EnvName(name string) string {
	return strings.ToUpper(name)
}

// applyEnvOverrides replaces every value whose override variable is set and
// non-empty. Only keys already present are considered.
func applyEnvOverrides(keys map[string]string, env EnvReader) {
	for name := range keys {
		if v := env.Getenv(EnvName(name)); v != "" {
			keys[name] = v
			logging.Debugf("credential %s overridden by $%s", name, EnvName(name))
		}
	}
}
