// Copyright (c) 2026 Keymaster Team
// Credstore - API credential store
// This source code is licensed under the MIT license found in the LICENSE file.

package credentials

import "fmt"

// ConfigReadError is returned by Open when the credentials file exists but
// cannot be read or parsed.
type ConfigReadError struct {
	Path string
	Err  error
}

func (e *ConfigReadError) Error() string {
	return fmt.Sprintf("reading credentials file %s: %v", e.Path, e.Err)
}

func (e *ConfigReadError) Unwrap() error { return e.Err }

// KeyNotConfiguredError is returned by Get when a key is missing or still
// holds a placeholder value.
type KeyNotConfiguredError struct {
	Name string
	Path string
	// Placeholder is true when the key exists but its value starts with PlaceholderPrefix.
	Placeholder bool
}

func (e *KeyNotConfiguredError) Error() string {
	return fmt.Sprintf("API key for %q is not set: update %s with your actual API key", e.Name, e.Path)
}

// ConfigWriteError reports a failed write of the credentials file. The
// in-memory value that triggered the write is kept.
type ConfigWriteError struct {
	Path string
	Err  error
}

func (e *ConfigWriteError) Error() string {
	return fmt.Sprintf("saving credentials file %s: %v", e.Path, e.Err)
}

func (e *ConfigWriteError) Unwrap() error { return e.Err }
