// Copyright (c) 2026 Keymaster Team
// Credstore - API credential store
// This source code is licensed under the MIT license found in the LICENSE file.

package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/toeirei/credstore/internal/logging"
)

const (
	// DirName is the directory, below the project root, holding the credentials file.
	DirName = "credentials"
	// FileName is the name of the credentials file inside the directory.
	FileName = "credentials.json"
	// PlaceholderPrefix marks values that still need to be filled in by the user.
	PlaceholderPrefix = "Your"
)

// DefaultKeys returns the mapping written to a freshly created credentials
// file. Each call returns a new map.
func DefaultKeys() map[string]string {
	return map[string]string{
		"EXAMPLE_API_NAME": "EXAMPLE_API_KEY",
	}
}

// Options configures Open.
type Options struct {
	// Dir is the directory that holds credentials.json. Empty means DefaultDir().
	Dir string
	// Env supplies environment overrides. Nil means the OS environment.
	Env EnvReader
}

// Store is a file-backed set of named credentials. It is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	path string
	keys map[string]string
}

// Open loads the credentials file in opts.Dir, creating the directory and a
// default file when they do not exist, and applies environment overrides.
func Open(opts Options) (*Store, error) {
	dir := opts.Dir
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}
	env := opts.Env
	if env == nil {
		env = OSEnv{}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create credentials directory %s: %w", dir, err)
	}

	s := &Store{path: filepath.Join(dir, FileName)}
	if err := s.load(); err != nil {
		return nil, err
	}
	applyEnvOverrides(s.keys, env)
	return s, nil
}

// load reads the file into s.keys, writing the defaults first if it is missing.
func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.keys = DefaultKeys()
		if err := writeKeys(s.path, s.keys); err != nil {
			return fmt.Errorf("could not create default credentials file: %w", err)
		}
		logging.Infof("Created default credentials file at: %s", s.path)
		return nil
	}
	if err != nil {
		return &ConfigReadError{Path: s.path, Err: err}
	}

	var keys map[string]string
	if err := json.Unmarshal(data, &keys); err != nil {
		return &ConfigReadError{Path: s.path, Err: err}
	}
	if keys == nil {
		keys = map[string]string{}
	}
	s.keys = keys
	return nil
}

// Path returns the location of the credentials file.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value stored for name. It fails with *KeyNotConfiguredError
// when the key is missing or its value starts with PlaceholderPrefix.
func (s *Store) Get(name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.keys[name]
	if !ok || strings.HasPrefix(v, PlaceholderPrefix) {
		return "", &KeyNotConfiguredError{Name: name, Path: s.path, Placeholder: ok}
	}
	return v, nil
}

// Set stores value under name and writes the whole set to disk. A failed
// write is logged and returned as *ConfigWriteError; the new value stays in
// memory regardless.
func (s *Store) Set(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keys[name] = value
	return s.saveLocked()
}

// Delete removes name and persists the change. Removing an absent key does
// not touch the file.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.keys[name]; !ok {
		return nil
	}
	delete(s.keys, name)
	return s.saveLocked()
}

// Import merges keys into the store, or substitutes them for the current
// set when replace is true, and persists once.
func (s *Store) Import(keys map[string]string, replace bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if replace {
		s.keys = maps.Clone(keys)
		if s.keys == nil {
			s.keys = map[string]string{}
		}
	} else {
		maps.Copy(s.keys, keys)
	}
	return s.saveLocked()
}

// Keys returns the stored key names in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.keys))
}

// Snapshot returns a copy of every stored key and value.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.keys)
}

func (s *Store) saveLocked() error {
	if err := writeKeys(s.path, s.keys); err != nil {
		logging.Warnf("Error saving credentials file: %v", err)
		return &ConfigWriteError{Path: s.path, Err: err}
	}
	return nil
}

// writeKeys serialises keys as 4-space indented JSON. The file may contain
// secrets, hence 0600.
func writeKeys(path string, keys map[string]string) error {
	data, err := json.MarshalIndent(keys, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}
