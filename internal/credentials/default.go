// Copyright (c) 2026 Keymaster Team
// Credstore - API credential store
// This source code is licensed under the MIT license found in the LICENSE file.

package credentials

import "sync"

var (
	defaultMu    sync.Mutex
	defaultStore *Store
)

// Init opens the process-wide store on its first successful call. Later
// calls return that same store and ignore opts until Reset is called.
func Init(opts Options) (*Store, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultStore != nil {
		return defaultStore, nil
	}
	s, err := Open(opts)
	if err != nil {
		return nil, err
	}
	defaultStore = s
	return s, nil
}

// Default returns the process-wide store, opening it with default options
// if Init has not run yet.
func Default() (*Store, error) {
	return Init(Options{})
}

// Reset drops the process-wide store so the next Init opens it again.
func Reset() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultStore = nil
}

// GetKey returns name from the process-wide store.
func GetKey(name string) (string, error) {
	s, err := Default()
	if err != nil {
		return "", err
	}
	return s.Get(name)
}

// SetKey stores value under name in the process-wide store.
func SetKey(name, value string) error {
	s, err := Default()
	if err != nil {
		return err
	}
	return s.Set(name, value)
}
