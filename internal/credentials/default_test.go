// Copyright (c) 2026 Keymaster Team
// Credstore - API credential store
// This source code is licensed under the MIT license found in the LICENSE file.

package credentials

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func resetDefault(t *testing.T) {
	t.Helper()
	Reset()
	t.Cleanup(Reset)
}

func TestInit_ReturnsSameInstance(t *testing.T) {
	resetDefault(t)
	dir := t.TempDir()

	first, err := Init(Options{Dir: dir, Env: MapEnv{}})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	// Options of later calls are ignored.
	second, err := Init(Options{Dir: t.TempDir(), Env: MapEnv{}})
	if err != nil {
		t.Fatalf("second Init: %v", err)
	}
	if first != second {
		t.Fatal("expected Init to return the same store")
	}
	third, err := Default()
	if err != nil || third != first {
		t.Fatalf("Default returned %p, %v; want %p", third, err, first)
	}
}

func TestSetKey_VisibleToLaterAccessors(t *testing.T) {
	resetDefault(t)
	if _, err := Init(Options{Dir: t.TempDir(), Env: MapEnv{}}); err != nil {
		t.Fatal(err)
	}

	if err := SetKey("FOO", "bar123"); err != nil {
		t.Fatalf("SetKey: %v", err)
	}
	if v, err := GetKey("FOO"); err != nil || v != "bar123" {
		t.Fatalf("GetKey = %q, %v", v, err)
	}

	_, err := GetKey("some_bad_example")
	var nc *KeyNotConfiguredError
	if !errors.As(err, &nc) {
		t.Fatalf("expected KeyNotConfiguredError, got %v", err)
	}
}

func TestInit_FailureLeavesUninitialised(t *testing.T) {
	resetDefault(t)
	bad := t.TempDir()
	if err := os.WriteFile(filepath.Join(bad, FileName), []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Init(Options{Dir: bad, Env: MapEnv{}}); err == nil {
		t.Fatal("expected error for malformed file")
	}

	good := t.TempDir()
	s, err := Init(Options{Dir: good, Env: MapEnv{}})
	if err != nil {
		t.Fatalf("Init after failure: %v", err)
	}
	if s.Path() != filepath.Join(good, FileName) {
		t.Fatalf("unexpected path %s", s.Path())
	}
}

func TestReset_OpensAgain(t *testing.T) {
	resetDefault(t)
	dir := t.TempDir()
	first, err := Init(Options{Dir: dir, Env: MapEnv{}})
	if err != nil {
		t.Fatal(err)
	}
	Reset()
	second, err := Init(Options{Dir: dir, Env: MapEnv{}})
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatal("expected a new store after Reset")
	}
}
