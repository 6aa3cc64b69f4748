// Copyright (c) 2026 Keymaster Team
// Credstore - API credential store
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/toeirei/credstore/internal/credentials"
)

func readCredentialsFile(t *testing.T, dir string) map[string]string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, credentials.FileName))
	if err != nil {
		t.Fatalf("read credentials file: %v", err)
	}
	var keys map[string]string
	if err := json.Unmarshal(data, &keys); err != nil {
		t.Fatalf("parse credentials file: %v", err)
	}
	return keys
}

// TestKeyCommands_BasicFlow tests the key workflow: set -> get -> list -> unset.
func TestKeyCommands_BasicFlow(t *testing.T) {
	dir := setupTestStore(t)

	out := mustExecute(t, nil, "--dir", dir, "set", "FOO", "bar123")
	if !strings.Contains(out, "Saved API key for FOO") {
		t.Fatalf("set command failed, output: %s", out)
	}
	if got := readCredentialsFile(t, dir); got["FOO"] != "bar123" || got["EXAMPLE_API_NAME"] != "EXAMPLE_API_KEY" {
		t.Fatalf("unexpected file contents: %v", got)
	}

	out = mustExecute(t, nil, "--dir", dir, "get", "FOO")
	if out != "bar123\n" {
		t.Fatalf("get output = %q", out)
	}

	out = mustExecute(t, nil, "--dir", dir, "list")
	if !strings.Contains(out, "FOO") || !strings.Contains(out, "EXAMPLE_API_NAME") {
		t.Fatalf("expected keys in list output, got: %s", out)
	}

	out = mustExecute(t, nil, "--dir", dir, "unset", "FOO")
	if !strings.Contains(out, "Removed API key FOO") {
		t.Fatalf("unset output: %s", out)
	}
	if _, ok := readCredentialsFile(t, dir)["FOO"]; ok {
		t.Fatal("FOO still on disk after unset")
	}
}

func TestSetCmd_ReadsValueFromStdin(t *testing.T) {
	dir := setupTestStore(t)

	mustExecute(t, strings.NewReader("from-stdin\n"), "--dir", dir, "set", "FOO")
	if got := readCredentialsFile(t, dir)["FOO"]; got != "from-stdin" {
		t.Fatalf("FOO = %q, want from-stdin", got)
	}

	// A final line without newline is accepted too.
	mustExecute(t, strings.NewReader("no-newline"), "--dir", dir, "set", "BAR")
	if got := readCredentialsFile(t, dir)["BAR"]; got != "no-newline" {
		t.Fatalf("BAR = %q", got)
	}
}

func TestSetCmd_EmptyValue(t *testing.T) {
	dir := setupTestStore(t)

	_, err := executeCommand(t, strings.NewReader("\n"), "--dir", dir, "set", "FOO")
	if err == nil || !strings.Contains(err.Error(), "no value provided for FOO") {
		t.Fatalf("expected empty value error, got %v", err)
	}
	if _, ok := readCredentialsFile(t, dir)["FOO"]; ok {
		t.Fatal("empty value must not be stored")
	}
}

func TestGetCmd_NotConfigured(t *testing.T) {
	dir := setupTestStore(t)

	tests := []struct {
		name  string
		setup []string
		key   string
	}{
		{name: "unknown key", key: "some_bad_example"},
		{name: "placeholder value", setup: []string{"set", "X", "YourKeyHere"}, key: "X"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				mustExecute(t, nil, append([]string{"--dir", dir}, tt.setup...)...)
			}
			_, err := executeCommand(t, nil, "--dir", dir, "get", tt.key)
			var nc *credentials.KeyNotConfiguredError
			if !errors.As(err, &nc) {
				t.Fatalf("expected KeyNotConfiguredError, got %T %v", err, err)
			}
		})
	}
}

func TestGetCmd_EnvOverride(t *testing.T) {
	dir := setupTestStore(t)
	if err := os.WriteFile(filepath.Join(dir, credentials.FileName), []byte(`{"foo": "file-value"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FOO", "env-value")

	out := mustExecute(t, nil, "--dir", dir, "get", "foo")
	if out != "env-value\n" {
		t.Fatalf("get foo = %q, want env-value", out)
	}
}

func TestGetCmd_Copy(t *testing.T) {
	dir := setupTestStore(t)
	var copied string
	prev := clipboardWriteAll
	clipboardWriteAll = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { clipboardWriteAll = prev })

	out := mustExecute(t, nil, "--dir", dir, "get", "EXAMPLE_API_NAME", "--copy")
	if copied != "EXAMPLE_API_KEY" {
		t.Fatalf("clipboard got %q", copied)
	}
	if strings.Contains(out, "EXAMPLE_API_KEY") || !strings.Contains(out, "Copied API key for EXAMPLE_API_NAME") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestGetCmd_CopyFailure(t *testing.T) {
	dir := setupTestStore(t)
	prev := clipboardWriteAll
	clipboardWriteAll = func(string) error { return errors.New("no clipboard") }
	t.Cleanup(func() { clipboardWriteAll = prev })

	_, err := executeCommand(t, nil, "--dir", dir, "get", "EXAMPLE_API_NAME", "--copy")
	if err == nil || !strings.Contains(err.Error(), "no clipboard") {
		t.Fatalf("expected clipboard error, got %v", err)
	}
}

func TestListCmd_MasksValues(t *testing.T) {
	dir := setupTestStore(t)
	mustExecute(t, nil, "--dir", dir, "set", "openai", "sk-1234567890")
	mustExecute(t, nil, "--dir", dir, "set", "todo", "YourKeyHere")

	out := mustExecute(t, nil, "--dir", dir, "list")
	if strings.Contains(out, "sk-1234567890") {
		t.Fatalf("list leaked a secret: %s", out)
	}
	if !strings.Contains(out, "sk-1********") || !strings.Contains(out, "(placeholder)") {
		t.Fatalf("unexpected list output: %s", out)
	}

	out = mustExecute(t, nil, "--dir", dir, "list", "--show")
	if !strings.Contains(out, "sk-1234567890") {
		t.Fatalf("expected clear value with --show: %s", out)
	}
}

func TestListCmd_Empty(t *testing.T) {
	dir := setupTestStore(t)
	mustExecute(t, nil, "--dir", dir, "unset", "EXAMPLE_API_NAME")

	out := mustExecute(t, nil, "--dir", dir, "list")
	if !strings.Contains(out, "No API keys configured") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestPathCmd(t *testing.T) {
	dir := setupTestStore(t)
	out := mustExecute(t, nil, "--dir", dir, "path")
	if strings.TrimSpace(out) != filepath.Join(dir, credentials.FileName) {
		t.Fatalf("unexpected path: %q", out)
	}
}

func TestMaskValue(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "", want: "********"},
		{in: "short", want: "********"},
		{in: "12345678", want: "********"},
		{in: "sk-1234567890", want: "sk-1********"},
		{in: "äöüßäöüßx", want: "äöüß********"},
	}
	for _, tt := range tests {
		if got := maskValue(tt.in); got != tt.want {
			t.Errorf("maskValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
