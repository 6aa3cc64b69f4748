// Copyright (c) 2026 Keymaster Team
// Credstore - API credential store
// This source code is licensed under the MIT license found in the LICENSE file.

package credentials

import (
	"fmt"
	"os"
	"path/filepath"
)

// executablePath is swapped in tests.
var executablePath = os.Executable

// ProjectRoot returns the directory one level above the one holding the
// running executable, e.g. /opt/app for /opt/app/bin/credstore.
func ProjectRoot() (string, error) {
	exe, err := executablePath()
	if err != nil {
		return "", fmt.Errorf("could not locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(filepath.Dir(exe)), nil
}

// DefaultDir returns <project root>/credentials.
func DefaultDir() (string, error) {
	root, err := ProjectRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, DirName), nil
}
