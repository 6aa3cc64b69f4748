// Copyright (c) 2026 Keymaster Team
// Credstore - API credential store
// This source code is licensed under the MIT license found in the LICENSE file.

package credentials

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"
)

// BackupVersion is the schema version written by WriteBackup.
const BackupVersion = 1

// Backup is the document stored inside a compressed backup file.
type Backup struct {
	Version   int               `json:"version"`
	CreatedAt time.Time         `json:"created_at"`
	Keys      map[string]string `json:"keys"`
}

// now is swapped in tests.
var now = time.Now

// WriteBackup streams keys as zstd-compressed JSON to w.
func WriteBackup(w io.Writer, keys map[string]string) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("could not create zstd writer: %w", err)
	}

	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	b := Backup{Version: BackupVersion, CreatedAt: now().UTC(), Keys: keys}
	if err := enc.Encode(&b); err != nil {
		_ = zw.Close()
		return fmt.Errorf("could not encode json to zstd writer: %w", err)
	}
	return zw.Close()
}

// ReadBackup decodes a backup written by WriteBackup.
func ReadBackup(r io.Reader) (*Backup, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not create zstd reader: %w", err)
	}
	defer zr.Close()

	var b Backup
	if err := json.NewDecoder(zr).Decode(&b); err != nil {
		return nil, fmt.Errorf("could not decode json from zstd reader: %w", err)
	}
	if b.Version != BackupVersion {
		return nil, fmt.Errorf("unsupported backup version %d", b.Version)
	}
	if b.Keys == nil {
		b.Keys = map[string]string{}
	}
	return &b, nil
}
