// Copyright (c) 2026 Keymaster Team
// Credstore - API credential store
// This source code is licensed under the MIT license found in the LICENSE file.

// Package credentials holds named API keys for the process. Keys are loaded
// from a JSON file (created with a default entry on first use), individual
// entries can be overridden by environment variables named after the
// upper-cased key, and every change is written straight back to disk.
//
// Callers either construct a Store explicitly with Open and pass it around,
// or use the process-wide accessor (Init, Default, GetKey, SetKey, Reset).
package credentials
