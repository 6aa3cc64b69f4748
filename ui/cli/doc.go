// Copyright (c) 2026 Keymaster Team
// Credstore - API credential store
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface for credstore using Cobra.
// It wires configuration, logging and localisation, opens the process-wide
// credentials store and provides commands that delegate to it. CLI code
// should remain thin and leave storage rules to internal/credentials.
package cli
