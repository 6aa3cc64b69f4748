// Copyright (c) 2026 Keymaster Team
// Credstore - API credential store
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for credstore.
//
// Usage:
//
//	go run . [flags]
//	./credstore [command] [flags]
//
// Without a command it demonstrates a known-good and a known-bad key lookup.
// See --help for the other commands.
package main

import (
	"os"

	"github.com/toeirei/credstore/ui/cli"
)

func main() {
	// Cobra has already printed the error.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
