// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for cfgscrub.
//
// Usage:
//
//	go run . [flags]
//	./cfgscrub [command] [flags]
//
// Without a command the interactive TUI starts. See --help for options.
package main

import (
	"os"

	"github.com/cfgscrub/cfgscrub/ui/cli"
)

func main() {
	// Execute already printed the error.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
