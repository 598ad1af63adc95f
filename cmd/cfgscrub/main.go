// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Command cfgscrub is the installable entrypoint:
//
//	go install github.com/cfgscrub/cfgscrub/cmd/cfgscrub@latest
package main

import (
	"os"

	"github.com/cfgscrub/cfgscrub/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
