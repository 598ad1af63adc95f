// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package cli implements the cfgscrub command line. Every transformation is
// a subcommand; running without one launches the TUI.
package cli
