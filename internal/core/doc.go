// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package core is the operation facade shared by the CLI and the TUI.
//
// A Runner loads the source selected in a Session, applies one
// transformation, writes the result under its fixed name and records the
// run in the optional history. ChangeDates edits the timestamps of the
// selected file. KindOf maps any returned error onto the three failure
// kinds the front ends present differently.
package core
