// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

//go:build !windows

package filetime

// Probe returns the best Setter for this platform.
func Probe() Setter { return ModTimeSetter{} }
