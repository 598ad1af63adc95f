// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package filetime

import (
	"os"
	"time"
)

// ModTimeSetter sets access and modification time to the modification
// value. It works on every platform.
type ModTimeSetter struct{}

func (ModTimeSetter) Capability() Capability { return ModificationOnly }

func (ModTimeSetter) SetTimes(path string, _, modified time.Time) error {
	return os.Chtimes(path, modified, modified)
}
