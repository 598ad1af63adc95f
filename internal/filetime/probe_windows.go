// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

//go:build windows

package filetime

import (
	"time"

	"golang.org/x/sys/windows"
)

// Probe returns the best Setter for this platform.
func Probe() Setter { return WindowsSetter{} }

// WindowsSetter sets creation and modification time and leaves the
// access time alone.
type WindowsSetter struct{}

func (WindowsSetter) Capability() Capability { return CreationAndModification }

func (WindowsSetter) SetTimes(path string, created, modified time.Time) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	h, err := windows.CreateFile(p, windows.FILE_WRITE_ATTRIBUTES, windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil, windows.OPEN_EXISTING, windows.FILE_ATTRIBUTE_NORMAL, 0)
	if err != nil {
		return err
	}
	defer windows.CloseHandle(h)

	c := windows.NsecToFiletime(created.UnixNano())
	m := windows.NsecToFiletime(modified.UnixNano())
	return windows.SetFileTime(h, &c, nil, &m)
}
