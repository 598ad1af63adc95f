// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package filetime edits file timestamps. Platforms differ in what they
// allow: Windows exposes the creation time, others only the modification
// time. Callers ask a Setter for its Capability instead of checking GOOS.
package filetime // import "github.com/cfgscrub/cfgscrub/internal/filetime"

import (
	"errors"
	"regexp"
	"time"

	"github.com/samber/oops"
)

// Layout is the accepted timestamp format.
const Layout = "2006-01-02 15:04:05"

var layoutPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)

var (
	// ErrInvalidTimestamp is returned for input not matching Layout or
	// naming an impossible date.
	ErrInvalidTimestamp = errors.New("timestamp must be YYYY-MM-DD HH:MM:SS")
	// ErrMissingTimestamp is returned when a required timestamp is empty.
	ErrMissingTimestamp = errors.New("timestamp is required")
)

// Capability describes which timestamps a Setter can change.
type Capability int

const (
	// ModificationOnly sets the modification time; the creation time is
	// accepted for validation but not applied.
	ModificationOnly Capability = iota
	// CreationAndModification sets both.
	CreationAndModification
)

func (c Capability) String() string {
	if c == CreationAndModification {
		return "creation+modification"
	}
	return "modification"
}

// Setter applies timestamps to a file.
type Setter interface {
	Capability() Capability
	SetTimes(path string, created, modified time.Time) error
}

// Result reports what Apply changed.
type Result struct {
	Path     string
	Created  time.Time
	Modified time.Time
	// CreationApplied is false when the platform cannot set the creation time.
	CreationApplied bool
}

// Parse reads s in Layout as local time. Surrounding spaces are ignored.
func Parse(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, oops.In("filetime").Code("missing_timestamp").Wrap(ErrMissingTimestamp)
	}
	if !layoutPattern.MatchString(s) {
		return time.Time{}, oops.In("filetime").Code("invalid_timestamp").With("value", s).Wrap(ErrInvalidTimestamp)
	}
	t, err := time.ParseInLocation(Layout, s, time.Local)
	if err != nil {
		return time.Time{}, oops.In("filetime").Code("invalid_timestamp").With("value", s).Wrapf(ErrInvalidTimestamp, "%v", err)
	}
	return t, nil
}

// Apply parses both timestamps and applies them to path with s. Both are
// validated even when s cannot set the creation time.
func Apply(s Setter, path, created, modified string) (Result, error) {
	c, err := Parse(created)
	if err != nil {
		return Result{}, err
	}
	m, err := Parse(modified)
	if err != nil {
		return Result{}, err
	}
	if err := s.SetTimes(path, c, m); err != nil {
		return Result{}, oops.In("filetime").Code("set_times").With("path", path).Wrap(err)
	}
	return Result{
		Path:            path,
		Created:         c,
		Modified:        m,
		CreationApplied: s.Capability() == CreationAndModification,
	}, nil
}
