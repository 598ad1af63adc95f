// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"strings"

	"github.com/samber/oops"
)

// Session holds the source chosen by the user. The zero value has nothing
// selected. It is owned by one front end and not safe for concurrent use.
type Session struct {
	source string
}

// Select makes ref the source for following operations.
func (s *Session) Select(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return oops.In("core").Code("no_source").Wrap(ErrNoSource)
	}
	s.source = ref
	return nil
}

// Selected returns the current source.
func (s *Session) Selected() (string, error) {
	if s == nil || s.source == "" {
		return "", oops.In("core").Code("no_source").Wrap(ErrNoSource)
	}
	return s.source, nil
}

// HasSource reports whether a source is selected.
func (s *Session) HasSource() bool {
	return s != nil && s.source != ""
}

// Clear drops the selection.
func (s *Session) Clear() { s.source = "" }
