// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"errors"

	"github.com/cfgscrub/cfgscrub/internal/filetime"
	"github.com/cfgscrub/cfgscrub/internal/i18n"
	"github.com/cfgscrub/cfgscrub/internal/output"
	"github.com/cfgscrub/cfgscrub/internal/source"
	"github.com/cfgscrub/cfgscrub/internal/transform"
)

var messageIDs = []struct {
	err error
	id  string
}{
	{ErrNoSource, "error.no_source"},
	{ErrRemoteDates, "error.remote_dates"},
	{ErrCancelled, "error.cancelled"},
	{transform.ErrInvalidOctet, "error.invalid_octet"},
	{transform.ErrEmptyPassword, "error.empty_password"},
	{transform.ErrInvalidRange, "error.invalid_range"},
	{transform.ErrUnknownMode, "error.unknown_mode"},
	{filetime.ErrInvalidTimestamp, "error.invalid_timestamp"},
	{filetime.ErrMissingTimestamp, "error.missing_timestamp"},
	{source.ErrInvalidRef, "error.invalid_ref"},
	{output.ErrExists, "error.exists"},
}

// Describe returns a translated, user-facing message for err.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	for _, m := range messageIDs {
		if errors.Is(err, m.err) {
			return i18n.T(m.id)
		}
	}
	if KindOf(err) == KindCancelled {
		return i18n.T("error.cancelled")
	}
	return i18n.T("error.io", err.Error())
}
