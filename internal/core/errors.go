// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"
	"errors"

	"github.com/cfgscrub/cfgscrub/internal/filetime"
	"github.com/cfgscrub/cfgscrub/internal/source"
	"github.com/cfgscrub/cfgscrub/internal/transform"
)

var (
	// ErrNoSource is returned when an operation runs before a file is selected.
	ErrNoSource = errors.New("no source file selected")
	// ErrCancelled marks an operation the user abandoned at a prompt.
	ErrCancelled = errors.New("operation cancelled")
	// ErrRemoteDates is returned when timestamps are edited on a remote source.
	ErrRemoteDates = errors.New("timestamps can only be changed on local files")
)

// Kind classifies errors for presentation.
type Kind int

const (
	KindNone Kind = iota
	// KindValidation is bad user input; nothing was written.
	KindValidation
	// KindIO is a read, write or remote failure.
	KindIO
	// KindCancelled is a user abort, reported as a notice.
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindCancelled:
		return "cancelled"
	default:
		return "io"
	}
}

var validationErrors = []error{
	ErrNoSource,
	ErrRemoteDates,
	transform.ErrInvalidOctet,
	transform.ErrEmptyPassword,
	transform.ErrInvalidRange,
	transform.ErrUnknownMode,
	filetime.ErrInvalidTimestamp,
	filetime.ErrMissingTimestamp,
	source.ErrInvalidRef,
}

// KindOf classifies err. Unknown errors are KindIO.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled) {
		return KindCancelled
	}
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return KindValidation
		}
	}
	return KindIO
}
