// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package transform

import (
	"errors"

	"github.com/samber/oops"
)

// Sentinel errors returned (wrapped) by the transformations. Use errors.Is to
// test for them.
var (
	ErrInvalidOctet  = errors.New("octet must consist of decimal digits")
	ErrEmptyPassword = errors.New("old password must not be empty")
	ErrInvalidRange  = errors.New("enumerate range is invalid")
	ErrUnknownMode   = errors.New("unknown transformation mode")
)

func validationError(code string, err error, kv ...any) error {
	return oops.
		In("transform").
		Code(code).
		With(kv...).
		Wrap(err)
}
