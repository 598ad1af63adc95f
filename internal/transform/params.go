// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package transform

import "fmt"

// Fixed values used by every mode unless a caller overrides them.
const (
	DefaultSentinel      = "!"
	DefaultPrefix        = "192.168."
	DefaultEnumerateFrom = 1
	DefaultEnumerateTo   = 25
	// MaxEnumerateTo is the largest value an address octet can take.
	MaxEnumerateTo = 255
)

// Mode names one of the transformations.
type Mode string

const (
	ModeStrip       Mode = "strip"
	ModeReplace     Mode = "replace"
	ModeReplaceKeep Mode = "replace-keep"
	ModeEnumerate   Mode = "enumerate"
	ModePassword    Mode = "password"
)

// outputNames maps each mode to the fixed file name its result is written to.
var outputNames = map[Mode]string{
	ModeStrip:       "clean_config.txt",
	ModeReplace:     "catalog_config.txt",
	ModeReplaceKeep: "config_with_exclamations.txt",
	ModeEnumerate:   "replaced_third_octet.txt",
	ModePassword:    "config_with_newpassword.txt",
}

// Modes returns all modes in menu order.
func Modes() []Mode {
	return []Mode{ModeStrip, ModeReplace, ModeReplaceKeep, ModeEnumerate, ModePassword}
}

// ParseMode converts a mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if _, ok := outputNames[m]; !ok {
		return "", validationError("unknown_mode", fmt.Errorf("%w: %q", ErrUnknownMode, s), "mode", s)
	}
	return m, nil
}

// OutputName returns the fixed output file name for the mode.
func (m Mode) OutputName() string {
	return outputNames[m]
}

// NeedsOctet reports whether the caller has to supply a replacement octet.
func (m Mode) NeedsOctet() bool {
	return m == ModeReplace || m == ModeReplaceKeep
}

// Parameters bundles the values a transformation needs. Only the fields used
// by the selected mode are read.
type Parameters struct {
	// Sentinel marks lines to drop.
	Sentinel string
	// Prefix is the literal address prefix that precedes the third octet.
	Prefix string
	// Octet is the replacement third octet, decimal digits only.
	Octet string
	// From and To bound the enumerate range, both inclusive.
	From, To int
	// OldPassword and NewPassword drive ModePassword.
	OldPassword string
	NewPassword string
}

// DefaultParameters returns the fixed parameters with no octet set.
func DefaultParameters() Parameters {
	return Parameters{
		Sentinel: DefaultSentinel,
		Prefix:   DefaultPrefix,
		From:     DefaultEnumerateFrom,
		To:       DefaultEnumerateTo,
	}
}

// String never includes the password values.
func (p Parameters) String() string {
	return fmt.Sprintf("sentinel=%q prefix=%q octet=%q range=%d..%d", p.Sentinel, p.Prefix, p.Octet, p.From, p.To)
}

func (p Parameters) withDefaults() Parameters {
	if p.Sentinel == "" {
		p.Sentinel = DefaultSentinel
	}
	if p.Prefix == "" {
		p.Prefix = DefaultPrefix
	}
	return p
}

// ValidateOctet checks that s is a non-empty string of ASCII decimal digits.
// The value is not range checked: "300" is accepted.
func ValidateOctet(s string) error {
	if s == "" {
		return validationError("invalid_octet", ErrInvalidOctet, "octet", s)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return validationError("invalid_octet", ErrInvalidOctet, "octet", s)
		}
	}
	return nil
}

// ValidateRange checks the enumerate bounds: 0 <= from <= to <= MaxEnumerateTo.
func ValidateRange(from, to int) error {
	if from < 0 || to < from || to > MaxEnumerateTo {
		return validationError("invalid_range", fmt.Errorf("%w: %d..%d", ErrInvalidRange, from, to), "from", from, "to", to)
	}
	return nil
}
