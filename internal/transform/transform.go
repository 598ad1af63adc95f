// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package transform

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
)

var (
	patternMu sync.Mutex
	patterns  = map[string]*regexp.Regexp{}
)

// addressPattern returns the compiled `<prefix>(\d+)\.(\d+)` expression.
func addressPattern(prefix string) *regexp.Regexp {
	patternMu.Lock()
	defer patternMu.Unlock()
	re, ok := patterns[prefix]
	if !ok {
		re = regexp.MustCompile(regexp.QuoteMeta(prefix) + `(\d+)\.(\d+)`)
		patterns[prefix] = re
	}
	return re
}

// escapeTemplate escapes '$' so s is taken literally by Regexp.Expand.
func escapeTemplate(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}

// StripMarkerLines drops every line that contains the sentinel. Surviving
// lines keep their order and their original terminators.
func StripMarkerLines(doc SourceDocument, p Parameters) OutputDocument {
	p = p.withDefaults()
	var b strings.Builder
	b.Grow(len(doc.Text))
	for _, line := range doc.Lines() {
		if !strings.Contains(line, p.Sentinel) {
			b.WriteString(line)
		}
	}
	return newOutput(ModeStrip, doc, b.String(), 0)
}

// ReplaceAndStrip rewrites every address under the prefix to
// <prefix><octet>.1, then removes sentinel lines. The fourth octet is forced
// to 1. The surviving lines are joined with "\n" and the result carries no
// trailing newline.
func ReplaceAndStrip(doc SourceDocument, p Parameters) (OutputDocument, error) {
	p = p.withDefaults()
	if err := ValidateOctet(p.Octet); err != nil {
		return OutputDocument{}, err
	}
	re := addressPattern(p.Prefix)
	n := len(re.FindAllStringIndex(doc.Text, -1))
	replaced := re.ReplaceAllLiteralString(doc.Text, p.Prefix+p.Octet+".1")

	kept := make([]string, 0, countLines(replaced))
	for _, line := range splitLines(replaced) {
		if !strings.Contains(line, p.Sentinel) {
			kept = append(kept, line)
		}
	}
	return newOutput(ModeReplace, doc, strings.Join(kept, "\n"), n), nil
}

// ReplacePreserve rewrites the third octet of every address under the prefix
// and keeps the fourth. No line is removed.
func ReplacePreserve(doc SourceDocument, p Parameters) (OutputDocument, error) {
	p = p.withDefaults()
	if err := ValidateOctet(p.Octet); err != nil {
		return OutputDocument{}, err
	}
	re := addressPattern(p.Prefix)
	n := len(re.FindAllStringIndex(doc.Text, -1))
	out := re.ReplaceAllString(doc.Text, escapeTemplate(p.Prefix+p.Octet+".")+"${2}")
	return newOutput(ModeReplaceKeep, doc, out, n), nil
}

// ReplaceEnumerate writes one rewritten copy of the document per integer in
// [From, To], ascending, with that integer as third octet. Copies are
// concatenated with nothing in between.
func ReplaceEnumerate(doc SourceDocument, p Parameters) (OutputDocument, error) {
	p = p.withDefaults()
	if err := ValidateRange(p.From, p.To); err != nil {
		return OutputDocument{}, err
	}
	re := addressPattern(p.Prefix)
	lines := doc.Lines()
	perCopy := len(re.FindAllStringIndex(doc.Text, -1))

	copies := p.To - p.From + 1

	var b strings.Builder
	b.Grow(len(doc.Text) * copies)
	for i := p.From; i <= p.To; i++ {
		tmpl := escapeTemplate(p.Prefix+strconv.Itoa(i)+".") + "${2}"
		for _, line := range lines {
			b.WriteString(re.ReplaceAllString(line, tmpl))
		}
	}
	return newOutput(ModeEnumerate, doc, b.String(), perCopy*copies), nil
}

// ReplacePassword replaces every literal occurrence of OldPassword with
// NewPassword. An absent OldPassword leaves the text unchanged. An empty
// OldPassword is rejected.
func ReplacePassword(doc SourceDocument, p Parameters) (OutputDocument, error) {
	if p.OldPassword == "" {
		return OutputDocument{}, validationError("empty_password", ErrEmptyPassword)
	}
	n := strings.Count(doc.Text, p.OldPassword)
	out := strings.ReplaceAll(doc.Text, p.OldPassword, p.NewPassword)
	return newOutput(ModePassword, doc, out, n), nil
}

// Apply dispatches to the transformation named by mode.
func Apply(mode Mode, doc SourceDocument, p Parameters) (OutputDocument, error) {
	switch mode {
	case ModeStrip:
		return StripMarkerLines(doc, p), nil
	case ModeReplace:
		return ReplaceAndStrip(doc, p)
	case ModeReplaceKeep:
		return ReplacePreserve(doc, p)
	case ModeEnumerate:
		return ReplaceEnumerate(doc, p)
	case ModePassword:
		return ReplacePassword(doc, p)
	default:
		_, err := ParseMode(string(mode))
		return OutputDocument{}, err
	}
}

// Validate checks the parameters the mode depends on without running it.
func Validate(mode Mode, p Parameters) error {
	if _, err := ParseMode(string(mode)); err != nil {
		return err
	}
	switch mode {
	case ModeReplace, ModeReplaceKeep:
		return ValidateOctet(p.Octet)
	case ModeEnumerate:
		return ValidateRange(p.From, p.To)
	case ModePassword:
		if p.OldPassword == "" {
			return validationError("empty_password", ErrEmptyPassword)
		}
	}
	return nil
}
