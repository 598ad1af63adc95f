// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package transform

import (
	"strings"
	"unicode/utf8"
)

// SourceDocument is a configuration export held fully in memory.
type SourceDocument struct {
	// Name identifies where the text came from (path or URL).
	Name string
	// Text is the raw content. It is never modified.
	Text string
}

// NewSourceDocument wraps raw bytes read from name.
func NewSourceDocument(name string, data []byte) SourceDocument {
	return SourceDocument{Name: name, Text: string(data)}
}

// Lines returns the lines of the document, each keeping its terminator.
// A final line without a terminator is returned as is.
func (d SourceDocument) Lines() []string {
	return splitKeepEnds(d.Text)
}

// LineCount is len(d.Lines()) without allocating.
func (d SourceDocument) LineCount() int {
	return countLines(d.Text)
}

// OutputDocument is the result of a transformation.
type OutputDocument struct {
	Mode Mode
	Text string
	// LinesIn is the number of lines of the source.
	LinesIn int
	// LinesOut is the number of lines of Text.
	LinesOut int
	// Replacements counts substituted addresses or password occurrences.
	Replacements int
}

// Bytes returns Text as a byte slice for writing.
func (o OutputDocument) Bytes() []byte {
	return []byte(o.Text)
}

func newOutput(mode Mode, src SourceDocument, text string, replacements int) OutputDocument {
	return OutputDocument{
		Mode:         mode,
		Text:         text,
		LinesIn:      src.LineCount(),
		LinesOut:     countLines(text),
		Replacements: replacements,
	}
}

// splitKeepEnds splits after every "\r\n", "\r" or "\n". Each line keeps
// its terminator.
func splitKeepEnds(s string) []string {
	if s == "" {
		return nil
	}
	lines := make([]string, 0, strings.Count(s, "\n")+1)
	for s != "" {
		n := lineEnd(s)
		lines = append(lines, s[:n])
		s = s[n:]
	}
	return lines
}

// lineEnd returns the length of the first line of s including its terminator.
func lineEnd(s string) int {
	i := strings.IndexAny(s, "\r\n")
	switch {
	case i < 0:
		return len(s)
	case s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n':
		return i + 2
	default:
		return i + 1
	}
}

func countLines(s string) int {
	n := 0
	for s != "" {
		s = s[lineEnd(s):]
		n++
	}
	return n
}

// splitLines splits s on every Unicode line boundary (including \v, \f and
// the file/group/record separators) and drops the terminators. "\r\n" counts
// as one boundary and a trailing boundary does not produce an empty last
// element.
func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch r {
		case '\r':
			lines = append(lines, s[start:i])
			i += size
			if i < len(s) && s[i] == '\n' {
				i++
			}
			start = i
			continue
		case '\n', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
			lines = append(lines, s[start:i])
			i += size
			start = i
			continue
		}
		i += size
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
