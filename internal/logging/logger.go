// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package logging holds the process-wide logger. Callers use the helper
// functions so the backing logger can be swapped in tests or redirected while
// the TUI owns the terminal.
package logging

import (
	"fmt"
	"io"
	"os"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger.
var L = clog.NewWithOptions(os.Stderr, clog.Options{ReportTimestamp: false})

// SetLevel parses level (debug, info, warn, error) and applies it.
func SetLevel(level string) error {
	lvl, err := clog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	L.SetLevel(lvl)
	return nil
}

// SetOutput redirects log output.
func SetOutput(w io.Writer) {
	L.SetOutput(w)
}

// Discard drops all log output until SetOutput is called again.
func Discard() {
	L.SetOutput(io.Discard)
}

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...interface{}) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...interface{}) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...interface{}) {
	L.Warn(fmt.Sprintf(format, v...))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...interface{}) {
	L.Error(fmt.Sprintf(format, v...))
}

// Info logs msg with structured key/value pairs.
func Info(msg string, keyvals ...interface{}) {
	L.Info(msg, keyvals...)
}
