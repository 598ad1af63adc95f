// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package output writes transformation results to their fixed file names and
// fingerprints the written bytes.
package output

import (
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/browser"
	"github.com/samber/oops"
	"github.com/zeebo/blake3"
)

// ErrExists is returned when overwriting is disabled and the target exists.
var ErrExists = errors.New("output file already exists")

// FileMode is the permission used for written outputs.
const FileMode os.FileMode = 0o644

// Writer writes outputs into Dir. An empty Dir means the current working
// directory.
type Writer struct {
	Dir       string
	Overwrite bool
}

// Result describes a written output file.
type Result struct {
	Path string
	// Digest is the hex BLAKE3-256 sum of the written bytes.
	Digest string
	Bytes  int
	// Replaced is true when an existing file was overwritten.
	Replaced bool
}

// Path returns the full path name resolves to.
func (w Writer) Path(name string) string {
	if w.Dir == "" {
		return name
	}
	return filepath.Join(w.Dir, name)
}

// Write stores data under name, replacing any existing file unless
// Overwrite is false. The write is not atomic: a crash can leave a partial
// file behind.
func (w Writer) Write(name string, data []byte) (Result, error) {
	path := w.Path(name)
	errb := oops.In("output").With("path", path)

	_, statErr := os.Stat(path)
	existed := statErr == nil
	if existed && !w.Overwrite {
		return Result{}, errb.Code("exists").Wrap(ErrExists)
	}
	if w.Dir != "" {
		if err := os.MkdirAll(w.Dir, 0o755); err != nil {
			return Result{}, errb.Wrapf(err, "could not create output directory")
		}
	}
	if err := os.WriteFile(path, data, FileMode); err != nil {
		return Result{}, errb.Wrapf(err, "could not write output")
	}
	return Result{
		Path:     path,
		Digest:   Digest(data),
		Bytes:    len(data),
		Replaced: existed,
	}, nil
}

// openInFileManager hands a directory to the desktop's default handler.
// Replaced in tests.
var openInFileManager = func(dir string) error {
	browser.Stdout, browser.Stderr = io.Discard, io.Discard
	return browser.OpenFile(dir)
}

// OpenDir creates the output directory if needed and opens it in the
// system file manager. It returns the absolute directory path.
func (w Writer) OpenDir() (string, error) {
	dir := w.Dir
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", oops.In("output").With("dir", dir).Wrapf(err, "could not resolve output directory")
	}
	errb := oops.In("output").With("dir", abs)
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return abs, errb.Wrapf(err, "could not create output directory")
	}
	if err := openInFileManager(abs); err != nil {
		return abs, errb.Code("open_dir").Wrapf(err, "could not open output directory")
	}
	return abs, nil
}

// Digest returns the hex BLAKE3-256 sum of data.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
