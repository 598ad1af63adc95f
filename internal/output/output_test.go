// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCreatesAndOverwrites(t *testing.T) {
	dir := t.TempDir()
	w := Writer{Dir: dir, Overwrite: true}

	res, err := w.Write("clean_config.txt", []byte("first\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "clean_config.txt"), res.Path)
	assert.False(t, res.Replaced)
	assert.Equal(t, 6, res.Bytes)
	assert.Equal(t, Digest([]byte("first\n")), res.Digest)

	res, err = w.Write("clean_config.txt", []byte("second\n"))
	require.NoError(t, err)
	assert.True(t, res.Replaced)

	b, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(b))
}

func TestWriteRefusesExistingWithoutOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog_config.txt")
	require.NoError(t, os.WriteFile(path, []byte("keep"), 0o644))

	_, err := Writer{Dir: dir}.Write("catalog_config.txt", []byte("new"))
	require.ErrorIs(t, err, ErrExists)

	b, _ := os.ReadFile(path)
	assert.Equal(t, "keep", string(b))
}

func TestWriteCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	res, err := Writer{Dir: dir, Overwrite: true}.Write("x.txt", nil)
	require.NoError(t, err)
	_, err = os.Stat(res.Path)
	assert.NoError(t, err)
}

func TestDigestIsStable(t *testing.T) {
	// BLAKE3 of the empty input.
	assert.Equal(t, "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262", Digest(nil))
	assert.Len(t, Digest([]byte("abc")), 64)
	assert.NotEqual(t, Digest([]byte("a")), Digest([]byte("b")))
}

func TestPathWithoutDir(t *testing.T) {
	assert.Equal(t, "clean_config.txt", Writer{}.Path("clean_config.txt"))
}

func withOpener(t *testing.T, fn func(string) error) {
	t.Helper()
	prev := openInFileManager
	openInFileManager = fn
	t.Cleanup(func() { openInFileManager = prev })
}

func TestOpenDirCreatesAndOpensAbsolutePath(t *testing.T) {
	var opened []string
	withOpener(t, func(dir string) error { opened = append(opened, dir); return nil })

	dir := filepath.Join(t.TempDir(), "results")
	got, err := Writer{Dir: dir}.OpenDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)
	assert.Equal(t, []string{dir}, opened)
	assert.DirExists(t, dir)
}

func TestOpenDirDefaultsToWorkingDirectory(t *testing.T) {
	withOpener(t, func(string) error { return nil })
	wd, err := os.Getwd()
	require.NoError(t, err)

	got, err := Writer{}.OpenDir()
	require.NoError(t, err)
	assert.Equal(t, wd, got)
}

func TestOpenDirReportsOpenerFailure(t *testing.T) {
	boom := errors.New("no file manager")
	withOpener(t, func(string) error { return boom })

	_, err := Writer{Dir: t.TempDir()}.OpenDir()
	assert.ErrorIs(t, err, boom)
}
