// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfgscrub/cfgscrub/internal/filetime"
	"github.com/cfgscrub/cfgscrub/internal/history"
	"github.com/cfgscrub/cfgscrub/internal/output"
	"github.com/cfgscrub/cfgscrub/internal/source"
	"github.com/cfgscrub/cfgscrub/internal/transform"
)

type fakeLoader struct {
	text  string
	err   error
	calls int
}

func (f *fakeLoader) Load(_ context.Context, ref string) (transform.SourceDocument, error) {
	f.calls++
	if f.err != nil {
		return transform.SourceDocument{}, f.err
	}
	return transform.NewSourceDocument(ref, []byte(f.text)), nil
}

type fakeRecorder struct {
	runs []history.Run
	err  error
}

func (f *fakeRecorder) Record(_ context.Context, r history.Run) (history.Run, error) {
	if f.err != nil {
		return history.Run{}, f.err
	}
	r.ID = fmt.Sprintf("run-%d", len(f.runs)+1)
	f.runs = append(f.runs, r)
	return r, nil
}

type fakeSetter struct {
	calls    int
	modified time.Time
}

func (f *fakeSetter) Capability() filetime.Capability { return filetime.ModificationOnly }

func (f *fakeSetter) SetTimes(_ string, _, m time.Time) error {
	f.calls++
	f.modified = m
	return nil
}

const sample = "interface X\nip address 192.168.5.1\n!\ndescription test\n"

func newRunner(t *testing.T, l Loader, h Recorder) (*Runner, string) {
	t.Helper()
	dir := t.TempDir()
	return &Runner{Loader: l, Output: output.Writer{Dir: dir, Overwrite: true}, History: h}, dir
}

func selected(t *testing.T, ref string) *Session {
	t.Helper()
	s := &Session{}
	require.NoError(t, s.Select(ref))
	return s
}

func TestSession(t *testing.T) {
	var s Session
	assert.False(t, s.HasSource())
	_, err := s.Selected()
	assert.ErrorIs(t, err, ErrNoSource)

	assert.ErrorIs(t, s.Select("   "), ErrNoSource)
	require.NoError(t, s.Select(" r1.cfg "))
	got, err := s.Selected()
	require.NoError(t, err)
	assert.Equal(t, "r1.cfg", got)

	s.Clear()
	assert.False(t, s.HasSource())
}

func TestRunStripEndToEnd(t *testing.T) {
	rec := &fakeRecorder{}
	r, dir := newRunner(t, &fakeLoader{text: sample}, rec)

	rep, err := r.Run(context.Background(), selected(t, "r1.cfg"), Request{Mode: transform.ModeStrip})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "clean_config.txt"), rep.Output)
	data, err := os.ReadFile(rep.Output)
	require.NoError(t, err)
	assert.Equal(t, "interface X\nip address 192.168.5.1\ndescription test\n", string(data))
	assert.Equal(t, 4, rep.LinesIn)
	assert.Equal(t, 3, rep.LinesOut)
	assert.Equal(t, output.Digest(data), rep.Digest)

	require.Len(t, rec.runs, 1)
	assert.Equal(t, "run-1", rep.RunID)
	assert.Equal(t, "strip", rec.runs[0].Mode)
	assert.Empty(t, rec.runs[0].Error)
}

func TestRunEveryModeWritesItsFile(t *testing.T) {
	const text = "ip address 192.168.5.7\n! secret\nenable secret hunter2\n"
	for _, req := range []Request{
		{Mode: transform.ModeStrip},
		{Mode: transform.ModeReplace, Octet: "10"},
		{Mode: transform.ModeReplaceKeep, Octet: "10"},
		{Mode: transform.ModeEnumerate},
		{Mode: transform.ModePassword, OldPassword: "hunter2", NewPassword: "s3cret"},
	} {
		t.Run(string(req.Mode), func(t *testing.T) {
			r, dir := newRunner(t, &fakeLoader{text: text}, nil)
			rep, err := r.Run(context.Background(), selected(t, "a.cfg"), req)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, req.Mode.OutputName()), rep.Output)
			assert.FileExists(t, rep.Output)
			assert.Empty(t, rep.RunID)
		})
	}
}

func TestRunReplaceOutput(t *testing.T) {
	r, _ := newRunner(t, &fakeLoader{text: "ip 192.168.5.7\n!\nip 192.168.9.200\n"}, nil)
	rep, err := r.Run(context.Background(), selected(t, "a.cfg"), Request{Mode: transform.ModeReplace, Octet: "42"})
	require.NoError(t, err)
	data, err := os.ReadFile(rep.Output)
	require.NoError(t, err)
	assert.Equal(t, "ip 192.168.42.1\nip 192.168.42.1", string(data))
	assert.Equal(t, 2, rep.Replacements)
}

func TestRunEnumerateCustomRange(t *testing.T) {
	r, _ := newRunner(t, &fakeLoader{text: "ip 192.168.0.9\n"}, nil)
	rep, err := r.Run(context.Background(), selected(t, "a.cfg"), Request{Mode: transform.ModeEnumerate, Range: &Range{From: 3, To: 4}})
	require.NoError(t, err)
	data, err := os.ReadFile(rep.Output)
	require.NoError(t, err)
	assert.Equal(t, "ip 192.168.3.9\nip 192.168.4.9\n", string(data))
}

func TestRequestParametersRange(t *testing.T) {
	p := Request{Mode: transform.ModeEnumerate}.Parameters()
	assert.Equal(t, transform.DefaultEnumerateFrom, p.From)
	assert.Equal(t, transform.DefaultEnumerateTo, p.To)

	p = Request{Mode: transform.ModeEnumerate, Range: &Range{}}.Parameters()
	assert.Zero(t, p.From)
	assert.Zero(t, p.To)
}

func TestRunEnumerateZeroRangeIsSingleCopy(t *testing.T) {
	r, _ := newRunner(t, &fakeLoader{text: "ip 192.168.7.9\n"}, nil)
	rep, err := r.Run(context.Background(), selected(t, "a.cfg"), Request{Mode: transform.ModeEnumerate, Range: &Range{}})
	require.NoError(t, err)
	data, err := os.ReadFile(rep.Output)
	require.NoError(t, err)
	assert.Equal(t, "ip 192.168.0.9\n", string(data))
}

func TestRunValidationWritesNothing(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"bad octet", Request{Mode: transform.ModeReplace, Octet: "1a"}, transform.ErrInvalidOctet},
		{"empty octet", Request{Mode: transform.ModeReplaceKeep}, transform.ErrInvalidOctet},
		{"empty password", Request{Mode: transform.ModePassword, NewPassword: "x"}, transform.ErrEmptyPassword},
		{"inverted range", Request{Mode: transform.ModeEnumerate, Range: &Range{From: 5, To: 2}}, transform.ErrInvalidRange},
		{"range above octet", Request{Mode: transform.ModeEnumerate, Range: &Range{From: 1, To: 256}}, transform.ErrInvalidRange},
		{"unknown mode", Request{Mode: "shred"}, transform.ErrUnknownMode},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := &fakeLoader{text: sample}
			rec := &fakeRecorder{}
			r, dir := newRunner(t, l, rec)
			_, err := r.Run(context.Background(), selected(t, "a.cfg"), tc.req)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, KindValidation, KindOf(err))
			assert.Zero(t, l.calls, "source must not be read")
			assert.Empty(t, rec.runs)
			entries, _ := os.ReadDir(dir)
			assert.Empty(t, entries)
		})
	}
}

func TestRunWithoutSelection(t *testing.T) {
	r, _ := newRunner(t, &fakeLoader{}, nil)
	_, err := r.Run(context.Background(), &Session{}, Request{Mode: transform.ModeStrip})
	assert.ErrorIs(t, err, ErrNoSource)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestRunLoadFailureIsRecorded(t *testing.T) {
	rec := &fakeRecorder{}
	r, _ := newRunner(t, &fakeLoader{err: os.ErrNotExist}, rec)
	_, err := r.Run(context.Background(), selected(t, "missing.cfg"), Request{Mode: transform.ModeStrip})
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, KindIO, KindOf(err))
	require.Len(t, rec.runs, 1)
	assert.NotEmpty(t, rec.runs[0].Error)
}

func TestRunCancelledBeforeWrite(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r, dir := newRunner(t, &fakeLoader{text: sample}, nil)
	_, err := r.Run(ctx, selected(t, "a.cfg"), Request{Mode: transform.ModeStrip})
	assert.Equal(t, KindCancelled, KindOf(err))
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestRunHistoryFailureDoesNotFail(t *testing.T) {
	r, _ := newRunner(t, &fakeLoader{text: sample}, &fakeRecorder{err: errors.New("db down")})
	rep, err := r.Run(context.Background(), selected(t, "a.cfg"), Request{Mode: transform.ModeStrip})
	require.NoError(t, err)
	assert.Empty(t, rep.RunID)
}

func TestRunRefusesOverwriteWhenDisabled(t *testing.T) {
	r, _ := newRunner(t, &fakeLoader{text: sample}, nil)
	r.Output.Overwrite = false
	s := selected(t, "a.cfg")

	_, err := r.Run(context.Background(), s, Request{Mode: transform.ModeStrip})
	require.NoError(t, err)
	_, err = r.Run(context.Background(), s, Request{Mode: transform.ModeStrip})
	assert.ErrorIs(t, err, output.ErrExists)
	assert.Equal(t, KindIO, KindOf(err))
}

func TestRunPasswordNeverRecorded(t *testing.T) {
	rec := &fakeRecorder{}
	r, _ := newRunner(t, &fakeLoader{text: "enable secret hunter2\n"}, rec)
	_, err := r.Run(context.Background(), selected(t, "a.cfg"), Request{Mode: transform.ModePassword, OldPassword: "hunter2", NewPassword: "s3cret"})
	require.NoError(t, err)
	require.Len(t, rec.runs, 1)
	dump := fmt.Sprintf("%+v", rec.runs[0])
	assert.False(t, strings.Contains(dump, "hunter2") || strings.Contains(dump, "s3cret"))
}

func TestChangeDates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r1.cfg")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	setter := &fakeSetter{}
	rec := &fakeRecorder{}
	r := &Runner{History: rec, Times: setter}

	res, err := r.ChangeDates(context.Background(), selected(t, path), "2020-01-01 10:00:00", "2021-01-01 10:00:00")
	require.NoError(t, err)
	assert.Equal(t, path, res.Path)
	assert.False(t, res.CreationApplied)
	assert.Equal(t, 1, setter.calls)
	assert.Equal(t, 2021, setter.modified.Year())
	require.Len(t, rec.runs, 1)
	assert.Equal(t, "touch", rec.runs[0].Mode)
}

func TestChangeDatesRealFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r1.cfg")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	r := &Runner{Times: filetime.ModTimeSetter{}}
	_, err := r.ChangeDates(context.Background(), selected(t, path), "2020-01-01 10:00:00", "2021-06-07 08:09:10")
	require.NoError(t, err)
	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 6, 7, 8, 9, 10, 0, time.Local).Unix(), fi.ModTime().Unix())
}

func TestChangeDatesValidation(t *testing.T) {
	setter := &fakeSetter{}
	r := &Runner{Times: setter}

	_, err := r.ChangeDates(context.Background(), selected(t, "a.cfg"), "2020-01-01", "2021-01-01 10:00:00")
	assert.ErrorIs(t, err, filetime.ErrInvalidTimestamp)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = r.ChangeDates(context.Background(), selected(t, "a.cfg"), "2020-01-01 10:00:00", "")
	assert.ErrorIs(t, err, filetime.ErrMissingTimestamp)

	_, err = r.ChangeDates(context.Background(), selected(t, "sftp://core1/etc/r1.cfg"), "2020-01-01 10:00:00", "2021-01-01 10:00:00")
	assert.ErrorIs(t, err, ErrRemoteDates)

	_, err = r.ChangeDates(context.Background(), &Session{}, "2020-01-01 10:00:00", "2021-01-01 10:00:00")
	assert.ErrorIs(t, err, ErrNoSource)
	assert.Zero(t, setter.calls)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNone, KindOf(nil))
	assert.Equal(t, KindCancelled, KindOf(ErrCancelled))
	assert.Equal(t, KindCancelled, KindOf(fmt.Errorf("wrapped: %w", context.Canceled)))
	assert.Equal(t, KindValidation, KindOf(fmt.Errorf("x: %w", source.ErrInvalidRef)))
	assert.Equal(t, KindIO, KindOf(errors.New("disk on fire")))
	assert.Equal(t, "validation", KindValidation.String())
}

func TestDescribe(t *testing.T) {
	assert.Empty(t, Describe(nil))
	assert.NotContains(t, Describe(transform.ErrInvalidOctet), "error.")
	assert.Contains(t, Describe(errors.New("disk on fire")), "disk on fire")
	assert.Equal(t, Describe(ErrCancelled), Describe(context.Canceled))
}
