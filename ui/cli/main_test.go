// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.
package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cfgscrub/cfgscrub/internal/core"
	"github.com/cfgscrub/cfgscrub/internal/transform"
)

const sampleConfig = "interface X\nip address 192.168.5.1\n!\ndescription test\nenable secret hunter2\n"

// isolate points every config location at a fresh directory and returns
// it. The working directory moves there as well.
func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "xdg"))
	t.Setenv("HOME", tmp)
	t.Setenv("APPDATA", filepath.Join(tmp, "xdg"))
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return tmp
}

func writeSample(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "r1.cfg")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	_ = teardownServices(root, nil)
	return out.String(), errOut.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestStripCommand(t *testing.T) {
	tmp := isolate(t)
	src := writeSample(t, tmp)
	outDir := filepath.Join(tmp, "out")

	stdout, _, err := runCLI(t, "", "strip", src, "--output.dir", outDir)
	if err != nil {
		t.Fatalf("strip: %v", err)
	}
	got := readFile(t, filepath.Join(outDir, "clean_config.txt"))
	want := "interface X\nip address 192.168.5.1\ndescription test\nenable secret hunter2\n"
	if got != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", got, want)
	}
	if !strings.Contains(stdout, "clean_config.txt") {
		t.Fatalf("stdout should name the output file: %q", stdout)
	}
}

func TestReplaceCommands(t *testing.T) {
	tmp := isolate(t)
	src := writeSample(t, tmp)

	if _, _, err := runCLI(t, "", "replace", src, "--octet", "10"); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got := readFile(t, filepath.Join(tmp, "catalog_config.txt"))
	if got != "interface X\nip address 192.168.10.1\ndescription test\nenable secret hunter2" {
		t.Fatalf("unexpected catalog output %q", got)
	}

	if _, _, err := runCLI(t, "", "replace", src, "-o", "7", "--keep-markers"); err != nil {
		t.Fatalf("replace --keep-markers: %v", err)
	}
	got = readFile(t, filepath.Join(tmp, "config_with_exclamations.txt"))
	if !strings.Contains(got, "192.168.7.1\n!\n") {
		t.Fatalf("markers must be kept: %q", got)
	}
}

func TestReplacePromptsForOctet(t *testing.T) {
	tmp := isolate(t)
	src := writeSample(t, tmp)
	if _, _, err := runCLI(t, "42\n", "replace", src); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got := readFile(t, filepath.Join(tmp, "catalog_config.txt")); !strings.Contains(got, "192.168.42.1") {
		t.Fatalf("prompted octet not applied: %q", got)
	}
}

func TestReplaceInvalidOctet(t *testing.T) {
	tmp := isolate(t)
	src := writeSample(t, tmp)

	_, stderr, err := runCLI(t, "", "replace", src, "--octet", "1a")
	if !errors.Is(err, transform.ErrInvalidOctet) {
		t.Fatalf("expected ErrInvalidOctet, got %v", err)
	}
	if stderr == "" {
		t.Fatalf("expected a warning line on stderr")
	}
	if _, statErr := os.Stat(filepath.Join(tmp, "catalog_config.txt")); !os.IsNotExist(statErr) {
		t.Fatalf("no file may be written on validation failure")
	}
}

func TestEnumerateCommand(t *testing.T) {
	tmp := isolate(t)
	src := filepath.Join(tmp, "one.cfg")
	if err := os.WriteFile(src, []byte("ip 192.168.0.9\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := runCLI(t, "", "enumerate", src); err != nil {
		t.Fatalf("enumerate: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(readFile(t, filepath.Join(tmp, "replaced_third_octet.txt")), "\n"), "\n")
	if len(lines) != 25 || lines[0] != "ip 192.168.1.9" || lines[24] != "ip 192.168.25.9" {
		t.Fatalf("unexpected enumeration: %d lines, first %q", len(lines), lines[0])
	}

	if _, _, err := runCLI(t, "", "enumerate", src, "--from", "9", "--to", "3"); !errors.Is(err, transform.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if _, _, err := runCLI(t, "", "enumerate", src, "--to", "9223372036854775807"); !errors.Is(err, transform.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for an unbounded range, got %v", err)
	}

	if _, _, err := runCLI(t, "", "enumerate", src, "--from", "0", "--to", "0"); err != nil {
		t.Fatalf("enumerate 0..0: %v", err)
	}
	if got := readFile(t, filepath.Join(tmp, "replaced_third_octet.txt")); got != "ip 192.168.0.9\n" {
		t.Fatalf("0..0 should write a single copy, got %q", got)
	}
}

func TestPasswordCommand(t *testing.T) {
	tmp := isolate(t)
	src := writeSample(t, tmp)

	if _, _, err := runCLI(t, "hunter2\ns3cret\n", "password", src); err != nil {
		t.Fatalf("password: %v", err)
	}
	got := readFile(t, filepath.Join(tmp, "config_with_newpassword.txt"))
	if !strings.Contains(got, "enable secret s3cret") || strings.Contains(got, "hunter2") {
		t.Fatalf("password not replaced: %q", got)
	}
}

func TestPasswordFlagsAllowEmptyNew(t *testing.T) {
	tmp := isolate(t)
	src := writeSample(t, tmp)

	if _, _, err := runCLI(t, "", "password", src, "--old", "hunter2", "--new", ""); err != nil {
		t.Fatalf("password: %v", err)
	}
	got := readFile(t, filepath.Join(tmp, "config_with_newpassword.txt"))
	if !strings.Contains(got, "enable secret \n") {
		t.Fatalf("old password should be deleted: %q", got)
	}
}

func TestPasswordCancelledPrompt(t *testing.T) {
	tmp := isolate(t)
	src := writeSample(t, tmp)

	_, stderr, err := runCLI(t, "hunter2\n", "password", src)
	if err != nil {
		t.Fatalf("a cancelled prompt is not an error: %v", err)
	}
	if !strings.Contains(stderr, "ancel") {
		t.Fatalf("expected a cancellation notice, got %q", stderr)
	}
	if _, statErr := os.Stat(filepath.Join(tmp, "config_with_newpassword.txt")); !os.IsNotExist(statErr) {
		t.Fatalf("no file may be written after cancel")
	}
}

func TestTouchCommand(t *testing.T) {
	tmp := isolate(t)
	src := writeSample(t, tmp)

	stdout, _, err := runCLI(t, "", "touch", src, "--created", "2020-01-02 03:04:05", "--modified", "2021-06-07 08:09:10")
	if err != nil {
		t.Fatalf("touch: %v", err)
	}
	fi, err := os.Stat(src)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2021, 6, 7, 8, 9, 10, 0, time.Local)
	if fi.ModTime().Unix() != want.Unix() {
		t.Fatalf("mtime %v, want %v", fi.ModTime(), want)
	}
	if !strings.Contains(stdout, "2021-06-07 08:09:10") {
		t.Fatalf("stdout should report the new time: %q", stdout)
	}

	_, _, err = runCLI(t, "", "touch", src, "--created", "2020-01-02", "--modified", "2021-06-07 08:09:10")
	if core.KindOf(err) != core.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMissingSourceIsIOError(t *testing.T) {
	tmp := isolate(t)
	_, stderr, err := runCLI(t, "", "strip", filepath.Join(tmp, "nope.cfg"))
	if core.KindOf(err) != core.KindIO || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected io error, got %v", err)
	}
	if stderr == "" {
		t.Fatalf("expected an error line on stderr")
	}
}

func TestHistoryCommand(t *testing.T) {
	tmp := isolate(t)
	src := writeSample(t, tmp)

	_, stderr, err := runCLI(t, "", "history")
	if err != nil || stderr == "" {
		t.Fatalf("disabled history should print a notice: %v %q", err, stderr)
	}

	t.Setenv("CFGSCRUB_HISTORY_ENABLED", "true")
	t.Setenv("CFGSCRUB_HISTORY_DSN", filepath.Join(tmp, "db", "history.db"))
	if _, _, err := runCLI(t, "", "strip", src); err != nil {
		t.Fatalf("strip: %v", err)
	}
	if _, _, err := runCLI(t, "", "replace", src, "--octet", "x"); err == nil {
		t.Fatalf("expected validation error")
	}
	stdout, _, err := runCLI(t, "", "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(stdout, "strip") || !strings.Contains(stdout, "clean_config.txt") {
		t.Fatalf("history should list the strip run: %q", stdout)
	}
	if strings.Contains(stdout, "replace") {
		t.Fatalf("validation failures are not recorded: %q", stdout)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	isolate(t)

	stdout, _, err := runCLI(t, "", "config", "init")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(stdout, "cfgscrub.yaml") {
		t.Fatalf("init should print the path: %q", stdout)
	}
	if _, _, err := runCLI(t, "", "config", "init"); err == nil {
		t.Fatalf("second init without --force must fail")
	}

	stdout, _, err = runCLI(t, "", "config", "show", "--output.dir", "results")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(stdout, "dir: results") || !strings.Contains(stdout, "language: en") {
		t.Fatalf("unexpected config dump: %q", stdout)
	}
}

func TestExplicitConfigFile(t *testing.T) {
	tmp := isolate(t)
	src := writeSample(t, tmp)
	cfgPath := filepath.Join(tmp, "custom.yaml")
	if err := os.WriteFile(cfgPath, []byte("output:\n  dir: from-file\n  overwrite: false\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := runCLI(t, "", "--config", cfgPath, "strip", src); err != nil {
		t.Fatalf("strip: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmp, "from-file", "clean_config.txt")); err != nil {
		t.Fatalf("output.dir from file not used: %v", err)
	}
	if _, _, err := runCLI(t, "", "--config", cfgPath, "strip", src); core.KindOf(err) != core.KindIO {
		t.Fatalf("overwrite=false must refuse the second write, got %v", err)
	}

	if _, _, err := runCLI(t, "", "--config", filepath.Join(tmp, "missing.yaml"), "strip", src); err == nil {
		t.Fatalf("a missing --config file must fail")
	}
}

func TestOpenCommand(t *testing.T) {
	isolate(t)
	var gotDir string
	prev := openOutputDir
	openOutputDir = func(r *core.Runner) (string, error) {
		gotDir = r.Output.Dir
		return "/srv/results", nil
	}
	t.Cleanup(func() { openOutputDir = prev })

	stdout, _, err := runCLI(t, "", "open", "--output.dir", "results")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if gotDir != "results" {
		t.Fatalf("runner should use output.dir, got %q", gotDir)
	}
	if !strings.Contains(stdout, "/srv/results") {
		t.Fatalf("expected opened directory in output, got %q", stdout)
	}

	openOutputDir = func(*core.Runner) (string, error) { return "", errors.New("no file manager") }
	_, stderr, err := runCLI(t, "", "open")
	if err == nil || !strings.Contains(stderr, "no file manager") {
		t.Fatalf("expected reported failure, got err=%v stderr=%q", err, stderr)
	}
}

func TestVersionCommand(t *testing.T) {
	isolate(t)
	stdout, _, err := runCLI(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(stdout, "cfgscrub ") {
		t.Fatalf("unexpected version output %q", stdout)
	}
}
