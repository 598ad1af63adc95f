// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"

	cfg "github.com/cfgscrub/cfgscrub/internal/config"
)

func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("HOME", tmp)
	t.Setenv("APPDATA", tmp)
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

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)

	c, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), "")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.Language != "en" || c.Output.Dir != "." || !c.Output.Overwrite {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.History.Enabled || c.History.Type != "sqlite" {
		t.Fatalf("unexpected history defaults: %+v", c.History)
	}
	if got := c.Remote.TimeoutDuration(time.Second); got != 10*time.Second {
		t.Fatalf("expected 10s timeout, got %v", got)
	}
}

func TestLoadConfig_ReadsExplicitFile(t *testing.T) {
	tmp := isolate(t)
	yaml := "language: ru\noutput:\n  dir: out\n  overwrite: false\nhistory:\n  enabled: true\n  type: postgres\n  dsn: postgresql://user@/db\n"
	file := filepath.Join(tmp, "custom.yaml")
	if err := os.WriteFile(file, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), file)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.Language != "ru" || c.Output.Dir != "out" || c.Output.Overwrite {
		t.Fatalf("file values not applied: %+v", c)
	}
	if !c.History.Enabled || c.History.Type != "postgres" || c.History.DSN != "postgresql://user@/db" {
		t.Fatalf("history not applied: %+v", c.History)
	}
	if c.Log.Level != "info" {
		t.Fatalf("expected default log level to survive, got %q", c.Log.Level)
	}
}

func TestLoadConfig_EnvAndFlagsOverride(t *testing.T) {
	isolate(t)
	t.Setenv("CFGSCRUB_LOG_LEVEL", "debug")
	t.Setenv("CFGSCRUB_OUTPUT_DIR", "from-env")

	cmd := &cobra.Command{}
	cmd.Flags().String("output.dir", "", "")
	if err := cmd.Flags().Set("output.dir", "from-flag"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	c, err := cfg.LoadConfig[cfg.Config](cmd, cfg.Defaults(), "")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.Log.Level != "debug" {
		t.Fatalf("expected env log level, got %q", c.Log.Level)
	}
	if c.Output.Dir != "from-flag" {
		t.Fatalf("expected flag to win over env, got %q", c.Output.Dir)
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	tmp := isolate(t)
	file := filepath.Join(tmp, "broken.yaml")
	if err := os.WriteFile(file, []byte("output: [unclosed\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), file); err == nil {
		t.Fatalf("expected parse error for malformed file")
	}
}

func TestWriteConfigFile_RoundTrip(t *testing.T) {
	isolate(t)

	c := cfg.Config{Language: "ru"}
	c.Output.Dir = "results"
	c.History.Type = "sqlite"

	path, err := cfg.WriteConfigFile(&c, false)
	if err != nil {
		t.Fatalf("WriteConfigFile: %v", err)
	}
	want, err := cfg.GetConfigPath(false)
	if err != nil {
		t.Fatalf("GetConfigPath: %v", err)
	}
	if path != want {
		t.Fatalf("expected %s, got %s", want, path)
	}

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), "")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Language != "ru" || got.Output.Dir != "results" {
		t.Fatalf("written file not picked up: %+v", got)
	}
}

func TestRemoteTimeoutFallback(t *testing.T) {
	for _, in := range []string{"", "soon", "-1s"} {
		r := cfg.Remote{Timeout: in}
		if got := r.TimeoutDuration(3 * time.Second); got != 3*time.Second {
			t.Fatalf("timeout %q: expected fallback, got %v", in, got)
		}
	}
}
