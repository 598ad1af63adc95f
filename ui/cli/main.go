// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the root command, loads configuration and the shared
// services, and hands control to the TUI when no subcommand is given.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cfgscrub/cfgscrub/buildvars"
	"github.com/cfgscrub/cfgscrub/internal/config"
	"github.com/cfgscrub/cfgscrub/internal/core"
	"github.com/cfgscrub/cfgscrub/internal/filetime"
	"github.com/cfgscrub/cfgscrub/internal/history"
	"github.com/cfgscrub/cfgscrub/internal/i18n"
	"github.com/cfgscrub/cfgscrub/internal/logging"
	"github.com/cfgscrub/cfgscrub/internal/output"
	"github.com/cfgscrub/cfgscrub/internal/source"
	"github.com/cfgscrub/cfgscrub/internal/tui"
)

var version = "dev"   // this will be set by the linker
var gitCommit = "dev" // set at build time with the short commit SHA
var buildDate = ""    // set at build time (RFC3339)

// Services shared by the commands, set up in setupDefaultServices.
var (
	appConfig    config.Config
	historyStore *history.Store
	logFile      io.Closer
)

func setupDefaultServices(cmd *cobra.Command, args []string) error {
	configPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	appConfig, err = config.LoadConfig[config.Config](cmd, config.Defaults(), configPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if appConfig.Language == "" {
		appConfig.Language = "en"
	}
	i18n.Init(appConfig.Language)

	if err := logging.SetLevel(appConfig.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level %q: %w", appConfig.Log.Level, err)
	}
	switch {
	case appConfig.Log.File != "":
		f, err := os.OpenFile(appConfig.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("could not open log file: %w", err)
		}
		logFile = f
		logging.SetOutput(f)
	case cmd == cmd.Root():
		// Log lines would corrupt the TUI screen.
		logging.Discard()
	default:
		logging.SetOutput(cmd.ErrOrStderr())
	}

	historyStore = nil
	if appConfig.History.Enabled {
		h := appConfig.History
		if h.Type == "sqlite" && !strings.Contains(h.DSN, ":memory:") {
			if err := os.MkdirAll(filepath.Dir(h.DSN), 0o755); err != nil {
				return errors.New(i18n.T("cli.error_history", err))
			}
		}
		historyStore, err = history.Open(cmd.Context(), h.Type, h.DSN)
		if err != nil {
			return errors.New(i18n.T("cli.error_history", err))
		}
		logging.Debugf("history enabled (%s)", h.Type)
	}
	return nil
}

func teardownServices(cmd *cobra.Command, args []string) error {
	if historyStore != nil {
		if err := historyStore.Close(); err != nil {
			logging.Warnf("could not close history: %v", err)
		}
		historyStore = nil
	}
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
		logging.SetOutput(os.Stderr)
	}
	return nil
}

// recorder returns the history store as a core.Recorder, or nil when
// history is disabled.
func recorder() core.Recorder {
	if historyStore == nil {
		return nil
	}
	return historyStore
}

func newRunner(cfg config.Config) *core.Runner {
	return &core.Runner{
		Loader: source.NewLoader(source.Options{
			KnownHosts: cfg.Remote.KnownHosts,
			Identity:   cfg.Remote.Identity,
			Timeout:    cfg.Remote.TimeoutDuration(source.DefaultTimeout),
		}),
		Output:  output.Writer{Dir: cfg.Output.Dir, Overwrite: cfg.Output.Overwrite},
		History: recorder(),
		Times:   filetime.Probe(),
	}
}

// Execute runs the CLI entrypoint. The main package should call this
// function and handle process exit.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	// PersistentPostRunE is skipped when a command fails.
	_ = teardownServices(rootCmd, nil)
	var r reportedError
	if err != nil && !errors.As(err, &r) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

func getConfigPathFromCli(cmd *cobra.Command) (string, error) {
	if !cmd.Flags().Changed("config") {
		return "", nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return "", fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return "", nil
	}
	// Make sure the user-provided file exists to avoid unwanted behavior.
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return path, nil
}

// NewRootCmd creates and configures a new root cobra command.
// This function is used to create the main application command as well as
// fresh instances for isolated testing.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cfgscrub",
		Short: "cfgscrub cleans up and rewrites router configuration exports.",
		Long: `cfgscrub turns Cisco style configuration exports into clean copies.
It strips comment lines, rewrites 192.168.x.y addresses, substitutes
passwords and can edit file timestamps. Every result is written under a
fixed file name in the output directory.

Running without a subcommand will launch the interactive TUI.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  setupDefaultServices,
		PersistentPostRunE: teardownServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, _ := os.Getwd()
			return tui.Run(tui.Options{
				Operator:   newRunner(appConfig),
				History:    historyLister(),
				StartDir:   wd,
				Version:    compositeVersion(),
				OnLanguage: saveLanguage(cmd),
			})
		},
	}
	cmd.Version = compositeVersion()

	cmd.PersistentFlags().String("config", "", "config file (default is <user config dir>/cfgscrub/cfgscrub.yaml)")
	cmd.PersistentFlags().String("output.dir", ".", "Directory result files are written to")
	cmd.PersistentFlags().String("language", "en", `Interface language ("en", "ru")`)
	cmd.PersistentFlags().String("log.level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newStripCmd(),
		newReplaceCmd(),
		newEnumerateCmd(),
		newPasswordCmd(),
		newTouchCmd(),
		newOpenCmd(),
		newHistoryCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return cmd
}

// historyLister keeps a nil store from becoming a non-nil interface.
func historyLister() tui.HistoryLister {
	if historyStore == nil {
		return nil
	}
	return historyStore
}

// saveLanguage persists a language picked in the TUI to the config file in use.
func saveLanguage(cmd *cobra.Command) func(string) error {
	return func(lang string) error {
		appConfig.Language = lang
		if path, _ := getConfigPathFromCli(cmd); path != "" {
			return config.WriteConfigTo(&appConfig, path)
		}
		_, err := config.WriteConfigFile(&appConfig, false)
		return err
	}
}

func compositeVersion() string {
	v, c, d := resolveBuildVersion(nil)
	out := v
	if c != "" && c != "dev" {
		out = out + " (" + c + ")"
	}
	if d != "" {
		out = out + " built: " + d
	}
	return out
}

// resolveBuildVersion prefers ldflags values, then module build info.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault(version)
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	if info == nil {
		if local, ok := debug.ReadBuildInfo(); ok {
			info = local
		}
	}
	if info != nil {
		if resolvedVersion == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" && resolvedCommit == "dev" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" && resolvedDate == "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	// Show the commit when nothing better is known.
	if resolvedVersion == "dev" && resolvedCommit != "dev" && resolvedCommit != "" {
		resolvedVersion = resolvedCommit
	}
	return resolvedVersion, resolvedCommit, resolvedDate
}
