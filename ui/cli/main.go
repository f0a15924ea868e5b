// Copyright (c) 2026 ToeiRei
// Assetdesk - asset tracking dashboard
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface for Assetdesk using the Cobra
// library. It defines the root command, the shared service setup that runs
// before every subcommand, and the main entry point for execution.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/toeirei/assetdesk/buildvars"
	"github.com/toeirei/assetdesk/internal/api"
	"github.com/toeirei/assetdesk/internal/config"
	"github.com/toeirei/assetdesk/internal/i18n"
	"github.com/toeirei/assetdesk/internal/logging"
	"github.com/toeirei/assetdesk/internal/session"
	"github.com/toeirei/assetdesk/internal/tui"
)

var version = "dev"   // this will be set by the linker
var gitCommit = "dev" // set at build time with the short commit SHA
var buildDate = ""    // set at build time (RFC3339)
var cfgFile string
var verbose bool

var appConfig config.Config
var sessionStore session.Store
var service api.Service

func setupDefaultServices(cmd *cobra.Command, args []string) error {
	optionalConfigPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	// First run: persist the defaults so users have a file to edit.
	if optionalConfigPath == nil {
		created, err := config.EnsureDefaultFile()
		if err != nil {
			logging.Warnf("could not write default config file: %v", err)
		} else if created {
			logging.Infof("wrote default config to user config path")
		}
	}

	appConfig, err = config.LoadConfig[config.Config](cmd, config.Defaults(), optionalConfigPath)
	if err != nil {
		// debug must still run so users can inspect a broken config.
		if cmd.Name() != "debug" {
			return fmt.Errorf("error loading config: %w", err)
		}
		logging.Errorf("the config appears to be invalid: %v", err)
		appConfig, _ = config.LoadConfig[config.Config](nil, config.Defaults(), nil)
	}

	logging.SetLevel(appConfig.Log.Level)
	if verbose {
		logging.SetDebug(true)
	}
	i18n.Init(appConfig.Language)

	closeServices()
	store, err := session.Open(appConfig.Session)
	if err != nil {
		return fmt.Errorf("could not open session store: %w", err)
	}
	sessionStore = store
	service = api.New(appConfig.API.BaseURL, store,
		api.WithTimeout(appConfig.API.Timeout()),
		api.WithSessionTTL(appConfig.Session.TTL()),
		api.WithUserAgent("assetdesk/"+buildvars.VersionOrDefault(version)),
	)
	logging.Debugf("using %s with %s session backend", appConfig.API.BaseURL, appConfig.Session.Backend)
	return nil
}

// closeServices releases the session store opened by setupDefaultServices.
func closeServices() {
	if sessionStore == nil {
		return
	}
	if err := session.Close(sessionStore); err != nil {
		logging.Warnf("could not close session store: %v", err)
	}
	sessionStore = nil
}

// Execute runs the CLI entrypoint. The main package should call this
// function and handle process exit.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer closeServices()

	return NewRootCmd().ExecuteContext(ctx)
}

// explain turns a missing credential into a hint for the user.
func explain(err error) error {
	if errors.Is(err, api.ErrUnauthenticated) {
		return fmt.Errorf("%w, %s", api.ErrUnauthenticated, i18n.T("cli.not_logged_in"))
	}
	return err
}

func applyDefaultFlags(cmd *cobra.Command) {
	defaults := config.Defaults()
	flags := cmd.PersistentFlags()
	if flags.Lookup("api.base_url") == nil {
		flags.String("api.base_url", defaults["api.base_url"].(string), "Base URL of the asset API")
	}
	if flags.Lookup("session.backend") == nil {
		flags.String("session.backend", defaults["session.backend"].(string), "Where the credential is kept (file, sqlite, memory)")
	}
	if flags.Lookup("language") == nil {
		flags.String("language", defaults["language"].(string), `Interface language ("en", "id")`)
	}
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	// Only proceed if the user has explicitly set the --config flag.
	if cmd.Flags().Changed("config") {
		path, err := cmd.Flags().GetString("config")
		if err != nil {
			return nil, fmt.Errorf("could not read --config flag: %w", err)
		}
		if path == "" {
			return nil, nil
		}

		// Make sure the user-provided file exists to avoid unwanted behavior.
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
		}
		return &path, nil
	}
	return nil, nil
}

// NewRootCmd creates and configures a new root cobra command.
// It is used for the main application as well as for isolated tests.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assetdesk",
		Short: "Assetdesk is a terminal client for the asset tracking API.",
		Long: `Assetdesk lists, creates, edits and deletes tracked assets and shows
how they are distributed over statuses and locations. The remote API owns
all data; assetdesk only keeps your login for up to seven days.

Running without a subcommand will launch the interactive TUI.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupDefaultServices,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The TUI owns the terminal, so logs go to a file while it runs.
			restore, err := logging.RedirectToFile(appConfig.Log.File)
			if err != nil {
				logging.Warnf("could not redirect logs: %v", err)
			}
			defer restore()
			return tui.Run(cmd.Context(), service)
		},
	}

	v, c, d := resolveBuildVersion(nil)
	compositeVersion := v
	if c != "" && c != "dev" {
		compositeVersion = compositeVersion + " (" + c + ")"
	}
	if d != "" {
		compositeVersion = compositeVersion + " built: " + d
	}
	cmd.Version = compositeVersion

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	applyDefaultFlags(cmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			resolvedVersion, resolvedCommit, resolvedDate := resolveBuildVersion(nil)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %s\n", resolvedVersion)
			fmt.Fprintf(out, "commit: %s\n", resolvedCommit)
			if resolvedDate != "" {
				fmt.Fprintf(out, "built: %s\n", resolvedDate)
			}
		},
	}

	cmd.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newAssetCmd(),
		newLookupCmd("status", "List asset statuses", listStatusRefs),
		newLookupCmd("location", "List asset locations", listLocationRefs),
		newStatsCmd(),
		newExportCmd(),
		newMockServerCmd(),
		newDebugCmd(),
		versionCmd,
	)

	return cmd
}

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If `info` is nil, it reads build info from
// the runtime.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault(version)
	resolvedCommit := gitCommit
	if buildvars.Commit != "" {
		resolvedCommit = buildvars.Commit
	}
	resolvedDate := buildDate
	if buildvars.Date != "" {
		resolvedDate = buildvars.Date
	}

	var ok bool
	if info == nil {
		if infoLocal, found := debug.ReadBuildInfo(); found {
			info = infoLocal
			ok = true
		}
	} else {
		ok = true
	}

	if ok && info != nil {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		// Some build paths only record our module as a dependency.
		if (resolvedVersion == "dev" || resolvedVersion == "(devel)") && info.Deps != nil {
			for _, dep := range info.Deps {
				if dep.Path == "github.com/toeirei/assetdesk" && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}

		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	if resolvedVersion == "dev" && gitCommit != "dev" && gitCommit != "" {
		resolvedVersion = gitCommit
	}

	return resolvedVersion, resolvedCommit, resolvedDate
}
