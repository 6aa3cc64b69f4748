// Copyright (c) 2026 Keymaster Team
// Credstore - API credential store
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface (CLI) for credstore using the
// Cobra library. It defines the root command, its persistent flags, the
// service setup shared by every subcommand and the version resolution.

package cli

import (
	"fmt"
	"io"
	"maps"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toeirei/credstore/buildvars"
	"github.com/toeirei/credstore/internal/config"
	"github.com/toeirei/credstore/internal/credentials"
	"github.com/toeirei/credstore/internal/i18n"
	"github.com/toeirei/credstore/internal/logging"
)

var version = "dev"   // this will be set by the linker
var gitCommit = "dev" // set at build time with the short commit SHA
var buildDate = ""    // set at build time (RFC3339)

// demoBadKey is looked up by the root command to show the error path.
const demoBadKey = "some_bad_example"

// setupDefaultServices loads the application config, applies language and
// log level, and opens the process-wide credentials store.
func setupDefaultServices(cmd *cobra.Command, _ []string) error {
	configPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	appConfig, used, err := config.LoadConfig[config.Config](cmd, config.Defaults(), configPath)
	if err != nil {
		return fmt.Errorf("%s: %w", i18n.T("config.error_load"), err)
	}

	if _, ok := i18n.GetAvailableLocales()[appConfig.Language]; !ok {
		logging.Warnf("%s", i18n.T("config.warn_unknown_lang", appConfig.Language, localeList()))
		appConfig.Language = "en"
	}
	i18n.Init(appConfig.Language)
	if err := logging.SetLevel(appConfig.Log.Level); err != nil {
		logging.Warnf("%s", i18n.T("config.error_log_level", err))
	}

	// Persist a default config on first run so users have a file to edit.
	if used == "" {
		defaults := config.DefaultConfig()
		if path, writeErr := config.WriteConfigFile(&defaults, false); writeErr != nil {
			logging.Warnf("%s", i18n.T("config.warn_write_default", writeErr))
		} else {
			logging.Infof("%s", i18n.T("config.wrote_default", path))
		}
	}

	if _, err := credentials.Init(credentials.Options{Dir: appConfig.Credentials.Dir}); err != nil {
		return fmt.Errorf("%s: %w", i18n.T("config.error_init_store"), err)
	}
	return nil
}

// Execute runs the CLI entrypoint. The main package should call this
// function and handle process exit.
func Execute() error {
	return NewRootCmd().Execute()
}

// localeList returns the bundled language tags, sorted and comma-separated.
func localeList() string {
	return strings.Join(slices.Sorted(maps.Keys(i18n.GetAvailableLocales())), ", ")
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	// Only proceed if the user has explicitly set the --config flag.
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	return &path, nil
}

// NewRootCmd creates and configures a new root cobra command with all
// subcommands. Each call returns an independent tree, which keeps tests
// isolated.
func NewRootCmd() *cobra.Command {
	v, c, d := resolveBuildVersion(nil)
	compositeVersion := v
	if c != "" && c != "dev" {
		compositeVersion += " (" + c + ")"
	}
	if d != "" {
		compositeVersion += " built: " + d
	}

	cmd := &cobra.Command{
		Use:   "credstore",
		Short: "credstore keeps named API keys in one local file.",
		Long: `credstore loads API keys from credentials/credentials.json, lets
environment variables override single entries (the variable is the
upper-cased key name) and writes every change straight back to the file.

Running without a subcommand looks up a known-good and a known-bad key
to show how lookups behave.`,
		Version:           compositeVersion,
		SilenceUsage:      true,
		PersistentPreRunE: setupDefaultServices,
		Args:              cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.OutOrStdout())
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.PersistentFlags().String("config", "", "config file (default is $XDG_CONFIG_HOME/credstore/credstore.yaml or ./credstore.yaml)")
	cmd.PersistentFlags().String("dir", "", "directory holding credentials.json (default is <project root>/credentials)")
	cmd.PersistentFlags().String("lang", "en", "output language ("+localeList()+")")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(newGetCmd(), newSetCmd(), newUnsetCmd(), newListCmd(), newPathCmd())
	cmd.AddCommand(newBackupCmd(), newRestoreCmd())

	return cmd
}

// runDemo fetches the first default key and a key that never exists,
// printing the value or the error for each.
func runDemo(w io.Writer) error {
	store, err := credentials.Default()
	if err != nil {
		return err
	}

	names := slices.Sorted(maps.Keys(credentials.DefaultKeys()))
	names = append(names[:1], demoBadKey)
	for _, name := range names {
		value, err := store.Get(name)
		if err != nil {
			fmt.Fprintln(w, err)
			continue
		}
		fmt.Fprintln(w, i18n.T("demo.loaded", name, value))
	}
	return nil
}

// resolveBuildVersion returns version, commit and build date, preferring
// link-time values and falling back to Go build info.
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

	// Without a discovered version, show the commit to aid support.
	if resolvedVersion == "dev" && resolvedCommit != "dev" && resolvedCommit != "" {
		resolvedVersion = resolvedCommit
	}

	return resolvedVersion, resolvedCommit, resolvedDate
}
