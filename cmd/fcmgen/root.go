// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the fcmgen command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "fcmgen",
		Short: "Generate framework compatibility matrices from HAL identifier lists",
		Long: TitleStyle.Render("fcmgen") + SubtitleStyle.Render(" - framework compatibility matrix generator") + `

fcmgen reads a list of fully-qualified HAL interface identifiers, one per
line, and writes the framework compatibility matrix XML declaring every
HAL package, its versions, interfaces and instances.

Versioned (HIDL) identifiers look like:
  android.hardware.foo@1.0::IFoo/default
Unversioned (AIDL) identifiers look like:
  android.hardware.bar.IBar/default

Blank lines and lines starting with '#' are ignored. A trailing ' @N'
pin annotation is stripped.

` + SubtitleStyle.Render("Examples:") + `
  fcmgen generate fqnames.txt                 Print the matrix to stdout
  fcmgen generate fqnames.txt -o fcm.xml      Write the matrix to a file
  fcmgen generate -o fcm.xml --check          Fail if fcm.xml is out of date
  fcmgen generate -o fcm.xml --watch          Regenerate whenever the input changes
  fcmgen entries fqnames.txt                  Summarize the matrix entries`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is $HOME/.config/fcmgen/config.cue)")

	rootCmd.AddCommand(newGenerateCommand(app, flags))
	rootCmd.AddCommand(newEntriesCommand(app, flags))
	rootCmd.AddCommand(newConfigCommand(app, flags))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})

	// fang overrides rootCmd.Version, so the version goes through fang.WithVersion.
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(ExitFailure)
	}
}
