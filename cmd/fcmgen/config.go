// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/halmatrix/fcmgen/internal/config"
	"github.com/halmatrix/fcmgen/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `fcmgen config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage fcmgen configuration",
		Long: `Manage fcmgen configuration.

Configuration is stored in:
  - Linux: ~/.config/fcmgen/config.cue
  - macOS: ~/Library/Application Support/fcmgen/config.cue
  - Windows: %APPDATA%\fcmgen\config.cue

A config.cue in the working directory is used when the user file is absent.
Every key can be overridden with an FCMGEN_ environment variable, for
example FCMGEN_INPUT or FCMGEN_UI_VERBOSE.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app, rootFlags)
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app, rootFlags)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: rootFlags.configPath})
			if err != nil {
				return app.fail(cmd, config.DefaultConfig(), ExitFailure, err)
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App, rootFlags *rootFlagValues) error {
	opts := config.LoadOptions{ConfigFilePath: rootFlags.configPath}
	cfg, err := app.Config.Load(cmd.Context(), opts)
	if err != nil {
		return app.fail(cmd, config.DefaultConfig(), ExitFailure, err)
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	w := app.stdout

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if cfgPath, resolveErr := config.Resolve(opts); resolveErr == nil && cfgPath != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	output := valueStyle.Render(cfg.Output)
	if cfg.Output == "" {
		output = SubtitleStyle.Render("(stdout)")
	}
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("input"), valueStyle.Render(cfg.Input))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("output"), output)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("watch"))
	fmt.Fprintf(w, "  debounce: %s\n", valueStyle.Render(string(cfg.Watch.Debounce)))

	return nil
}

func initConfig(app *App, force bool) error {
	cfgPath, err := config.CreateDefaultConfig(force)
	if err != nil {
		if errors.Is(err, config.ErrConfigExists) {
			return issue.NewErrorContext().
				WithOperation("create config").
				WithResource(cfgPath).
				WithSuggestion("Use --force to overwrite it").
				Wrap(err).
				BuildError()
		}
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), cfgPath)
	return nil
}

func showConfigPath(app *App, rootFlags *rootFlagValues) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgFile, err := config.FilePath()
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(app.stdout, "Config file: %s\n", cfgFile)

	active, err := config.Resolve(config.LoadOptions{ConfigFilePath: rootFlags.configPath})
	if err == nil && active != "" {
		fmt.Fprintf(app.stdout, "Active config: %s\n", active)
	}
	return nil
}
