// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/halmatrix/fcmgen/internal/config"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: all Cobra command handlers receive an App reference and read
	// configuration, streams and the logger through it.
	App struct {
		Config ConfigProvider
		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer
		logger *log.Logger
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration from explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// rootFlagValues holds the persistent flags shared by every subcommand.
	rootFlagValues struct {
		verbose    bool
		configPath string
	}
)

// NewApp creates an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config: deps.Config,
		stdin:  deps.Stdin,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
		logger: log.NewWithOptions(deps.Stderr, log.Options{
			Prefix: config.AppName,
			Level:  log.InfoLevel,
		}),
	}
}

// loadConfig loads the configuration selected by the root flags. A broken
// config file is reported as a warning and defaults apply, so generation
// still works with a bad user config. Verbose from either source enables
// debug logging.
func (app *App) loadConfig(ctx context.Context, flags *rootFlagValues) *config.Config {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
	if err != nil {
		app.warn(formatErrorForDisplay(err, flags.verbose))
		cfg = config.DefaultConfig()
	}
	if flags.verbose {
		cfg.UI.Verbose = true
	}
	if cfg.UI.Verbose {
		app.logger.SetLevel(log.DebugLevel)
	}
	return cfg
}

func (app *App) warn(msg string) {
	io.WriteString(app.stderr, WarningStyle.Render("Warning: ")+msg+"\n") //nolint:errcheck // best-effort terminal output
}
