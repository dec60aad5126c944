// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/halmatrix/fcmgen/internal/config"
	"github.com/halmatrix/fcmgen/internal/source"
	"github.com/halmatrix/fcmgen/internal/watch"
	"github.com/halmatrix/fcmgen/pkg/matrix"

	"github.com/spf13/cobra"
)

var (
	errMatrixOutOfDate   = errors.New("compatibility matrix is out of date")
	errCheckNeedsOutput  = errors.New("--check requires an output file")
	errWatchNeedsFile    = errors.New("--watch requires an input file, not stdin")
	errCheckAndWatchBoth = errors.New("--check and --watch cannot be used together")
)

type generateFlagValues struct {
	output string
	check  bool
	watch  bool
}

// generateRequest is one resolved generation run.
type generateRequest struct {
	input  string
	output string
	check  bool
}

func newGenerateCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &generateFlagValues{}

	cmd := &cobra.Command{
		Use:     "generate [input]",
		Aliases: []string{"gen"},
		Short:   "Generate the framework compatibility matrix",
		Long: `Generate the framework compatibility matrix from an identifier list.

The input defaults to 'input' from config.cue ("fqnames.txt"); "-" reads
standard input. Without -o the document goes to standard output. Files are
replaced atomically and nothing is written when any line is malformed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, app, rootFlags, flags, args)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default from config, \"-\" or empty for stdout)")
	cmd.Flags().BoolVar(&flags.check, "check", false, "verify that the output file is up to date instead of writing it")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "regenerate whenever the input file changes")

	return cmd
}

func runGenerate(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, flags *generateFlagValues, args []string) error {
	ctx := cmd.Context()
	cfg := app.loadConfig(ctx, rootFlags)

	req := generateRequest{input: cfg.Input, output: cfg.Output, check: flags.check}
	if len(args) == 1 {
		req.input = args[0]
	}
	if cmd.Flags().Changed("output") {
		req.output = flags.output
	}

	switch {
	case flags.check && flags.watch:
		return usageError(errCheckAndWatchBoth)
	case flags.check && (req.output == "" || req.output == source.Stdio):
		return usageError(errCheckNeedsOutput)
	case flags.watch && req.input == source.Stdio:
		return usageError(errWatchNeedsFile)
	}

	if !flags.watch {
		if err := app.generate(ctx, req); err != nil {
			return app.fail(cmd, cfg, exitCodeFor(err), err)
		}
		return nil
	}

	return runGenerateWatch(cmd, app, cfg, req)
}

// runGenerateWatch generates once, then regenerates on every settled change
// to the input until the context is cancelled. Failures are reported and the
// watcher keeps running so the user can fix the input and save again.
func runGenerateWatch(cmd *cobra.Command, app *App, cfg *config.Config, req generateRequest) error {
	if err := app.generate(cmd.Context(), req); err != nil {
		app.logger.Error("initial generation failed", "error", formatErrorForDisplay(err, cfg.UI.Verbose))
	}

	w, err := watch.New(watch.Config{
		Path:     req.input,
		Debounce: cfg.Watch.Debounce.Duration(),
		Logger:   app.logger,
		OnChange: func(ctx context.Context) error {
			if genErr := app.generate(ctx, req); genErr != nil {
				app.logger.Error("generation failed", "error", formatErrorForDisplay(genErr, cfg.UI.Verbose))
			}
			return nil
		},
	})
	if err != nil {
		return app.fail(cmd, cfg, ExitFailure, fmt.Errorf("failed to start watcher: %w", err))
	}

	app.logger.Info("watching for changes (Ctrl+C to stop)", "input", req.input)
	return w.Run(cmd.Context())
}

// generate runs the whole pipeline once: read, build, render, then write
// or compare. Errors come back classified for display.
func (app *App) generate(ctx context.Context, req generateRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	lines, err := source.ReadFile(req.input, app.stdin)
	if err != nil {
		return inputError(req.input, err)
	}

	b, err := matrix.Build(lines)
	if err != nil {
		return buildError(req.input, err)
	}
	doc := b.Render()
	app.logger.Debug("matrix built", "input", displayPath(req.input), "lines", len(lines), "entries", b.Len())

	if req.check {
		return app.checkOutput(req.output, doc)
	}

	if err := source.Write(req.output, doc, app.stdout); err != nil {
		return outputError(req.output, err)
	}
	if req.output != "" && req.output != source.Stdio {
		app.logger.Info("wrote compatibility matrix", "output", req.output, "entries", b.Len())
	}
	return nil
}

// checkOutput compares the existing output file with doc.
func (app *App) checkOutput(output, doc string) error {
	current, err := os.ReadFile(output)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return outputError(output, err)
	}
	if err != nil || string(current) != doc {
		return staleError(output)
	}
	app.logger.Info("compatibility matrix is up to date", "output", output)
	return nil
}

// exitCodeFor maps a classified generation error to the process exit code.
func exitCodeFor(err error) int {
	if errors.Is(err, errMatrixOutOfDate) {
		return ExitStale
	}
	return ExitFailure
}
