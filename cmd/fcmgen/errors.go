// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/halmatrix/fcmgen/internal/config"
	"github.com/halmatrix/fcmgen/internal/issue"
	"github.com/halmatrix/fcmgen/internal/source"
	"github.com/halmatrix/fcmgen/pkg/matrix"

	"github.com/spf13/cobra"
)

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// fail renders err and its catalog help on stderr, silences Cobra's own
// error printing and returns an ExitError carrying code.
func (app *App) fail(cmd *cobra.Command, cfg *config.Config, code int, err error) error {
	fmt.Fprintln(app.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, cfg.UI.Verbose))

	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.IssueID != 0 {
		if entry := issue.Get(ae.IssueID); entry != nil {
			rendered, renderErr := entry.Render(issueStyle(cfg.UI.ColorScheme))
			if renderErr != nil {
				app.logger.Warn("failed to render issue catalog entry", "issueID", ae.IssueID, "error", renderErr)
			} else {
				fmt.Fprint(app.stderr, rendered)
			}
		}
	}

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return &ExitError{Code: code, Err: err}
}

// issueStyle maps the configured color scheme to a glamour style name.
// Auto follows the dark default used for all other terminal output.
func issueStyle(cs config.ColorScheme) string {
	if cs == config.ColorSchemeLight {
		return "light"
	}
	return "dark"
}

// displayPath names an input or output path in messages.
func displayPath(path string) string {
	if path == source.Stdio {
		return "<stdin>"
	}
	return path
}

// inputError classifies a failure to read the identifier list.
func inputError(input string, err error) error {
	ctx := issue.NewErrorContext().
		WithOperation("read identifier list").
		WithResource(displayPath(input)).
		Wrap(err)
	if errors.Is(err, source.ErrInputNotFound) {
		ctx = ctx.WithIssue(issue.InputNotFoundId).
			WithSuggestion("Pass the identifier list as the first argument").
			WithSuggestion("Or set 'input' in config.cue or FCMGEN_INPUT")
	}
	return ctx.BuildError()
}

// buildError classifies a failure to assemble the matrix. Malformed lines
// carry their position as input:line.
func buildError(input string, err error) error {
	ctx := issue.NewErrorContext().WithOperation("generate compatibility matrix").Wrap(err)

	resource := displayPath(input)
	var lineErr *matrix.LineError
	if errors.As(err, &lineErr) {
		resource = fmt.Sprintf("%s:%d", resource, lineErr.Line)
	}
	ctx = ctx.WithResource(resource)

	switch {
	case errors.Is(err, matrix.ErrIdentityMismatch):
		ctx = ctx.WithIssue(issue.InternalInvariantId)
	default:
		ctx = ctx.WithIssue(issue.MalformedIdentifierId).
			WithSuggestion("Fix or remove the offending line; comments start with '#'")
	}
	return ctx.BuildError()
}

// outputError classifies a failure to write the matrix.
func outputError(output string, err error) error {
	return issue.NewErrorContext().
		WithOperation("write compatibility matrix").
		WithResource(output).
		WithIssue(issue.OutputWriteFailedId).
		WithSuggestion("Check that the output directory exists and is writable").
		Wrap(err).
		BuildError()
}

// staleError reports an output file that differs from the generated matrix.
func staleError(output string) error {
	return issue.NewErrorContext().
		WithOperation("check compatibility matrix").
		WithResource(output).
		WithIssue(issue.MatrixOutOfDateId).
		WithSuggestion("Run 'fcmgen generate' without --check to refresh it").
		Wrap(errMatrixOutOfDate).
		BuildError()
}

// usageError reports an invalid flag combination.
func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Err: err}
}
