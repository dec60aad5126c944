// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/halmatrix/fcmgen/internal/source"
	"github.com/halmatrix/fcmgen/pkg/matrix"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newEntriesCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "entries [input]",
		Short: "Summarize the matrix entries built from an identifier list",
		Long: `Summarize the matrix entries built from an identifier list.

Each row is one HAL entry in document order: its format, package name,
versions and the number of interfaces and instances it declares.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.loadConfig(cmd.Context(), rootFlags)
			input := cfg.Input
			if len(args) == 1 {
				input = args[0]
			}

			lines, err := source.ReadFile(input, app.stdin)
			if err != nil {
				return app.fail(cmd, cfg, ExitFailure, inputError(input, err))
			}
			b, err := matrix.Build(lines)
			if err != nil {
				return app.fail(cmd, cfg, ExitFailure, buildError(input, err))
			}

			renderEntries(app.stdout, b.Entries())
			return nil
		},
	}
}

// renderEntries writes the entry summary table followed by a total line.
func renderEntries(w io.Writer, entries []*matrix.Entry) {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		versions := e.Versions()
		vs := make([]string, len(versions))
		for i, v := range versions {
			vs[i] = v.String()
		}

		ifaces := e.Interfaces()
		instances := 0
		for _, iface := range ifaces {
			instances += iface.Len()
		}

		rows = append(rows, []string{
			e.Scheme.Format(),
			e.Name,
			strings.Join(vs, ", "),
			strconv.Itoa(len(ifaces)),
			strconv.Itoa(instances),
		})
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return cell.Inherit(CmdStyle).Bold(true)
			}
			return cell
		}).
		Headers("FORMAT", "NAME", "VERSIONS", "INTERFACES", "INSTANCES").
		Rows(rows...)

	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, SubtitleStyle.Render(fmt.Sprintf("%d entries", len(entries))))
}
