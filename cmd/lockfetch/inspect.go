// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strconv"

	"lockfetch-cli/internal/bunlock"
	"lockfetch-cli/internal/convert"
	"lockfetch-cli/pkg/lockfile"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var inspectShapes = []lockfile.Shape{
	lockfile.ShapeNpm,
	lockfile.ShapeGitOrGitHub,
	lockfile.ShapeTarballOrFile,
	lockfile.ShapeWorkspace,
}

// newInspectCommand creates the `lockfetch inspect` command.
func newInspectCommand(app *App) *cobra.Command {
	var listEntries bool

	cmd := &cobra.Command{
		Use:   "inspect [bun.lock]",
		Short: "Summarize lockfile entries by shape without prefetching",
		Long: `Classify every package of a bun text lockfile by the number of values
it holds, without decoding or prefetching anything. Use this to see how many
entries will need the network before running 'lockfetch convert'.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.verboseErrors = app.flags.verbose
			path := bunlock.FileName
			if len(args) == 1 {
				path = args[0]
			}

			doc, err := bunlock.Load(path)
			if err != nil {
				return lockfileError(path, err)
			}

			summary := convert.Inspect(doc.Packages)

			fmt.Fprintln(app.stdout, TitleStyle.Render("Lockfile")+" "+KeyStyle.Render(path)+
				SubtitleStyle.Render(fmt.Sprintf(" (version %d, %d packages)", doc.LockfileVersion, len(doc.Packages))))
			fmt.Fprintln(app.stdout, shapeTable(summary))

			if listEntries {
				fmt.Fprintln(app.stdout, entryTable(summary))
			}

			if summary.Invalid > 0 {
				for _, e := range summary.Entries {
					if e.Err != nil {
						fmt.Fprintln(app.stderr, ErrorStyle.Render("✗ ")+e.Name+": "+e.Err.Error())
					}
				}
				return &ExitError{Code: 1, Err: fmt.Errorf("%d of %d entries have an unexpected shape", summary.Invalid, len(doc.Packages))}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&listEntries, "entries", false, "list every entry with its shape")

	return cmd
}

func shapeTable(s convert.Summary) string {
	t := newTable().Headers("SHAPE", "ENTRIES", "PREFETCH")
	for _, shape := range inspectShapes {
		prefetch := "no"
		if convert.NeedsPrefetch(shape) {
			prefetch = "yes"
		}
		t.Row(shape.String(), strconv.Itoa(s.ByShape[shape]), prefetch)
	}
	if s.Invalid > 0 {
		t.Row("invalid", strconv.Itoa(s.Invalid), "-")
	}
	return t.Render()
}

func entryTable(s convert.Summary) string {
	t := newTable().Headers("NAME", "VALUES", "SHAPE")
	for _, e := range s.Entries {
		shape := e.Shape.String()
		if e.Err != nil {
			shape = "invalid"
		}
		t.Row(e.Name, strconv.Itoa(e.Arity), shape)
	}
	return t.Render()
}

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
}
