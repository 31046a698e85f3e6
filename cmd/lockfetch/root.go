// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"lockfetch-cli/internal/issue"

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

// NewRootCommand builds the lockfetch command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lockfetch",
		Short: "Turn bun.lock entries into Nix fetcher expressions",
		Long: TitleStyle.Render("lockfetch") + SubtitleStyle.Render(" - Turn bun.lock entries into Nix fetcher expressions") + `

lockfetch reads a bun text lockfile and produces one fetch descriptor per
package: npm tarballs keep the integrity hash recorded by bun, while git,
GitHub and tarball dependencies are hashed with 'nix flake prefetch'.

` + SubtitleStyle.Render("Examples:") + `
  lockfetch convert                     Convert ./bun.lock to Nix on stdout
  lockfetch convert -o bun.nix          Write the Nix expression to a file
  lockfetch convert --format json       Emit a JSON document instead
  lockfetch inspect                     Summarize entry shapes without prefetching
  lockfetch config show                 Show current configuration`,
	}

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.flags.configPath, "config", "", "config file (default is $HOME/.config/lockfetch/config.cue)")

	rootCmd.AddCommand(newConvertCommand(app))
	rootCmd.AddCommand(newInspectCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits the process with the command's status.
// This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	os.Exit(run(context.Background(), app, os.Args[1:]))
}

// run executes the command tree with args and returns the process exit code.
func run(ctx context.Context, app *App, args []string) int {
	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs(args)

	// fang overrides rootCmd.Version, so the version is passed as an option.
	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.handleError),
	)
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// handleError prints err for the user. Actionable errors get their
// suggestions, and in verbose mode the error chain and the linked help page.
func (a *App) handleError(w io.Writer, styles fang.Styles, err error) {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		fang.DefaultErrorHandler(w, styles, err)
		return
	}

	fmt.Fprintln(w, ErrorStyle.Render("Error:")+" "+ae.Format(a.verboseErrors))

	if iss := issue.IssueOf(err); iss != nil {
		if !a.verboseErrors {
			fmt.Fprintln(w, SubtitleStyle.Render("\nRun again with --verbose for troubleshooting help."))
			return
		}
		if page, renderErr := iss.Render(a.issueStyle); renderErr == nil {
			fmt.Fprint(w, page)
		}
	}
}
