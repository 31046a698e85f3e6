// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"lockfetch-cli/internal/bunlock"
	"lockfetch-cli/internal/config"
	"lockfetch-cli/internal/convert"
	"lockfetch-cli/internal/issue"
	"lockfetch-cli/internal/render"
	"lockfetch-cli/pkg/lockfile"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

type convertOptions struct {
	output     string
	format     string
	jobs       int
	skipErrors bool
	noProgress bool
}

// newConvertCommand creates the `lockfetch convert` command.
func newConvertCommand(app *App) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [bun.lock]",
		Short: "Convert a bun lockfile into fetcher expressions",
		Long: `Convert every package of a bun text lockfile into a fetch descriptor.

npm packages reuse the integrity hash recorded by bun. Git, GitHub and
tarball packages are hashed with the configured prefetch command, which
requires network access. Local file and workspace packages are copied
into the store as-is.

The lockfile defaults to ./bun.lock.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := bunlock.FileName
			if len(args) == 1 {
				path = args[0]
			}
			return runConvert(cmd, app, opts, path)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write output to file instead of stdout")
	cmd.Flags().StringVar(&opts.format, "format", "", "output format: nix, json, toml or yaml (default from config)")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "number of entries converted concurrently (default from config)")
	cmd.Flags().BoolVar(&opts.skipErrors, "skip-errors", false, "skip entries that fail to convert instead of aborting")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "disable the progress bar")

	return cmd
}

func runConvert(cmd *cobra.Command, app *App, opts *convertOptions, path string) error {
	ctx := cmd.Context()

	loaded, err := app.loadConfig(ctx)
	if err != nil {
		return err
	}
	cfg := loaded.Config
	applyConvertFlags(cmd, cfg, opts)

	if valid, errs := cfg.Convert.IsValid(); !valid {
		return &ExitError{Code: 2, Err: errs[0]}
	}

	doc, err := bunlock.Load(path)
	if err != nil {
		return lockfileError(path, err)
	}

	logger := app.logger(cfg)
	logger.Debug("loaded lockfile", "path", path, "version", doc.LockfileVersion, "packages", len(doc.Packages))

	prefetcher, err := app.NewPrefetcher(cfg.Prefetch, logger)
	if err != nil {
		return withIssue(err, "configure prefetch command", issue.ConfigLoadFailedId)
	}

	converter := &convert.Converter{
		Decoder: lockfile.NewDecoder(prefetcher),
		Jobs:    cfg.Convert.Jobs,
		Policy:  policyFor(cfg.Convert.OnError),
		Logger:  logger,
	}

	var bar *progressbar.ProgressBar
	if cfg.UI.Progress && isTerminal(app.stderr) {
		bar = newProgressBar(app.stderr, len(doc.Packages))
		converter.OnEntry = func(convert.Progress) { _ = bar.Add(1) }
	}

	res, err := converter.Convert(ctx, doc.Packages)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return entryError(err)
	}

	for _, skipped := range res.Skipped {
		logger.Warn("skipped entry", "name", skipped.Name, "err", skipped.Err)
	}

	var out bytes.Buffer
	if err := render.Render(&out, res.Packages, render.Format(cfg.Convert.Format)); err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}

	if err := writeOutput(app.stdout, opts.output, out.Bytes()); err != nil {
		return err
	}

	summary := fmt.Sprintf("Converted %d of %d packages", len(res.Packages), len(doc.Packages))
	switch {
	case len(res.Skipped) > 0:
		fmt.Fprintln(app.stderr, WarningStyle.Render(fmt.Sprintf("! %s (%d skipped)", summary, len(res.Skipped))))
	case opts.output != "":
		fmt.Fprintln(app.stderr, SuccessStyle.Render("✓ ")+summary+" to "+KeyStyle.Render(opts.output))
	}

	return nil
}

// applyConvertFlags overrides configuration with flags the user set explicitly.
func applyConvertFlags(cmd *cobra.Command, cfg *config.Config, opts *convertOptions) {
	if cmd.Flags().Changed("format") {
		cfg.Convert.Format = config.OutputFormat(opts.format)
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Convert.Jobs = opts.jobs
	}
	if opts.skipErrors {
		cfg.Convert.OnError = config.ErrorPolicySkip
	}
	if opts.noProgress {
		cfg.UI.Progress = false
	}
}

func policyFor(p config.ErrorPolicy) convert.Policy {
	if p == config.ErrorPolicySkip {
		return convert.PolicySkip
	}
	return convert.PolicyAbort
}

// writeOutput writes data to path, or to stdout when path is empty or "-".
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("converting"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

// isTerminal reports whether w is a character device such as a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
