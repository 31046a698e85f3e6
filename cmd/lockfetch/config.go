// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"lockfetch-cli/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `lockfetch config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage lockfetch configuration",
		Long: `Manage lockfetch configuration.

Configuration is stored in:
  - Linux: ~/.config/lockfetch/config.cue
  - macOS: ~/Library/Application Support/lockfetch/config.cue
  - Windows: %APPDATA%\lockfetch\config.cue

A config.cue in the current directory is used when none exists there.

Keys:
  prefetch.command    command run for every git, GitHub and tarball source
  prefetch.attempts   tries per source before giving up
  prefetch.timeout    bound on a single try, e.g. "5m"
  convert.jobs        entries converted concurrently
  convert.on_error    "abort" or "skip"
  convert.format      "nix", "json", "toml" or "yaml"
  ui.verbose          debug logging and detailed errors
  ui.progress         progress bar on terminals
  ui.color_scheme     "auto", "dark" or "light"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(loaded.Config))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.flags.configPath
			if path == "" {
				var err error
				if path, err = config.FilePath(""); err != nil {
					return err
				}
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfig("")
			if errors.Is(err, config.ErrConfigExists) {
				fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App) error {
	loaded, err := app.loadConfig(cmd.Context())
	if err != nil {
		return err
	}
	cfg := loaded.Config
	w := app.stdout

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if loaded.Path != "" {
		fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("Config file"), loaded.Path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}

	value := func(v any) string { return SuccessStyle.Render(fmt.Sprint(v)) }

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", KeyStyle.Render("prefetch"))
	fmt.Fprintf(w, "  command: %s\n", value(cfg.Prefetch.Command))
	fmt.Fprintf(w, "  attempts: %s\n", value(cfg.Prefetch.Attempts))
	fmt.Fprintf(w, "  timeout: %s\n", value(cfg.Prefetch.Timeout))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", KeyStyle.Render("convert"))
	fmt.Fprintf(w, "  jobs: %s\n", value(cfg.Convert.Jobs))
	fmt.Fprintf(w, "  on_error: %s\n", value(cfg.Convert.OnError))
	fmt.Fprintf(w, "  format: %s\n", value(cfg.Convert.Format))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", KeyStyle.Render("ui"))
	fmt.Fprintf(w, "  verbose: %s\n", value(cfg.UI.Verbose))
	fmt.Fprintf(w, "  progress: %s\n", value(cfg.UI.Progress))
	fmt.Fprintf(w, "  color_scheme: %s\n", value(cfg.UI.ColorScheme))

	return nil
}
