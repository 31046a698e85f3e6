// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"lockfetch-cli/internal/config"
	"lockfetch-cli/internal/issue"
	"lockfetch-cli/internal/prefetch"
	"lockfetch-cli/pkg/lockfile"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer; all Cobra command handlers receive an App reference.
	App struct {
		Config        ConfigProvider
		NewPrefetcher PrefetcherFactory
		stdout        io.Writer
		stderr        io.Writer
		flags         globalFlags

		// verboseErrors and issueStyle control error rendering; they follow
		// the loaded configuration once it is available.
		verboseErrors bool
		issueStyle    string
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config        ConfigProvider
		NewPrefetcher PrefetcherFactory
		Stdout        io.Writer
		Stderr        io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Loaded, error)
	}

	// PrefetcherFactory builds the prefetcher used for one conversion run.
	PrefetcherFactory func(cfg config.PrefetchConfig, logger *log.Logger) (lockfile.Prefetcher, error)

	globalFlags struct {
		verbose    bool
		configPath string
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.NewPrefetcher == nil {
		deps.NewPrefetcher = newNixPrefetcher
	}

	return &App{
		Config:        deps.Config,
		NewPrefetcher: deps.NewPrefetcher,
		stdout:        deps.Stdout,
		stderr:        deps.Stderr,
		issueStyle:    "auto",
	}, nil
}

// newNixPrefetcher is the production PrefetcherFactory: the nix CLI behind a
// per-run memo so repeated locators are hashed once.
func newNixPrefetcher(cfg config.PrefetchConfig, logger *log.Logger) (lockfile.Prefetcher, error) {
	nix, err := prefetch.NewNix(prefetch.NixOptions{
		Command:  cfg.Command,
		Attempts: cfg.Attempts,
		Timeout:  cfg.Timeout,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	return prefetch.NewMemo(nix), nil
}

// loadConfig loads configuration honoring --config and applies global flag overrides.
func (a *App) loadConfig(ctx context.Context) (*config.Loaded, error) {
	a.verboseErrors = a.flags.verbose

	loaded, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.flags.configPath})
	if err != nil {
		return nil, withIssue(err, "load configuration", issue.ConfigLoadFailedId)
	}
	if a.flags.verbose {
		loaded.Config.UI.Verbose = true
	}
	a.verboseErrors = loaded.Config.UI.Verbose
	a.issueStyle = glamourStyle(loaded.Config.UI.ColorScheme)
	return loaded, nil
}

// glamourStyle maps a color scheme to a glamour builtin style name.
func glamourStyle(cs config.ColorScheme) string {
	switch cs {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

// logger returns the CLI logger writing to stderr.
func (a *App) logger(cfg *config.Config) *log.Logger {
	level := log.InfoLevel
	if cfg.UI.Verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Prefix: "lockfetch",
		Level:  level,
	})
}
