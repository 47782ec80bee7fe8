// Package cli implements the podoc command-line interface.
//
// # Commands
//
//   - render: print one purchase order document to a PDF file
//   - plan: show how a document would be laid out, without writing a PDF
//   - batch: render every document in a directory concurrently
//   - serve: run the HTTP API backed by Redis and MongoDB
//   - cache: manage the local PDF and logo cache
//
// Every command reads podoc.toml (see [config.Load]); --config selects
// another file. --verbose switches the logger to debug level and logs
// render, cache and HTTP events through [observability.LogHooks].
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/podoc/pkg/asset"
	"github.com/matzehuels/podoc/pkg/buildinfo"
	"github.com/matzehuels/podoc/pkg/cache"
	"github.com/matzehuels/podoc/pkg/config"
	"github.com/matzehuels/podoc/pkg/httputil"
	"github.com/matzehuels/podoc/pkg/observability"
	"github.com/matzehuels/podoc/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "podoc"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is bound to --config. Empty searches the default
	// locations.
	ConfigPath string

	cfg *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level the library
// hooks are routed to the logger as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level > log.DebugLevel {
		observability.Reset()
		return
	}
	hooks := observability.NewLogHooks(c.Logger)
	observability.SetRenderHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "podoc prints purchase orders as single-page PDFs",
		Long:         `podoc lays out purchase order documents on one A4 page, truncating long item tables with a notice instead of spilling onto a second page.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default ./podoc.toml or ~/.config/podoc/podoc.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.planCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// config loads the configuration once per process.
func (c *CLI) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}
	c.cfg = cfg
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use, backed by the file cache
// unless caching is off.
func (c *CLI) newRunner(cfg *config.Config, noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(cfg, noCache || cfg.Cache.Disabled)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(store, nil, c.Logger)
	r.Resolver = newResolver(cfg, store, r.Keyer)
	r.Terms = cfg.Render.Terms
	return r, nil
}

func newCache(cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// newResolver looks logos up in the asset directory first, then over HTTP.
// Resolved bytes are cached next to the PDFs.
func newResolver(cfg *config.Config, c cache.Cache, keyer cache.Keyer) asset.Resolver {
	dir := cfg.Assets.Dir
	if dir == "" {
		dir = "."
	}
	return asset.Cached(asset.Chain(
		asset.NewFileResolver(dir),
		asset.NewHTTPResolver(cfg.Assets.BaseURL, httputil.NewClient()),
	), c, keyer)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/podoc/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// renderFlags are the per-run overrides shared by render, plan and batch.
type renderFlags struct {
	locale   string
	currency string
	timeZone string
	noCache  bool
	refresh  bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.locale, "locale", "", "document language: id, en (default from config)")
	cmd.Flags().StringVar(&f.currency, "currency", "", "ISO 4217 currency code (default from config)")
	cmd.Flags().StringVar(&f.timeZone, "tz", "", "IANA time zone for printed dates (default from config)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the PDF cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "render again even when a cached PDF exists")
}

// options merges the flags over the configured defaults.
func (f *renderFlags) options(cfg *config.Config) pipeline.Options {
	opts := pipeline.Options{
		Locale:   cfg.Render.Locale,
		Currency: cfg.Render.Currency,
		TimeZone: cfg.Render.TimeZone,
		Refresh:  f.refresh,
	}
	if f.locale != "" {
		opts.Locale = f.locale
	}
	if f.currency != "" {
		opts.Currency = f.currency
	}
	if f.timeZone != "" {
		opts.TimeZone = f.timeZone
	}
	return opts
}

// completeDocuments completes document file names for render and plan.
func completeDocuments(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json", "yaml", "yml", "toml"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeDirs completes directory names for batch.
func completeDirs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveFilterDirs
}
