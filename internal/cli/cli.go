package cli

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/packnav/pkg/buildinfo"
	"github.com/matzehuels/packnav/pkg/config"
	"github.com/matzehuels/packnav/pkg/httputil"
	"github.com/matzehuels/packnav/pkg/source"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "packnav"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and the built-in
// configuration. The configuration file is read once a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Packnav browses nested circle-pack trees",
		Long:         `Packnav renders hierarchical data as nested circles and lets you zoom into them, loading nested levels on demand from files, HTTP endpoints or a local SQLite store.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// LoadConfig reads the configuration file at path, or the default file when
// path is empty.
func (c *CLI) LoadConfig(path string) error {
	c.configPath = path
	return c.loadConfig()
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("config loaded", "path", c.configPath, "radius", cfg.Navigator.Radius)
	return nil
}

// =============================================================================
// Fetcher Factory
// =============================================================================

// NewFetcher builds the scheme router commands use to load payloads. The
// returned close function releases the SQLite store, if one was opened.
func (c *CLI) NewFetcher(noCache bool) (source.Router, func(), error) {
	src := c.Config.Source
	opts := []source.HTTPOption{source.WithHTTPLogger(c.Logger)}
	if !noCache && !src.NoCache {
		dir := src.CacheDir
		if dir == "" {
			dir, _ = cacheDir()
		}
		if cache, err := httputil.NewCache(dir, src.CacheTTL); err == nil {
			opts = append(opts, source.WithCache(cache))
		} else {
			c.Logger.Warn("payload cache disabled", "dir", dir, "err", err)
		}
	}
	if src.Timeout > 0 {
		opts = append(opts, source.WithHTTPClient(&http.Client{Timeout: src.Timeout}))
	}

	router := source.Router{
		HTTP:  source.NewHTTP(opts...),
		Files: source.Files{Root: src.BaseDir},
	}
	closeFn := func() {}
	if src.Store != "" {
		store, err := source.OpenSQLite(src.Store)
		if err != nil {
			return router, closeFn, err
		}
		router.Store = store
		closeFn = func() { _ = store.Close() }
	}
	return router, closeFn, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/packnav/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
