// Package cli implements the tileboard command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tileboard/pkg/buildinfo"
	"github.com/matzehuels/tileboard/pkg/cache"
	"github.com/matzehuels/tileboard/pkg/config"
	"github.com/matzehuels/tileboard/pkg/images"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "tileboard"
)

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

	// Config is loaded before any subcommand runs.
	Config     config.Config
	configPath string
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level. Debug also turns on event logging
// from the board, cache and HTTP hooks.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		registerLogHooks(c.Logger)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Tileboard arranges image tiles on a terminal canvas",
		Long:         `Tileboard is a terminal editor for colored image tiles. Add tiles, drag them with the mouse, resize them from any edge or corner, and delete them; tiles never leave the canvas.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/tileboard/config.toml)")

	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.imagesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	path := c.configPath
	if path == "" {
		p, err := config.DefaultPath(appName)
		if err != nil {
			c.Logger.Debug("no config path", "err", err)
			return nil
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg
	c.Logger.Debug("config loaded", "path", path)
	return nil
}

// =============================================================================
// Factories
// =============================================================================

// imageFlags are the provider flags shared by edit and images.
type imageFlags struct {
	url     string
	noCache bool
	refresh bool
}

func (f *imageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.url, "images-url", "", "image-list provider URL (overrides config)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the response cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "refetch the image list even if cached")
}

// newImageClient builds the provider client and the cache behind it. The
// caller closes the returned cache.
func (c *CLI) newImageClient(ctx context.Context, f imageFlags, logger *log.Logger) (*images.Client, cache.Cache, error) {
	url := c.Config.Images.URL
	if f.url != "" {
		url = f.url
	}
	cc, err := c.newCache(ctx, f.noCache)
	if err != nil {
		return nil, nil, err
	}
	client := images.NewClient(images.Options{
		URL:      url,
		Timeout:  c.Config.Images.Timeout.Duration,
		Cache:    cc,
		CacheTTL: c.Config.Images.CacheTTL.Duration,
		Refresh:  f.refresh,
		Logger:   logger.WithPrefix("images"),
	})
	return client, cc, nil
}

// newCache opens the configured cache backend. An unusable file cache
// directory degrades to no caching; an unreachable redis is an error.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.Config.Cache
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:   cfg.RedisAddr,
			DB:     cfg.RedisDB,
			Prefix: cfg.RedisPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("open redis cache: %w", err)
		}
		return rc, nil
	default:
		dir, err := c.cacheDir()
		if err != nil {
			c.Logger.Warn("cache disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			c.Logger.Warn("cache disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return fc, nil
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG default
// (~/.cache/tileboard/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// defaultLogFile returns ~/.local/state/tileboard/edit.log (XDG state dir).
func defaultLogFile() (string, error) {
	dir, err := xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "edit.log"), nil
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appName), nil
}
