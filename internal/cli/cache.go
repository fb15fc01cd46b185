package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tileboard/pkg/cache"
	"github.com/matzehuels/tileboard/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the image-list response cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := c.newCache(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer cc.Close()

			clearer, ok := cc.(cache.Clearer)
			if !ok {
				printInfo("Cache is disabled")
				return nil
			}
			n, err := clearer.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if n == 0 {
				printInfo("Cache is empty")
				return nil
			}

			printSuccess("Cleared %d cached entries", n)
			printDetail("%s", c.cacheLocation(cc))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached responses are stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch c.Config.Cache.Backend {
			case config.BackendRedis:
				fmt.Fprintf(cmd.OutOrStdout(), "redis://%s/%d %s*\n", c.Config.Cache.RedisAddr, c.Config.Cache.RedisDB, c.Config.Cache.RedisPrefix)
			case config.BackendNone:
				fmt.Fprintln(cmd.OutOrStdout(), "none")
			default:
				dir, err := c.cacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), dir)
			}
			return nil
		},
	}
}

func (c *CLI) cacheLocation(cc cache.Cache) string {
	switch v := cc.(type) {
	case *cache.FileCache:
		return "Directory: " + v.Dir()
	case *cache.RedisCache:
		return fmt.Sprintf("Redis: %s (prefix %q)", c.Config.Cache.RedisAddr, c.Config.Cache.RedisPrefix)
	default:
		return ""
	}
}
