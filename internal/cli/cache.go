package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/galaxy/pkg/cache"
	"github.com/matzehuels/galaxy/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached clouds and exports",
	}
	cmd.AddCommand(c.cacheClearCommand(), c.cachePathCommand())
	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. The file cache is
// cleared entirely; a Redis cache only when a key prefix scopes it.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached cloud and export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				count int
				where string
				err   error
			)
			switch c.cfg.Cache.Backend {
			case config.BackendNone:
				printInfo("Caching is disabled")
				return nil
			case config.BackendRedis:
				count, where, err = c.clearRedis(cmd)
			default:
				count, where, err = c.clearFiles()
			}
			if err != nil || where == "" {
				return err
			}

			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", count)
			printDetail("%s", where)
			return nil
		},
	}
}

func (c *CLI) clearFiles() (int, string, error) {
	dir, err := c.cacheDir()
	if err != nil {
		return 0, "", fmt.Errorf("get cache dir: %w", err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return 0, "", fmt.Errorf("open cache: %w", err)
	}
	n, err := fc.Clear()
	return n, "Directory: " + dir, err
}

func (c *CLI) clearRedis(cmd *cobra.Command) (int, string, error) {
	prefix := c.cfg.Cache.Prefix
	if prefix == "" {
		printWarning("Redis cache has no key prefix; set [cache] prefix to make it clearable")
		return 0, "", nil
	}
	rc, err := cache.NewRedisCache(cmd.Context(), c.cfg.Cache.RedisURL)
	if err != nil {
		return 0, "", err
	}
	defer rc.Close()
	n, err := rc.DeletePrefix(cmd.Context(), prefix)
	return n, "Prefix: " + prefix, err
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
