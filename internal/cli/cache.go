package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashbridge/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the conversion cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached conversion outputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if c.Config.Cache.Backend == BackendNone {
				printInfo("Caching is disabled")
				return nil
			}

			cc, err := c.newCache(ctx, false)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer cc.Close()

			if _, ok := cc.(*cache.NullCache); ok {
				printWarning("Cache backend %s is unavailable", c.Config.Cache.Backend)
				return nil
			}
			if err := cache.Clear(ctx, cc); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cleared %s cache", c.Config.Cache.Backend)
			printDetail("Location: %s", c.cacheLocation())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := c.cacheLocation()
			if loc == "" {
				return fmt.Errorf("no cache location for backend %s", c.Config.Cache.Backend)
			}
			fmt.Println(loc)
			return nil
		},
	}
}

// cacheLocation returns the cache directory or redis URL of the configured
// backend.
func (c *CLI) cacheLocation() string {
	switch c.Config.Cache.Backend {
	case BackendRedis:
		return c.Config.Cache.RedisURL
	case BackendNone:
		return ""
	}
	dir, err := c.cacheDir()
	if err != nil {
		return ""
	}
	return dir
}
