package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the result cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached artifact",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return c.app.ClearCache()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Print the cache entry count and size",
		Args:  cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			stats, err := c.app.CacheStats()
			if err != nil {
				return err
			}
			fmt.Fprintf(cobraCmd.OutOrStdout(), "entries: %d\nbytes:   %d\n", stats.Entries, stats.TotalBytes)
			return nil
		},
	})

	return cmd
}
