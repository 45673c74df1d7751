package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"kotoba/internal/resolve"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Resolution cache utilities",
	}

	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show per-source cache entry counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := resolve.OpenStore(cfg.CacheDBPath())
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("read cache stats: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(stats) == 0 {
				fmt.Fprintln(out, "Cache is empty")
				return nil
			}

			rows := make([][]string, 0, len(stats))
			totalResolved, totalUnknown := 0, 0
			for _, s := range stats {
				rows = append(rows, []string{
					s.Source,
					strconv.Itoa(s.Resolved),
					strconv.Itoa(s.Unknown),
				})
				totalResolved += s.Resolved
				totalUnknown += s.Unknown
			}
			rows = append(rows, []string{"total",
				strconv.Itoa(totalResolved), strconv.Itoa(totalUnknown)})

			fmt.Fprintln(out, renderTable(
				[]string{"Source", "Resolved", "Unknown"},
				rows, 2, 3))
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete cached lookups, optionally for one source only",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := resolve.OpenStore(cfg.CacheDBPath())
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			if err := store.Clear(cmd.Context(), source); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			out := cmd.OutOrStdout()
			if source == "" {
				fmt.Fprintln(out, "Cleared all cached lookups")
			} else {
				fmt.Fprintf(out, "Cleared cached lookups for source %q\n", source)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "Limit clearing to one source namespace")
	return cmd
}
