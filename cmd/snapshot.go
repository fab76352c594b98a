package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jcabot/uml-tools-dashboard/internal/snapshot"
	"github.com/jcabot/uml-tools-dashboard/internal/usecase"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Refreshes snapshot.csv from a live GitHub fetch",
	Long: `Fetches the current repository listing live from the GitHub API and writes
it to the snapshot CSV file. The fetch is live-only on purpose: refreshing the
snapshot from the snapshot would silently freeze the fallback data.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := commandLogger(cmd)

		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = cfg.Snapshot.Path
		}

		resolver, err := buildResolver(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create resolver: %v\n", err)
			os.Exit(1)
		}

		query := usecase.SearchQuery(cfg.Search.Query, cfg.Search.MinStars, cfg.Search.ActivityWindow.Std(), time.Now())
		result, err := resolver.Resolve(context.Background(), query)
		if err != nil {
			fmt.Fprintln(os.Stderr, usecase.SnapshotFailure(err).Message)
			os.Exit(1)
		}
		if result.Source != usecase.SourceLive {
			fmt.Fprintln(os.Stderr, "GitHub API is unavailable; refusing to rewrite the snapshot from itself.")
			os.Exit(1)
		}

		if err := snapshot.WriteFile(out, result.Records); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write snapshot: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d repositories to %s\n", len(result.Records), out)
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.Flags().String("out", "", "Output path (defaults to snapshot.path from config)")
}
