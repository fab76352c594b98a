package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jcabot/uml-tools-dashboard/internal/usecase"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Resolves the repository listing and outputs it as JSON",
	Long: `Fetches the curated repository listing from the GitHub API, falling back to
the bundled snapshot when the API is unavailable, and prints the result
(source, notices, and records) in JSON format.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := commandLogger(cmd)

		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
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

		for _, notice := range result.Notices {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", notice.Severity, notice.Message)
		}

		jsonData, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to marshal result to JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(jsonData))
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
