// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jcabot/uml-tools-dashboard/internal/config"
	"github.com/jcabot/uml-tools-dashboard/internal/gateway"
	"github.com/jcabot/uml-tools-dashboard/internal/snapshot"
	"github.com/jcabot/uml-tools-dashboard/internal/usecase"
)

var rootCmd = &cobra.Command{
	Use:   "uml-dashboard",
	Short: "A dashboard of curated open-source UML and low-code tools on GitHub.",
	Long: `uml-dashboard lists GitHub repositories of open-source UML and low-code
tools matching the dashboard's editorial criteria. Data comes from the GitHub
search API; when the API is unavailable, the bundled snapshot.csv backup is
loaded instead and the user is told which path was taken.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		// A local .env may provide GITHUB_TOKEN; absence is fine.
		_ = godotenv.Load()
	})
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file (optional)")
}

// commandLogger builds the injected logger: silent unless --verbose is set.
func commandLogger(cmd *cobra.Command) *log.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := log.New(io.Discard, "", log.LstdFlags)
	if verbose {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// loadConfig reads the optional --config file, falling back to defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// buildResolver wires the gateway and snapshot loader into a resolver.
func buildResolver(cfg config.Config, logger *log.Logger) (*usecase.Resolver, error) {
	githubGateway, err := gateway.NewGitHubGateway(
		os.Getenv("GITHUB_TOKEN"),
		logger,
		gateway.WithPageLimits(cfg.Search.PerPage, cfg.Search.MaxPages),
	)
	if err != nil {
		return nil, err
	}
	loader := snapshot.NewLoader(cfg.Snapshot.Path)
	return usecase.NewResolver(githubGateway, loader, cfg.Curation.Excluded, cfg.Search.Timeout.Std(), logger), nil
}
