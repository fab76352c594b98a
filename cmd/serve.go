package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jcabot/uml-tools-dashboard/internal/logging"
	"github.com/jcabot/uml-tools-dashboard/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the dashboard over HTTP",
	Long: `Starts the dashboard web server: an HTML repository table at / and a JSON
API under /api. Every page load resolves the data fresh, live from GitHub or
from the snapshot fallback.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := commandLogger(cmd)

		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logging.Setup(cfg.Server.LogLevel, cfg.Server.LogFormat)

		resolver, err := buildResolver(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create resolver: %v\n", err)
			os.Exit(1)
		}

		server, err := web.NewServer(resolver, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create server: %v\n", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := server.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
