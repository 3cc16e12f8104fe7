package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-dashboard/internal/server"
	"github.com/naka-gawa/github-dashboard/internal/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the dashboard over HTTP",
	Long: `Starts an HTTP server. GET / reloads both datasets and renders the dashboard,
GET /healthz reports the configured sources as JSON and GET /metrics exposes
Prometheus metrics. The server stops gracefully on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg.Verbose)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(server.Options{
			TableA: cfg.TableA,
			TableB: cfg.TableB,
			Title:  cfg.Title,
		}, usecase.DefaultPanels(), logger)

		cmd.Printf("Serving dashboard on http://%s\n", cfg.Addr)
		return srv.ListenAndServe(ctx, cfg.Addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (host:port)")
	serveCmd.Flags().String("table-a", "", "Path to the basic dataset (csv, tsv or xlsx)")
	serveCmd.Flags().String("table-b", "", "Path to the extended dataset (csv, tsv or xlsx)")
	serveCmd.Flags().String("title", "", "Page title")
}
