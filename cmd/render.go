package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-dashboard/internal/chart"
	"github.com/naka-gawa/github-dashboard/internal/loader"
	"github.com/naka-gawa/github-dashboard/internal/usecase"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Renders the dashboard to an HTML file and prints a console summary",
	Long: `Loads both datasets, computes every panel and writes a self-contained HTML page
with the charts embedded. The same panels are summarised on standard output.
A panel that cannot be computed is shown as an error notice; the other panels
are still rendered.`,
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

		runID := uuid.NewString()
		logger = logger.With(zap.String("run_id", runID))

		tables, err := usecase.LoadTables(loader.NewLoader(logger), cfg.TableA, cfg.TableB)
		if err != nil {
			return err
		}

		f, err := os.Create(cfg.Out)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()

		noColor, _ := cmd.Flags().GetBool("no-color")
		sinks := chart.NewManager(
			chart.NewHTMLSink(f, chart.Page{Title: cfg.Title, RunID: runID, GeneratedAt: time.Now()}, logger),
			chart.NewConsoleSink(cmd.OutOrStdout(), noColor),
		)

		summary, err := usecase.NewReport(usecase.DefaultPanels(), sinks, logger).Run(tables)
		if err != nil {
			return err
		}
		if err := sinks.Close(); err != nil {
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}

		printSummary(cmd, summary, cfg.Out, noColor)
		return nil
	},
}

func printSummary(cmd *cobra.Command, summary *usecase.Summary, out string, noColor bool) {
	w := cmd.OutOrStdout()
	ok := color.New(color.FgGreen, color.Bold)
	bad := color.New(color.FgRed)
	if noColor {
		ok.DisableColor()
		bad.DisableColor()
	}
	ok.Fprintf(w, "\nRendered %d panel(s) to %s\n", summary.Rendered, out)
	for _, f := range summary.Failures {
		bad.Fprintf(w, "  failed: %s: %v\n", f.Title, f.Err)
	}
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().String("table-a", "", "Path to the basic dataset (csv, tsv or xlsx)")
	renderCmd.Flags().String("table-b", "", "Path to the extended dataset (csv, tsv or xlsx)")
	renderCmd.Flags().StringP("out", "o", "", "Path of the HTML page to write")
	renderCmd.Flags().String("title", "", "Page title")
	renderCmd.Flags().Bool("no-color", false, "Disable colored console output")
}
