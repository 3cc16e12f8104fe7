// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-dashboard/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "github-dashboard",
	Short: "A CLI tool to chart GitHub repository datasets.",
	Long: `github-dashboard loads a basic and an extended GitHub repository dataset,
aggregates them into a fixed set of panels and renders the result as a
self-contained HTML page, a console summary, or a live HTTP dashboard.
The extended dataset can be collected from a GitHub organization.`,
	SilenceUsage: true,
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
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
}

// loadConfig reads the config file named by --config and the environment, then applies
// the command-line flags that were set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose, _ = cmd.Flags().GetBool("verbose")
	}
	overrides := map[string]*string{
		"table-a": &cfg.TableA,
		"table-b": &cfg.TableB,
		"out":     &cfg.Out,
		"title":   &cfg.Title,
		"addr":    &cfg.Addr,
		"org":     &cfg.Org,
	}
	for name, field := range overrides {
		if cmd.Flags().Lookup(name) != nil && cmd.Flags().Changed(name) {
			*field, _ = cmd.Flags().GetString(name)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger discards all logs unless verbose, in which case it logs to standard error.
func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}
