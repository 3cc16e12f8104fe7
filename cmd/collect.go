package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-dashboard/internal/gateway"
	"github.com/naka-gawa/github-dashboard/internal/loader"
	"github.com/naka-gawa/github-dashboard/internal/usecase"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collects the extended repository dataset of a GitHub organization",
	Long: `Lists every repository of a GitHub organization, fetches its pull request and
commit totals, and writes the result as a CSV file that loads as the extended
dataset. Requires the GITHUB_TOKEN environment variable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Org == "" {
			return errors.New("an organization is required: set --org or DASHBOARD_ORG")
		}
		token := os.Getenv("GITHUB_TOKEN")
		if token == "" {
			return errors.New("GITHUB_TOKEN environment variable is not set")
		}
		logger, err := newLogger(cfg.Verbose)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		out := cfg.TableB
		if cmd.Flags().Changed("out") {
			out, _ = cmd.Flags().GetString("out")
		}
		concurrency, _ := cmd.Flags().GetInt("concurrency")

		// Inject dependencies and run the main business logic.
		githubGateway, err := gateway.NewGitHubGateway(token, logger)
		if err != nil {
			return fmt.Errorf("failed to create GitHub gateway: %w", err)
		}
		repos, err := usecase.NewCollector(githubGateway, logger, concurrency).Collect(cmd.Context(), cfg.Org)
		if err != nil {
			return fmt.Errorf("failed to collect repositories: %w", err)
		}

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		if err := loader.WriteRepositories(f, repos); err != nil {
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}

		cmd.Printf("Wrote %d repositories of %s to %s\n", len(repos), cfg.Org, out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(collectCmd)
	collectCmd.Flags().StringP("org", "o", "", "Target GitHub organization name")
	collectCmd.Flags().String("out", "", "Path of the CSV file to write (defaults to the extended dataset path)")
	collectCmd.Flags().Int("concurrency", 8, "Maximum number of repositories fetched in parallel")
}
