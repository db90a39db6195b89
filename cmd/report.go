package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/naka-gawa/contrib-report/internal/cache"
	"github.com/naka-gawa/contrib-report/internal/config"
	"github.com/naka-gawa/contrib-report/internal/domain"
	"github.com/naka-gawa/contrib-report/internal/gateway"
	"github.com/naka-gawa/contrib-report/internal/render"
	"github.com/naka-gawa/contrib-report/internal/usecase"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Writes the contribution report for a month",
	Long: `Fetches the contributors of the repository and what each of them authored and
reviewed during the month, then renders the report template into a markdown file.
The fetched data is cached in the home directory; the cache is reused for any
month until it is removed with --clean.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := newLogger(verbose)
		defer func() { _ = logger.Sync() }()

		year, _ := cmd.Flags().GetInt("year")
		month, _ := cmd.Flags().GetInt("month")
		clean, _ := cmd.Flags().GetBool("clean")
		configPath, _ := cmd.Flags().GetString("config")
		output, _ := cmd.Flags().GetString("output")

		env, err := config.LoadEnv()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if _, err := domain.NewDateRange(month, year); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid --month/--year: %v\n", err)
			os.Exit(1)
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		if output == "" {
			output = cfg.OutputPath()
		}
		cachePath := cfg.CachePath
		if cachePath == "" {
			cachePath, err = cache.DefaultPath()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to locate cache file: %v\n", err)
				os.Exit(1)
			}
		}

		// Inject dependencies and run the main business logic.
		githubGateway, err := gateway.NewGitHubGateway(env.GitHubToken, cfg.RateLimitWait(), logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		renderer, err := render.NewRendererFromFile(cfg.TemplatePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load template: %v\n", err)
			os.Exit(1)
		}
		initial, perContributor := cfg.Delays()
		downloader := usecase.NewDownloader(githubGateway, usecase.Pacing{
			Initial:        initial,
			PerContributor: perContributor,
		}, os.Stdout, logger)
		reporter := usecase.NewReporter(cfg.RepoName(), downloader, cache.NewFileStore(cachePath, logger),
			cfg.Bucketer(), renderer, os.Stdout, logger)

		result, err := reporter.Run(ctx, usecase.Request{
			Year:       year,
			Month:      month,
			OutputPath: output,
			Clean:      clean,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to build report: %v\n", err)
			os.Exit(1)
		}

		pterm.Success.Printfln("Report for %d/%d written to %s (%d pull requests, %d contributors)",
			month, year, output, len(result.Bundle.PullRequests), len(result.Bundle.Team))
	},
}

// newLogger discards all logs unless verbose is set.
func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger.With(zap.String("run_id", uuid.NewString()))
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().Int("year", 0, "The year to generate a report for (required)")
	reportCmd.Flags().Int("month", 0, "The month to generate a report for, 1-12 (required)")
	reportCmd.MarkFlagRequired("year")
	reportCmd.MarkFlagRequired("month")
	reportCmd.Flags().Bool("clean", false, "Remove the cached data and fetch it again")
	reportCmd.Flags().StringP("config", "c", "", "Path to a YAML configuration file")
	reportCmd.Flags().StringP("output", "o", "", "Output file (default \"the_report.md\")")
}
