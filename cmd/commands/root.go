package commands

// Root command for Cobra CLI
// Running it without a subcommand executes the whole batch:
// connect, run the query catalog, render every result and save the PNG files
// Registers the queries subcommand

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"housing-charts/internal/catalog"
	"housing-charts/internal/chart"
	"housing-charts/internal/config"
	"housing-charts/internal/dataset"
	"housing-charts/internal/infra/log"
	"housing-charts/internal/pipeline"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "housing-charts",
	Short: "Render charts from the Nashville housing sales queries",
	Long: `housing-charts connects to the housing database, runs the analytical query catalog
in order and saves one chart per result as plot_query_<n>.png in the output directory.`,
	Version:       "1.0.0",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPipeline,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	config.RegisterFlags(rootCmd.Flags())
	rootCmd.AddCommand(queriesCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	if err := log.Init(cfg.App.LogsDir); err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	renderer, err := chart.NewRenderer(cfg.Output.DPI, cfg.Output.FontPath)
	if err != nil {
		log.LogError("Failed to load chart font", zap.String("font_path", cfg.Output.FontPath), zap.Error(err))
		return err
	}

	queries := catalog.Resolve(cfg.Queries)
	log.LogInfo("Configuration loaded",
		zap.String("driver", cfg.Database.Driver),
		zap.String("output_dir", cfg.Output.Dir),
		zap.Float64("dpi", cfg.Output.DPI),
		zap.Int("queries", len(queries)))

	driver := pipeline.New(dataset.NewFetcher(cfg.Database), renderer)
	if _, err := driver.Run(ctx, catalog.SQL(queries), cfg.Output.Dir); err != nil {
		if ctx.Err() != nil {
			log.LogWarn("Run interrupted by shutdown signal")
		}
		return err
	}
	return nil
}
