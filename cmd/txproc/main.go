package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/acmepay/txproc/internal/adapter/csvfile"
	"github.com/acmepay/txproc/internal/adapter/report"
	"github.com/acmepay/txproc/internal/infrastructure/config"
	"github.com/acmepay/txproc/internal/infrastructure/idgen"
	"github.com/acmepay/txproc/internal/infrastructure/logger"
	"github.com/acmepay/txproc/internal/usecase"
)

var (
	outputDir   string
	jsonReport  bool
	csvReport   bool
	errorReport bool
	allReports  bool
	logLevel    string
	logFormat   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "txproc <input.csv>",
		Short: "Acme Payments transaction processing pipeline",
		Long: `Reads a CSV file of financial transactions, normalizes and validates
every row, detects duplicate transaction ids and writes summary reports.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(cmd, args[0])
		},
	}

	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Output directory for reports (default from TXPROC_OUTPUT_DIR)")
	rootCmd.Flags().BoolVar(&jsonReport, "json", false, "Generate detailed JSON report")
	rootCmd.Flags().BoolVar(&csvReport, "csv", false, "Generate CSV summary report")
	rootCmd.Flags().BoolVar(&errorReport, "errors", false, "Generate detailed error report")
	rootCmd.Flags().BoolVar(&allReports, "all-reports", false, "Generate all report types")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "", "Log format: json, console")

	return rootCmd
}

func run(cmd *cobra.Command, inputFile string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	if logLevel == "" {
		logLevel = cfg.LogLevel
	}
	if logFormat == "" {
		logFormat = cfg.LogFormat
	}

	log := logger.New(logger.Config{Level: logLevel, Format: logFormat})

	reader := csvfile.NewReader(cfg.DelimiterSampleSize, log)
	ids := idgen.NewULIDGenerator()
	pipeline := usecase.NewPipeline(reader, ids, log)

	agg, err := pipeline.ProcessFile(context.Background(), inputFile)
	if err != nil {
		return err
	}

	generator := report.NewGenerator(agg, outputDir, ids, log)
	generator.PrintConsole(cmd.OutOrStdout())

	paths, err := writeReports(generator, log)
	if len(paths) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\nReports generated in %q:\n", outputDir)
		for _, p := range paths {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", p)
		}
	}

	return err
}

// writeReports runs the selected report writers. Each writer recovers
// independently; the joined error is surfaced after every writer had its
// chance.
func writeReports(generator *report.Generator, log zerolog.Logger) ([]string, error) {
	if allReports {
		return generator.WriteAll()
	}

	var paths []string
	var firstErr error

	record := func(path string, err error) {
		if err != nil {
			log.Error().Err(err).Msg("report generation failed")
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		paths = append(paths, path)
	}

	if jsonReport {
		record(generator.WriteJSON())
	}
	if csvReport {
		record(generator.WriteCSVSummary())
	}
	if errorReport {
		record(generator.WriteErrorReport())
	}

	return paths, firstErr
}
