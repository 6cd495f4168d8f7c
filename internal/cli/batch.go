package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ppiankov/mindfleet/internal/analytics"
	"github.com/ppiankov/mindfleet/internal/pipeline"
	"github.com/ppiankov/mindfleet/internal/worker"
)

var (
	workers      int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <list-file>",
	Short: "Summarise several roster files in parallel",
	Long: `Batch reads roster file paths from a list file (one per line, # for comments)
and writes <name>.json and <name>.md reports for each into the output directory.
Relative paths resolve against the list file's directory.

Example:
  mindfleet batch rosters.txt
  mindfleet batch rosters.txt --workers 4 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&workers, "workers", 0, "number of concurrent workers (default: concurrency.batch_workers)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./mindfleet-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	listFile := args[0]
	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if workers > 0 {
		cfg.Concurrency.BatchWorkers = workers
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg, logger)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.BatchWorkers)

	if cfg.Output.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚙️  Processing %s with %d workers...\n", listFile, cfg.Concurrency.BatchWorkers)
	}

	results, err := processor.ProcessFile(ctx, listFile)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	out := cmd.OutOrStdout()
	failures, skipped := 0, 0
	for _, result := range results {
		if result.Error != nil {
			failures++
			if errors.Is(result.Error, context.Canceled) || errors.Is(result.Error, context.DeadlineExceeded) {
				skipped++
			}
			logger.WithFields(logrus.Fields{"roster": result.Path, "error": result.Error.Error()}).Warn("roster summary failed")
			fmt.Fprintf(out, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		jsonPath, mdPath := pipeline.OutputPaths(outputDir, result.Path)
		if err := p.RenderReport(result.Report, jsonPath, mdPath); err != nil {
			failures++
			fmt.Fprintf(out, "✗ %s: %v\n", result.Path, err)
			continue
		}

		s := result.Report.Summary
		logger.WithFields(logrus.Fields{"roster": result.Path, "employees": s.RosterSize}).Debug("roster summarised")
		fmt.Fprintf(out, "✓ %s (risk %.1f/100 %s, %d alerts)\n",
			result.Path, s.GlobalRisk, analytics.RiskBand(s.GlobalRisk), len(s.FireList))
	}

	fmt.Fprintf(out, "\nTotal: %d, success: %d, failures: %d, skipped: %d, output: %s\n",
		len(results), len(results)-failures, failures, skipped, outputDir)

	if failures == len(results) && failures > 0 {
		return fmt.Errorf("all %d rosters failed", failures)
	}
	return nil
}
