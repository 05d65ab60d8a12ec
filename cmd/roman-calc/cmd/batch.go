package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/roman-calculator/pkg/batch"
)

var (
	batchWorkers        int
	batchFailOnMismatch bool
)

// batchCmd represents the batch command.
var batchCmd = &cobra.Command{
	Use:   "batch FILE",
	Short: "Evaluate a YAML file of problems",
	Long: `Evaluate every problem in a YAML batch file and print a YAML report.

File format:
  name: lesson one
  problems:
    - op: add
      left: IV
      right: II
      expect: VI
    - op: subtract
      left: I
      right: II
      expect: "!underflow"

An expectation starting with "!" names the error kind the problem should
fail with.

Example:
  roman-calc batch problems.yaml
  roman-calc batch problems.yaml --workers 8 --fail-on-mismatch`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "concurrent evaluations (default ROMAN_BATCH_WORKERS)")
	batchCmd.Flags().BoolVar(&batchFailOnMismatch, "fail-on-mismatch", false, "exit non-zero when any problem does not pass")
}

func runBatch(cmd *cobra.Command, args []string) error {
	f, err := batch.Load(args[0])
	if err != nil {
		return err
	}

	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	workers := a.cfg.Batch.Workers
	if batchWorkers > 0 {
		workers = batchWorkers
	}

	slog.Info("Starting batch", "file", args[0], "problems", len(f.Problems), "workers", workers)

	runner := &batch.Runner{Service: a.svc, Workers: workers, Logger: slog.Default()}
	outcomes, err := runner.Run(cmd.Context(), f.Tasks())
	if err != nil {
		return fmt.Errorf("batch interrupted: %w", err)
	}

	report := batch.NewReport(f.Name, outcomes)
	data, err := report.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return err
	}

	slog.Info("Batch finished",
		"total", report.Summary.Total,
		"passed", report.Summary.Passed,
		"failed", report.Summary.Failed,
		"errors", report.Summary.Errors,
	)

	if batchFailOnMismatch && report.Summary.Passed != report.Summary.Total {
		return fmt.Errorf("%d of %d problems did not pass", report.Summary.Total-report.Summary.Passed, report.Summary.Total)
	}
	return nil
}
