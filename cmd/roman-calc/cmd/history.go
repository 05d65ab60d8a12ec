package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/roman-calculator/pkg/db"
	"github.com/shunichi-ikebuchi/roman-calculator/pkg/service"
)

var (
	historyLimit int
	historyOp    string
	historyClear bool
)

// historyCmd represents the history command.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded calculations",
	Long: `List recorded calculations, newest first.

Example:
  roman-calc history
  roman-calc history --op subtract --limit 5
  roman-calc history --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display calculation statistics",
	Long: `Display statistics about recorded calculations.

Shows:
- Total number of additions
- Total number of subtractions
- Number of calculations that failed
- Last calculation timestamp and result

Example:
  roman-calc stats`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of records (0 for all)")
	historyCmd.Flags().StringVar(&historyOp, "op", "", "only show this operation (add or subtract)")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete all recorded calculations")
}

// openHistoryApp opens the history database even when recording is disabled.
func openHistoryApp() (*app, error) {
	a, err := openApp(false)
	if err != nil {
		return nil, err
	}
	if err := a.openHistory(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := openHistoryApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if historyClear {
		n, err := a.history.Clear(ctx)
		if err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Fprintf(out, "Deleted %d records\n", n)
		return nil
	}

	var records []db.CalculationRecord
	if historyOp != "" {
		op, err := service.ParseOperation(historyOp)
		if err != nil {
			return err
		}
		records, err = a.history.ByOperation(ctx, string(op), historyLimit)
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}
	} else {
		records, err = a.history.Recent(ctx, historyLimit)
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No calculations recorded")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tPROBLEM\tRESULT")
	for _, r := range records {
		problem := service.Problem{Op: service.Operation(r.Operation), Left: r.Left, Right: r.Right}
		result := r.Result
		if r.Failed() {
			result = "!" + r.ErrorKind
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), problem, result)
	}
	return tw.Flush()
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := openHistoryApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	stats, err := a.history.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to get statistics: %w", err)
	}
	last, err := a.history.GetMetadata(ctx, db.MetadataLastResult)
	if err != nil {
		return fmt.Errorf("failed to get last result: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\n=== Calculation Statistics ===")
	fmt.Fprintf(out, "Total additions:       %d\n", stats.TotalAdds)
	fmt.Fprintf(out, "Total subtractions:    %d\n", stats.TotalSubtracts)
	fmt.Fprintf(out, "Failed calculations:   %d\n", stats.TotalFailures)

	if stats.LastCalculation.Valid {
		fmt.Fprintf(out, "Last calculation:      %s\n", stats.LastCalculation.String)
	} else {
		fmt.Fprintf(out, "Last calculation:      (never)\n")
	}
	if last != "" {
		fmt.Fprintf(out, "Last result:           %s\n", last)
	}

	fmt.Fprintln(out)
	return nil
}
