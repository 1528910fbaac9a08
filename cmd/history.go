package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"clwrapped/internal/cli"
	"clwrapped/internal/store"

	"github.com/spf13/cobra"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show previous wrapped runs, or one full stored report",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, args []string) error {
	db, err := store.Open(store.DefaultPath())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if len(args) == 1 {
		return showRun(db, args[0])
	}

	runs, err := db.ListRuns(flagHistoryLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("  No runs recorded yet. Run `clwrapped` first.")
		return nil
	}

	fmt.Println(cli.RenderTitle("RUN HISTORY"))
	fmt.Println()
	fmt.Printf("  %-4s %-17s %9s %9s %8s %7s  %s\n",
		"ID", "WHEN", "SESSIONS", "TOKENS", "COST", "STREAK", "PERSONALITY")

	for _, r := range runs {
		fmt.Printf("  %-4d %-17s %9s %9s %8s %7d  %s\n",
			r.ID,
			r.RunAt.Local().Format("2006-01-02 15:04"),
			cli.FormatNumber(int64(r.TotalSessions)),
			cli.FormatTokens(r.TotalInputTokens+r.TotalOutputTokens),
			cli.FormatCost(r.TotalCostUSD),
			r.LongestStreakDays,
			r.Personality,
		)
	}

	if len(runs) >= 2 {
		latest, prev := runs[0], runs[1]
		fmt.Printf("\n  Since last run: %+d sessions, %s cost\n",
			latest.TotalSessions-prev.TotalSessions,
			cli.FormatCost(latest.TotalCostUSD-prev.TotalCostUSD),
		)
	}

	return nil
}

// showRun prints the full stored report for one run as JSON.
func showRun(db *store.DB, arg string) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", arg)
	}

	m, err := db.LoadRunPayload(id)
	if err != nil {
		return fmt.Errorf("loading run %d: %w", id, err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
