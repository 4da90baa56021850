package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/liuk/internal/ui/layout"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show mock exam history",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		repo := rt.store.AttemptRepo()
		limit, _ := cmd.Flags().GetInt("limit")
		attempts, err := repo.RecentAttempts(ctx, limit)
		if err != nil {
			return fmt.Errorf("load attempts: %w", err)
		}
		stats, err := repo.Stats(ctx)
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}

		out := cmd.OutOrStdout()
		if stats.Attempts == 0 {
			fmt.Fprintln(out, "No mock exams taken yet.")
			return nil
		}
		fmt.Fprintf(out, "Attempts: %d   Passed: %d   Pass rate: %.0f%%\n\n",
			stats.Attempts, stats.Passed, stats.PassRate()*100)

		fmt.Fprintf(out, "%-16s  %-20s  %7s  %6s  %s\n", "Date", "Bank", "Score", "Time", "Result")
		fmt.Fprintln(out, strings.Repeat("─", 64))
		for _, a := range attempts {
			result := "fail"
			if a.Passed {
				result = "pass"
			}
			if a.Forced {
				result += " (timed out)"
			}
			fmt.Fprintf(out, "%-16s  %-20s  %3d/%-3d  %6s  %s\n",
				a.TakenAt.Local().Format("2006-01-02 15:04"),
				a.Bank,
				a.Correct, a.Total,
				layout.FormatClock(int(a.DurationSecs)),
				result,
			)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 20, "Number of recent attempts to list (0 for all)")
}
