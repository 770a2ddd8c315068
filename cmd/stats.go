package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/daily-proof/internal/stats"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recorded days, perfect days and streaks",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print the statistics as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	summary := trackSvc.Stats()
	if statsJSON {
		return printJSON(cmd.OutOrStdout(), summary)
	}
	printStats(cmd.OutOrStdout(), summary)
	return nil
}

func printStats(w io.Writer, s stats.Summary) {
	fmt.Fprintf(w, "%-20s%d\n", "Days recorded", s.TotalDays)
	fmt.Fprintf(w, "%-20s%d\n", fmt.Sprintf("Perfect (%dd)", stats.WindowDays), s.PerfectDays)
	fmt.Fprintf(w, "%-20s%s\n", "Current streak", pluralDays(s.CurrentStreak))
	fmt.Fprintf(w, "%-20s%s\n", "Longest streak", pluralDays(s.LongestStreak))
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
