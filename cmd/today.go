package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/daily-proof/internal/model"
	"github.com/Tiliavir/daily-proof/internal/timecalc"
)

var (
	todayDate string
	todayJSON bool
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's tasks",
	Long:  "Show today's tasks. The day is created with three empty tasks on first use.",
	Args:  cobra.NoArgs,
	RunE:  runToday,
}

func init() {
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Show a specific date (YYYY-MM-DD) instead of today")
	todayCmd.Flags().BoolVar(&todayJSON, "json", false, "Print the day record as JSON")
}

func runToday(cmd *cobra.Command, args []string) error {
	date, err := resolveDate(todayDate)
	if err != nil {
		return err
	}

	day, err := trackSvc.GetTasksForDate(date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if todayJSON {
		return printJSON(cmd.OutOrStdout(), day)
	}
	printDay(cmd.OutOrStdout(), date, day)
	return nil
}

// resolveDate returns today's key when s is empty, otherwise the validated
// key of s.
func resolveDate(s string) (string, error) {
	if s == "" {
		return trackSvc.Today(), nil
	}
	d, err := timecalc.ParseDate(s, time.Local)
	if err != nil {
		return "", err
	}
	return timecalc.DateKey(d), nil
}

// printDay prints a day's tasks as a checklist.
func printDay(w io.Writer, date string, day model.DayRecord) {
	total, completed := day.Counts()
	fmt.Fprintf(w, "%s  (%d/%d done)\n", date, completed, total)
	if len(day.Tasks) == 0 {
		fmt.Fprintln(w, "  No tasks.")
		return
	}
	for _, t := range day.Tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		text := strings.TrimSpace(t.Text)
		if text == "" {
			text = "(empty)"
		}
		fmt.Fprintf(w, "  [%s] %d. %s\n", mark, t.ID, text)
	}
	if day.Perfect() {
		fmt.Fprintln(w, "Perfect day.")
	}
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
