package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var doneUndo bool

var doneCmd = &cobra.Command{
	Use:   "done <id>...",
	Short: "Mark today's tasks as completed",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDone,
}

func init() {
	doneCmd.Flags().BoolVar(&doneUndo, "undo", false, "Mark the tasks as not completed instead")
}

func runDone(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(strings.Join(args, ","))
	if err != nil {
		return err
	}

	date := trackSvc.Today()
	day, err := trackSvc.GetTasksForDate(date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	matched := 0
	for i := range day.Tasks {
		if ids[day.Tasks[i].ID] {
			day.Tasks[i].Completed = !doneUndo
			matched++
		}
	}
	if matched == 0 {
		fmt.Fprintf(os.Stderr, "No task of %s matches %s.\n", date, strings.Join(args, ", "))
		os.Exit(1)
	}

	raw, err := json.Marshal(day.Tasks)
	if err != nil {
		return fmt.Errorf("error encoding tasks: %w", err)
	}
	day, err = trackSvc.SetTasksForDate(date, raw)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	printDay(cmd.OutOrStdout(), date, day)
	return nil
}
