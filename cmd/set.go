package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/daily-proof/internal/model"
)

var (
	setDone string
	setDate string
)

var setCmd = &cobra.Command{
	Use:   "set <task>...",
	Short: "Replace today's tasks",
	Long: `Replace today's tasks with the given texts, numbered from 1.
The previous list is discarded. Use --done to mark tasks as completed.`,
	Example: `  proof set "Run 5k" "Read 20 pages" "No sugar" --done 1,3`,
	Args:    cobra.ArbitraryArgs,
	RunE:    runSet,
}

func init() {
	setCmd.Flags().StringVar(&setDone, "done", "", "Comma-separated task numbers to mark completed")
	setCmd.Flags().StringVar(&setDate, "date", "", "Set a specific date (YYYY-MM-DD) instead of today")
}

func runSet(cmd *cobra.Command, args []string) error {
	date, err := resolveDate(setDate)
	if err != nil {
		return err
	}
	done, err := parseIDs(setDone)
	if err != nil {
		return err
	}

	tasks := buildTasks(args, done)
	raw, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("error encoding tasks: %w", err)
	}

	day, err := trackSvc.SetTasksForDate(date, raw)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	printDay(cmd.OutOrStdout(), date, day)
	return nil
}

// buildTasks numbers texts from 1 and marks the ids in done as completed.
func buildTasks(texts []string, done map[int]bool) []model.Task {
	tasks := make([]model.Task, len(texts))
	for i, text := range texts {
		id := i + 1
		tasks[i] = model.Task{ID: id, Text: text, Completed: done[id]}
	}
	return tasks
}

// parseIDs parses a comma-separated list of positive task ids.
func parseIDs(s string) (map[int]bool, error) {
	ids := map[int]bool{}
	if strings.TrimSpace(s) == "" {
		return ids, nil
	}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil || id < 1 {
			return nil, fmt.Errorf("invalid task number %q", part)
		}
		ids[id] = true
	}
	return ids, nil
}
