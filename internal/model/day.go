package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

const (
	// DefaultTaskCount is the number of empty tasks a new day starts with.
	DefaultTaskCount = 3
	// MaxLevel caps the heatmap level of a day.
	MaxLevel = 3
)

// Task is a single item on a day's list.
type Task struct {
	ID        int    `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// UnmarshalJSON decodes a task leniently. Values written by older clients
// or by hand may carry the wrong types, so text is stringified, completed
// follows truthiness and anything that is not an object becomes an empty
// task that no aggregation counts.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		*t = Task{}
		return nil
	}
	*t = Task{
		ID:        toInt(raw["id"]),
		Text:      toText(raw["text"]),
		Completed: truthy(raw["completed"]),
	}
	return nil
}

// Counted reports whether the task takes part in perfection and level
// calculations.
func (t Task) Counted() bool {
	return strings.TrimSpace(t.Text) != ""
}

// DayRecord is the stored payload for one calendar date.
type DayRecord struct {
	Tasks []Task `json:"tasks" yaml:"tasks"`
}

// DefaultDay returns the payload seeded for a date seen for the first time.
func DefaultDay() DayRecord {
	tasks := make([]Task, DefaultTaskCount)
	for i := range tasks {
		tasks[i] = Task{ID: i + 1}
	}
	return DayRecord{Tasks: tasks}
}

// Counts returns the number of counted tasks and how many of them are done.
func (r DayRecord) Counts() (total, completed int) {
	for _, t := range r.Tasks {
		if !t.Counted() {
			continue
		}
		total++
		if t.Completed {
			completed++
		}
	}
	return total, completed
}

// Perfect reports whether the day has at least one counted task and all
// counted tasks are completed.
func (r DayRecord) Perfect() bool {
	total, completed := r.Counts()
	return total > 0 && completed == total
}

// Level returns the heatmap level of the day, in [0, MaxLevel].
func (r DayRecord) Level() int {
	total, completed := r.Counts()
	if total == 0 {
		return 0
	}
	return min(completed, MaxLevel)
}

// NormalizeTasks turns a raw tasks value into a task list. Anything that is
// not a JSON array yields an empty, non-nil list.
func NormalizeTasks(raw json.RawMessage) []Task {
	if !isArray(raw) {
		return []Task{}
	}
	var tasks []Task
	if err := json.Unmarshal(raw, &tasks); err != nil || tasks == nil {
		return []Task{}
	}
	return tasks
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func toInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return i
	}
	return 0
}

func toText(v any) string {
	switch s := v.(type) {
	case nil:
		// null text is an empty task, not the word "null".
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case string:
		return b != ""
	case []any:
		return len(b) > 0
	case map[string]any:
		return len(b) > 0
	}
	return false
}
