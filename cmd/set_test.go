package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Tiliavir/daily-proof/internal/model"
)

func TestParseIDs(t *testing.T) {
	tests := []struct {
		input   string
		want    []int
		wantErr bool
	}{
		{"", nil, false},
		{"1", []int{1}, false},
		{"1, 3", []int{1, 3}, false},
		{"2,,3,", []int{2, 3}, false},
		{"0", nil, true},
		{"a", nil, true},
		{"-1", nil, true},
	}
	for _, tt := range tests {
		got, err := parseIDs(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseIDs(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseIDs(%q): %v", tt.input, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("parseIDs(%q) = %v, want %v", tt.input, got, tt.want)
		}
		for _, id := range tt.want {
			if !got[id] {
				t.Errorf("parseIDs(%q) missing %d", tt.input, id)
			}
		}
	}
}

func TestBuildTasks(t *testing.T) {
	tasks := buildTasks([]string{"run", "read", "write"}, map[int]bool{1: true, 3: true})
	want := []model.Task{
		{ID: 1, Text: "run", Completed: true},
		{ID: 2, Text: "read"},
		{ID: 3, Text: "write", Completed: true},
	}
	for i := range want {
		if tasks[i] != want[i] {
			t.Errorf("task %d = %+v, want %+v", i, tasks[i], want[i])
		}
	}
}

func TestPrintDay(t *testing.T) {
	var buf bytes.Buffer
	printDay(&buf, "2024-06-10", model.DayRecord{Tasks: []model.Task{
		{ID: 1, Text: "run", Completed: true},
		{ID: 2},
	}})
	out := buf.String()
	for _, want := range []string{"2024-06-10  (1/1 done)", "[x] 1. run", "[ ] 2. (empty)", "Perfect day."} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}
