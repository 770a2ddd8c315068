package stats_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Tiliavir/daily-proof/internal/model"
	"github.com/Tiliavir/daily-proof/internal/stats"
	"github.com/Tiliavir/daily-proof/internal/timecalc"
)

var today = time.Date(2024, 6, 10, 9, 30, 0, 0, time.Local)

// history builds a document from per-day markers, index 0 being today:
// 'P' perfect, 'I' imperfect, 'E' empty tasks, '-' no record.
func history(markers string) model.Document {
	doc := model.Document{}
	for i, m := range markers {
		date := timecalc.DateKey(timecalc.DaysBefore(today, i))
		switch m {
		case 'P':
			doc.SetDay(date, model.DayRecord{Tasks: []model.Task{
				{ID: 1, Text: "run", Completed: true},
				{ID: 2, Text: "", Completed: false},
			}})
		case 'I':
			doc.SetDay(date, model.DayRecord{Tasks: []model.Task{
				{ID: 1, Text: "run", Completed: true},
				{ID: 2, Text: "read", Completed: false},
			}})
		case 'E':
			doc.SetDay(date, model.DayRecord{Tasks: []model.Task{
				{ID: 1, Completed: true},
			}})
		}
	}
	return doc
}

func TestStatsEmptyDocument(t *testing.T) {
	got := stats.ComputeStats(model.Document{}, today)
	if got != (stats.Summary{}) {
		t.Errorf("ComputeStats(empty) = %+v, want zero", got)
	}
}

func TestStatsScenarioNotPerfect(t *testing.T) {
	doc := mustDoc(t, scenarioDoc)
	got := stats.ComputeStats(doc, today)
	want := stats.Summary{TotalDays: 1}
	if got != want {
		t.Errorf("ComputeStats = %+v, want %+v", got, want)
	}
}

func TestStatsStreaks(t *testing.T) {
	tests := []struct {
		name    string
		markers string
		want    stats.Summary
	}{
		{"today only", "P", stats.Summary{TotalDays: 1, PerfectDays: 1, CurrentStreak: 1, LongestStreak: 1}},
		{"run ending today", "PPP-P", stats.Summary{TotalDays: 4, PerfectDays: 4, CurrentStreak: 3, LongestStreak: 3}},
		{"today imperfect", "IPPPP", stats.Summary{TotalDays: 5, PerfectDays: 4, CurrentStreak: 0, LongestStreak: 4}},
		{"today missing", "-PP", stats.Summary{TotalDays: 2, PerfectDays: 2, CurrentStreak: 0, LongestStreak: 2}},
		{"empty tasks break", "PEP", stats.Summary{TotalDays: 3, PerfectDays: 2, CurrentStreak: 1, LongestStreak: 1}},
		{"longer run in past", "PP-PPPP-P", stats.Summary{TotalDays: 7, PerfectDays: 7, CurrentStreak: 2, LongestStreak: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stats.ComputeStats(history(tt.markers), today)
			if got != tt.want {
				t.Errorf("ComputeStats = %+v, want %+v", got, tt.want)
			}
			if got.LongestStreak < got.CurrentStreak {
				t.Errorf("longest %d < current %d", got.LongestStreak, got.CurrentStreak)
			}
		})
	}
}

func TestStatsWindowBoundary(t *testing.T) {
	markers := make([]byte, stats.WindowDays+10)
	for i := range markers {
		markers[i] = 'P'
	}
	doc := history(string(markers))

	got := stats.ComputeStats(doc, today)
	if got.TotalDays != stats.WindowDays+10 {
		t.Errorf("TotalDays = %d, want %d", got.TotalDays, stats.WindowDays+10)
	}
	if got.PerfectDays != stats.WindowDays {
		t.Errorf("PerfectDays = %d, want %d", got.PerfectDays, stats.WindowDays)
	}
	if got.CurrentStreak != stats.WindowDays || got.LongestStreak != stats.WindowDays {
		t.Errorf("streaks = %d/%d, want %d", got.CurrentStreak, got.LongestStreak, stats.WindowDays)
	}
}

func TestStatsMalformedRecordsAreNotPerfect(t *testing.T) {
	doc := model.Document{
		timecalc.DateKey(today): json.RawMessage(`{"tasks":"bad"}`),
	}
	got := stats.ComputeStats(doc, today)
	if got.PerfectDays != 0 || got.CurrentStreak != 0 {
		t.Errorf("ComputeStats = %+v, want no perfect days", got)
	}
	if got.TotalDays != 1 {
		t.Errorf("TotalDays = %d, want 1", got.TotalDays)
	}
}
