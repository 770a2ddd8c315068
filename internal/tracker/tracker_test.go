package tracker_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Tiliavir/daily-proof/internal/model"
	"github.com/Tiliavir/daily-proof/internal/storage"
	"github.com/Tiliavir/daily-proof/internal/tracker"
)

var fixedNow = time.Date(2024, 6, 10, 8, 0, 0, 0, time.Local)

func newService(store storage.Store, buf *bytes.Buffer) *tracker.Service {
	if buf == nil {
		buf = &bytes.Buffer{}
	}
	svc := tracker.NewService(store, log.New(buf))
	svc.Now = func() time.Time { return fixedNow }
	return svc
}

// degradedStore fails every load the way a corrupt file does.
type degradedStore struct {
	storage.MemoryStore
}

func (d *degradedStore) Load() (model.Document, error) {
	return model.Document{}, storage.ErrCorrupt
}

type failingSaveStore struct {
	*storage.MemoryStore
}

func (f failingSaveStore) Save(model.Document) error {
	return errors.New("disk full")
}

func TestTasksForTodayCreatesAndPersists(t *testing.T) {
	store := storage.NewMemoryStore(nil)
	svc := newService(store, nil)

	day, err := svc.TasksForToday()
	if err != nil {
		t.Fatalf("TasksForToday: %v", err)
	}
	if len(day.Tasks) != model.DefaultTaskCount {
		t.Fatalf("tasks = %d, want %d", len(day.Tasks), model.DefaultTaskCount)
	}
	if store.Saves() != 1 {
		t.Errorf("saves = %d, want 1", store.Saves())
	}

	doc, _ := store.Load()
	if _, status := doc.Day("2024-06-10"); status != model.DayOK {
		t.Errorf("stored status = %v, want ok", status)
	}

	if _, err := svc.TasksForToday(); err != nil {
		t.Fatal(err)
	}
	if store.Saves() != 1 {
		t.Errorf("second read saved again: saves = %d", store.Saves())
	}
}

func TestGetTasksForDateRepairs(t *testing.T) {
	tests := []struct {
		name   string
		stored string
	}{
		{"not an object", `"oops"`},
		{"null", `null`},
		{"missing tasks", `{"note":"kept"}`},
		{"tasks not array", `{"tasks":{"id":1}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore(model.Document{"2024-06-10": json.RawMessage(tt.stored)})
			svc := newService(store, nil)

			day, err := svc.GetTasksForDate("2024-06-10")
			if err != nil {
				t.Fatal(err)
			}
			want := model.DefaultDay()
			if len(day.Tasks) != len(want.Tasks) {
				t.Fatalf("tasks = %+v, want defaults", day.Tasks)
			}
			for i := range want.Tasks {
				if day.Tasks[i] != want.Tasks[i] {
					t.Errorf("task %d = %+v, want %+v", i, day.Tasks[i], want.Tasks[i])
				}
			}
			if store.Saves() != 1 {
				t.Errorf("saves = %d, want 1", store.Saves())
			}
		})
	}
}

func TestSetThenGetRoundTrip(t *testing.T) {
	inputs := []string{
		`[{"id":1,"text":"run","completed":true},{"id":2,"text":"read","completed":false}]`,
		`[]`,
		`"not a list"`,
		``,
		`[{"id":9,"text":"a"},{"id":10,"text":"b"},{"id":11,"text":"c"},{"id":12,"text":"d","completed":true}]`,
	}
	for _, in := range inputs {
		store := storage.NewMemoryStore(nil)
		svc := newService(store, nil)

		if _, err := svc.SetTasksForDate("2024-06-10", json.RawMessage(in)); err != nil {
			t.Fatalf("SetTasksForDate(%s): %v", in, err)
		}
		got, err := svc.GetTasksForDate("2024-06-10")
		if err != nil {
			t.Fatal(err)
		}
		want := model.NormalizeTasks(json.RawMessage(in))
		if len(got.Tasks) != len(want) {
			t.Fatalf("input %s: got %+v, want %+v", in, got.Tasks, want)
		}
		for i := range want {
			if got.Tasks[i] != want[i] {
				t.Errorf("input %s: task %d = %+v, want %+v", in, i, got.Tasks[i], want[i])
			}
		}
	}
}

func TestUpdateReplacesWholeRecord(t *testing.T) {
	store := storage.NewMemoryStore(model.Document{
		"2024-06-10": json.RawMessage(`{"note":"dropped","tasks":[{"id":1,"text":"old"}]}`),
	})
	svc := newService(store, nil)

	if _, err := svc.UpdateTasksForToday(json.RawMessage(`[{"id":1,"text":"new","completed":true}]`)); err != nil {
		t.Fatal(err)
	}
	doc, _ := store.Load()
	if got := string(doc["2024-06-10"]); got != `{"tasks":[{"id":1,"text":"new","completed":true}]}` {
		t.Errorf("stored record = %s", got)
	}
}

func TestDegradedLoadIsLogged(t *testing.T) {
	var buf bytes.Buffer
	svc := newService(&degradedStore{}, &buf)

	summary := svc.Stats()
	if summary.TotalDays != 0 {
		t.Errorf("TotalDays = %d, want 0", summary.TotalDays)
	}
	if !strings.Contains(buf.String(), "using empty document") {
		t.Errorf("expected degradation warning, got %q", buf.String())
	}
}

func TestSaveFailureSurfaces(t *testing.T) {
	svc := newService(failingSaveStore{storage.NewMemoryStore(nil)}, nil)
	if _, err := svc.TasksForToday(); err == nil {
		t.Error("expected save error")
	}
	if _, err := svc.UpdateTasksForToday(json.RawMessage(`[]`)); err == nil {
		t.Error("expected save error")
	}
}

func TestHeatmapAndStatsUseClock(t *testing.T) {
	store := storage.NewMemoryStore(nil)
	svc := newService(store, nil)

	if _, err := svc.UpdateTasksForToday(json.RawMessage(`[{"id":1,"text":"a","completed":true},{"id":2,"text":"b","completed":true},{"id":3,"text":"c","completed":true}]`)); err != nil {
		t.Fatal(err)
	}

	heatmap := svc.Heatmap()
	if len(heatmap) != 366 {
		t.Fatalf("heatmap len = %d, want 366 for 2024", len(heatmap))
	}
	for _, d := range heatmap {
		want := 0
		if d.Date == "2024-06-10" {
			want = 3
		}
		if d.Level != want {
			t.Errorf("level on %s = %d, want %d", d.Date, d.Level, want)
		}
	}

	summary := svc.Stats()
	if summary.CurrentStreak != 1 || summary.PerfectDays != 1 || summary.TotalDays != 1 {
		t.Errorf("Stats = %+v", summary)
	}
}

func TestFileStoreIntegration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", storage.DefaultDataFile)
	svc := newService(storage.NewFileStore(path), nil)

	if _, err := svc.UpdateTasksForToday(json.RawMessage(`[{"id":1,"text":"run","completed":true}]`)); err != nil {
		t.Fatal(err)
	}

	reopened := newService(storage.NewFileStore(path), nil)
	day, err := reopened.TasksForToday()
	if err != nil {
		t.Fatal(err)
	}
	if len(day.Tasks) != 1 || day.Tasks[0].Text != "run" {
		t.Errorf("tasks after reopen = %+v", day.Tasks)
	}
}
