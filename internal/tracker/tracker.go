// Package tracker runs the load, mutate and save cycle behind every
// operation of the daily tracker.
package tracker

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Tiliavir/daily-proof/internal/model"
	"github.com/Tiliavir/daily-proof/internal/stats"
	"github.com/Tiliavir/daily-proof/internal/storage"
	"github.com/Tiliavir/daily-proof/internal/timecalc"
)

// Service reads the document from its store on every call. There is no
// cache, so two processes sharing a file only race on the final save.
type Service struct {
	store  storage.Store
	logger *log.Logger

	// Now is the clock. All date bucketing uses its location.
	Now func() time.Time
}

// NewService returns a Service using the local wall clock.
func NewService(store storage.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{store: store, logger: logger, Now: time.Now}
}

// Today returns the local date key of the current day.
func (s *Service) Today() string {
	return timecalc.DateKey(s.Now())
}

// Document loads the current document, logging any degradation.
func (s *Service) Document() model.Document {
	doc, err := s.store.Load()
	if err != nil {
		s.logger.Warn("tracker data unavailable, using empty document", "err", err)
	}
	if doc == nil {
		doc = model.Document{}
	}
	return doc
}

// GetTasksForDate returns the record for date, creating or repairing it
// first. The document is saved only when it changed.
func (s *Service) GetTasksForDate(date string) (model.DayRecord, error) {
	doc := s.Document()
	day, changed := EnsureDay(doc, date)
	if changed {
		s.logger.Debug("seeding day record", "date", date)
		if err := s.store.Save(doc); err != nil {
			return day, fmt.Errorf("saving %s: %w", date, err)
		}
	}
	return day, nil
}

// SetTasksForDate replaces the record for date with the normalized tasks.
func (s *Service) SetTasksForDate(date string, tasks json.RawMessage) (model.DayRecord, error) {
	doc := s.Document()
	day := model.DayRecord{Tasks: model.NormalizeTasks(tasks)}
	doc.SetDay(date, day)
	if err := s.store.Save(doc); err != nil {
		return day, fmt.Errorf("saving %s: %w", date, err)
	}
	s.logger.Debug("updated day record", "date", date, "tasks", len(day.Tasks))
	return day, nil
}

// TasksForToday is GetTasksForDate for the current local date.
func (s *Service) TasksForToday() (model.DayRecord, error) {
	return s.GetTasksForDate(s.Today())
}

// UpdateTasksForToday is SetTasksForDate for the current local date.
func (s *Service) UpdateTasksForToday(tasks json.RawMessage) (model.DayRecord, error) {
	return s.SetTasksForDate(s.Today(), tasks)
}

// Heatmap returns the heatmap of the current local year.
func (s *Service) Heatmap() []stats.HeatmapDay {
	return s.HeatmapForYear(s.Now().Year())
}

// HeatmapForYear returns the heatmap of year in the clock's location.
func (s *Service) HeatmapForYear(year int) []stats.HeatmapDay {
	return stats.ComputeHeatmap(s.Document(), year, s.Now().Location())
}

// Stats returns the statistics for the window ending today.
func (s *Service) Stats() stats.Summary {
	return stats.ComputeStats(s.Document(), s.Now())
}

// EnsureDay returns the record for date, inserting DefaultDay when the
// record is missing or not an object and repairing a missing or non-array
// tasks field. changed reports whether doc was modified.
func EnsureDay(doc model.Document, date string) (day model.DayRecord, changed bool) {
	day, status := doc.Day(date)
	switch status {
	case model.DayOK:
		return day, false
	case model.DayNoTasks:
		return doc.RepairTasks(date), true
	default:
		day = model.DefaultDay()
		doc.SetDay(date, day)
		return day, true
	}
}
