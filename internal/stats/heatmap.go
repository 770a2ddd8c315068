// Package stats aggregates a tracker document into heatmap levels and
// streak statistics.
package stats

import (
	"time"

	"github.com/Tiliavir/daily-proof/internal/model"
	"github.com/Tiliavir/daily-proof/internal/timecalc"
)

// HeatmapDay is the completion level of a single date.
type HeatmapDay struct {
	Date  string `json:"date" yaml:"date"`
	Level int    `json:"level" yaml:"level"`
}

// ComputeHeatmap returns one entry per day of year in loc, January 1
// through December 31 in ascending order. Missing or malformed records
// have level 0.
func ComputeHeatmap(doc model.Document, year int, loc *time.Location) []HeatmapDay {
	days := timecalc.YearDays(year, loc)
	heatmap := make([]HeatmapDay, len(days))
	for i, d := range days {
		key := timecalc.DateKey(d)
		level := 0
		if day, status := doc.Day(key); status == model.DayOK {
			level = day.Level()
		}
		heatmap[i] = HeatmapDay{Date: key, Level: level}
	}
	return heatmap
}
