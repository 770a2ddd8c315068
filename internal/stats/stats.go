package stats

import (
	"time"

	"github.com/Tiliavir/daily-proof/internal/model"
	"github.com/Tiliavir/daily-proof/internal/timecalc"
)

// WindowDays is the length of the trailing window used for streaks and
// perfect-day counts, today included.
const WindowDays = 365

// Summary holds usage statistics.
type Summary struct {
	TotalDays     int `json:"total_days" yaml:"total_days"`
	PerfectDays   int `json:"perfect_days" yaml:"perfect_days"`
	CurrentStreak int `json:"current_streak" yaml:"current_streak"`
	LongestStreak int `json:"longest_streak" yaml:"longest_streak"`
}

// ComputeStats walks the WindowDays days ending at today, newest first.
//
// TotalDays counts every record in the document, not only those in the
// window. CurrentStreak is the run of perfect days that ends at today and
// is zero when today is not perfect. LongestStreak is the longest run
// anywhere inside the window.
func ComputeStats(doc model.Document, today time.Time) Summary {
	s := Summary{TotalDays: len(doc)}

	run := 0
	// The current streak keeps growing for as long as the run has been
	// unbroken since today, not just for today itself.
	touchesToday := true
	for i := 0; i < WindowDays; i++ {
		key := timecalc.DateKey(timecalc.DaysBefore(today, i))
		day, status := doc.Day(key)

		if status == model.DayOK && day.Perfect() {
			s.PerfectDays++
			run++
			if touchesToday {
				s.CurrentStreak = run
			}
			continue
		}

		s.LongestStreak = max(s.LongestStreak, run)
		run = 0
		touchesToday = false
	}
	s.LongestStreak = max(s.LongestStreak, run)

	return s
}
