package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/daily-proof/internal/stats"
	"github.com/Tiliavir/daily-proof/internal/timecalc"
)

var (
	heatmapYear int
	heatmapJSON bool
)

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Show the completion heatmap of a year",
	Args:  cobra.NoArgs,
	RunE:  runHeatmap,
}

func init() {
	heatmapCmd.Flags().IntVar(&heatmapYear, "year", 0, "Year to show (default current year)")
	heatmapCmd.Flags().BoolVar(&heatmapJSON, "json", false, "Print the heatmap as JSON")
}

func runHeatmap(cmd *cobra.Command, args []string) error {
	year := heatmapYear
	if year == 0 {
		year = trackSvc.Now().Year()
	}
	if year < 1 || year > 9999 {
		return fmt.Errorf("invalid --year value %d", year)
	}

	heatmap := trackSvc.HeatmapForYear(year)
	if heatmapJSON {
		return printJSON(cmd.OutOrStdout(), heatmap)
	}
	renderHeatmap(cmd.OutOrStdout(), year, heatmap)
	return nil
}

// levelGlyphs maps a heatmap level to its cell.
var levelGlyphs = [...]string{"·", "░", "▒", "█"}

var weekdayLabels = [7]string{"Mon", "", "Wed", "", "Fri", "", "Sun"}

// renderHeatmap prints the year as a grid with one column per ISO week and
// one row per weekday, Monday on top.
func renderHeatmap(w io.Writer, year int, heatmap []stats.HeatmapDay) {
	jan1 := time.Date(year, time.January, 1, 12, 0, 0, 0, time.UTC)
	monday, _ := timecalc.WeekRange(jan1)
	offset := int(timecalc.Noon(jan1).Sub(timecalc.Noon(monday)).Hours() / 24)
	weeks := (offset + len(heatmap) + 6) / 7

	fmt.Fprintf(w, "%d\n", year)
	fmt.Fprintf(w, "    %s\n", monthHeader(year, offset, weeks))

	for row := 0; row < 7; row++ {
		var b strings.Builder
		fmt.Fprintf(&b, "%-4s", weekdayLabels[row])
		for col := 0; col < weeks; col++ {
			idx := col*7 + row - offset
			if idx < 0 || idx >= len(heatmap) {
				b.WriteString(" ")
				continue
			}
			b.WriteString(glyph(heatmap[idx].Level))
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}

	fmt.Fprintf(w, "    Less %s More\n", strings.Join(levelGlyphs[:], " "))
}

// monthHeader places each month abbreviation above the week holding its
// first day, skipping a label that would overlap the previous one.
func monthHeader(year, offset, weeks int) string {
	header := []byte(strings.Repeat(" ", weeks+3))
	next := 0
	for m := time.January; m <= time.December; m++ {
		first := time.Date(year, m, 1, 12, 0, 0, 0, time.UTC)
		col := (offset + first.YearDay() - 1) / 7
		if col < next {
			continue
		}
		copy(header[col:], first.Format("Jan"))
		next = col + 4
	}
	return strings.TrimRight(string(header), " ")
}

func glyph(level int) string {
	if level < 0 {
		level = 0
	}
	if level >= len(levelGlyphs) {
		level = len(levelGlyphs) - 1
	}
	return levelGlyphs[level]
}
