package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/daily-proof/internal/model"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all recorded days to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, yaml")
}

// exportDay is one recorded date in export output.
type exportDay struct {
	Date  string       `json:"date" yaml:"date"`
	Tasks []model.Task `json:"tasks" yaml:"tasks"`
}

func runExport(cmd *cobra.Command, args []string) error {
	days := collectDays(trackSvc.Document(), os.Stderr)
	w := cmd.OutOrStdout()

	switch exportFormat {
	case "json":
		return printJSON(w, days)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(days); err != nil {
			return fmt.Errorf("error encoding YAML: %w", err)
		}
		return enc.Close()
	case "csv":
		printCSV(w, days)
		return nil
	}
	return fmt.Errorf("unknown export format %q (want csv, json or yaml)", exportFormat)
}

// collectDays returns the decodable days in date order and reports the
// rest to warn.
func collectDays(doc model.Document, warn io.Writer) []exportDay {
	days := make([]exportDay, 0, len(doc))
	for _, date := range doc.Dates() {
		day, status := doc.Day(date)
		if status != model.DayOK {
			fmt.Fprintf(warn, "Warning: skipping %s record for %s\n", status, date)
			continue
		}
		days = append(days, exportDay{Date: date, Tasks: day.Tasks})
	}
	return days
}

func printCSV(w io.Writer, days []exportDay) {
	fmt.Fprintln(w, "date,id,text,completed")
	for _, d := range days {
		for _, t := range d.Tasks {
			fmt.Fprintf(w, "%s,%d,%s,%s\n",
				csvEscape(d.Date),
				t.ID,
				csvEscape(t.Text),
				strconv.FormatBool(t.Completed),
			)
		}
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
