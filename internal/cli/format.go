package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/aissist/aissist/internal/entries"
)

type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatTSV  OutputFormat = "tsv"
	FormatCSV  OutputFormat = "csv"
)

func parseFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "tsv":
		return FormatTSV, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: json, tsv, csv)", s)
	}
}

// historyRow is a history entry with the date of the file it came from
type historyRow struct {
	Date string `json:"date"`
	entries.HistoryEntry
}

// todoRow is a todo entry with the date of the file it came from
type todoRow struct {
	Date string `json:"date"`
	entries.TodoEntry
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatGoals(w io.Writer, format OutputFormat, goals []entries.ActiveGoal) error {
	if format == FormatJSON {
		return json.NewEncoder(w).Encode(goals)
	}

	header := []string{"CODENAME", "DATE", "DEADLINE", "TEXT", "DESCRIPTION"}
	records := make([][]string, 0, len(goals))
	for _, g := range goals {
		records = append(records, []string{g.Codename, g.Date, deref(g.Deadline), g.Text, deref(g.Description)})
	}
	return writeTable(w, format, header, records)
}

func formatHistory(w io.Writer, format OutputFormat, rows []historyRow) error {
	if format == FormatJSON {
		return json.NewEncoder(w).Encode(rows)
	}

	header := []string{"DATE", "TIME", "GOAL", "TEXT"}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{r.Date, r.Time, deref(r.LinkedGoal), r.Text})
	}
	return writeTable(w, format, header, records)
}

func formatTodos(w io.Writer, format OutputFormat, rows []todoRow) error {
	if format == FormatJSON {
		return json.NewEncoder(w).Encode(rows)
	}

	header := []string{"DATE", "TIME", "DONE", "PRIORITY", "GOAL", "TEXT"}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Date, r.Time, strconv.FormatBool(r.Done), strconv.Itoa(r.Priority), deref(r.LinkedGoal), r.Text,
		})
	}
	return writeTable(w, format, header, records)
}

func writeTable(w io.Writer, format OutputFormat, header []string, records [][]string) error {
	switch format {
	case FormatTSV:
		tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', tabwriter.TabIndent)
		fmt.Fprintln(tw, strings.Join(header, "\t"))
		for _, rec := range records {
			for i := range rec {
				rec[i] = flatten(rec[i])
			}
			fmt.Fprintln(tw, strings.Join(rec, "\t"))
		}
		return tw.Flush()
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
		for _, rec := range records {
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// flatten keeps multi-line fields on one TSV row
func flatten(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
