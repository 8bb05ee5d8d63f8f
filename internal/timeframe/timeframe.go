package timeframe

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// nowWindow is the length of the "now" range expressed in days (2/24).
const nowWindow = 0.0833

var (
	// ErrInvalid is wrapped by every error returned for an unrecognized timeframe.
	ErrInvalid = errors.New("invalid timeframe")

	quarterRe   = regexp.MustCompile(`^(\d{4})\s*q([1-4])$`)
	monthYearRe = regexp.MustCompile(`^([a-z]+)\s+(\d{4})$`)
	nextDaysRe  = regexp.MustCompile(`^next\s+(\d+)\s+days?$`)

	monthNames = []string{
		"january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december",
	}

	// Monday-start weeks, matching ISO weeks.
	calendar = &now.Config{WeekStartDay: time.Monday}
)

// Range is a resolved timeframe.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// Contains reports whether t falls inside the range, bounds included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ContainsDate reports whether any part of the calendar day date (YYYY-MM-DD,
// in the range's location) falls inside the range. Malformed dates never match.
func (r Range) ContainsDate(date string) bool {
	day, err := time.ParseInLocation("2006-01-02", date, r.Start.Location())
	if err != nil {
		return false
	}
	dayEnd := calendar.With(day).EndOfDay()
	return !day.After(r.End) && !dayEnd.Before(r.Start)
}

// InvalidError reports an input that matched none of the supported forms.
type InvalidError struct {
	Input string
}

func (e *InvalidError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("invalid timeframe: %q\n\n", e.Input))
	sb.WriteString("Supported formats:\n")
	for _, form := range SupportedForms {
		sb.WriteString("  - ")
		sb.WriteString(form)
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func (e *InvalidError) Unwrap() error {
	return ErrInvalid
}

// SupportedForms lists every accepted input form, in matching order.
var SupportedForms = []string{
	"now (single immediate action)",
	"today, tomorrow",
	"this week, next week",
	"this quarter, next quarter",
	"this month, next month",
	`YYYY QN (e.g., "2026 Q1")`,
	`Month YYYY (e.g., "November 2025")`,
	`next N days (e.g., "next 7 days")`,
	"YYYY-MM-DD (ISO date)",
}

// Parse resolves input against the current wall-clock time.
// An empty input resolves to "today".
func Parse(input string) (Range, error) {
	return ParseAt(input, time.Now())
}

// ParseAt resolves input relative to the supplied instant. Calendar boundaries
// are computed in the location of current.
func ParseAt(input string, current time.Time) (Range, error) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		normalized = "today"
	}

	today := calendar.With(current)

	switch normalized {
	case "now":
		window := time.Duration(nowWindow * float64(24*time.Hour))
		return Range{Start: current, End: current.Add(window), Label: "Right Now"}, nil

	case "today":
		return Range{Start: today.BeginningOfDay(), End: today.EndOfDay(), Label: "Today"}, nil

	case "tomorrow":
		tomorrow := calendar.With(current.AddDate(0, 0, 1))
		return Range{Start: tomorrow.BeginningOfDay(), End: tomorrow.EndOfDay(), Label: "Tomorrow"}, nil

	case "this week":
		return Range{Start: today.BeginningOfWeek(), End: today.EndOfWeek(), Label: "This Week"}, nil

	case "next week":
		next := calendar.With(current.AddDate(0, 0, 7))
		return Range{Start: next.BeginningOfWeek(), End: next.EndOfWeek(), Label: "Next Week"}, nil

	case "this quarter":
		return Range{Start: today.BeginningOfQuarter(), End: today.EndOfQuarter(), Label: "This Quarter"}, nil

	case "next quarter":
		// Shift from the first of the month so short months cannot overflow
		// into the following quarter.
		next := calendar.With(today.BeginningOfMonth().AddDate(0, 3, 0))
		return Range{Start: next.BeginningOfQuarter(), End: next.EndOfQuarter(), Label: "Next Quarter"}, nil
	}

	if match := quarterRe.FindStringSubmatch(normalized); match != nil {
		year, _ := strconv.Atoi(match[1])
		quarter, _ := strconv.Atoi(match[2])
		first := time.Date(year, time.Month((quarter-1)*3+1), 1, 0, 0, 0, 0, current.Location())
		q := calendar.With(first)
		return Range{
			Start: q.BeginningOfQuarter(),
			End:   q.EndOfQuarter(),
			Label: fmt.Sprintf("%d Q%d", year, quarter),
		}, nil
	}

	switch normalized {
	case "this month":
		return Range{Start: today.BeginningOfMonth(), End: today.EndOfMonth(), Label: "This Month"}, nil

	case "next month":
		next := calendar.With(today.BeginningOfMonth().AddDate(0, 1, 0))
		return Range{Start: next.BeginningOfMonth(), End: next.EndOfMonth(), Label: "Next Month"}, nil
	}

	if match := monthYearRe.FindStringSubmatch(normalized); match != nil {
		if month, ok := monthIndex(match[1]); ok {
			year, _ := strconv.Atoi(match[2])
			m := calendar.With(time.Date(year, month, 1, 0, 0, 0, 0, current.Location()))
			return Range{
				Start: m.BeginningOfMonth(),
				End:   m.EndOfMonth(),
				Label: fmt.Sprintf("%s %d", capitalize(match[1]), year),
			}, nil
		}
	}

	if match := nextDaysRe.FindStringSubmatch(normalized); match != nil {
		days, err := strconv.Atoi(match[1])
		if err == nil {
			end := calendar.With(current.AddDate(0, 0, days))
			return Range{
				Start: today.BeginningOfDay(),
				End:   end.EndOfDay(),
				Label: fmt.Sprintf("Next %d Days", days),
			}, nil
		}
	}

	if date, err := time.ParseInLocation("2006-01-02", normalized, current.Location()); err == nil {
		return Range{
			Start: date,
			End:   calendar.With(date).EndOfDay(),
			Label: normalized,
		}, nil
	}

	return Range{}, &InvalidError{Input: input}
}

// FormatDate formats a time.Time as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// monthIndex matches name against the English month names by its first three
// letters, so "nov", "november" and "novembre" all resolve to November.
func monthIndex(name string) (time.Month, bool) {
	if len(name) < 3 {
		return 0, false
	}
	prefix := name[:3]
	for i, month := range monthNames {
		if strings.HasPrefix(month, prefix) {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
