package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aissist/aissist/internal/entries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"tsv", FormatTSV, false},
		{"csv", FormatCSV, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func sampleGoals() []entries.ActiveGoal {
	deadline := "2025-12-31"
	description := "Read the book\nDo the exercises"
	return []entries.ActiveGoal{
		{Codename: "learn-rust", Text: "Learn Rust", Date: "2025-11-06", Deadline: &deadline, Description: &description},
		{Codename: "ship-v2", Text: "Ship v2, finally", Date: "2025-11-05"},
	}
}

func TestFormatGoals_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatGoals(&buf, FormatJSON, sampleGoals()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "learn-rust", decoded[0]["codename"])
	assert.Equal(t, "2025-12-31", decoded[0]["deadline"])
	assert.NotContains(t, decoded[1], "deadline")
}

func TestFormatGoals_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatGoals(&buf, FormatCSV, sampleGoals()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "CODENAME,DATE,DEADLINE,TEXT,DESCRIPTION\n"))
	assert.Contains(t, out, `ship-v2,2025-11-05,,"Ship v2, finally",`)
	assert.Contains(t, out, "\"Read the book\nDo the exercises\"")
}

func TestFormatGoals_TSVFlattensNewlines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatGoals(&buf, FormatTSV, sampleGoals()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "Read the book Do the exercises")
}

func TestFormatTodos_JSONIncludesDate(t *testing.T) {
	goal := "learn-rust"
	rows := []todoRow{{
		Date: "2025-11-06",
		TodoEntry: entries.TodoEntry{
			Entry:      entries.Entry{Time: "09:00", Text: "Read chapter 1"},
			Priority:   3,
			LinkedGoal: &goal,
		},
	}}

	var buf bytes.Buffer
	require.NoError(t, formatTodos(&buf, FormatJSON, rows))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "2025-11-06", decoded[0]["date"])
	assert.Equal(t, "09:00", decoded[0]["time"])
	assert.Equal(t, "Read chapter 1", decoded[0]["text"])
	assert.Equal(t, float64(3), decoded[0]["priority"])
	assert.Equal(t, "learn-rust", decoded[0]["linked_goal"])
}

func TestFormatHistory_CSV(t *testing.T) {
	rows := []historyRow{{
		Date:         "2025-11-06",
		HistoryEntry: entries.HistoryEntry{Entry: entries.Entry{Time: "10:30", Text: "Reviewed PR"}},
	}}

	var buf bytes.Buffer
	require.NoError(t, formatHistory(&buf, FormatCSV, rows))
	assert.Equal(t, "DATE,TIME,GOAL,TEXT\n2025-11-06,10:30,,Reviewed PR\n", buf.String())
}
