package cli

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aissist/aissist/internal/entries"
	"github.com/aissist/aissist/internal/timeframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogHistory(t *testing.T) {
	a, _ := newTestApp(t)

	_, err := a.logHistory("Completed code review", nil)
	require.NoError(t, err)
	goal := "review-pr"
	_, err = a.logHistory("Addressed comments", &goal)
	require.NoError(t, err)

	content := readEntryFile(t, a, entries.CollectionHistory, "2025-11-06")
	assert.Equal(t, "## 14:30\n\nCompleted code review\n\n## 14:30\n\nAddressed comments\n\nGoal: review-pr", content)
}

func TestLogHistory_EmptyText(t *testing.T) {
	a, _ := newTestApp(t)
	_, err := a.logHistory("\n\t", nil)
	assert.Error(t, err)
}

func TestLogHistory_RejectsStructuralLines(t *testing.T) {
	a, _ := newTestApp(t)

	_, err := a.logHistory("Morning work\n## 11:00 - afternoon", nil)
	assert.ErrorIs(t, err, entries.ErrReservedLine)
	_, err = a.logHistory("Morning work\n## 11:00", nil)
	assert.ErrorIs(t, err, entries.ErrReservedLine)
	_, err = a.logHistory("Morning work\n\nGoal: other", nil)
	assert.ErrorIs(t, err, entries.ErrReservedLine)

	_, ok, err := a.store.Read(a.path(entries.CollectionHistory, "2025-11-06"))
	require.NoError(t, err)
	assert.False(t, ok, "nothing should be written")
}

func TestLogHistory_MultiLineStaysOneEntry(t *testing.T) {
	a, _ := newTestApp(t)

	_, err := a.logHistory("Morning work\n> pasted output\nmore notes", nil)
	require.NoError(t, err)

	items, err := a.store.HistoryEntries(a.path(entries.CollectionHistory, "2025-11-06"))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Morning work\n> pasted output\nmore notes", items[0].Text)
}

func TestResolveGoalLink(t *testing.T) {
	a, out := newTestApp(t)

	linked, err := a.resolveGoalLink(pickGoal)
	require.NoError(t, err)
	assert.Nil(t, linked)
	assert.Contains(t, out.String(), "No active goals found")

	writeEntryFile(t, a, entries.CollectionGoals, "2025-11-05", "## 09:00 - learn-rust\n\nLearn Rust")

	linked, err = a.resolveGoalLink("learn-rust")
	require.NoError(t, err)
	require.NotNil(t, linked)
	assert.Equal(t, "learn-rust", *linked)

	_, err = a.resolveGoalLink("Learn-Rust")
	assert.EqualError(t, err, "goal not found: Learn-Rust")

	// Picking needs a terminal
	_, err = a.resolveGoalLink(pickGoal)
	assert.Error(t, err)
}

func TestShowHistoryDay(t *testing.T) {
	a, out := newTestApp(t)
	writeEntryFile(t, a, entries.CollectionHistory, "2025-11-06", "## 10:30\n\nReviewed PR\n")

	require.NoError(t, a.showHistoryDay("", ""))
	assert.Contains(t, out.String(), "History for 2025-11-06:")
	assert.Contains(t, out.String(), "## 10:30\n\nReviewed PR")
}

func TestShowHistoryDay_Missing(t *testing.T) {
	a, out := newTestApp(t)

	require.NoError(t, a.showHistoryDay("2025-01-01", ""))
	assert.Contains(t, out.String(), "No history found for 2025-01-01")
}

func TestShowHistoryDay_InvalidDate(t *testing.T) {
	a, _ := newTestApp(t)
	err := a.showHistoryDay("11/06/2025", "")
	assert.ErrorContains(t, err, "invalid date format")
}

func TestShowHistoryRange(t *testing.T) {
	a, out := newTestApp(t)
	writeEntryFile(t, a, entries.CollectionHistory, "2025-11-02", "## 09:00\n\nLast week")
	writeEntryFile(t, a, entries.CollectionHistory, "2025-11-03", "## 09:00\n\nMonday work\n\nGoal: learn-rust")
	writeEntryFile(t, a, entries.CollectionHistory, "2025-11-06", "## 09:00\n\nThursday work")

	require.NoError(t, a.showHistoryRange("this week", ""))

	text := out.String()
	assert.Contains(t, text, "History for This Week:")
	assert.Contains(t, text, "Monday work")
	assert.Contains(t, text, "[learn-rust]")
	assert.Contains(t, text, "Thursday work")
	assert.NotContains(t, text, "Last week")
	assert.Less(t, strings.Index(text, "2025-11-03"), strings.Index(text, "2025-11-06"))
}

func TestShowHistoryRange_JSON(t *testing.T) {
	a, out := newTestApp(t)
	writeEntryFile(t, a, entries.CollectionHistory, "2025-11-03", "## 09:00\n\nMonday work")
	writeEntryFile(t, a, entries.CollectionHistory, "2025-11-04", "## 09:00\n\nTuesday work\n\n## 11:00\n\nMore")

	require.NoError(t, a.showHistoryRange("this week", "json"))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "2025-11-03", rows[0]["date"])
	assert.Equal(t, "More", rows[2]["text"])
}

func TestShowHistoryRange_InvalidTimeframe(t *testing.T) {
	a, _ := newTestApp(t)
	err := a.showHistoryRange("fortnight", "")
	assert.ErrorIs(t, err, timeframe.ErrInvalid)
}

func TestDatesInRange(t *testing.T) {
	r := timeframe.Range{
		Start: time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 11, 9, 23, 59, 59, 999999999, time.UTC),
	}
	dates := []string{"2025-11-10", "2025-11-09", "2025-11-05", "2025-11-03", "2025-11-02", "notes"}

	assert.Equal(t, []string{"2025-11-03", "2025-11-05", "2025-11-09"}, datesInRange(dates, r))
}

func TestDatesInRange_PartialDay(t *testing.T) {
	// A two hour window still selects the day it falls on
	r := timeframe.Range{
		Start: time.Date(2025, 11, 6, 14, 30, 0, 0, time.UTC),
		End:   time.Date(2025, 11, 6, 16, 30, 0, 0, time.UTC),
	}
	assert.Equal(t, []string{"2025-11-06"}, datesInRange([]string{"2025-11-07", "2025-11-06", "2025-11-05"}, r))
}
