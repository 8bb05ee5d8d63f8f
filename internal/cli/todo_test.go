package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/aissist/aissist/internal/entries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"low", 1, false},
		{"Medium", 3, false},
		{" high ", 5, false},
		{"URGENT", 8, false},
		{"7", 7, false},
		{"0", 0, false},
		{"-1", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parsePriority(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddTodo(t *testing.T) {
	a, _ := newTestApp(t)
	goal := "learn-rust"

	_, err := a.addTodo("Read chapter 1", "", 3, &goal)
	require.NoError(t, err)
	_, err = a.addTodo("Buy milk", "", 0, nil)
	require.NoError(t, err)

	content := readEntryFile(t, a, entries.CollectionTodos, "2025-11-06")
	assert.Equal(t, "## 14:30\n\n- [ ] Read chapter 1 (Priority: 3) (Goal: learn-rust)\n\n## 14:30\n\n- [ ] Buy milk", content)
}

func TestAddTodo_ExplicitDate(t *testing.T) {
	a, _ := newTestApp(t)

	_, err := a.addTodo("Plan sprint", "2025-11-10", 0, nil)
	require.NoError(t, err)
	assert.Contains(t, readEntryFile(t, a, entries.CollectionTodos, "2025-11-10"), "- [ ] Plan sprint")

	_, err = a.addTodo("Plan sprint", "tomorrow", 0, nil)
	assert.ErrorContains(t, err, "invalid date format")
}

func TestAddTodo_CollapsesMultilineText(t *testing.T) {
	a, _ := newTestApp(t)

	todo, err := a.addTodo("Write\nthe docs", "", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "Write the docs", todo.Text)

	parsed := entries.ParseTodoEntries(readEntryFile(t, a, entries.CollectionTodos, "2025-11-06"))
	require.Len(t, parsed, 1)
	assert.Equal(t, "Write the docs", parsed[0].Text)
}

func TestListTodos(t *testing.T) {
	a, out := newTestApp(t)
	writeEntryFile(t, a, entries.CollectionTodos, "2025-11-06",
		"## 09:00\n\n- [ ] Low one (Priority: 1)\n\n## 10:00\n\n- [x] Done one (Priority: 8)\n\n## 11:00\n\n- [ ] Urgent one (Priority: 8) (Goal: ship-v2)")

	require.NoError(t, a.listTodos("", "", false, ""))

	text := out.String()
	assert.Contains(t, text, "Todos for 2025-11-06 (2)")
	assert.NotContains(t, text, "Done one")
	assert.Contains(t, text, "[ship-v2]")
	assert.Less(t, strings.Index(text, "Urgent one"), strings.Index(text, "Low one"))
}

func TestListTodos_AllJSON(t *testing.T) {
	a, out := newTestApp(t)
	writeEntryFile(t, a, entries.CollectionTodos, "2025-11-06",
		"## 09:00\n\n- [x] Done one (Priority: 8)\n\n## 10:00\n\n- [ ] Open one")

	require.NoError(t, a.listTodos("", "", true, "json"))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Open one", rows[0]["text"])
	assert.Equal(t, true, rows[1]["done"])
}

func TestListTodos_Since(t *testing.T) {
	a, out := newTestApp(t)
	writeEntryFile(t, a, entries.CollectionTodos, "2025-10-30", "## 09:00\n\n- [ ] Too old")
	writeEntryFile(t, a, entries.CollectionTodos, "2025-11-04", "## 09:00\n\n- [ ] Tuesday")
	writeEntryFile(t, a, entries.CollectionTodos, "2025-11-06", "## 09:00\n\n- [ ] Thursday")

	require.NoError(t, a.listTodos("", "this week", false, ""))

	text := out.String()
	assert.Contains(t, text, "Todos for This Week (2)")
	assert.Contains(t, text, "2025-11-04")
	assert.NotContains(t, text, "Too old")
}

func TestListTodos_Empty(t *testing.T) {
	a, out := newTestApp(t)
	require.NoError(t, a.listTodos("2025-01-01", "", false, ""))
	assert.Contains(t, out.String(), "No todos found for 2025-01-01")
}

func TestSortTodos(t *testing.T) {
	rows := []todoRow{
		{TodoEntry: entries.TodoEntry{Entry: entries.Entry{Text: "a"}, Priority: 1}},
		{TodoEntry: entries.TodoEntry{Entry: entries.Entry{Text: "b"}, Priority: 5, Done: true}},
		{TodoEntry: entries.TodoEntry{Entry: entries.Entry{Text: "c"}, Priority: 5}},
		{TodoEntry: entries.TodoEntry{Entry: entries.Entry{Text: "d"}, Priority: 1}},
	}

	sortTodos(rows)

	var order []string
	for _, r := range rows {
		order = append(order, r.Text)
	}
	assert.Equal(t, []string{"c", "a", "d", "b"}, order)
}
