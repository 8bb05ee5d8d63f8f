package entries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatGoal(t *testing.T) {
	g := GoalEntry{
		Entry:       Entry{Time: "14:30", Text: "Learn Go"},
		Codename:    "learn-go",
		Description: stringPtr("Line 1\nLine 2"),
		Deadline:    stringPtr("2025-11-15"),
	}

	expected := "## 14:30 - learn-go\n\nLearn Go\n\n> Line 1\n> Line 2\n\nDeadline: 2025-11-15"
	assert.Equal(t, expected, FormatGoal(g))
}

func TestFormatGoal_OptionalFieldsOmitted(t *testing.T) {
	g := GoalEntry{Entry: Entry{Time: "09:05", Text: "Ship"}, Codename: "ship"}
	assert.Equal(t, "## 09:05 - ship\n\nShip", FormatGoal(g))
}

func TestFormatGoal_RoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		description *string
		deadline    *string
	}{
		{"text only", "Plain goal", nil, nil},
		{"with deadline", "Goal with deadline", nil, stringPtr("2026-01-31")},
		{"with description", "Goal with description", stringPtr("Because"), nil},
		{"everything", "Multi\nline goal", stringPtr("First\n\nThird"), stringPtr("2025-12-31")},
		{"indented description", "Goal", stringPtr("  indented\n- bullet"), nil},
		{"text holds a quote", "Goal\n\n> quoted in text\n\nmore", stringPtr("real description"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := GoalEntry{
				Entry:       Entry{Time: "10:00", Text: tt.text},
				Codename:    "round-trip",
				Description: tt.description,
				Deadline:    tt.deadline,
			}

			parsed := ParseGoalEntries(FormatGoal(g))
			require.Len(t, parsed, 1)
			assert.Equal(t, g, parsed[0])
		})
	}
}

func TestFormatHistory(t *testing.T) {
	h := HistoryEntry{Entry: Entry{Time: "10:30", Text: "Completed code review"}}
	assert.Equal(t, "## 10:30\n\nCompleted code review", FormatHistory(h))

	h.LinkedGoal = stringPtr("review-pr")
	block := FormatHistory(h)
	assert.Equal(t, "## 10:30\n\nCompleted code review\n\nGoal: review-pr", block)

	parsed := ParseHistoryEntries(block)
	require.Len(t, parsed, 1)
	assert.Equal(t, h, parsed[0])
}

func TestFormatTodo(t *testing.T) {
	tests := []struct {
		name     string
		todo     TodoEntry
		expected string
	}{
		{
			name:     "plain",
			todo:     TodoEntry{Entry: Entry{Time: "08:00", Text: "Buy milk"}},
			expected: "## 08:00\n\n- [ ] Buy milk",
		},
		{
			name:     "priority and goal",
			todo:     TodoEntry{Entry: Entry{Time: "08:00", Text: "Draft"}, Priority: 3, LinkedGoal: stringPtr("write-book")},
			expected: "## 08:00\n\n- [ ] Draft (Priority: 3) (Goal: write-book)",
		},
		{
			name:     "done",
			todo:     TodoEntry{Entry: Entry{Time: "08:00", Text: "Done thing"}, Done: true},
			expected: "## 08:00\n\n- [x] Done thing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := FormatTodo(tt.todo)
			assert.Equal(t, tt.expected, block)

			parsed := ParseTodoEntries(block)
			require.Len(t, parsed, 1)
			assert.Equal(t, tt.todo, parsed[0])
		})
	}
}
