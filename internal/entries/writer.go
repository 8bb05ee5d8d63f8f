package entries

import (
	"fmt"
	"strings"
)

// FormatGoal renders a goal entry as a block:
//
//	## HH:MM - codename
//
//	text
//
//	> description
//
//	Deadline: YYYY-MM-DD
func FormatGoal(g GoalEntry) string {
	heading := fmt.Sprintf("## %s - %s", g.Time, g.Codename)

	description := ""
	if g.Description != nil {
		description = quoteDescription(*g.Description)
	}

	deadline := ""
	if g.Deadline != nil && *g.Deadline != "" {
		deadline = "Deadline: " + *g.Deadline
	}

	return joinGoalBlock(heading, g.Text, description, deadline)
}

// FormatHistory renders a history entry as a block.
func FormatHistory(h HistoryEntry) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## %s\n\n%s", h.Time, h.Text))
	if h.LinkedGoal != nil && *h.LinkedGoal != "" {
		sb.WriteString(fmt.Sprintf("\n\nGoal: %s", *h.LinkedGoal))
	}
	return sb.String()
}

// FormatTodo renders a todo entry as a block.
func FormatTodo(t TodoEntry) string {
	marker := "[ ]"
	if t.Done {
		marker = "[x]"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## %s\n\n- %s %s", t.Time, marker, t.Text))
	if t.Priority > 0 {
		sb.WriteString(fmt.Sprintf(" (Priority: %d)", t.Priority))
	}
	if t.LinkedGoal != nil && *t.LinkedGoal != "" {
		sb.WriteString(fmt.Sprintf(" (Goal: %s)", *t.LinkedGoal))
	}
	return sb.String()
}

// quoteDescription prefixes every line of description with the quote marker.
// Returns "" for an empty description.
func quoteDescription(description string) string {
	if description == "" {
		return ""
	}

	lines := strings.Split(strings.ReplaceAll(description, "\r\n", "\n"), "\n")
	for i, l := range lines {
		if l == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + l
		}
	}
	return strings.Join(lines, "\n")
}

// joinGoalBlock assembles a goal block from its rendered parts, separating the
// non-empty ones with a blank line.
func joinGoalBlock(heading, text, description, deadline string) string {
	parts := []string{heading}
	for _, part := range []string{text, description, deadline} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "\n\n")
}
