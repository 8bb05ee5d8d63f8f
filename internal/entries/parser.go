package entries

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// Todo checkbox line - "- [ ] text" or "- [x] text"
	todoItemRe = regexp.MustCompile(`^-\s+\[([ xX])\]\s*(.*)$`)

	// Trailing todo metadata, stripped from the end of the item text in any order
	todoPriorityRe = regexp.MustCompile(`\s*\(Priority:\s*(\d+)\)\s*$`)
	todoGoalRe     = regexp.MustCompile(`\s*\(Goal:\s*([^)]+?)\s*\)\s*$`)
)

// ParseGoalEntries parses the content of a goal file into its goal entries,
// in file order.
func ParseGoalEntries(content string) []GoalEntry {
	_, blocks := splitBlocks(scanLines(content), lineGoalHeading)

	goals := make([]GoalEntry, 0, len(blocks))
	for _, b := range blocks {
		goals = append(goals, parseGoalBlock(b))
	}
	return goals
}

// goalFields locates the description run and the deadline line inside a goal
// block body. Bounds are -1 when absent.
type goalFields struct {
	descStart, descEnd int
	deadline           int
}

func locateGoalFields(body []line) goalFields {
	start, end := lastRun(body, lineQuote)
	return goalFields{
		descStart: start,
		descEnd:   end,
		deadline:  lastIndex(body, lineDeadline),
	}
}

func (f goalFields) owns(i int) bool {
	return i == f.deadline || (i >= f.descStart && i < f.descEnd)
}

func parseGoalBlock(b block) GoalEntry {
	fields := locateGoalFields(b.body)

	goal := GoalEntry{
		Entry: Entry{
			Time: b.heading.time,
			Text: joinRaw(b.body, fields.owns),
		},
		Codename: b.heading.codename,
	}

	if fields.descStart >= 0 {
		parts := make([]string, 0, fields.descEnd-fields.descStart)
		for _, l := range b.body[fields.descStart:fields.descEnd] {
			parts = append(parts, l.value)
		}
		description := strings.Join(parts, "\n")
		if strings.TrimSpace(description) != "" {
			goal.Description = stringPtr(description)
		}
	}

	if fields.deadline >= 0 {
		goal.Deadline = stringPtr(b.body[fields.deadline].value)
	}

	return goal
}

// ParseHistoryEntries parses the content of a history file, in file order.
func ParseHistoryEntries(content string) []HistoryEntry {
	_, blocks := splitBlocks(scanLines(content), lineTimeHeading)

	history := make([]HistoryEntry, 0, len(blocks))
	for _, b := range blocks {
		link := lastIndex(b.body, lineGoalLink)

		entry := HistoryEntry{
			Entry: Entry{
				Time: b.heading.time,
				Text: joinRaw(b.body, func(i int) bool { return i == link }),
			},
		}
		if link >= 0 {
			entry.LinkedGoal = stringPtr(b.body[link].value)
		}
		history = append(history, entry)
	}
	return history
}

// ParseTodoEntries parses the content of a todo file, in file order.
func ParseTodoEntries(content string) []TodoEntry {
	_, blocks := splitBlocks(scanLines(content), lineTimeHeading)

	todos := make([]TodoEntry, 0, len(blocks))
	for _, b := range blocks {
		todos = append(todos, parseTodoBlock(b))
	}
	return todos
}

func parseTodoBlock(b block) TodoEntry {
	todo := TodoEntry{Entry: Entry{Time: b.heading.time}}

	item := -1
	for i, l := range b.body {
		if todoItemRe.MatchString(strings.TrimSpace(l.raw)) {
			item = i
			break
		}
	}

	if item < 0 {
		todo.Text = joinRaw(b.body, nil)
		return todo
	}

	match := todoItemRe.FindStringSubmatch(strings.TrimSpace(b.body[item].raw))
	todo.Done = match[1] != " "
	text := match[2]

	// Metadata is read right to left; the outermost annotation of each kind wins.
	seenPriority := false
	for {
		if m := todoPriorityRe.FindStringSubmatch(text); m != nil && !seenPriority {
			if n, err := strconv.Atoi(m[1]); err == nil {
				todo.Priority = n
			}
			seenPriority = true
			text = text[:len(text)-len(m[0])]
			continue
		}
		if m := todoGoalRe.FindStringSubmatch(text); m != nil && todo.LinkedGoal == nil {
			todo.LinkedGoal = stringPtr(m[1])
			text = text[:len(text)-len(m[0])]
			continue
		}
		break
	}

	todo.Text = strings.TrimSpace(text)
	return todo
}
