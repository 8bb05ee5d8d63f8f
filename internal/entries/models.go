package entries

import (
	"path/filepath"
	"strings"
)

// Collection names a directory of dated entry files under the storage root.
type Collection string

const (
	CollectionGoals   Collection = "goals"
	CollectionHistory Collection = "history"
	CollectionTodos   Collection = "todos"

	// Reflections are free-form dated notes; they are read but never parsed
	// into entries.
	CollectionReflections Collection = "reflections"
)

// Collections lists every collection in display order.
var Collections = []Collection{CollectionGoals, CollectionHistory, CollectionTodos}

// Entry holds the fields shared by every entry block.
type Entry struct {
	Time string `json:"time"` // HH:MM, from the block heading
	Text string `json:"text"`
}

// GoalEntry is a goal block: "## HH:MM - codename".
type GoalEntry struct {
	Entry
	Codename    string  `json:"codename"`
	Description *string `json:"description"` // nil if the goal has no description
	Deadline    *string `json:"deadline"`    // YYYY-MM-DD, nil if no deadline
}

// HistoryEntry is a history block, optionally linked to a goal by codename.
type HistoryEntry struct {
	Entry
	LinkedGoal *string `json:"linked_goal"`
}

// TodoEntry is a todo block holding a single checkbox item.
type TodoEntry struct {
	Entry
	Done       bool    `json:"done"`
	Priority   int     `json:"priority"` // 0 means unset
	LinkedGoal *string `json:"linked_goal"`
}

// ActiveGoal is a goal entry together with the date of the file it lives in.
type ActiveGoal struct {
	Codename    string  `json:"codename"`
	Text        string  `json:"text"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Deadline    *string `json:"deadline,omitempty"`
	Description *string `json:"description,omitempty"`
}

// DatedPath returns the file path for a collection's file on date (YYYY-MM-DD).
func DatedPath(root string, collection Collection, date string) string {
	return filepath.Join(root, string(collection), date+".md")
}

// CollectionDir returns the directory holding a collection's dated files.
func CollectionDir(root string, collection Collection) string {
	return filepath.Join(root, string(collection))
}

// DateFromFilename extracts the date from a dated file name (YYYY-MM-DD.md).
func DateFromFilename(name string) string {
	return strings.TrimSuffix(filepath.Base(name), ".md")
}

func stringPtr(s string) *string {
	return &s
}
