package entries

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aissist/aissist/internal/storage"
)

// Store reads, appends and updates dated entry files.
// Note: Store methods re-read and rewrite whole files and take no locks; two
// processes updating the same file concurrently can lose an update.
type Store struct {
	fs storage.FileSystem
}

// NewStore creates a store backed by fs
func NewStore(fs storage.FileSystem) *Store {
	return &Store{fs: fs}
}

// Append adds block to the end of the file at path, separated from any
// existing content by a blank line. The file and its parent directories are
// created if missing. Existing content is never modified.
func (s *Store) Append(path string, block string) error {
	if strings.TrimSpace(block) == "" {
		return ErrEmptyBlock
	}

	content, exists, err := s.fs.ReadFile(path)
	if err != nil {
		return err
	}

	if exists && content != "" {
		block = separator(content) + block
	}

	if err := s.fs.AppendFile(path, block); err != nil {
		return fmt.Errorf("failed to append entry: %w", err)
	}
	return nil
}

// separator returns what must follow content so that exactly one blank line
// precedes the next block.
func separator(content string) string {
	switch {
	case strings.HasSuffix(content, "\n\n"):
		return ""
	case strings.HasSuffix(content, "\n"):
		return "\n"
	default:
		return "\n\n"
	}
}

// Read returns the raw content of path. A missing file reports ok=false with
// a nil error.
func (s *Store) Read(path string) (content string, ok bool, err error) {
	return s.fs.ReadFile(path)
}

// GoalEntries parses the goal file at path. A missing file yields no entries.
func (s *Store) GoalEntries(path string) ([]GoalEntry, error) {
	content, _, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseGoalEntries(content), nil
}

// HistoryEntries parses the history file at path.
func (s *Store) HistoryEntries(path string) ([]HistoryEntry, error) {
	content, _, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseHistoryEntries(content), nil
}

// TodoEntries parses the todo file at path.
func (s *Store) TodoEntries(path string) ([]TodoEntry, error) {
	content, _, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTodoEntries(content), nil
}

// Dates returns the dates of the files in a collection, most recent first.
// A missing collection directory yields an empty list.
func (s *Store) Dates(root string, collection Collection) ([]string, error) {
	names, err := s.fs.ListMarkdown(CollectionDir(root, collection))
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(names))
	for _, name := range names {
		dates = append(dates, DateFromFilename(name))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}

// ActiveGoals returns every goal across the goal files under root, ordered
// most-recent-file-first and in file order within a file. No deadline
// filtering is applied.
func (s *Store) ActiveGoals(root string) ([]ActiveGoal, error) {
	dates, err := s.Dates(root, CollectionGoals)
	if err != nil {
		return nil, err
	}

	active := make([]ActiveGoal, 0)
	for _, date := range dates {
		goals, err := s.GoalEntries(DatedPath(root, CollectionGoals, date))
		if err != nil {
			return nil, fmt.Errorf("failed to load goals for %s: %w", date, err)
		}

		for _, g := range goals {
			active = append(active, ActiveGoal{
				Codename:    g.Codename,
				Text:        g.Text,
				Date:        date,
				Deadline:    g.Deadline,
				Description: g.Description,
			})
		}
	}

	return active, nil
}

// ExistingCodenames returns the codenames used in the single goal file at
// path. Uniqueness of codenames is only ever checked against one file.
func (s *Store) ExistingCodenames(path string) (map[string]struct{}, error) {
	goals, err := s.GoalEntries(path)
	if err != nil {
		return nil, err
	}

	codenames := make(map[string]struct{}, len(goals))
	for _, g := range goals {
		codenames[g.Codename] = struct{}{}
	}
	return codenames, nil
}

// UpdateGoalDescription replaces the description of the goal whose codename
// matches exactly. A blank description removes it. Every other block is kept
// as written. Returns false, without writing, when the file or the codename
// does not exist.
func (s *Store) UpdateGoalDescription(path, codename, description string) (bool, error) {
	content, exists, err := s.fs.ReadFile(path)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	preamble, blocks := splitBlocks(scanLines(content), lineGoalHeading)

	target := -1
	for i, b := range blocks {
		if b.heading.codename == codename {
			target = i
			break
		}
	}
	if target < 0 {
		return false, nil
	}

	rendered := make([]string, 0, len(blocks)+1)
	if head := joinRaw(preamble, nil); head != "" {
		rendered = append(rendered, strings.TrimRight(rawText(preamble), " \t\n"))
	}

	for i, b := range blocks {
		if i != target {
			rendered = append(rendered, strings.TrimRight(b.heading.raw+"\n"+rawText(b.body), " \t\n"))
			continue
		}
		rendered = append(rendered, rewriteDescription(b, description))
	}

	updated := strings.Join(rendered, "\n\n")
	if strings.HasSuffix(content, "\n") {
		updated += "\n"
	}

	if err := s.fs.WriteFile(path, updated); err != nil {
		return false, fmt.Errorf("failed to update goal %s: %w", codename, err)
	}
	return true, nil
}

// rewriteDescription renders block b with its description replaced. The
// heading and deadline lines are kept exactly as written.
func rewriteDescription(b block, description string) string {
	fields := locateGoalFields(b.body)
	text := joinRaw(b.body, fields.owns)

	quoted := ""
	if strings.TrimSpace(description) != "" {
		quoted = quoteDescription(description)
	}

	deadline := ""
	if fields.deadline >= 0 {
		deadline = strings.TrimSpace(b.body[fields.deadline].raw)
	}

	return joinGoalBlock(strings.TrimRight(b.heading.raw, " \t"), text, quoted, deadline)
}

func rawText(lines []line) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, l.raw)
	}
	return strings.Join(parts, "\n")
}
