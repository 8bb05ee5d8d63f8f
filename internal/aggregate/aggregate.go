// Package aggregate gathers the raw goal, history, reflection and context
// files that make up a user's working picture for a period of time.
package aggregate

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aissist/aissist/internal/entries"
	"github.com/aissist/aissist/internal/storage"
	"github.com/aissist/aissist/internal/timeframe"
)

// DefaultLookbackDays is the history window used when no timeframe is given.
const DefaultLookbackDays = 30

const contextDir = "context"

// File is one gathered markdown file. Dated files carry Date; context files
// carry Name ("<topic>/<file>.md").
type File struct {
	Path    string `json:"path"`
	Date    string `json:"date,omitempty"`
	Name    string `json:"name,omitempty"`
	Content string `json:"content"`
}

// Data is everything gathered for one request, dated files most recent first.
type Data struct {
	Goals       []File `json:"goals"`
	History     []File `json:"history"`
	Reflections []File `json:"reflections"`
	Context     []File `json:"context"`
}

// Options controls what Load gathers.
type Options struct {
	// Range limits history and reflections. Goals are never date-filtered.
	Range timeframe.Range
	// Tag keeps only files mentioning #tag (case-insensitive). Context files
	// also match when their topic directory is named tag. Reflections are
	// never tag-filtered.
	Tag            string
	IncludeContext bool
}

// Loader reads gathered data from a storage root
type Loader struct {
	fs    storage.FileSystem
	store *entries.Store
}

func NewLoader(fs storage.FileSystem) *Loader {
	return &Loader{fs: fs, store: entries.NewStore(fs)}
}

// LookbackRange returns the range covering the last days days up to now.
func LookbackRange(now time.Time, days int) timeframe.Range {
	return timeframe.Range{
		Start: now.AddDate(0, 0, -days),
		End:   now,
		Label: fmt.Sprintf("Last %d Days", days),
	}
}

// Load gathers data under root. Missing directories yield empty lists.
func (l *Loader) Load(root string, opts Options) (Data, error) {
	goals, err := l.loadDated(root, entries.CollectionGoals, nil, opts.Tag)
	if err != nil {
		return Data{}, err
	}

	history, err := l.loadDated(root, entries.CollectionHistory, &opts.Range, opts.Tag)
	if err != nil {
		return Data{}, err
	}

	reflections, err := l.loadDated(root, entries.CollectionReflections, &opts.Range, "")
	if err != nil {
		return Data{}, err
	}

	context := []File{}
	if opts.IncludeContext {
		if context, err = l.loadContext(root, opts.Tag); err != nil {
			return Data{}, err
		}
	}

	return Data{
		Goals:       goals,
		History:     history,
		Reflections: reflections,
		Context:     context,
	}, nil
}

// loadDated reads a collection's files, most recent first. A nil window keeps
// every date.
func (l *Loader) loadDated(root string, collection entries.Collection, window *timeframe.Range, tag string) ([]File, error) {
	dates, err := l.store.Dates(root, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}

	files := []File{}
	for _, date := range dates {
		if window != nil && !window.ContainsDate(date) {
			continue
		}

		path := entries.DatedPath(root, collection, date)
		content, _, err := l.store.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if !hasTag(content, tag) {
			continue
		}

		files = append(files, File{Path: path, Date: date, Content: content})
	}
	return files, nil
}

func (l *Loader) loadContext(root, tag string) ([]File, error) {
	base := filepath.Join(root, contextDir)
	topics, err := l.fs.ListDirs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to list context: %w", err)
	}

	files := []File{}
	for _, topic := range topics {
		names, err := l.fs.ListMarkdown(filepath.Join(base, topic))
		if err != nil {
			return nil, fmt.Errorf("failed to list context %s: %w", topic, err)
		}

		for _, name := range names {
			path := filepath.Join(base, topic, name)
			content, _, err := l.fs.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", path, err)
			}
			if tag != "" && topic != tag && !hasTag(content, tag) {
				continue
			}

			files = append(files, File{Path: path, Name: topic + "/" + name, Content: content})
		}
	}
	return files, nil
}

// hasTag reports whether content mentions #tag. An empty tag matches anything.
func hasTag(content, tag string) bool {
	if tag == "" {
		return true
	}
	return strings.Contains(strings.ToLower(content), "#"+strings.ToLower(tag))
}

// HasData reports whether anything was gathered
func (d Data) HasData() bool {
	return len(d.Goals) > 0 || len(d.History) > 0 || len(d.Reflections) > 0 || len(d.Context) > 0
}

// Summary describes the gathered counts, e.g. "2 goal file(s), 5 history log(s)".
func (d Data) Summary() string {
	var parts []string
	if n := len(d.Goals); n > 0 {
		parts = append(parts, fmt.Sprintf("%d goal file(s)", n))
	}
	if n := len(d.History); n > 0 {
		parts = append(parts, fmt.Sprintf("%d history log(s)", n))
	}
	if n := len(d.Reflections); n > 0 {
		parts = append(parts, fmt.Sprintf("%d reflection(s)", n))
	}
	if n := len(d.Context); n > 0 {
		parts = append(parts, fmt.Sprintf("%d context file(s)", n))
	}

	if len(parts) == 0 {
		return "No data"
	}
	return strings.Join(parts, ", ")
}
