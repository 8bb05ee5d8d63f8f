package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aissist/aissist/internal/entries"
	"github.com/stretchr/testify/require"
)

// Thursday
var fixedNow = time.Date(2025, time.November, 6, 14, 30, 0, 0, time.UTC)

// newTestApp returns a non-interactive app over a fresh storage root with a
// fixed clock.
func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	root := t.TempDir()
	out := &bytes.Buffer{}

	a, err := newApp(root, out)
	require.NoError(t, err)
	a.now = func() time.Time { return fixedNow }
	return a, out
}

func writeEntryFile(t *testing.T, a *app, collection entries.Collection, date, content string) string {
	t.Helper()
	path := a.path(collection, date)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readEntryFile(t *testing.T, a *app, collection entries.Collection, date string) string {
	t.Helper()
	data, err := os.ReadFile(a.path(collection, date))
	require.NoError(t, err)
	return string(data)
}
