package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const fileMode os.FileMode = 0644

// FileSystem is the subset of file operations the entry store needs.
type FileSystem interface {
	// ReadFile returns the file content. A missing file reports exists=false
	// with a nil error.
	ReadFile(path string) (content string, exists bool, err error)
	// WriteFile replaces the file content, creating parent directories.
	WriteFile(path string, content string) error
	// AppendFile appends content to the file, creating it and its parent
	// directories if needed.
	AppendFile(path string, content string) error
	// ListMarkdown returns the names of the .md files in dir. A missing
	// directory yields an empty list.
	ListMarkdown(dir string) ([]string, error)
	// ListDirs returns the names of the subdirectories of dir. A missing
	// directory yields an empty list.
	ListDirs(dir string) ([]string, error)
}

// FileStore implements FileSystem on the local disk
type FileStore struct{}

// NewFileStore creates a new file store
func NewFileStore() *FileStore {
	return &FileStore{}
}

// ReadFile reads a file and reports whether it exists
func (fs *FileStore) ReadFile(path string) (string, bool, error) {
	contentBytes, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read file: %w", err)
	}

	return string(contentBytes), true, nil
}

// WriteFile atomically replaces the content of path
func (fs *FileStore) WriteFile(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".aissist-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(temp.Name())

	if _, err := temp.WriteString(content); err != nil {
		temp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := temp.Sync(); err != nil {
		temp.Close()
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err := temp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}

	mode := fileMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.Chmod(temp.Name(), mode); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if err := os.Rename(temp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}

// AppendFile appends content to path
func (fs *FileStore) AppendFile(path string, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileMode)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("failed to append to file: %w", err)
	}
	return f.Close()
}

// ListMarkdown returns the .md file names in dir, sorted ascending
func (fs *FileStore) ListMarkdown(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if filepath.Ext(name) == ".md" && !strings.HasPrefix(name, ".") {
			names = append(names, name)
		}
	}

	sort.Strings(names)
	return names, nil
}

// ListDirs returns the subdirectory names in dir, sorted ascending
func (fs *FileStore) ListDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)
	return names, nil
}
