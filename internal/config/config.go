package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	AppName    = "aissist"
	ConfigName = "config.yaml"

	// DataDirEnv overrides storage root discovery (primarily for testing)
	DataDirEnv = "AISSIST_DATA_DIR"
)

// Subdirectories created by Init under the storage root.
var storageDirs = []string{"goals", "history", "todos", "context", "reflections"}

// Config is the user configuration stored in <root>/config.yaml
type Config struct {
	Animations AnimationsConfig `yaml:"animations"`
	Goal       GoalConfig       `yaml:"goal"`
	Todo       TodoConfig       `yaml:"todo"`
}

type AnimationsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type GoalConfig struct {
	// DeadlineDefault is the timeframe offered when prompting for a deadline
	DeadlineDefault string `yaml:"deadline_default"`
}

type TodoConfig struct {
	DefaultPriority int `yaml:"default_priority"`
}

// Default returns the configuration used when no config file exists
func Default() Config {
	return Config{
		Animations: AnimationsConfig{Enabled: true},
		Goal:       GoalConfig{DeadlineDefault: "tomorrow"},
		Todo:       TodoConfig{DefaultPriority: 0},
	}
}

// StorageRoot returns the storage root directory.
// Resolution order: AISSIST_DATA_DIR, the nearest .aissist directory at or
// above the working directory, then ~/.aissist. The directory is not created.
func StorageRoot() (string, error) {
	if dataDir := os.Getenv(DataDirEnv); dataDir != "" {
		return dataDir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if local, ok := FindLocalRoot(cwd); ok {
		return local, nil
	}

	return GlobalRoot()
}

// GlobalRoot returns ~/.aissist
func GlobalRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "."+AppName), nil
}

// LocalRoot returns the project-local storage root for dir
func LocalRoot(dir string) string {
	return filepath.Join(dir, "."+AppName)
}

// FindLocalRoot walks up from start looking for a .aissist directory
func FindLocalRoot(start string) (string, bool) {
	dir := start
	for {
		candidate := LocalRoot(dir)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Init creates the storage layout under root and writes a default config file.
// Returns false if root already existed, in which case nothing is changed.
func Init(root string) (bool, error) {
	if _, err := os.Stat(root); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}

	for _, dir := range storageDirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			return false, fmt.Errorf("failed to create %s directory: %w", dir, err)
		}
	}

	if err := Save(root, Default()); err != nil {
		return false, err
	}
	return true, nil
}

// Load reads <root>/config.yaml. Keys missing from the file keep their
// default values; a missing file yields Default().
func Load(root string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(root, ConfigName))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to <root>/config.yaml
func Save(root string, cfg Config) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(root, ConfigName), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
