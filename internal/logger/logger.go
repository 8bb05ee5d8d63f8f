package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu        sync.RWMutex
	logger    *slog.Logger
	logLevel  slog.Level
	logFormat string
	once      sync.Once
)

// Config controls how the process-wide logger is built
type Config struct {
	Level  string    // DEBUG, INFO, WARN, ERROR
	Format string    // text or json
	Output io.Writer // defaults to os.Stderr
}

// ConfigFromEnv reads AISSIST_LOG_LEVEL (or LOG_LEVEL), AISSIST_DEBUG and LOG_FORMAT
func ConfigFromEnv() Config {
	levelStr := os.Getenv("AISSIST_LOG_LEVEL")
	if levelStr == "" {
		levelStr = os.Getenv("LOG_LEVEL")
	}
	if levelStr == "" {
		debug := os.Getenv("AISSIST_DEBUG")
		if debug == "1" || debug == "true" {
			levelStr = "DEBUG"
		} else {
			// CLI output is for the user; only warnings and errors reach stderr by default.
			levelStr = "WARN"
		}
	}

	return Config{
		Level:  levelStr,
		Format: os.Getenv("LOG_FORMAT"),
	}
}

// Initialize builds the logger from the environment once
func Initialize() {
	once.Do(func() {
		InitializeWithConfig(ConfigFromEnv())
	})
}

// InitializeWithConfig (re)builds the logger from cfg
func InitializeWithConfig(cfg Config) {
	level := parseLevel(cfg.Level)

	format := strings.ToLower(cfg.Format)
	if format == "" {
		format = "text"
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(handler)
	logLevel = level
	logFormat = format
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func GetLogger() *slog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l == nil {
		Initialize()
		mu.RLock()
		l = logger
		mu.RUnlock()
	}
	return l
}

func GetLevel() slog.Level {
	GetLogger()
	mu.RLock()
	defer mu.RUnlock()
	return logLevel
}

func GetFormat() string {
	GetLogger()
	mu.RLock()
	defer mu.RUnlock()
	return logFormat
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}
