// Package logging configures the process-wide structured logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Config holds logger configuration.
type Config struct {
	Level      slog.Level
	OutputFile string // path to a log file; empty logs to stderr only
	JSONFormat bool   // JSON handler instead of text
	AddSource  bool   // annotate records with file:line
}

// Logger wraps slog.Logger with the owned log file handle.
type Logger struct {
	slog *slog.Logger
	file *os.File
}

var (
	globalLogger *Logger
	once         sync.Once
)

// Initialize creates and installs the global logger. Safe to call more than
// once; only the first call takes effect.
func Initialize(config Config) error {
	var initErr error
	once.Do(func() {
		logger, err := NewLogger(config)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize logger: %w", err)
			return
		}
		globalLogger = logger
		slog.SetDefault(logger.slog)
	})
	return initErr
}

// NewLogger builds a logger from the config without installing it globally.
func NewLogger(config Config) (*Logger, error) {
	var w io.Writer = os.Stderr
	var file *os.File

	if config.OutputFile != "" {
		if err := os.MkdirAll(filepath.Dir(config.OutputFile), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(config.OutputFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		file = f
		w = io.MultiWriter(os.Stderr, f)
	}

	opts := &slog.HandlerOptions{Level: config.Level, AddSource: config.AddSource}

	var handler slog.Handler
	if config.JSONFormat {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{slog: slog.New(handler), file: file}, nil
}

// Slog returns the wrapped slog.Logger.
func (l *Logger) Slog() *slog.Logger { return l.slog }

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Default returns the global logger's slog instance, or slog.Default when
// Initialize was never called.
func Default() *slog.Logger {
	if globalLogger != nil {
		return globalLogger.slog
	}
	return slog.Default()
}
