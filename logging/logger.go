// Package logging wraps log/slog with the domain-flavored helpers the
// engine's CLI collaborator calls, in the teacher's Logger shape.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger provides structured logging for the validation engine.
type Logger struct {
	*slog.Logger
	level slog.Level
}

// LogLevel represents different logging levels.
type LogLevel int

const (
	// LevelDebug provides detailed debugging information.
	LevelDebug LogLevel = iota
	// LevelInfo provides general informational messages.
	LevelInfo
	// LevelWarn provides warning messages for potentially problematic situations.
	LevelWarn
	// LevelError provides error messages for serious problems.
	LevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ToSlogLevel converts LogLevel to slog.Level.
func (l LogLevel) ToSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoggerConfig holds configuration for logger creation.
type LoggerConfig struct {
	// Level sets the minimum log level.
	Level LogLevel
	// Format specifies the output format ("json" or "text").
	Format string
	// Output specifies the output destination.
	Output io.Writer
	// IncludeSource adds source code information to log entries.
	IncludeSource bool
	// Component identifies the logging component.
	Component string
}

// NewLogger creates a new structured logger with the specified configuration.
func NewLogger(config LoggerConfig) *Logger {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	if config.Format == "" {
		config.Format = "text"
	}

	if config.Component == "" {
		config.Component = "xreflint"
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level:     config.Level.ToSlogLevel(),
		AddSource: config.IncludeSource,
	}

	switch config.Format {
	case "json":
		handler = slog.NewJSONHandler(config.Output, opts)
	default:
		handler = slog.NewTextHandler(config.Output, opts)
	}

	logger := slog.New(handler).With("component", config.Component)

	return &Logger{
		Logger: logger,
		level:  config.Level.ToSlogLevel(),
	}
}

// ValidationStart logs the start of a single-document validation run.
func (l *Logger) ValidationStart(documentPath, schemaTitle string) {
	l.Info("starting validation",
		"document", documentPath,
		"schema", schemaTitle,
		"timestamp", time.Now().Format(time.RFC3339),
	)
}

// ValidationComplete logs the completion of a single-document run.
func (l *Logger) ValidationComplete(documentPath string, duration time.Duration, diagnosticCount int, clean bool) {
	l.Info("validation completed",
		"document", documentPath,
		"duration_ms", duration.Milliseconds(),
		"diagnostics_found", diagnosticCount,
		"clean", clean,
		"timestamp", time.Now().Format(time.RFC3339),
	)
}

// ValidationError logs an engine fault (spec.md §7), as distinct from a
// diagnostic finding.
func (l *Logger) ValidationError(documentPath string, err error) {
	l.Error("validation fault",
		"document", documentPath,
		"error", err.Error(),
		"timestamp", time.Now().Format(time.RFC3339),
	)
}

// SchemaCompileStart logs the start of compiling a schema tree.
func (l *Logger) SchemaCompileStart(schemaTitle string) {
	l.Debug("compiling schema", "schema", schemaTitle)
}

// SchemaCompileComplete logs schema compilation completion.
func (l *Logger) SchemaCompileComplete(schemaTitle string, duration time.Duration, patternCount int) {
	l.Debug("schema compiled",
		"schema", schemaTitle,
		"duration_ms", duration.Milliseconds(),
		"pattern_count", patternCount,
	)
}
