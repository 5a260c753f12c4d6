// Package logging builds the zerolog loggers used across emimeter and
// carries trace IDs through context so related log lines can be
// correlated across the CLI, the dashboard, and the HTTP server.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Environment variables honored by NewLoggerWithPath. They override the
// config file but lose to an explicit --debug flag.
const (
	EnvLogLevel  = "EMIMETER_LOG_LEVEL"
	EnvLogFormat = "EMIMETER_LOG_FORMAT"
)

// Output selectors for Config.Output.
const (
	OutputStderr = "stderr"
	OutputFile   = "file"
)

// Config describes how a logger should be constructed.
type Config struct {
	// Level is a zerolog level name (trace, debug, info, warn, error).
	// Unparseable values fall back to info.
	Level string
	// Format selects "console" (human-readable, colorized when the
	// terminal supports it) or "json" (one event per line).
	Format string
	// Output selects the destination: OutputStderr or OutputFile.
	Output string
	// File is the log file path when Output is OutputFile.
	File string
	// Caller adds file:line caller information to every event.
	Caller bool
}

// LogPathResult reports where NewLoggerWithPath ended up writing logs.
// Callers use it to tell the user about file logging (or about a
// fallback to stderr) and to close the file handle on shutdown.
type LogPathResult struct {
	Logger         zerolog.Logger
	UsingFile      bool
	FilePath       string
	FallbackUsed   bool
	FallbackReason string

	file *os.File
}

// Close releases the log file handle, if any. Safe to call on a
// stderr-only result.
func (r *LogPathResult) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// New builds a logger writing to w using the level, format, and caller
// settings from cfg. Output/File are ignored; use NewLoggerWithPath
// when file routing is wanted.
func New(cfg Config, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = w
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	logCtx := zerolog.New(out).Level(lvl).Hook(traceHook{}).With().Timestamp()
	if cfg.Caller {
		logCtx = logCtx.Caller()
	}
	return logCtx.Logger()
}

// NewLoggerWithPath builds the process logger, routing output to the
// configured file when requested. When the file cannot be opened the
// logger falls back to stderr and the result records the reason so the
// caller can warn the user instead of silently losing logs.
func NewLoggerWithPath(cfg Config) LogPathResult {
	if cfg.Output != OutputFile || cfg.File == "" {
		return LogPathResult{Logger: New(cfg, os.Stderr)}
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return LogPathResult{
			Logger:         New(cfg, os.Stderr),
			FallbackUsed:   true,
			FallbackReason: err.Error(),
		}
	}

	// File logs are always JSON; console formatting is for terminals.
	fileCfg := cfg
	fileCfg.Format = "json"
	return LogPathResult{
		Logger:    New(fileCfg, f),
		UsingFile: true,
		FilePath:  cfg.File,
		file:      f,
	}
}

// ComponentLogger returns a child logger tagged with the component name
// ("cli", "session", "server", ...). Every event it emits carries the
// component field.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// FromContext returns the logger stored in ctx by zerolog's
// Logger.WithContext, or a disabled logger when none is present.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// PrintLogPathMessage tells the user where file logs are going.
func PrintLogPathMessage(w io.Writer, path string) {
	_, _ = fmt.Fprintf(w, "Logging to %s\n", path)
}

// PrintFallbackWarning tells the user that file logging failed and
// output is going to stderr instead.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: could not open log file (%s), logging to stderr\n", reason)
}
