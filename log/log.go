package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
)

// Format represents the log output format.
type Format string

const (
	// FormatJSON outputs logs as JSON objects.
	FormatJSON Format = "json"
	// FormatLogfmt outputs logs in logfmt format.
	FormatLogfmt Format = "logfmt"
)

// Level extends [slog.Level] with the two extra severities tpnote's
// `--debug` flag accepts that slog has no native concept of: "trace"
// (noisier than debug) and "off" (no logging at all).
type Level string

const (
	LevelTrace Level = "trace"
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelOff   Level = "off"
)

// levelTrace is one slog level step below [slog.LevelDebug], matching the
// common slog convention for a sub-debug "trace" severity.
const levelTrace = slog.Level(-8)

// levelOff is above any level slog.Logger will ever emit.
const levelOff = slog.Level(1 << 20)

var (
	// ErrInvalidArgument indicates an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownLogLevel indicates an unrecognized log level string.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownLogFormat indicates an unrecognized log format string.
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// NewHandlerFromStrings creates a [slog.Handler] from the `--debug` level
// string and a [Format] string.
func NewHandlerFromStrings(w io.Writer, level, format string) (slog.Handler, error) {
	lvl, err := GetLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	fmtt, err := GetFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return NewHandler(w, lvl, fmtt), nil
}

// NewHandler creates a [slog.Handler] with the specified level and format.
func NewHandler(w io.Writer, level Level, format Format) slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     slogLevel(level),
	}

	switch format {
	case FormatLogfmt:
		return slog.NewTextHandler(w, opts)
	case FormatJSON:
		return slog.NewJSONHandler(w, opts)
	}

	return slog.NewJSONHandler(w, opts)
}

// slogLevel maps a [Level] onto the underlying [slog.Level] scale.
func slogLevel(level Level) slog.Level {
	switch level {
	case LevelTrace:
		return levelTrace
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelOff:
		return levelOff
	}

	return slog.LevelInfo
}

// GetLevel parses a `--debug` level string into a [Level].
func GetLevel(level string) (Level, error) {
	lvl := Level(strings.ToLower(level))
	switch lvl {
	case LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelOff:
		return lvl, nil
	case "warning":
		return LevelWarn, nil
	}

	return "", ErrUnknownLogLevel
}

// GetFormat parses a log format string and returns the corresponding [Format].
func GetFormat(format string) (Format, error) {
	logFmt := Format(strings.ToLower(format))
	if slices.Contains([]Format{FormatJSON, FormatLogfmt}, logFmt) {
		return logFmt, nil
	}

	return "", ErrUnknownLogFormat
}

// AllLevelStrings returns the accepted `--debug` level strings, in severity
// order, for use in flag help text and shell completions.
func AllLevelStrings() []string {
	return []string{
		string(LevelTrace), string(LevelDebug), string(LevelInfo),
		string(LevelWarn), string(LevelError), string(LevelOff),
	}
}

// AllFormatStrings returns the accepted log format strings.
func AllFormatStrings() []string {
	return []string{string(FormatJSON), string(FormatLogfmt)}
}
