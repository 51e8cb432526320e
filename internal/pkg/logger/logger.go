package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var slogLevels = map[Level]slog.Level{
	DEBUG: slog.LevelDebug,
	INFO:  slog.LevelInfo,
	WARN:  slog.LevelWarn,
	ERROR: slog.LevelError,
}

// ParseLevel maps a LOG_LEVEL value to a Level, defaulting to INFO.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

// Logger is a levelled key/value logger backed by slog.
//
//	log.Info("claim recorded", "postId", id, "finder", email)
type Logger struct {
	level *slog.LevelVar
	l     *slog.Logger
}

// New writes text records to stdout.
func New(level Level) *Logger {
	return NewWithWriter(level, os.Stdout)
}

// NewWithWriter writes text records to w.
func NewWithWriter(level Level, w io.Writer) *Logger {
	lv := new(slog.LevelVar)
	lv.Set(slogLevels[level])
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lv})
	return &Logger{level: lv, l: slog.New(h)}
}

// Discard drops everything. Handy in tests.
func Discard() *Logger {
	l := NewWithWriter(ERROR, io.Discard)
	l.level.Set(slog.LevelError + 4)
	return l
}

func (l *Logger) Debug(msg string, args ...any) { l.l.Log(context.Background(), slog.LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.l.Log(context.Background(), slog.LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.l.Log(context.Background(), slog.LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.l.Log(context.Background(), slog.LevelError, msg, args...) }

// With returns a child logger that always carries args.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{level: l.level, l: l.l.With(args...)}
}

// SetLevel changes the logging level
func (l *Logger) SetLevel(level Level) {
	if sl, ok := slogLevels[level]; ok {
		l.level.Set(sl)
	}
}

// Global logger instance
var defaultLogger = New(INFO)

// Default returns the global logger.
func Default() *Logger { return defaultLogger }

func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }
func Info(msg string, args ...any)  { defaultLogger.Info(msg, args...) }
func Warn(msg string, args ...any)  { defaultLogger.Warn(msg, args...) }
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }

// Fatal logs at error level and exits.
func Fatal(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
	os.Exit(1)
}

// SetGlobalLevel sets the level for the global logger
func SetGlobalLevel(level Level) {
	defaultLogger.SetLevel(level)
}
