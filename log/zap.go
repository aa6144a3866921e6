// Package log wraps zap with a small, opinionated API.
// Subsystems get their own named logger via Default().Named("...").
package log

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
	FatalLevel = zapcore.FatalLevel
)

type Field = zap.Field

// field helpers, so callers don't need to import zap themselves
var (
	Skip       = zap.Skip
	Binary     = zap.Binary
	Bool       = zap.Bool
	Duration   = zap.Duration
	Float64    = zap.Float64
	Int        = zap.Int
	Int32      = zap.Int32
	Int64      = zap.Int64
	String     = zap.String
	Stringer   = zap.Stringer
	Time       = zap.Time
	Uint       = zap.Uint
	Uint32     = zap.Uint32
	Any        = zap.Any
	ErrorField = zap.Error

	WithCaller    = zap.WithCaller
	AddStacktrace = zap.AddStacktrace
	AddCallerSkip = zap.AddCallerSkip
)

func ParseLevel(text string) (Level, error) {
	return zapcore.ParseLevel(text)
}

type Logger struct {
	l     *zap.Logger
	level Level
}

type Option = zap.Option

// New creates a Logger writing json output to w at the given level.
func New(w io.Writer, level Level, opts ...Option) *Logger {
	if w == nil {
		w = os.Stderr
	}
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(cfg),
		zapcore.AddSync(w),
		zapcore.Level(level),
	)
	return &Logger{l: zap.New(core, opts...), level: level}
}

// DevLogger creates a Logger with console output for development use.
func DevLogger(w io.Writer, level Level, opts ...Option) *Logger {
	if w == nil {
		w = os.Stderr
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.AddSync(w),
		zapcore.Level(level),
	)
	return &Logger{l: zap.New(core, opts...), level: level}
}

func (log *Logger) Named(name string) *Logger {
	return &Logger{l: log.l.Named(name), level: log.level}
}

func (log *Logger) WithOptions(opts ...Option) *Logger {
	return &Logger{l: log.l.WithOptions(opts...), level: log.level}
}

func (log *Logger) Level() Level { return log.level }

func (log *Logger) Debug(msg string, fields ...Field) { log.l.Debug(msg, fields...) }
func (log *Logger) Info(msg string, fields ...Field)  { log.l.Info(msg, fields...) }
func (log *Logger) Warn(msg string, fields ...Field)  { log.l.Warn(msg, fields...) }
func (log *Logger) Error(msg string, fields ...Field) { log.l.Error(msg, fields...) }
func (log *Logger) Fatal(msg string, fields ...Field) { log.l.Fatal(msg, fields...) }

func (log *Logger) Sync() error { return log.l.Sync() }

var (
	std = DevLogger(os.Stderr, InfoLevel)
	mu  sync.Mutex
)

// Default returns the process-wide logger.
func Default() *Logger { return std }

// ResetDefault replaces the process-wide logger. Call early in startup.
func ResetDefault(l *Logger) {
	mu.Lock()
	defer mu.Unlock()
	std = l
}

func Debug(msg string, fields ...Field) { std.Debug(msg, fields...) }
func Info(msg string, fields ...Field)  { std.Info(msg, fields...) }
func Warn(msg string, fields ...Field)  { std.Warn(msg, fields...) }
func Error(msg string, fields ...Field) { std.Error(msg, fields...) }
func Fatal(msg string, fields ...Field) { std.Fatal(msg, fields...) }

func Sync() error {
	return std.Sync()
}
