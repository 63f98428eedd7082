// Package logging provides the leveled, prefixed logger shared by all packages.
package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents different logging levels
type LogLevel int

const (
	// LevelError only logs errors
	LevelError LogLevel = iota
	// LevelWarn logs warnings and errors
	LevelWarn
	// LevelInfo logs general information, warnings and errors
	LevelInfo
	// LevelDebug logs detailed debug information and all above
	LevelDebug
	// LevelTrace logs very detailed trace information and all above
	LevelTrace
)

// TraceLevel is the zap level used for Trace messages. zap has nothing below
// Debug, so it sits one step under it.
const TraceLevel = zapcore.DebugLevel - 1

var zapLevels = map[LogLevel]zapcore.Level{
	LevelError: zapcore.ErrorLevel,
	LevelWarn:  zapcore.WarnLevel,
	LevelInfo:  zapcore.InfoLevel,
	LevelDebug: zapcore.DebugLevel,
	LevelTrace: TraceLevel,
}

// Config selects the encoder and level of the default logger.
type Config struct {
	Level       string // "error", "warn", "info", "debug", "trace"
	Development bool   // console encoding instead of JSON
}

// Logger provides structured logging capabilities
type Logger struct {
	prefix string
	sink   *sink
}

// sink is shared by a logger and every logger derived from it with
// WithPrefix, so reconfiguring the root reaches all of them.
type sink struct {
	mu    sync.RWMutex
	zl    *zap.Logger
	level zap.AtomicLevel
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// GetLogger returns the default logger instance
func GetLogger() *Logger {
	once.Do(func() {
		defaultLogger = NewLogger("vfsshell")

		if level := os.Getenv("LOG_LEVEL"); level != "" {
			if l, err := ParseLevel(level); err == nil {
				defaultLogger.SetLevel(l)
			}
		}
	})
	return defaultLogger
}

// NewLogger creates a new logger with the given prefix writing to stderr.
func NewLogger(prefix string) *Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	return &Logger{
		prefix: prefix,
		sink: &sink{
			zl:    newZap(newCore(false, level)),
			level: level,
		},
	}
}

// ParseLevel parses a level name such as "debug" or "WARN".
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "trace":
		return LevelTrace, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Configure applies cfg to the logger and every logger derived from it.
func (l *Logger) Configure(cfg Config) error {
	level := LevelInfo
	if cfg.Level != "" {
		parsed, err := ParseLevel(cfg.Level)
		if err != nil {
			return err
		}
		level = parsed
	}

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.level.SetLevel(zapLevels[level])
	l.sink.zl = newZap(newCore(cfg.Development, l.sink.level))
	return nil
}

// UseCore routes all output through core. Tests use it with an observer.
func (l *Logger) UseCore(core zapcore.Core) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.zl = newZap(core)
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level LogLevel) {
	zl, ok := zapLevels[level]
	if !ok {
		zl = zapcore.InfoLevel
	}
	l.sink.level.SetLevel(zl)
}

// Sync flushes buffered output.
func (l *Logger) Sync() error {
	l.sink.mu.RLock()
	defer l.sink.mu.RUnlock()
	return l.sink.zl.Sync()
}

// log performs the actual logging. Arguments are only formatted when the
// level is enabled.
func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	l.sink.mu.RLock()
	zl := l.sink.zl
	l.sink.mu.RUnlock()

	lvl := zapLevels[level]
	if !zl.Core().Enabled(lvl) {
		return
	}
	if ce := zl.Named(l.prefix).Check(lvl, fmt.Sprintf(format, args...)); ce != nil {
		ce.Write()
	}
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Trace logs a trace message
func (l *Logger) Trace(format string, args ...interface{}) {
	l.log(LevelTrace, format, args...)
}

// WithPrefix creates a new logger with an additional prefix
func (l *Logger) WithPrefix(prefix string) *Logger {
	return &Logger{
		prefix: prefix,
		sink:   l.sink,
	}
}

func newZap(core zapcore.Core) *zap.Logger {
	// Skip log and the level method so callers are reported.
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2))
}

func newCore(development bool, level zap.AtomicLevel) zapcore.Core {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = levelEncoder

	var enc zapcore.Encoder
	if development {
		encCfg.EncodeCaller = zapcore.ShortCallerEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	return zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)
}

func levelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if level == TraceLevel {
		enc.AppendString("TRACE")
		return
	}
	zapcore.CapitalLevelEncoder(level, enc)
}
