// Package logger provides the process-wide leveled logger.
//
// Messages are printf-style so call sites stay short:
//
//	logger.Warn("output root not writable, skipping save: %s", dir)
//
// Output goes to stderr by default so that prompt text written to stdout
// can be piped without log noise.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Level is the logging threshold.
type Level = zerolog.Level

const (
	TraceLevel = zerolog.TraceLevel
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	FatalLevel = zerolog.FatalLevel
	PanicLevel = zerolog.PanicLevel
)

var (
	mu  sync.RWMutex
	out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	lvl           = InfoLevel
	log           = newLogger(out, lvl)
)

func init() {
	// Filtering is done per logger; keep the package-wide floor open.
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}

func newLogger(w io.Writer, level Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// ParseLevel converts a level name (trace, debug, info, warn, error, fatal,
// panic) into a Level.
func ParseLevel(name string) (Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return InfoLevel, nil
	}
	if name == "warning" {
		name = "warn"
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel || level == zerolog.Disabled {
		return InfoLevel, fmt.Errorf("invalid log level %q: use trace, debug, info, warn, error, fatal or panic", name)
	}
	return level, nil
}

// SetLevel changes the global threshold.
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	lvl = level
	log = newLogger(out, lvl)
}

// GetLevel returns the current threshold.
func GetLevel() Level {
	mu.RLock()
	defer mu.RUnlock()
	return lvl
}

// SetOutput redirects log output and returns the previous writer. Plain
// writers receive JSON lines.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	log = newLogger(out, lvl)
	return prev
}

// Zerolog exposes the underlying logger for components that want
// structured fields, such as the HTTP access log.
func Zerolog() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func Trace(format string, args ...any) { event(TraceLevel).Msgf(format, args...) }
func Debug(format string, args ...any) { event(DebugLevel).Msgf(format, args...) }
func Info(format string, args ...any) { event(InfoLevel).Msgf(format, args...) }
func Warn(format string, args ...any) { event(WarnLevel).Msgf(format, args...) }
func Error(format string, args ...any) { event(ErrorLevel).Msgf(format, args...) }

// Fatal logs and exits with status 1.
func Fatal(format string, args ...any) {
	mu.RLock()
	l := log
	mu.RUnlock()
	l.Fatal().Msgf(format, args...)
}

func event(level Level) *zerolog.Event {
	mu.RLock()
	l := log
	mu.RUnlock()
	return l.WithLevel(level)
}
