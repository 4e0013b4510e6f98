// Package log is the process-wide structured logger. It is silent until
// SetLevel or SetOutput enables it, so library code may log freely.
package log

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// disabled sits above every slog level.
const disabled = slog.Level(1000)

var (
	mu     sync.RWMutex
	out    io.Writer = os.Stderr
	level            = disabled
	logger           = newLogger(out, level)
)

func newLogger(w io.Writer, l slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: l,
	}))
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

func Debug(msg string, args ...any) {
	current().Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

// SetLevel enables logging at level and above.
func SetLevel(l slog.Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
	logger = newLogger(out, level)
}

// SetOutput redirects log records. A terminal UI must point this away from
// stdout before it starts drawing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	logger = newLogger(out, level)
}
