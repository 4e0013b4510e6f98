package log

import (
	"bytes"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(disabled)
	})
	return &buf
}

func TestLogger_SilentByDefault(t *testing.T) {
	buf := captureLogs(t)

	Error("boom")

	require.Empty(t, buf.String())
}

func TestLogger_LevelFilters(t *testing.T) {
	buf := captureLogs(t)
	SetLevel(slog.LevelInfo)

	Debug("hidden")
	Info("challenge started", "name", "first word")
	Warn("clipboard write failed")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, `msg="challenge started" name="first word"`)
	require.Contains(t, out, "level=WARN")
}
