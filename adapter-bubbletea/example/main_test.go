package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mattn/go-isatty"
	"github.com/stretchr/testify/require"

	"github.com/ionut-t/vimpuzzle/internal/log"
)

func TestRun_LogFileError(t *testing.T) {
	err := run(Options{LogFile: filepath.Join(t.TempDir(), "missing", "debug.log")})

	require.ErrorIs(t, err, os.ErrNotExist)
	require.ErrorContains(t, err, "open log file")
}

func TestRun_RequiresTerminal(t *testing.T) {
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		t.Skip("stdout is a terminal")
	}
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	path := filepath.Join(t.TempDir(), "debug.log")
	err := run(Options{LogFile: path})

	require.ErrorIs(t, err, errNotTerminal)

	// The log file was written and released before run returned.
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	require.Contains(t, string(data), "refusing to start")
	require.NoError(t, os.Remove(path))
}
