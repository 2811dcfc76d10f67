package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/rpggio/swipecount/internal/config"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	require.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(config.LogConfig{Level: "warn"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("shown", "k", 1)
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "msg=shown k=1")
}

func TestNew_File(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	logger, closer, err := New(config.LogConfig{Level: "info", Path: path}, &console)
	require.NoError(t, err)
	logger.Info("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "to file")
	require.Empty(t, console.String())
}

func TestNew_FileErrorFallsBackToConsole(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	var console bytes.Buffer
	logger, closer, err := New(config.LogConfig{Path: filepath.Join(blocker, "app.log")}, &console)
	require.Error(t, err)
	require.NotNil(t, logger)
	require.NoError(t, closer.Close())

	logger.Info("still logged")
	require.Contains(t, console.String(), "still logged")
}

func TestFileWriter_TrimsToRecentBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	w, err := NewFileWriter(path)
	require.NoError(t, err)
	w.maxSize = 10
	w.keep = 4
	defer w.Close()

	_, err = w.Write([]byte("0123456789"))
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "0123456789", string(data))

	_, err = w.Write([]byte("ab"))
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "89ab", string(data))

	_, err = w.Write([]byte("c"))
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "89abc", string(data))
}
