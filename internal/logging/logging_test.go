package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestSetupLoggerWritesFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "macperm.log")

	logger, err := SetupLogger(logFile, "debug", true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseFile() })

	logger.Debug("panel shown", "session", "abc123")
	logger.Info("all permissions granted")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "panel shown")
	assert.Contains(t, string(data), "session=abc123")
	assert.Contains(t, string(data), "all permissions granted")
}

func TestSetupLoggerLevelFilters(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "macperm.log")

	logger, err := SetupLogger(logFile, "warn", true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseFile() })

	logger.Info("tick")
	logger.Warn("panel failed")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "tick")
	assert.Contains(t, string(data), "panel failed")
}

func TestSetupLoggerNoOutputs(t *testing.T) {
	logger, err := SetupLogger("", "info", true)
	require.NoError(t, err)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := &MultiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}}
	logger := slog.New(h).With("kind", "accessibility")

	logger.Debug("checked")
	logger.Warn("missing")

	assert.Contains(t, a.String(), "checked")
	assert.Contains(t, a.String(), "missing")
	assert.NotContains(t, b.String(), "checked")
	assert.Contains(t, b.String(), "kind=accessibility")
}

func TestNewStderrHandlerNoColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	slog.New(NewStderrHandler(&buf, slog.LevelInfo)).Info("hello")
	assert.NotContains(t, buf.String(), "\x1b[")
}
