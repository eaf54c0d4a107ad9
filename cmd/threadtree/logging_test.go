package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogging_WritesToFile(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	dir := t.TempDir()
	logPath := filepath.Join(dir, "threadtree.log")

	closeLog, err := setupLogging("info", logPath)
	require.NoError(t, err)
	slog.Info("hello world", "mode", "inorder")
	slog.Debug("hidden")
	require.NoError(t, closeLog())
	assert.Error(t, closeLog(), "file is already closed")

	data, err := os.ReadFile(logPath)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "INFO: hello world (mode='inorder')")
	assert.NotContains(t, string(data), "hidden")
}

func TestSetupLogging_RejectsUnknownLevel(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	_, err := setupLogging("verbose", "")
	assert.Error(t, err)
}
