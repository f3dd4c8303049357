package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"chrono_tui/internal/config"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configLog(path, level string) config.LogConfig {
	return config.LogConfig{Path: path, Level: level}
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("tick_interval: 20ms\nlog:\n  level: warn\n"), 0644))

	cfg, err := loadConfig([]string{
		"--config", configPath,
		"--interval", "50ms",
		"--history", filepath.Join(dir, "h.db"),
		"--log-level", "debug",
	})
	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, filepath.Join(dir, "h.db"), cfg.History.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigFileValuesWithoutFlags(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("tick_interval: 20ms\n"), 0644))

	cfg, err := loadConfig([]string{"--config", configPath, "--no-history"})
	require.NoError(t, err)
	assert.Equal(t, 20*time.Millisecond, cfg.TickInterval)
	assert.Empty(t, cfg.History.Path)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")

	_, err := loadConfig([]string{"--config", missing, "--interval", "0s"})
	assert.Error(t, err)

	_, err = loadConfig([]string{"--config", missing, "--log-level", "loud"})
	assert.Error(t, err)

	_, err = loadConfig([]string{"--bogus"})
	assert.Error(t, err)
}

func TestLoadConfigHelp(t *testing.T) {
	_, err := loadConfig([]string{"--help"})
	assert.True(t, errors.Is(err, pflag.ErrHelp))
}

func TestOpenLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chrono.log")

	logger, closeLog, err := openLogger(configLog(path, "warn"))
	require.NoError(t, err)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	logger.Warn("kept", "k", 1)
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"kept"`)

	logger, closeLog, err = openLogger(configLog("", "debug"))
	require.NoError(t, err)
	logger.Info("discarded")
	closeLog()

	_, _, err = openLogger(configLog("", "loud"))
	assert.Error(t, err)
}
