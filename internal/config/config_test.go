package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "tmemodeck.json", cfg.DeckPath)
	assert.Equal(t, ".tmemocache.db", cfg.CachePath)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 4, cfg.DayRolloverHours)
	assert.Zero(t, cfg.TargetRetention)
	assert.Equal(t, 2, cfg.DefaultSurroundingLines)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "custom.yaml", `
deck_path: decks/main.json
log:
  level: DEBUG
  format: json
day_rollover_hours: 0
target_retention: 0.85
default_surrounding_lines: 1
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "decks/main.json", cfg.DeckPath)
	assert.Equal(t, ".tmemocache.db", cfg.CachePath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 0, cfg.DayRolloverHours)
	assert.InDelta(t, 0.85, cfg.TargetRetention, 1e-9)
	assert.Equal(t, 1, cfg.DefaultSurroundingLines)
}

func TestLoadFileFromWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, DefaultFile, "deck_path: here.json\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "here.json", cfg.DeckPath)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "c.yaml", "deck_path: file.json\nlog:\n  level: info\n")
	t.Setenv("TMEMO_DECK_PATH", "env.json")
	t.Setenv("TMEMO_LOG_LEVEL", "error")
	t.Setenv("TMEMO_DAY_ROLLOVER_HOURS", "6")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env.json", cfg.DeckPath)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, 6, cfg.DayRolloverHours)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, ".env", "TMEMO_CACHE_PATH=dotenv.db\n")
	t.Cleanup(func() { os.Unsetenv("TMEMO_CACHE_PATH") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dotenv.db", cfg.CachePath)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"retention too high", "target_retention: 1.5\n"},
		{"negative retention", "target_retention: -0.1\n"},
		{"rollover out of range", "day_rollover_hours: 24\n"},
		{"unknown log level", "log:\n  level: verbose\n"},
		{"unknown log format", "log:\n  format: xml\n"},
		{"empty deck path", "deck_path: \"\"\n"},
		{"negative surrounding lines", "default_surrounding_lines: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "c.yaml", tt.content)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
