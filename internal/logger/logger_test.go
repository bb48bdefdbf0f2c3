package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"alfredoptarigan/resume-radar/internal/config"
)

func TestNewLevels(t *testing.T) {
	log, err := New(config.LogConfig{JSON: true, Debug: true, Level: "error"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = New(config.LogConfig{})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))

	log, err = New(config.LogConfig{Level: "warn"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))

	_, err = New(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestNewWritesJSONToConfiguredOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := New(config.LogConfig{JSON: true, Output: path})
	require.NoError(t, err)
	log.Info("resume analyzed", zap.Float64("score", 58.33))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"resume analyzed"`)
	assert.Contains(t, string(data), `"score":58.33`)
	assert.NotContains(t, string(data), `"caller"`)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "résu...", Truncate("  résumé text ", 4))
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "", Truncate("anything", 0))
}
