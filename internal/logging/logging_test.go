package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/piwi3910/SpoolCut/internal/config"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level    string
		override string
		want     zapcore.Level
	}{
		{"", "", zapcore.InfoLevel},
		{"debug", "", zapcore.DebugLevel},
		{"warning", "", zapcore.WarnLevel},
		{"debug", "error", zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.override, func(t *testing.T) {
			logger, err := New(config.LoggingConfig{Level: tt.level, Format: "console"}, tt.override)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestNewInvalid(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "loud"}, "")
	assert.ErrorContains(t, err, "invalid log level")

	_, err = New(config.LoggingConfig{Format: "xml"}, "")
	assert.ErrorContains(t, err, "invalid log format")
}

func TestNewOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "spoolcut.log")

	logger, err := New(config.LoggingConfig{Level: "info", Format: "json", OutputFile: path}, "")
	require.NoError(t, err)

	logger.Info("packed", zap.Int("bars", 2))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"bars":2`)
}
