package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := New(Config{Level: tt.level, OutputPaths: []string{"stderr"}})
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestNamedAndWith(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := Wrap(zap.New(core))

	logger.Named("archive").With(zap.String("project", "demo")).Info("rewritten")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "archive", entries[0].LoggerName)
	assert.Equal(t, "demo", entries[0].ContextMap()["project"])
}

func TestNopDiscards(t *testing.T) {
	logger := Nop()
	assert.NotPanics(t, func() { logger.Info("ignored") })
}
