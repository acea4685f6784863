package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}

	for input, expected := range tests {
		assert.Equal(t, expected, parseLogLevel(input), input)
	}
}

func TestInitializeReplacesNopLogger(t *testing.T) {
	previous := Log
	t.Cleanup(func() { Log = previous })

	require.NoError(t, Initialize("warn", filepath.Join(t.TempDir(), "test.log")))
	assert.True(t, Log.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, Log.Core().Enabled(zapcore.InfoLevel))
}
