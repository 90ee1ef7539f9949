package logutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	lg, props, err := NewLogger(zapcore.AddSync(&buf), "warn")
	require.NoError(t, err)
	require.Equal(t, zapcore.WarnLevel, props.Level.Level())

	lg.Info("hidden")
	lg.Warn("shown", zap.String("model", "waveshare2in13v2"))
	require.NoError(t, lg.Sync())

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown")
	require.Contains(t, out, "WARN")
	require.Contains(t, out, "waveshare2in13v2")
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	_, _, err := NewLogger(zapcore.AddSync(&bytes.Buffer{}), "verbose")
	require.Error(t, err)
}
