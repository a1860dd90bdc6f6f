package logger_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"go-gin-addressbook/internal/core/logger"
)

func TestToWriter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	w := logger.ToWriter(zap.New(core), zapcore.WarnLevel)

	n, err := w.Write([]byte("gin: something odd\n"))
	require.NoError(t, err)
	assert.Equal(t, len("gin: something odd\n"), n)

	require.Equal(t, 1, logs.Len())
	e := logs.All()[0]
	assert.Equal(t, "gin: something odd", e.Message)
	assert.Equal(t, zapcore.WarnLevel, e.Level)
}

func TestToWriter_BelowLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	w := logger.ToWriter(zap.New(core), zapcore.DebugLevel)

	_, err := w.Write([]byte("noise"))
	require.NoError(t, err)
	assert.Zero(t, logs.Len())
}

func TestFromConfig(t *testing.T) {
	l, cleanup := logger.FromConfig("debug", true, "", 0, 0, 0, false)
	require.NotNil(t, l)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
	cleanup()

	file := filepath.Join(t.TempDir(), "app.log")
	l, cleanup = logger.FromConfig("warn", true, file, 1, 1, 1, false)
	l.Warn("to file")
	cleanup()
	assert.FileExists(t, file)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
}
