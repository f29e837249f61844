package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogLevelMapping(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, DebugLevel.zapLevel())
	assert.Equal(t, zapcore.WarnLevel, WarnLevel.zapLevel())
	assert.Equal(t, zapcore.ErrorLevel, ErrorLevel.zapLevel())
	assert.Equal(t, zapcore.InfoLevel, LogLevel("bogus").zapLevel())
}

func TestHelpersWriteToInstalledLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(zap.NewNop()) })

	Debug("dropped")
	Info("[Auth] login ok", String("username", "jane.doe"))
	Warn("[Auth] bad password", Int("attempt", 2))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "[Auth] login ok", entries[0].Message)
	assert.Equal(t, "jane.doe", entries[0].ContextMap()["username"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestNewCreatesLogDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")

	l, err := New(Config{Level: InfoLevel, OutputPath: path, MaxSize: 1})
	require.NoError(t, err)
	l.Info("hello")

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
