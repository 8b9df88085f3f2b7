package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit_RoutesThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Init(zap.New(core))

	Info("portfolio refreshed", "wallets", 2)
	Named("auth").Warn("verify failed", "attempt", 1)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "portfolio refreshed", entries[0].Message)
	assert.Equal(t, int64(2), entries[0].ContextMap()["wallets"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "auth", entries[1].ContextMap()["component"])
}

func TestInit_RespectsLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Init(zap.New(core))

	Debug("hidden")
	NewSlogAdapter().Error("shown")

	require.Len(t, logs.All(), 1)
	assert.Equal(t, "shown", logs.All()[0].Message)
}

func TestNewZap(t *testing.T) {
	l, err := NewZap("debug", true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = NewZap("error", false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.WarnLevel))

	l, err = NewZap("bogus", false)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}
