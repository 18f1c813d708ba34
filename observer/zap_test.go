package observer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	zapobserver "go.uber.org/zap/zaptest/observer"

	"github.com/philipp01105/logbridge/core"
)

func newObservedZap(t *testing.T, level zapcore.Level) (*ZapObserver, *zapobserver.ObservedLogs) {
	t.Helper()

	zc, logs := zapobserver.New(level)
	return NewZapObserver(ZapConfig{Logger: zap.New(zc), Name: "default"}), logs
}

func TestZapObserver_Observe(t *testing.T) {
	o, logs := newObservedZap(t, zapcore.DebugLevel)
	ts := time.Date(2026, 4, 5, 6, 7, 8, 0, time.UTC)

	err := o.Observe(&core.Event{
		LogTime:      ts,
		LogLevel:     core.WarnLevel,
		LogNamespace: "billing",
		LogSystem:    "invoices",
		LogFormat:    "retrying {n} times",
		Fields:       map[string]any{"n": 3},
	})
	require.NoError(t, err)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "retrying 3 times", entry.Message)
	assert.Equal(t, "billing", entry.LoggerName)
	assert.Equal(t, ts, entry.Time)
	assert.Equal(t, map[string]any{
		"log_level": "warn",
		"system":    "invoices",
		"n":         int64(3),
	}, entry.ContextMap())
}

func TestZapObserver_Legacy(t *testing.T) {
	o, logs := newObservedZap(t, zapcore.DebugLevel)

	require.NoError(t, o.Emit(&core.Event{
		Message:  []any{"disk", "almost", "full"},
		System:   "monitor",
		StdLevel: core.StdlibWarning,
	}))

	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "disk almost full", entry.Message)
	assert.Equal(t, "default", entry.LoggerName)
	assert.Equal(t, "monitor", entry.ContextMap()["system"])
}

func TestZapObserver_CriticalWithFailure(t *testing.T) {
	o, logs := newObservedZap(t, zapcore.DebugLevel)

	require.NoError(t, o.Observe(&core.Event{
		LogLevel:   core.CriticalLevel,
		LogFormat:  "giving up",
		LogFailure: errors.New("connection refused"),
	}))

	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "critical", entry.ContextMap()["log_level"])
	assert.Equal(t, "connection refused", entry.ContextMap()["error"])
}

func TestZapObserver_LevelFiltered(t *testing.T) {
	o, logs := newObservedZap(t, zapcore.InfoLevel)

	require.NoError(t, o.Observe(&core.Event{LogLevel: core.DebugLevel, LogFormat: "noise"}))
	require.NoError(t, o.Observe(&core.Event{LogLevel: core.InfoLevel, LogFormat: "signal"}))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "signal", logs.All()[0].Message)
}

func TestZapObserver_HidesBookkeepingFields(t *testing.T) {
	o, logs := newObservedZap(t, zapcore.DebugLevel)

	require.NoError(t, o.Observe(&core.Event{
		LogFormat: "{log_text}",
		Fields:    map[string]any{core.KeyLogText: "pre-rendered"},
	}))

	entry := logs.All()[0]
	assert.Equal(t, "pre-rendered", entry.Message)
	assert.NotContains(t, entry.ContextMap(), core.KeyLogText)
}

func TestZapObserver_DefaultNop(t *testing.T) {
	o := NewZapObserver(ZapConfig{})

	assert.NoError(t, o.Observe(&core.Event{LogFormat: "dropped"}))
	assert.NoError(t, o.Sync())
	assert.Equal(t, "ZapObserver", o.String())
}

func TestZapObserver_ReturnsWriteError(t *testing.T) {
	boom := errors.New("pipe closed")
	zc := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(errWriter{err: boom}),
		zapcore.DebugLevel,
	)
	o := NewZapObserver(ZapConfig{Logger: zap.New(zc)})

	err := o.Observe(&core.Event{LogLevel: core.InfoLevel, LogFormat: "lost"})

	assert.ErrorIs(t, err, boom)
}
