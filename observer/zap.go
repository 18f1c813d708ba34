package observer

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/logbridge/core"
	"github.com/philipp01105/logbridge/formatter"
)

// ZapConfig holds configuration for a zap observer
type ZapConfig struct {
	// Logger to write to (default: zap.NewNop())
	Logger *zap.Logger
	// Name is used as the zap logger name when an event has no namespace
	Name string
}

func applyZapDefaults(cfg *ZapConfig) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
}

// ZapObserver writes events, in either dialect, to a zap logger. The
// event's own timestamp is kept; the zap core decides whether the level
// is enabled.
//
// Entries go to the core's Write rather than through Check, so the
// core's write error reaches the caller. Samplers and hooks registered
// through Check (zap.Hooks, zapcore.NewSamplerWithOptions) are therefore
// not applied; wrap the observer instead if those are needed.
type ZapObserver struct {
	core zapcore.Core
	name string
}

var (
	_ core.Observer       = (*ZapObserver)(nil)
	_ core.LegacyObserver = (*ZapObserver)(nil)
)

// NewZapObserver creates a new zap observer
func NewZapObserver(cfg ZapConfig) *ZapObserver {
	applyZapDefaults(&cfg)
	return &ZapObserver{core: cfg.Logger.Core(), name: cfg.Name}
}

// Observe writes a new-style event
func (o *ZapObserver) Observe(event *core.Event) error {
	return o.write(event)
}

// Emit writes a legacy event
func (o *ZapObserver) Emit(event *core.Event) error {
	return o.write(event)
}

func (o *ZapObserver) write(event *core.Event) error {
	level := formatter.Level(event)
	zapLevel := coreLevelToZap(level)
	if !o.core.Enabled(zapLevel) {
		return nil
	}

	entry := zapcore.Entry{
		Level:      zapLevel,
		Time:       event.LogTime,
		LoggerName: event.LogNamespace,
		Message:    formatter.Message(event),
	}
	if entry.Time.IsZero() {
		entry.Time = event.Time
	}
	if entry.LoggerName == "" {
		entry.LoggerName = o.name
	}

	return o.core.Write(entry, eventFieldsToZap(event, level))
}

// Sync flushes buffered output of the underlying core
func (o *ZapObserver) Sync() error {
	return o.core.Sync()
}

// String returns "ZapObserver"
func (o *ZapObserver) String() string {
	return "ZapObserver"
}

// eventFieldsToZap converts the event's system, failure and free fields.
// log_level keeps the original name since zap has no critical level.
func eventFieldsToZap(event *core.Event, level core.Level) []zapcore.Field {
	keys := formatter.Fields(event)
	fields := make([]zapcore.Field, 0, len(keys)+3)

	fields = append(fields, zap.String(core.KeyLogLevel, level.String()))
	if system := formatter.System(event); system != "" {
		fields = append(fields, zap.String(core.KeySystem, system))
	}
	if failure := formatter.Failure(event); failure != nil {
		fields = append(fields, zap.Error(failure))
	}
	for _, key := range keys {
		fields = append(fields, zap.Any(key, event.Fields[key]))
	}

	return fields
}

// coreLevelToZap converts a core.Level to a zapcore.Level. Critical maps to
// ErrorLevel since zap's higher levels panic or exit; LevelNone is info.
func coreLevelToZap(level core.Level) zapcore.Level {
	switch level {
	case core.DebugLevel:
		return zapcore.DebugLevel
	case core.WarnLevel:
		return zapcore.WarnLevel
	case core.ErrorLevel, core.CriticalLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
