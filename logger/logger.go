package logger

import (
	"github.com/philipp01105/logbridge/core"
)

// Logger is the new-style emitting API (immutable). Every call builds one
// event carrying log_time, log_level, log_namespace, log_format and, when
// set, log_system, and hands it to the observer.
type Logger struct {
	observer  core.Observer
	level     core.Level
	namespace string
	system    string
	fields    []core.Field
	clock     core.Clock
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	observer  core.Observer
	level     core.Level
	namespace string
	system    string
	fields    []core.Field
	clock     core.Clock
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{
		level: core.InfoLevel, // Default level
		clock: core.SystemClock,
	}
}

// WithObserver sets the observer events are delivered to
func (b *Builder) WithObserver(o core.Observer) *Builder {
	b.observer = o
	return b
}

// WithLevel sets the minimum level
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithNamespace sets log_namespace
func (b *Builder) WithNamespace(namespace string) *Builder {
	b.namespace = namespace
	return b
}

// WithSystem sets log_system
func (b *Builder) WithSystem(system string) *Builder {
	b.system = system
	return b
}

// WithFields adds default fields to all events
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// WithClock sets the time source for log_time
func (b *Builder) WithClock(clock core.Clock) *Builder {
	if clock != nil {
		b.clock = clock
	}
	return b
}

// WithCoarseClock stamps events with core.CoarseClock, trading up to
// 500µs of precision for a cheaper time read.
func (b *Builder) WithCoarseClock() *Builder {
	b.clock = core.CoarseClock()
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	return &Logger{
		observer:  b.observer,
		level:     b.level,
		namespace: b.namespace,
		system:    b.system,
		fields:    append([]core.Field(nil), b.fields...),
		clock:     b.clock,
	}
}

// With creates a new Logger with additional fields (immutable operation)
func (l *Logger) With(fields ...core.Field) *Logger {
	child := *l
	child.fields = make([]core.Field, len(l.fields)+len(fields))
	copy(child.fields, l.fields)
	copy(child.fields[len(l.fields):], fields)
	return &child
}

// Named creates a new Logger with a different namespace
func (l *Logger) Named(namespace string) *Logger {
	child := *l
	child.namespace = namespace
	return &child
}

// Namespace returns the logger's log_namespace
func (l *Logger) Namespace() string {
	return l.namespace
}

// Enabled reports whether events at level pass the logger's minimum level
func (l *Logger) Enabled(level core.Level) bool {
	return level >= l.level
}

// Log emits an event at the given level. format is a brace template
// rendered against the fields when the event is formatted.
func (l *Logger) Log(level core.Level, format string, fields ...core.Field) error {
	if level < l.level {
		return nil
	}
	return l.emit(level, format, nil, fields)
}

// emit builds the event and delivers it. Default fields come first so
// call-site fields win; reserved keys are applied with Event.Set.
func (l *Logger) emit(level core.Level, format string, failure error, fields []core.Field) error {
	if l.observer == nil {
		return nil
	}

	event := &core.Event{
		LogTime:      l.clock(),
		LogLevel:     level,
		LogNamespace: l.namespace,
		LogSystem:    l.system,
		LogFormat:    format,
		LogFailure:   failure,
	}
	if n := len(l.fields) + len(fields); n > 0 {
		event.Fields = make(map[string]any, n)
	}
	for _, f := range l.fields {
		if err := event.Set(f.Key, f.Value); err != nil {
			return err
		}
	}
	for _, f := range fields {
		if err := event.Set(f.Key, f.Value); err != nil {
			return err
		}
	}

	return l.observer.Observe(event)
}

// Debug emits a debug event
func (l *Logger) Debug(format string, fields ...core.Field) error {
	if core.DebugLevel < l.level {
		return nil
	}
	return l.emit(core.DebugLevel, format, nil, fields)
}

// Info emits an info event
func (l *Logger) Info(format string, fields ...core.Field) error {
	if core.InfoLevel < l.level {
		return nil
	}
	return l.emit(core.InfoLevel, format, nil, fields)
}

// Warn emits a warning event
func (l *Logger) Warn(format string, fields ...core.Field) error {
	if core.WarnLevel < l.level {
		return nil
	}
	return l.emit(core.WarnLevel, format, nil, fields)
}

// Error emits an error event
func (l *Logger) Error(format string, fields ...core.Field) error {
	if core.ErrorLevel < l.level {
		return nil
	}
	return l.emit(core.ErrorLevel, format, nil, fields)
}

// Critical emits a critical event
func (l *Logger) Critical(format string, fields ...core.Field) error {
	if core.CriticalLevel < l.level {
		return nil
	}
	return l.emit(core.CriticalLevel, format, nil, fields)
}

// Failure emits a critical event carrying err as log_failure. format
// describes what was being attempted.
func (l *Logger) Failure(format string, err error, fields ...core.Field) error {
	if core.CriticalLevel < l.level {
		return nil
	}
	return l.emit(core.CriticalLevel, format, err, fields)
}
