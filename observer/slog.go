package observer

import (
	"context"
	"log/slog"
	"time"

	"github.com/philipp01105/logbridge/core"
	"github.com/philipp01105/logbridge/formatter"
)

// slogCritical is the slog level used for core.CriticalLevel.
const slogCritical = slog.LevelError + 4

// attrPrefix renames slog attrs whose keys the event already owns.
const attrPrefix = "attr."

// SlogObserver writes events, in either dialect, to a slog.Handler.
type SlogObserver struct {
	handler slog.Handler
}

var (
	_ core.Observer       = (*SlogObserver)(nil)
	_ core.LegacyObserver = (*SlogObserver)(nil)
)

// NewSlogObserver creates an observer writing to h. A nil h uses the
// handler of slog.Default().
func NewSlogObserver(h slog.Handler) *SlogObserver {
	if h == nil {
		h = slog.Default().Handler()
	}
	return &SlogObserver{handler: h}
}

// Observe writes a new-style event
func (o *SlogObserver) Observe(event *core.Event) error {
	return o.handle(event)
}

// Emit writes a legacy event
func (o *SlogObserver) Emit(event *core.Event) error {
	return o.handle(event)
}

func (o *SlogObserver) handle(event *core.Event) error {
	ctx := context.Background()
	level := coreLevelToSlog(formatter.Level(event))
	if !o.handler.Enabled(ctx, level) {
		return nil
	}

	t := event.LogTime
	if t.IsZero() {
		t = event.Time
	}
	record := slog.NewRecord(t, level, formatter.Message(event), 0)

	if event.LogNamespace != "" {
		record.AddAttrs(slog.String(core.KeyLogNamespace, event.LogNamespace))
	}
	if system := formatter.System(event); system != "" {
		record.AddAttrs(slog.String(core.KeySystem, system))
	}
	if failure := formatter.Failure(event); failure != nil {
		record.AddAttrs(slog.Any("error", failure))
	}
	for _, key := range formatter.Fields(event) {
		record.AddAttrs(slog.Any(key, event.Fields[key]))
	}

	return o.handler.Handle(ctx, record)
}

// String returns "SlogObserver"
func (o *SlogObserver) String() string {
	return "SlogObserver"
}

// SlogHandler is an adapter that implements slog.Handler on top of an
// Observer, so code using log/slog feeds the observer chain. Records
// become new-style events whose message is printed verbatim.
type SlogHandler struct {
	observer  core.Observer
	level     core.Level
	namespace string
	attrs     []slog.Attr
	group     string
}

var _ slog.Handler = (*SlogHandler)(nil)

// NewSlogHandler creates a slog.Handler delivering records at or above
// level to observer under the given namespace.
func NewSlogHandler(observer core.Observer, level core.Level, namespace string) *SlogHandler {
	return &SlogHandler{
		observer:  observer,
		level:     level,
		namespace: namespace,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return slogLevelToCore(level) >= s.level
}

// Handle converts a slog.Record into an event and passes it to the observer.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	event := &core.Event{
		LogTime:      record.Time,
		LogLevel:     slogLevelToCore(record.Level),
		LogNamespace: s.namespace,
		LogFormat:    "{" + core.KeyLogText + "}",
		Fields:       make(map[string]any, len(s.attrs)+record.NumAttrs()+1),
	}
	if event.LogTime.IsZero() {
		event.LogTime = time.Now()
	}

	// Pre-configured attrs were prefixed when they were added
	for _, a := range s.attrs {
		s.addAttr(event, "", a)
	}
	record.Attrs(func(a slog.Attr) bool {
		s.addAttr(event, s.group, a)
		return true
	})
	event.Fields[core.KeyLogText] = record.Message

	return s.observer.Observe(event)
}

// addAttr stores an attribute on the event. An error under the key
// "error" becomes the event's failure; groups are flattened with dots.
// Keys that clash with reserved or bookkeeping keys are stored under
// "attr.<key>".
func (s *SlogHandler) addAttr(event *core.Event, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if group != "" {
		key = group + "." + a.Key
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, member := range a.Value.Group() {
			s.addAttr(event, key, member)
		}
		return
	}

	value := a.Value.Any()
	if err, ok := value.(error); ok && key == "error" && event.LogFailure == nil {
		event.LogFailure = err
		return
	}
	if key == core.KeyLogText || key == core.KeyLogLegacy || core.IsReserved(key) {
		key = attrPrefix + key
	}
	event.Fields[key] = value
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(s.attrs), len(s.attrs)+len(attrs))
	copy(newAttrs, s.attrs)
	for _, a := range attrs {
		if s.group != "" {
			a.Key = s.group + "." + a.Key
		}
		newAttrs = append(newAttrs, a)
	}
	return &SlogHandler{
		observer:  s.observer,
		level:     s.level,
		namespace: s.namespace,
		attrs:     newAttrs,
		group:     s.group,
	}
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	newGroup := name
	if s.group != "" {
		newGroup = s.group + "." + name
	}
	newAttrs := make([]slog.Attr, len(s.attrs))
	copy(newAttrs, s.attrs)
	return &SlogHandler{
		observer:  s.observer,
		level:     s.level,
		namespace: s.namespace,
		attrs:     newAttrs,
		group:     newGroup,
	}
}

// slogLevelToCore converts a slog.Level to a core.Level.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slogCritical:
		return core.CriticalLevel
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// coreLevelToSlog converts a core.Level to a slog.Level. LevelNone is
// treated as info.
func coreLevelToSlog(level core.Level) slog.Level {
	switch level {
	case core.DebugLevel:
		return slog.LevelDebug
	case core.WarnLevel:
		return slog.LevelWarn
	case core.ErrorLevel:
		return slog.LevelError
	case core.CriticalLevel:
		return slogCritical
	default:
		return slog.LevelInfo
	}
}
