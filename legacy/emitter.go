package legacy

import (
	"maps"

	"github.com/philipp01105/logbridge/core"
)

// Emitter is the legacy logging API: it builds legacy events from message
// parts or failures and emits them to a legacy observer.
type Emitter struct {
	observer core.LegacyObserver
	system   string
	context  map[string]any
	now      core.Clock
}

// EmitterOption configures an Emitter.
type EmitterOption func(*Emitter)

// WithSystem sets the system label attached to every event.
func WithSystem(system string) EmitterOption {
	return func(e *Emitter) {
		e.system = system
	}
}

// WithContext sets extra keys copied into every event.
func WithContext(context map[string]any) EmitterOption {
	return func(e *Emitter) {
		e.context = maps.Clone(context)
	}
}

// WithClock overrides the time source used for the time key.
func WithClock(now core.Clock) EmitterOption {
	return func(e *Emitter) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEmitter creates an Emitter delivering to observer.
// Defaults: system "-", no extra keys, core.SystemClock.
func NewEmitter(observer core.LegacyObserver, opts ...EmitterOption) *Emitter {
	e := &Emitter{
		observer: observer,
		system:   defaultSystem,
		now:      core.SystemClock,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Msg emits an event whose message is parts.
func (e *Emitter) Msg(parts ...any) error {
	return e.MsgWith(nil, parts...)
}

// MsgWith emits an event whose message is parts, with extra keys from
// fields. Reserved keys in fields (logLevel, isError, format, ...) are
// applied with the usual coercion.
func (e *Emitter) MsgWith(fields map[string]any, parts ...any) error {
	event, err := e.event(fields)
	if err != nil {
		return err
	}
	event.Message = append(make([]any, 0, len(parts)), parts...)
	return e.observer.Emit(event)
}

// Err emits an error event carrying err as its failure. why describes
// what was being attempted and may be empty.
func (e *Emitter) Err(err error, why string) error {
	return e.ErrWith(nil, err, why)
}

// ErrWith is Err with extra keys.
func (e *Emitter) ErrWith(fields map[string]any, err error, why string) error {
	event, setErr := e.event(fields)
	if setErr != nil {
		return setErr
	}
	event.Message = []any{}
	event.IsError = true
	event.Failure = err
	event.Why = why
	return e.observer.Emit(event)
}

func (e *Emitter) event(fields map[string]any) (*core.Event, error) {
	event := &core.Event{
		Time:   e.now(),
		System: e.system,
	}
	for k, v := range e.context {
		if err := event.Set(k, v); err != nil {
			return nil, err
		}
	}
	for k, v := range fields {
		if err := event.Set(k, v); err != nil {
			return nil, err
		}
	}
	return event, nil
}
