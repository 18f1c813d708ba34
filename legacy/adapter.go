package legacy

import (
	"fmt"

	"github.com/philipp01105/logbridge/core"
	"github.com/philipp01105/logbridge/formatter"
)

// Namespace is the log_namespace given to every event that originates
// from the legacy API.
const Namespace = "log_legacy"

// legacyFormat makes the legacy renderer print the lazily formatted
// new-style message stored under core.KeyLogLegacy.
const legacyFormat = "%(" + core.KeyLogLegacy + ")s"

// defaultSystem is the system reported when an event names none.
const defaultSystem = "-"

// NewToLegacyAdapter is a core.Observer that forwards new-style events to
// a legacy observer, filling in the keys the legacy API expects.
type NewToLegacyAdapter struct {
	observer core.LegacyObserver
}

var _ core.Observer = (*NewToLegacyAdapter)(nil)

// NewAdapter wraps a legacy observer so it can be registered in a
// chain of new-style observers.
func NewAdapter(observer core.LegacyObserver) *NewToLegacyAdapter {
	return &NewToLegacyAdapter{observer: observer}
}

// Observe translates event into the legacy dialect and emits it to the
// wrapped observer exactly once. The event itself is not modified. The
// observer's error is returned as is.
func (a *NewToLegacyAdapter) Observe(event *core.Event) error {
	return a.observer.Emit(ToLegacy(event))
}

// String returns "NewToLegacyAdapter(<wrapped observer>)".
func (a *NewToLegacyAdapter) String() string {
	return fmt.Sprintf("NewToLegacyAdapter(%v)", a.observer)
}

// ToLegacy returns a copy of a new-style event with the legacy keys
// added. Keys already present are kept unchanged.
func ToLegacy(event *core.Event) *core.Event {
	out := event.Clone()

	if out.System == "" {
		out.System = out.LogSystem
		if out.System == "" {
			out.System = defaultSystem
		}
	}

	if out.LogLevel != core.LevelNone && out.StdLevel == core.StdlibNotSet {
		out.StdLevel = core.LevelMap.ToStdlib(out.LogLevel)
	}

	if out.Time.IsZero() {
		out.Time = out.LogTime
	}

	if out.Message == nil {
		out.Message = []any{}
	}

	if out.LogFormat != "" && out.Format == "" {
		out.Format = legacyFormat
		if out.Fields == nil {
			out.Fields = make(map[string]any, 1)
		}
		out.Fields[core.KeyLogLegacy] = deferredText{event: event.Clone()}
	}

	if out.LogFailure != nil {
		if out.Failure == nil {
			out.Failure = out.LogFailure
		}
		out.IsError = true
		if out.Why == "" {
			out.Why = event.LogFormat
		}
	} else if out.LogLevel >= core.ErrorLevel {
		out.IsError = true
	}

	return out
}

// deferredText renders a snapshot of a new-style event only when a legacy
// renderer asks for its string form.
type deferredText struct {
	event *core.Event
}

func (d deferredText) String() string {
	return formatter.FormatEvent(d.event)
}
