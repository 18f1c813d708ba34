package legacy

import (
	"github.com/philipp01105/logbridge/core"
	"github.com/philipp01105/logbridge/formatter"
)

// TextFunc renders a legacy event as text.
type TextFunc func(event *core.Event) string

// textFormat makes the new-style formatter print the pre-rendered legacy
// text verbatim.
const textFormat = "{" + core.KeyLogText + "}"

// Publish translates a legacy event into the new dialect and delivers it
// to observer exactly once. textFromEvent renders the legacy message and
// is called at most once; nil means formatter.LegacyText. The event itself
// is not modified. The observer's error is returned as is.
func Publish(observer core.Observer, event *core.Event, textFromEvent TextFunc) error {
	return observer.Observe(ToNew(event, textFromEvent))
}

// ToNew returns a copy of a legacy event with the new-style keys added:
//
//   - log_level is critical for error events, the mapped logLevel when one
//     is set, and info otherwise;
//   - log_namespace is "log_legacy";
//   - log_system mirrors system;
//   - log_format prints the text produced by textFromEvent;
//   - log_time mirrors time.
//
// Keys already present on the event are kept unchanged.
func ToNew(event *core.Event, textFromEvent TextFunc) *core.Event {
	if textFromEvent == nil {
		textFromEvent = formatter.LegacyText
	}
	out := event.Clone()

	if out.LogLevel == core.LevelNone {
		switch {
		case out.IsError:
			out.LogLevel = core.CriticalLevel
		case out.StdLevel != core.StdlibNotSet:
			out.LogLevel = core.LevelMap.FromStdlib(out.StdLevel)
		default:
			out.LogLevel = core.InfoLevel
		}
	}

	if out.LogNamespace == "" {
		out.LogNamespace = Namespace
	}

	if out.LogSystem == "" {
		out.LogSystem = out.System
	}

	if out.LogFormat == "" {
		if out.Fields == nil {
			out.Fields = make(map[string]any, 1)
		}
		out.Fields[core.KeyLogText] = textFromEvent(event)
		out.LogFormat = textFormat
	}

	if out.LogTime.IsZero() {
		out.LogTime = out.Time
	}

	return out
}
