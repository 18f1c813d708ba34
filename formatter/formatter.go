package formatter

import (
	"bytes"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/philipp01105/logbridge/core"
)

// Formatter turns an event into one line of output
type Formatter interface {
	// Format formats an event into bytes
	Format(event *core.Event) ([]byte, error)
}

// WriterFormatter is an optional interface that formatters can implement
// to write directly to a writer without intermediate byte slice allocation.
type WriterFormatter interface {
	// FormatTo formats an event and writes it directly to the writer
	FormatTo(event *core.Event, w io.Writer) error
}

// Config holds common formatter configuration
type Config struct {
	// TimestampFormat specifies the time format (empty for RFC3339)
	TimestampFormat string
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}

// Message returns the human-readable text of an event in either dialect:
// the rendered log_format when present, the legacy rendering otherwise.
func Message(event *core.Event) string {
	if event.LogFormat != "" {
		return FormatEvent(event)
	}
	return LegacyText(event)
}

// messageIncludesFailure reports whether Message already printed the
// failure through the legacy error rendering.
func messageIncludesFailure(event *core.Event) bool {
	return event.LogFormat == "" && len(event.Message) == 0 && event.IsError && event.Failure != nil
}

// eventTime prefers the new-style timestamp and falls back to the legacy one.
func eventTime(event *core.Event) (t time.Time, ok bool) {
	if !event.LogTime.IsZero() {
		return event.LogTime, true
	}
	return event.Time, !event.Time.IsZero()
}

// eventLevel prefers log_level and falls back to mapping logLevel.
func eventLevel(event *core.Event) core.Level {
	if event.LogLevel != core.LevelNone {
		return event.LogLevel
	}
	if event.StdLevel != core.StdlibNotSet {
		return core.LevelMap.FromStdlib(event.StdLevel)
	}
	return core.LevelNone
}

// eventSource prefers the namespace, then either system key.
func eventSource(event *core.Event) string {
	switch {
	case event.LogNamespace != "":
		return event.LogNamespace
	case event.LogSystem != "":
		return event.LogSystem
	default:
		return event.System
	}
}

// eventFailure returns whichever failure is attached.
func eventFailure(event *core.Event) error {
	if event.LogFailure != nil {
		return event.LogFailure
	}
	return event.Failure
}

// hiddenFields are bookkeeping keys that formatters never print.
var hiddenFields = map[string]struct{}{
	core.KeyLogText:   {},
	core.KeyLogLegacy: {},
}

// printableFields returns the free keys worth printing, sorted.
func printableFields(event *core.Event) []string {
	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		if _, hidden := hiddenFields[k]; !hidden {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// Failure returns the failure attached to an event in either dialect.
func Failure(event *core.Event) error {
	return eventFailure(event)
}

// System returns log_system, or the legacy system when that is unset.
func System(event *core.Event) string {
	if event.LogSystem != "" {
		return event.LogSystem
	}
	return event.System
}

// Fields returns the sorted free keys of an event, leaving out the
// bookkeeping keys used to carry pre-rendered text.
func Fields(event *core.Event) []string {
	return printableFields(event)
}

// Level returns log_level, or the mapped legacy logLevel when unset.
func Level(event *core.Event) core.Level {
	return eventLevel(event)
}
