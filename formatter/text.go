package formatter

import (
	"bytes"
	"io"
	"time"

	"github.com/philipp01105/logbridge/core"
)

// TextFormatter formats events as human-readable text:
//
//	2026-01-15T12:00:00Z [info] app.http: request handled status=200
type TextFormatter struct {
	Config
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339
	}
	return &TextFormatter{Config: cfg}
}

// Format formats an event as text
func (f *TextFormatter) Format(event *core.Event) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(event, buf)

	// Copy buffer content to return
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats an event and writes it directly to the writer
func (f *TextFormatter) FormatTo(event *core.Event, w io.Writer) error {
	buf := getBuffer()

	f.formatToBuffer(event, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// pre-formatted level strings to avoid multiple WriteString calls
var levelBrackets = [...]string{
	core.LevelNone:     "[-] ",
	core.DebugLevel:    "[debug] ",
	core.InfoLevel:     "[info] ",
	core.WarnLevel:     "[warn] ",
	core.ErrorLevel:    "[error] ",
	core.CriticalLevel: "[critical] ",
}

// formatToBuffer writes the formatted event into the given buffer
func (f *TextFormatter) formatToBuffer(event *core.Event, buf *bytes.Buffer) {
	if t, ok := eventTime(event); ok {
		buf.Write(t.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))
		buf.WriteByte(' ')
	}

	level := eventLevel(event)
	if level >= 0 && int(level) < len(levelBrackets) {
		buf.WriteString(levelBrackets[level])
	} else {
		buf.WriteString("[unknown] ")
	}

	if source := eventSource(event); source != "" {
		buf.WriteString(source)
		buf.WriteString(": ")
	}

	buf.WriteString(Message(event))

	for _, key := range printableFields(event) {
		buf.WriteByte(' ')
		buf.WriteString(key)
		buf.WriteByte('=')
		buf.WriteString(core.StringValue(event.Fields[key]))
	}

	if failure := eventFailure(event); failure != nil && !messageIncludesFailure(event) {
		buf.WriteString(" error=")
		buf.WriteString(failure.Error())
	}

	buf.WriteByte('\n')
}
