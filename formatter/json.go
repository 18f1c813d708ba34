package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/philipp01105/logbridge/core"
)

// JSONFormatter formats events as one JSON object per line
type JSONFormatter struct {
	Config
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(cfg Config) *JSONFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339Nano
	}
	return &JSONFormatter{Config: cfg}
}

// Format formats an event as JSON
func (f *JSONFormatter) Format(event *core.Event) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatJSONToBuffer(event, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats an event as JSON and writes it directly to the writer
func (f *JSONFormatter) FormatTo(event *core.Event, w io.Writer) error {
	buf := getBuffer()

	f.formatJSONToBuffer(event, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// formatJSONToBuffer builds JSON manually into the buffer
func (f *JSONFormatter) formatJSONToBuffer(event *core.Event, buf *bytes.Buffer) {
	buf.WriteByte('{')

	buf.WriteString(`"level":"`)
	buf.WriteString(eventLevel(event).String())
	buf.WriteByte('"')

	if t, ok := eventTime(event); ok {
		buf.WriteString(`,"time":"`)
		buf.Write(t.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))
		buf.WriteByte('"')
	}

	if event.LogNamespace != "" {
		buf.WriteString(`,"namespace":"`)
		appendJSONString(buf, event.LogNamespace)
		buf.WriteByte('"')
	}

	if system := System(event); system != "" {
		buf.WriteString(`,"system":"`)
		appendJSONString(buf, system)
		buf.WriteByte('"')
	}

	buf.WriteString(`,"message":"`)
	appendJSONString(buf, Message(event))
	buf.WriteByte('"')

	if failure := eventFailure(event); failure != nil {
		buf.WriteString(`,"error":"`)
		appendJSONString(buf, failure.Error())
		buf.WriteByte('"')
	}

	for _, key := range printableFields(event) {
		buf.WriteString(`,"`)
		if _, taken := jsonKeys[key]; taken {
			buf.WriteString(fieldPrefix)
		}
		appendJSONString(buf, key)
		buf.WriteString(`":`)
		appendJSONValue(buf, event.Fields[key])
	}

	buf.WriteString("}\n")
}

// jsonKeys are the top-level keys written for every event. Free fields
// with the same name are written as "fields.<key>".
var jsonKeys = map[string]struct{}{
	"level":     {},
	"time":      {},
	"namespace": {},
	"system":    {},
	"message":   {},
	"error":     {},
}

const fieldPrefix = "fields."

// appendJSONString writes a JSON-escaped string (without surrounding quotes) to the buffer
func appendJSONString(buf *bytes.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		// Flush unescaped prefix
		if start < i {
			buf.WriteString(s[start:i])
		}
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexChars[c>>4])
			buf.WriteByte(hexChars[c&0x0f])
		}
		start = i + 1
	}
	// Flush remaining
	if start < len(s) {
		buf.WriteString(s[start:])
	}
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}

// appendJSONValue writes a JSON-encoded field value to the buffer
func appendJSONValue(buf *bytes.Buffer, v any) {
	switch x := v.(type) {
	case nil:
		buf.WriteString("null")
	case string:
		buf.WriteByte('"')
		appendJSONString(buf, x)
		buf.WriteByte('"')
	case int:
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(x), 10))
	case int64:
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), x, 10))
	case float64:
		buf.Write(strconv.AppendFloat(buf.AvailableBuffer(), x, 'f', -1, 64))
	case bool:
		buf.Write(strconv.AppendBool(buf.AvailableBuffer(), x))
	case time.Time:
		buf.WriteByte('"')
		buf.Write(x.AppendFormat(buf.AvailableBuffer(), time.RFC3339Nano))
		buf.WriteByte('"')
	case time.Duration:
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(x), 10))
	case error:
		buf.WriteByte('"')
		appendJSONString(buf, x.Error())
		buf.WriteByte('"')
	case fmt.Stringer:
		buf.WriteByte('"')
		appendJSONString(buf, x.String())
		buf.WriteByte('"')
	default:
		data, err := json.Marshal(v)
		if err != nil {
			buf.WriteByte('"')
			appendJSONString(buf, core.StringValue(v))
			buf.WriteByte('"')
			return
		}
		buf.Write(data)
	}
}
