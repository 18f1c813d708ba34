package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/philipp01105/logbridge/core"
)

var (
	// ErrUnbalancedBrace is returned for a template with a lone '}' or an unclosed '{'.
	ErrUnbalancedBrace = errors.New("unbalanced brace in template")
	// ErrMissingKey is returned when a template names a key the event does not have.
	ErrMissingKey = errors.New("missing template key")
)

// Lookup resolves a template key to its value.
type Lookup func(key string) (any, bool)

// Format renders a brace template. "{key}" is replaced by the looked-up
// value, "{key!r}" by its Go-syntax representation and "{key:spec}" by
// the value rendered with a format spec ("{n:>5}", "{x:.2f}", "{n:,}").
// "{{" and "}}" produce literal braces. An unusable spec is an error
// wrapping ErrBadFormatSpec.
func Format(template string, lookup Lookup) (string, error) {
	var b strings.Builder
	b.Grow(len(template) + 16)

	for i := 0; i < len(template); i++ {
		c := template[i]
		switch c {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed '{' at offset %d", ErrUnbalancedBrace, i)
			}
			field := template[i+1 : i+1+end]
			if strings.IndexByte(field, '{') >= 0 {
				return "", fmt.Errorf("%w: nested '{' at offset %d", ErrUnbalancedBrace, i)
			}
			if err := writeField(&b, field, lookup); err != nil {
				return "", err
			}
			i += end + 1
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				b.WriteByte('}')
				i++
				continue
			}
			return "", fmt.Errorf("%w: single '}' at offset %d", ErrUnbalancedBrace, i)
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

func writeField(b *strings.Builder, field string, lookup Lookup) error {
	name, spec, hasSpec := strings.Cut(field, ":")
	name, conv, hasConv := strings.Cut(name, "!")

	value, ok := lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrMissingKey, name)
	}

	if hasConv {
		switch conv {
		case "r", "a":
			value = fmt.Sprintf("%#v", value)
		case "s":
			value = core.StringValue(value)
		default:
			return fmt.Errorf("%w: unknown conversion %q", ErrBadFormatSpec, conv)
		}
	}

	if !hasSpec || spec == "" {
		b.WriteString(core.StringValue(value))
		return nil
	}
	text, err := renderSpec(value, spec)
	if err != nil {
		return err
	}
	b.WriteString(text)
	return nil
}

// FormatEvent renders the event's log_format template against the event's
// own keys. An event without log_format renders as "". A template that
// cannot be rendered produces a description of the event and the error
// instead, so a broken call site never loses the event.
func FormatEvent(event *core.Event) string {
	if event == nil || event.LogFormat == "" {
		return ""
	}
	text, err := Format(event.LogFormat, event.Lookup)
	if err != nil {
		return formatUnformattable(event, err)
	}
	return text
}

func formatUnformattable(event *core.Event, err error) string {
	return fmt.Sprintf("Unable to format event %v: %v", event.Map(), err)
}
