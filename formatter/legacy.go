package formatter

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/philipp01105/logbridge/core"
)

// ErrBadPercentFormat is returned for a malformed "%(key)s" format string.
var ErrBadPercentFormat = errors.New("invalid percent format")

const defaultWhy = "Unhandled Error"

// LegacyText renders a legacy event as text:
//
//   - a non-empty message is rendered as its parts joined by single spaces;
//   - otherwise an error event carrying a failure renders as why (or
//     "Unhandled Error") followed by a newline and the failure text;
//   - otherwise format is expanded with "%(key)s" substitution;
//   - otherwise the text is empty.
func LegacyText(event *core.Event) string {
	if event == nil {
		return ""
	}

	if len(event.Message) > 0 {
		parts := make([]string, len(event.Message))
		for i, p := range event.Message {
			parts[i] = core.StringValue(p)
		}
		return strings.Join(parts, " ")
	}

	if event.IsError && event.Failure != nil {
		why := event.Why
		if why == "" {
			why = defaultWhy
		}
		return why + "\n" + fmt.Sprintf("%+v", event.Failure)
	}

	if event.Format != "" {
		text, err := PercentFormat(event.Format, event.Lookup)
		if err != nil {
			return fmt.Sprintf("Invalid format string or unformattable object in log message: %q, %v", event.Format, err)
		}
		return text
	}

	return ""
}

// PercentFormat expands "%(key)s"-style references against lookup. A
// reference may carry flags, width and precision between the closing
// parenthesis and the conversion ("%(x).2f", "%(n)5d", "%(name)-10s").
// Conversions: 's' prints the value as text, 'r' and 'a' in Go syntax,
// d/i/u/o/x/X integers, e/E/f/F/g/G floats and 'c' a character. "%%" is a
// literal percent sign. An unknown conversion, or a value the conversion
// cannot take, is an error wrapping ErrBadPercentFormat.
func PercentFormat(format string, lookup Lookup) (string, error) {
	var b strings.Builder
	b.Grow(len(format) + 16)

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(format) {
			return "", fmt.Errorf("%w: trailing '%%'", ErrBadPercentFormat)
		}
		if format[i+1] == '%' {
			b.WriteByte('%')
			i++
			continue
		}
		if format[i+1] != '(' {
			return "", fmt.Errorf("%w: expected '(' at offset %d", ErrBadPercentFormat, i+1)
		}
		end := strings.IndexByte(format[i+2:], ')')
		if end < 0 {
			return "", fmt.Errorf("%w: unterminated reference at offset %d", ErrBadPercentFormat, i)
		}
		name := format[i+2 : i+2+end]

		j := i + 2 + end + 1
		flagsStart := j
		for j < len(format) && strings.IndexByte("#0 +-", format[j]) >= 0 {
			j++
		}
		flags := format[flagsStart:j]
		modStart := j
		for j < len(format) && format[j] >= '0' && format[j] <= '9' {
			j++
		}
		if j < len(format) && format[j] == '.' {
			j++
			for j < len(format) && format[j] >= '0' && format[j] <= '9' {
				j++
			}
		}
		modifiers := format[modStart:j]
		if j >= len(format) {
			return "", fmt.Errorf("%w: missing conversion for %q", ErrBadPercentFormat, name)
		}
		verb := format[j]

		value, ok := lookup(name)
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrMissingKey, name)
		}
		if err := writeConversion(&b, flags, modifiers, verb, value); err != nil {
			return "", fmt.Errorf("%w: %%(%s)%c: %v", ErrBadPercentFormat, name, verb, err)
		}
		i = j
	}
	return b.String(), nil
}

// writeConversion renders one "%(key)" reference through fmt.
func writeConversion(b *strings.Builder, flags, modifiers string, verb byte, value any) error {
	switch verb {
	case 's':
		fmt.Fprintf(b, "%"+flags+modifiers+"s", core.StringValue(value))
	case 'r', 'a':
		fmt.Fprintf(b, "%"+flags+modifiers+"s", fmt.Sprintf("%#v", value))
	case 'd', 'i', 'u', 'o', 'x', 'X':
		n, ok := signedInteger(value)
		if !ok {
			return fmt.Errorf("need a number, got %T", value)
		}
		switch verb {
		case 'd', 'i', 'u':
			verb = 'd'
		case 'o':
			if strings.IndexByte(flags, '#') >= 0 {
				flags = strings.ReplaceAll(flags, "#", "")
				verb = 'O'
			}
		}
		fmt.Fprintf(b, "%"+flags+modifiers+string(verb), n)
	case 'e', 'E', 'f', 'F', 'g', 'G':
		f, ok := floatValue(value)
		if !ok {
			return fmt.Errorf("need a number, got %T", value)
		}
		fmt.Fprintf(b, "%"+flags+modifiers+string(verb), f)
	case 'c':
		if s, ok := value.(string); ok && utf8.RuneCountInString(s) == 1 {
			fmt.Fprintf(b, "%"+flags+modifiers+"s", s)
			return nil
		}
		_, mag, ok := integerParts(value)
		if !ok {
			return fmt.Errorf("need an integer or a single character, got %T", value)
		}
		fmt.Fprintf(b, "%"+flags+modifiers+"c", rune(mag))
	default:
		return fmt.Errorf("unsupported conversion '%c'", verb)
	}
	return nil
}
