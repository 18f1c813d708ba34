package formatter

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/philipp01105/logbridge/core"
)

// ErrBadFormatSpec is returned for a "{key:spec}" whose spec cannot be
// parsed or does not apply to the value.
var ErrBadFormatSpec = errors.New("invalid format spec")

// formatSpec is a parsed "[[fill]align][sign][#][0][width][grouping][.precision][type]".
type formatSpec struct {
	fill      rune
	align     byte
	sign      byte
	alt       bool
	zero      bool
	width     int
	grouping  byte
	precision int
	typ       byte
}

func parseFormatSpec(s string) (formatSpec, error) {
	spec := formatSpec{fill: ' ', precision: -1}
	rest := s

	if r, size := utf8.DecodeRuneInString(rest); size > 0 && len(rest) > size && isAlign(rest[size]) {
		spec.fill, spec.align = r, rest[size]
		rest = rest[size+1:]
	} else if rest != "" && isAlign(rest[0]) {
		spec.align = rest[0]
		rest = rest[1:]
	}
	if rest != "" && strings.IndexByte("+- ", rest[0]) >= 0 {
		spec.sign = rest[0]
		rest = rest[1:]
	}
	if rest != "" && rest[0] == '#' {
		spec.alt = true
		rest = rest[1:]
	}
	if rest != "" && rest[0] == '0' {
		spec.zero = true
		rest = rest[1:]
	}
	spec.width, rest = leadingInt(rest)
	if rest != "" && (rest[0] == ',' || rest[0] == '_') {
		spec.grouping = rest[0]
		rest = rest[1:]
	}
	if rest != "" && rest[0] == '.' {
		var digits string
		spec.precision, digits = leadingInt(rest[1:])
		if len(digits) == len(rest)-1 {
			return spec, fmt.Errorf("%w: %q: missing precision", ErrBadFormatSpec, s)
		}
		rest = digits
	}
	if rest != "" {
		if len(rest) > 1 || strings.IndexByte("bcdeEfFgGnosxX%", rest[0]) < 0 {
			return spec, fmt.Errorf("%w: %q", ErrBadFormatSpec, s)
		}
		spec.typ = rest[0]
	}
	return spec, nil
}

func isAlign(c byte) bool {
	return c == '<' || c == '>' || c == '^' || c == '='
}

// leadingInt consumes a run of decimal digits. An empty run yields 0.
func leadingInt(s string) (int, string) {
	i := 0
	n := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' && n < 1<<20 {
		n = n*10 + int(s[i]-'0')
		i++
	}
	return n, s[i:]
}

// renderSpec formats value according to a brace-template spec.
func renderSpec(value any, s string) (string, error) {
	spec, err := parseFormatSpec(s)
	if err != nil {
		return "", err
	}

	numeric := isInteger(value) || isFloat(value)
	var sign, prefix, body string

	switch spec.typ {
	case 'b', 'c', 'd', 'o', 'x', 'X':
		sign, prefix, body, err = spec.integer(value)
	case 'n':
		if isFloat(value) {
			spec.typ = 'g'
			sign, body, err = spec.float(value)
		} else {
			spec.typ = 'd'
			sign, prefix, body, err = spec.integer(value)
		}
	case 'e', 'E', 'f', 'F', 'g', 'G', '%':
		sign, body, err = spec.float(value)
	case 0:
		switch {
		case isInteger(value):
			spec.typ = 'd'
			sign, prefix, body, err = spec.integer(value)
		case isFloat(value) && spec.precision >= 0:
			spec.typ = 'g'
			sign, body, err = spec.float(value)
		case isFloat(value):
			f, _ := floatValue(value)
			sign, body = signOf(math.Signbit(f) && !math.IsNaN(f), spec.sign), core.StringValue(math.Abs(f))
			body = spec.group(body)
		default:
			body, err = spec.text(value)
		}
	case 's':
		body, err = spec.text(value)
		numeric = false
	}
	if err != nil {
		return "", err
	}

	return spec.pad(sign, prefix, body, numeric)
}

func (spec formatSpec) text(value any) (string, error) {
	if spec.sign != 0 || spec.alt || spec.grouping != 0 {
		return "", fmt.Errorf("%w: sign, '#' or grouping not allowed for %T", ErrBadFormatSpec, value)
	}
	s := core.StringValue(value)
	if spec.precision >= 0 && utf8.RuneCountInString(s) > spec.precision {
		s = string([]rune(s)[:spec.precision])
	}
	return s, nil
}

func (spec formatSpec) integer(value any) (sign, prefix, body string, err error) {
	if !isInteger(value) {
		if _, isBool := value.(bool); !isBool {
			return "", "", "", fmt.Errorf("%w: code '%c' needs an integer, got %T", ErrBadFormatSpec, spec.typ, value)
		}
	}
	if spec.precision >= 0 {
		return "", "", "", fmt.Errorf("%w: precision not allowed for integers", ErrBadFormatSpec)
	}
	neg, mag, _ := integerParts(value)

	if spec.typ == 'c' {
		return "", "", string(rune(mag)), nil
	}

	base := map[byte]int{'b': 2, 'o': 8, 'x': 16, 'X': 16, 'd': 10}[spec.typ]
	body = strconv.FormatUint(mag, base)
	if spec.typ == 'X' {
		body = strings.ToUpper(body)
	}
	if spec.alt && base != 10 {
		prefix = "0" + string(spec.typ)
		if spec.typ == 'o' {
			prefix = "0o"
		}
	}
	return signOf(neg, spec.sign), prefix, spec.group(body), nil
}

func (spec formatSpec) float(value any) (sign, body string, err error) {
	f, ok := floatValue(value)
	if !ok {
		return "", "", fmt.Errorf("%w: code '%c' needs a number, got %T", ErrBadFormatSpec, spec.typ, value)
	}
	sign = signOf(math.Signbit(f) && !math.IsNaN(f), spec.sign)
	f = math.Abs(f)

	precision := spec.precision
	if precision < 0 {
		precision = 6
	}
	upper := spec.typ == 'E' || spec.typ == 'F' || spec.typ == 'G'

	switch {
	case math.IsNaN(f):
		body = "nan"
	case math.IsInf(f, 0):
		body = "inf"
	case spec.typ == '%':
		body = strconv.FormatFloat(f*100, 'f', precision, 64) + "%"
	case spec.typ == 'g' || spec.typ == 'G':
		if precision == 0 {
			precision = 1
		}
		body = strconv.FormatFloat(f, 'g', precision, 64)
	default:
		body = strconv.FormatFloat(f, byte(strings.ToLower(string(spec.typ))[0]), precision, 64)
	}
	if upper {
		body = strings.ToUpper(body)
	}
	return sign, spec.group(body), nil
}

func signOf(neg bool, mode byte) string {
	switch {
	case neg:
		return "-"
	case mode == '+':
		return "+"
	case mode == ' ':
		return " "
	}
	return ""
}

// group inserts the grouping separator into the integer part of a
// rendered number: every 3 digits for decimal, every 4 otherwise.
func (spec formatSpec) group(body string) string {
	if spec.grouping == 0 {
		return body
	}
	end := strings.IndexAny(body, ".eE%")
	if end < 0 {
		end = len(body)
	}
	size := 3
	if spec.typ == 'b' || spec.typ == 'o' || spec.typ == 'x' || spec.typ == 'X' {
		size = 4
	}

	digits := body[:end]
	var b strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%size == 0 {
			b.WriteByte(spec.grouping)
		}
		b.WriteRune(c)
	}
	return b.String() + body[end:]
}

func (spec formatSpec) pad(sign, prefix, body string, numeric bool) (string, error) {
	fill, align := spec.fill, spec.align
	if spec.zero && align == 0 {
		fill = '0'
		if numeric {
			align = '='
		}
	}
	if align == 0 {
		align = '<'
		if numeric {
			align = '>'
		}
	}
	if align == '=' && !numeric {
		return "", fmt.Errorf("%w: '=' alignment needs a number", ErrBadFormatSpec)
	}

	n := spec.width - utf8.RuneCountInString(sign+prefix+body)
	if n <= 0 {
		return sign + prefix + body, nil
	}
	padding := func(k int) string { return strings.Repeat(string(fill), k) }

	switch align {
	case '<':
		return sign + prefix + body + padding(n), nil
	case '^':
		return padding(n/2) + sign + prefix + body + padding(n-n/2), nil
	case '=':
		return sign + prefix + padding(n) + body, nil
	default:
		return padding(n) + sign + prefix + body, nil
	}
}
