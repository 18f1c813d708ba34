package core

import (
	"fmt"
	"strconv"
	"time"
)

// Field is a key-value pair attached to an event as a template argument
type Field struct {
	Key   string
	Value any
}

// StringValue returns the string representation of a field's value
func (f Field) StringValue() string {
	return StringValue(f.Value)
}

// StringValue renders v the way formatters print substitution arguments
func StringValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case time.Duration:
		return x.String()
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
