package core

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"time"
)

// ErrReservedType is returned when a reserved key is given a value of a
// type it cannot hold.
var ErrReservedType = errors.New("invalid type for reserved key")

// Reserved keys of the legacy dialect.
const (
	KeyMessage  = "message"
	KeyTime     = "time"
	KeySystem   = "system"
	KeyStdLevel = "logLevel"
	KeyIsError  = "isError"
	KeyFailure  = "failure"
	KeyWhy      = "why"
	KeyFormat   = "format"
)

// Reserved keys of the new dialect.
const (
	KeyLogFormat    = "log_format"
	KeyLogSystem    = "log_system"
	KeyLogLevel     = "log_level"
	KeyLogNamespace = "log_namespace"
	KeyLogFailure   = "log_failure"
	KeyLogTime      = "log_time"
)

// Free keys written by the bridge. They live in Event.Fields.
const (
	// KeyLogText holds legacy text rendered ahead of time.
	KeyLogText = "log_text"
	// KeyLogLegacy holds a lazily rendered new-style message for legacy renderers.
	KeyLogLegacy = "log_legacy"
)

// Event is a single log record in either dialect. Each reserved key has a
// typed field whose zero value means the key is absent; every other key
// lives in Fields.
type Event struct {
	// Message holds the legacy message parts. A nil slice means absent,
	// an empty non-nil slice is an empty message.
	Message  []any
	Time     time.Time
	System   string
	StdLevel int
	IsError  bool
	// Failure is shared, never copied, so callers can compare identity.
	Failure error
	Why     string
	Format  string

	LogFormat    string
	LogSystem    string
	LogLevel     Level
	LogNamespace string
	LogFailure   error
	LogTime      time.Time

	// Fields holds unreserved keys, used as template arguments.
	Fields map[string]any
}

// Clone returns a copy of e that shares error values and field values but
// owns its Message slice and Fields map.
func (e *Event) Clone() *Event {
	if e == nil {
		return &Event{}
	}
	c := *e
	c.Message = slices.Clone(e.Message)
	c.Fields = maps.Clone(e.Fields)
	return &c
}

// Lookup returns the value stored under key, which may be reserved or free.
func (e *Event) Lookup(key string) (any, bool) {
	switch key {
	case KeyMessage:
		return e.Message, e.Message != nil
	case KeyTime:
		return e.Time, !e.Time.IsZero()
	case KeySystem:
		return e.System, e.System != ""
	case KeyStdLevel:
		return e.StdLevel, e.StdLevel != StdlibNotSet
	case KeyIsError:
		return e.IsError, e.IsError
	case KeyFailure:
		return e.Failure, e.Failure != nil
	case KeyWhy:
		return e.Why, e.Why != ""
	case KeyFormat:
		return e.Format, e.Format != ""
	case KeyLogFormat:
		return e.LogFormat, e.LogFormat != ""
	case KeyLogSystem:
		return e.LogSystem, e.LogSystem != ""
	case KeyLogLevel:
		return e.LogLevel, e.LogLevel != LevelNone
	case KeyLogNamespace:
		return e.LogNamespace, e.LogNamespace != ""
	case KeyLogFailure:
		return e.LogFailure, e.LogFailure != nil
	case KeyLogTime:
		return e.LogTime, !e.LogTime.IsZero()
	}
	v, ok := e.Fields[key]
	return v, ok
}

// Has reports whether key is present.
func (e *Event) Has(key string) bool {
	_, ok := e.Lookup(key)
	return ok
}

// Set stores value under key. Reserved keys coerce loosely typed values
// (numbers for logLevel and isError, Unix seconds for times, level names
// for log_level); a nil value clears a reserved key.
func (e *Event) Set(key string, value any) error {
	var err error
	switch key {
	case KeyMessage:
		e.Message, err = asMessage(value)
	case KeyTime:
		e.Time, err = asTime(value)
	case KeySystem:
		e.System, err = asString(value)
	case KeyStdLevel:
		e.StdLevel, err = asStdLevel(value)
	case KeyIsError:
		e.IsError, err = asTruth(value)
	case KeyFailure:
		e.Failure, err = asError(value)
	case KeyWhy:
		e.Why, err = asString(value)
	case KeyFormat:
		e.Format, err = asString(value)
	case KeyLogFormat:
		e.LogFormat, err = asString(value)
	case KeyLogSystem:
		e.LogSystem, err = asString(value)
	case KeyLogLevel:
		e.LogLevel, err = asLevel(value)
	case KeyLogNamespace:
		e.LogNamespace, err = asString(value)
	case KeyLogFailure:
		e.LogFailure, err = asError(value)
	case KeyLogTime:
		e.LogTime, err = asTime(value)
	default:
		if e.Fields == nil {
			e.Fields = make(map[string]any)
		}
		e.Fields[key] = value
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrReservedType, key, err)
	}
	return nil
}

var reservedKeys = [...]string{
	KeyMessage, KeyTime, KeySystem, KeyStdLevel, KeyIsError, KeyFailure, KeyWhy, KeyFormat,
	KeyLogFormat, KeyLogSystem, KeyLogLevel, KeyLogNamespace, KeyLogFailure, KeyLogTime,
}

// IsReserved reports whether key is one of the typed keys of either dialect.
func IsReserved(key string) bool {
	return slices.Contains(reservedKeys[:], key)
}

// Map flattens the event into a map keyed by wire names. Only present
// keys are included.
func (e *Event) Map() map[string]any {
	m := make(map[string]any, len(reservedKeys)+len(e.Fields))
	for k, v := range e.Fields {
		m[k] = v
	}
	for _, k := range reservedKeys {
		if v, ok := e.Lookup(k); ok {
			m[k] = v
		}
	}
	return m
}

// Keys returns the sorted wire names of all present keys.
func (e *Event) Keys() []string {
	return slices.Sorted(maps.Keys(e.Map()))
}

// FromMap builds an Event from a loosely typed map such as one decoded
// from JSON or produced by an older logging API.
func FromMap(m map[string]any) (*Event, error) {
	e := &Event{}
	for k, v := range m {
		if err := e.Set(k, v); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func asString(v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case fmt.Stringer:
		return s.String(), nil
	}
	return "", fmt.Errorf("want string, got %T", v)
}

func asMessage(v any) ([]any, error) {
	switch m := v.(type) {
	case nil:
		return nil, nil
	case []any:
		return slices.Clone(m), nil
	case []string:
		parts := make([]any, len(m))
		for i, s := range m {
			parts[i] = s
		}
		return parts, nil
	}
	return []any{v}, nil
}

func asTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return t, nil
	case float64:
		sec, frac := math.Modf(t)
		return time.Unix(int64(sec), int64(frac*float64(time.Second))), nil
	}
	if n, ok := asInt(v); ok {
		return time.Unix(int64(n), 0), nil
	}
	return time.Time{}, fmt.Errorf("want time or unix seconds, got %T", v)
}

func asStdLevel(v any) (int, error) {
	if v == nil {
		return StdlibNotSet, nil
	}
	if n, ok := asInt(v); ok {
		return n, nil
	}
	return StdlibNotSet, fmt.Errorf("want integer level, got %T", v)
}

// asTruth follows the legacy convention: the flag is set when the value is
// true or equal to 1.
func asTruth(v any) (bool, error) {
	switch b := v.(type) {
	case nil:
		return false, nil
	case bool:
		return b, nil
	}
	if n, ok := asInt(v); ok {
		return n == 1, nil
	}
	return false, fmt.Errorf("want bool or integer, got %T", v)
}

func asError(v any) (error, error) {
	switch err := v.(type) {
	case nil:
		return nil, nil
	case error:
		return err, nil
	case string:
		return errors.New(err), nil
	}
	return nil, fmt.Errorf("want error, got %T", v)
}

func asLevel(v any) (Level, error) {
	switch l := v.(type) {
	case nil:
		return LevelNone, nil
	case Level:
		return l, nil
	case string:
		return ParseLevel(l)
	}
	if n, ok := asInt(v); ok && Level(n).Valid() {
		return Level(n), nil
	}
	return LevelNone, fmt.Errorf("want level, got %T", v)
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		if float32(int(n)) == n {
			return int(n), true
		}
	case float64:
		if float64(int(n)) == n {
			return int(n), true
		}
	}
	return 0, false
}
