package logger

import (
	"time"

	"github.com/philipp01105/logbridge/core"
)

// Field helper functions for convenience

// String creates a string field
func String(key, val string) core.Field {
	return core.Field{Key: key, Value: val}
}

// Int creates an int field
func Int(key string, val int) core.Field {
	return core.Field{Key: key, Value: val}
}

// Int64 creates an int64 field
func Int64(key string, val int64) core.Field {
	return core.Field{Key: key, Value: val}
}

// Float64 creates a float64 field
func Float64(key string, val float64) core.Field {
	return core.Field{Key: key, Value: val}
}

// Bool creates a bool field
func Bool(key string, val bool) core.Field {
	return core.Field{Key: key, Value: val}
}

// Time creates a time field
func Time(key string, val time.Time) core.Field {
	return core.Field{Key: key, Value: val}
}

// Duration creates a duration field
func Duration(key string, val time.Duration) core.Field {
	return core.Field{Key: key, Value: val}
}

// Err creates an "error" field. Use Logger.Failure to attach a failure
// to the event itself.
func Err(err error) core.Field {
	return core.Field{Key: "error", Value: err}
}

// Any creates a field with any value
func Any(key string, val any) core.Field {
	return core.Field{Key: key, Value: val}
}

// System overrides log_system for one event
func System(system string) core.Field {
	return core.Field{Key: core.KeyLogSystem, Value: system}
}
