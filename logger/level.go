package logger

import (
	"github.com/philipp01105/logbridge/core"
)

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	DebugLevel    = core.DebugLevel
	InfoLevel     = core.InfoLevel
	WarnLevel     = core.WarnLevel
	ErrorLevel    = core.ErrorLevel
	CriticalLevel = core.CriticalLevel
)

// ParseLevel converts a string to a Level, falling back to InfoLevel for
// names it does not know. Use core.ParseLevel to get the error instead.
func ParseLevel(s string) Level {
	level, err := core.ParseLevel(s)
	if err != nil {
		return InfoLevel
	}
	return level
}
