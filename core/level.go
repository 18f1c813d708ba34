package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLevel is returned by ParseLevel for names that are not a Level.
var ErrUnknownLevel = errors.New("unknown log level")

// Level represents the severity of a new-style event
type Level int8

const (
	// LevelNone means no level is attached to the event
	LevelNone Level = iota
	// DebugLevel for detailed debugging information
	DebugLevel
	// InfoLevel for general informational messages (default)
	InfoLevel
	// WarnLevel for conditions that may need attention
	WarnLevel
	// ErrorLevel for failures the system recovered from
	ErrorLevel
	// CriticalLevel for failures the system could not recover from
	CriticalLevel
)

var levelNames = [...]string{
	LevelNone:     "none",
	DebugLevel:    "debug",
	InfoLevel:     "info",
	WarnLevel:     "warn",
	ErrorLevel:    "error",
	CriticalLevel: "critical",
}

// Valid reports whether l is one of the five defined levels
func (l Level) Valid() bool {
	return l >= DebugLevel && l <= CriticalLevel
}

// String returns the lower-case name of the level
func (l Level) String() string {
	switch {
	case l == LevelNone:
		return "none"
	case !l.Valid():
		return "unknown"
	}
	return levelNames[l]
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, int8(l))
	}
	return []byte(levelNames[l]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel converts a level name to a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "critical", "fatal":
		return CriticalLevel, nil
	}
	return LevelNone, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// Standard library style integer levels.
const (
	StdlibNotSet   = 0
	StdlibDebug    = 10
	StdlibInfo     = 20
	StdlibWarning  = 30
	StdlibError    = 40
	StdlibCritical = 50
)

// LevelMap is the fixed correspondence between Level and the five-step
// integer scale used by legacy events.
var LevelMap = levelMap{}

type levelMap struct{}

var toStdlib = [...]int{
	LevelNone:     StdlibNotSet,
	DebugLevel:    StdlibDebug,
	InfoLevel:     StdlibInfo,
	WarnLevel:     StdlibWarning,
	ErrorLevel:    StdlibError,
	CriticalLevel: StdlibCritical,
}

// ToStdlib returns the integer level for l. LevelNone and unknown values
// give StdlibNotSet.
func (levelMap) ToStdlib(l Level) int {
	if !l.Valid() {
		return StdlibNotSet
	}
	return toStdlib[l]
}

// FromStdlib returns the Level for an integer level. Values between two
// defined levels round down to the lower one; values below StdlibDebug
// clamp to DebugLevel and values above StdlibCritical to CriticalLevel.
func (levelMap) FromStdlib(n int) Level {
	switch {
	case n >= StdlibCritical:
		return CriticalLevel
	case n >= StdlibError:
		return ErrorLevel
	case n >= StdlibWarning:
		return WarnLevel
	case n >= StdlibInfo:
		return InfoLevel
	default:
		return DebugLevel
	}
}
