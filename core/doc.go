// Package core defines the shared types used across logbridge.
//
// It provides the Event type, a single record that can carry the reserved
// keys of both the legacy dialect (message, time, system, logLevel,
// isError, failure, why, format) and the new dialect (log_format,
// log_system, log_level, log_namespace, log_failure, log_time). Reserved
// keys are typed struct fields whose zero value means "absent"; any other
// key lives in Event.Fields and serves as a template argument.
//
// Level is the ordered severity enumeration of the new dialect. LevelMap
// converts between Level and the integer scale (10 to 50) used by legacy
// events. Integers that fall between two defined levels round down, and
// values outside the scale clamp to DebugLevel or CriticalLevel, so
// translation never fails on an unexpected level.
//
// Observer and LegacyObserver are the two sink contracts. Adapters in the
// legacy package implement one and wrap the other.
//
// Event.Clone copies the Message slice and the Fields map but shares the
// error values held in Failure and LogFailure, so downstream consumers can
// compare them by identity.
package core
