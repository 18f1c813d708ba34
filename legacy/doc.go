// Package legacy bridges the legacy event dialect and the new one.
//
// NewToLegacyAdapter wraps a core.LegacyObserver so that it can sit in a
// chain of new-style observers. For each event it adds the keys a legacy
// observer relies on: system from log_system, logLevel from log_level, an
// empty message, a format that renders the new-style log_format exactly
// as the new formatter would, and failure, isError and why when a
// log_failure is attached.
//
// Publish goes the other way: it turns a legacy event into a new-style
// one (log_level, log_namespace "log_legacy", log_system, log_time) whose
// log_format prints the text rendered by a caller-supplied function.
//
//	adapter := legacy.NewAdapter(core.LegacyObserverFunc(oldSink))
//	_ = adapter.Observe(event)
//
//	_ = legacy.Publish(newSink, oldEvent, formatter.LegacyText)
//
// Both directions copy the event before editing it and never modify the
// caller's event. Keys that are already present are left unchanged, and
// error values are passed through as the same value so identity checks
// keep working. Each call delivers exactly once, synchronously, and
// returns the downstream error without wrapping it; a panic in the
// downstream observer is not recovered.
//
// Emitter and PublishingObserver complete the picture for code that still
// calls the legacy API: an Emitter builds legacy events, and a
// PublishingObserver feeds them into the new observer chain.
package legacy
