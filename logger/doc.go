// Package logger is the new-style emitting API. Most code only needs to
// import this package.
//
// A Logger is immutable after construction: the observer, level,
// namespace and default fields are set once via the Builder. This makes
// Logger safe for concurrent use without locking on the emit path.
//
// Messages are brace templates rendered against the event's fields when
// a sink formats the event, not when it is emitted:
//
//	log.Info("user {user} logged in", logger.String("user", "alice"))
//
// The package initializes a default Logger (InfoLevel, text lines to
// stdout). The package-level functions delegate to it:
//
//	logger.Info("ready on {port}", logger.Int("port", 8080))
//
// For custom configuration, use the Builder:
//
//	log := logger.NewBuilder().
//	    WithObserver(myObserver).
//	    WithNamespace("billing").
//	    WithLevel(logger.DebugLevel).
//	    Build()
//
// To send events to a legacy observer, wrap it with legacy.NewAdapter.
//
// Level checks happen before any allocation, so filtered-out events
// cost a single integer comparison.
package logger
