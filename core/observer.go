package core

// Observer receives new-style events. Implementations must be safe for
// concurrent use and must not retain or modify the event after Observe
// returns unless they clone it first.
type Observer interface {
	// Observe handles one event
	Observe(event *Event) error
}

// ObserverFunc adapts an ordinary function to the Observer interface
type ObserverFunc func(event *Event) error

// Observe calls f(event)
func (f ObserverFunc) Observe(event *Event) error {
	return f(event)
}

// String returns a fixed name so wrapping observers print something useful
func (f ObserverFunc) String() string {
	return "ObserverFunc"
}

// LegacyObserver receives events in the legacy dialect. The same
// concurrency and retention rules as Observer apply.
type LegacyObserver interface {
	// Emit handles one legacy event
	Emit(event *Event) error
}

// LegacyObserverFunc adapts an ordinary function to the LegacyObserver interface
type LegacyObserverFunc func(event *Event) error

// Emit calls f(event)
func (f LegacyObserverFunc) Emit(event *Event) error {
	return f(event)
}

// String returns a fixed name so wrapping observers print something useful
func (f LegacyObserverFunc) String() string {
	return "LegacyObserverFunc"
}
