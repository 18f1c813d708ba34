package legacy_test

import (
	"fmt"

	"github.com/philipp01105/logbridge/core"
	"github.com/philipp01105/logbridge/formatter"
	"github.com/philipp01105/logbridge/legacy"
)

// Forward new-style events to an observer written against the legacy API.
func ExampleNewAdapter() {
	oldObserver := core.LegacyObserverFunc(func(e *core.Event) error {
		fmt.Printf("[%s] level=%d %s\n", e.System, e.StdLevel, formatter.LegacyText(e))
		return nil
	})

	adapter := legacy.NewAdapter(oldObserver)
	_ = adapter.Observe(&core.Event{
		LogSystem: "http",
		LogLevel:  core.WarnLevel,
		LogFormat: "slow request to {path}",
		Fields:    map[string]any{"path": "/api"},
	})
	// Output:
	// [http] level=30 slow request to /api
}

// Feed a legacy event into a new-style observer.
func ExamplePublish() {
	newObserver := core.ObserverFunc(func(e *core.Event) error {
		fmt.Printf("%s %s: %s\n", e.LogLevel, e.LogNamespace, formatter.FormatEvent(e))
		return nil
	})

	event := &core.Event{Message: []any{"cache", "warmed"}, System: "boot"}
	_ = legacy.Publish(newObserver, event, formatter.LegacyText)
	// Output:
	// info log_legacy: cache warmed
}
