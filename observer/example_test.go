package observer_test

import (
	"os"

	"github.com/philipp01105/logbridge/core"
	"github.com/philipp01105/logbridge/legacy"
	"github.com/philipp01105/logbridge/observer"
)

func ExampleWriterObserver() {
	o := observer.NewWriterObserver(observer.WriterConfig{Writer: os.Stdout})

	_ = o.Observe(&core.Event{
		LogLevel:     core.InfoLevel,
		LogNamespace: "app",
		LogFormat:    "listening on {addr}",
		Fields:       map[string]any{"addr": ":8080"},
	})
	_ = o.Emit(&core.Event{Message: []any{"legacy", "line"}, System: "old"})

	// Output:
	// [info] app: listening on :8080 addr=:8080
	// [-] old: legacy line
}

func ExampleMultiObserver() {
	rec := observer.NewRecorder()
	out := observer.NewWriterObserver(observer.WriterConfig{Writer: os.Stdout})

	// A legacy observer placed in a new-style fan-out.
	chain := observer.NewMultiObserver(rec, legacy.NewAdapter(out))

	_ = chain.Observe(&core.Event{LogLevel: core.WarnLevel, LogSystem: "db", LogFormat: "pool exhausted"})

	// Output:
	// [warn] db: pool exhausted
}
