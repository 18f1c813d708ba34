// Package observer provides ready-made sinks for log events.
//
// Every sink accepts both dialects: it implements core.Observer for
// new-style events and core.LegacyObserver for legacy ones, so the same
// value can sit on either side of the legacy adapters.
//
// Built-in observers:
//
//   - WriterObserver formats events with a formatter.Formatter and writes
//     one line per event to any io.Writer (default: stdout).
//   - FileObserver writes to a file and rotates it by size or age,
//     keeping a bounded number of backups.
//   - SlogObserver hands events to a log/slog.Handler.
//   - ZapObserver writes events to a go.uber.org/zap logger.
//   - MultiObserver fans one event out to several observers and combines
//     their errors.
//   - Recorder keeps a copy of every event, mostly for tests.
//
// SlogHandler goes the other way: it lets code written against log/slog
// feed an observer chain.
package observer
