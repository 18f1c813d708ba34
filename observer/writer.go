package observer

import (
	"io"
	"os"
	"sync"

	"github.com/philipp01105/logbridge/core"
	"github.com/philipp01105/logbridge/formatter"
)

// lockedWriter wraps an io.Writer with a mutex, acquiring the lock only
// for Write calls. Formatters prepare data in their own pooled buffers
// and call Write once, so the lock is held only during the actual I/O.
type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) Write(p []byte) (n int, err error) {
	lw.mu.Lock()
	n, err = lw.w.Write(p)
	lw.mu.Unlock()
	return
}

// isConcurrentSafeWriter returns true if the writer is known to be safe for
// concurrent Write calls, allowing the observer to skip write-level locking.
func isConcurrentSafeWriter(w io.Writer) bool {
	if w == io.Discard {
		return true
	}
	_, ok := w.(*os.File)
	return ok
}

// WriterConfig holds configuration for a writer observer
type WriterConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// ConcurrentWriter indicates the Writer supports concurrent Write calls.
	// Automatically detected for io.Discard and *os.File.
	ConcurrentWriter bool
}

// applyWriterDefaults fills in zero-value fields with defaults.
func applyWriterDefaults(cfg *WriterConfig) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
}

// WriterObserver formats events, in either dialect, and writes one line
// per event to an io.Writer. Writes are serialized unless the writer is
// known to be safe for concurrent use.
type WriterObserver struct {
	writer          io.Writer
	formatter       formatter.Formatter
	writerFormatter formatter.WriterFormatter
	concurrentSafe  bool
	mu              sync.Mutex
	lw              lockedWriter
	stats           *Stats
}

var (
	_ core.Observer       = (*WriterObserver)(nil)
	_ core.LegacyObserver = (*WriterObserver)(nil)
)

// NewWriterObserver creates a new writer observer
func NewWriterObserver(cfg WriterConfig) *WriterObserver {
	applyWriterDefaults(&cfg)

	o := &WriterObserver{
		writer:         cfg.Writer,
		formatter:      cfg.Formatter,
		concurrentSafe: cfg.ConcurrentWriter || isConcurrentSafeWriter(cfg.Writer),
		stats:          NewStats(),
	}
	o.writerFormatter, _ = cfg.Formatter.(formatter.WriterFormatter)
	o.lw = lockedWriter{mu: &o.mu, w: o.writer}
	return o
}

// Observe writes a new-style event
func (o *WriterObserver) Observe(event *core.Event) error {
	return o.write(event)
}

// Emit writes a legacy event
func (o *WriterObserver) Emit(event *core.Event) error {
	return o.write(event)
}

func (o *WriterObserver) write(event *core.Event) error {
	err := o.writeEvent(event)
	o.stats.Record(event, err)
	return err
}

func (o *WriterObserver) writeEvent(event *core.Event) error {
	if o.writerFormatter != nil {
		if o.concurrentSafe {
			return o.writerFormatter.FormatTo(event, o.writer)
		}
		return o.writerFormatter.FormatTo(event, &o.lw)
	}

	data, err := o.formatter.Format(event)
	if err != nil {
		return err
	}

	if o.concurrentSafe {
		_, err = o.writer.Write(data)
		return err
	}

	o.mu.Lock()
	_, err = o.writer.Write(data)
	o.mu.Unlock()
	return err
}

// Stats returns a snapshot of the current statistics
func (o *WriterObserver) Stats() Snapshot {
	return o.stats.GetSnapshot()
}

// String returns "WriterObserver"
func (o *WriterObserver) String() string {
	return "WriterObserver"
}
