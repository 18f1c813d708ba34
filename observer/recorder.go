package observer

import (
	"sync"

	"github.com/philipp01105/logbridge/core"
)

// Recorder is an Observer and a LegacyObserver that keeps a clone of every
// event it receives. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []*core.Event
}

var (
	_ core.Observer       = (*Recorder)(nil)
	_ core.LegacyObserver = (*Recorder)(nil)
)

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Observe records a new-style event
func (r *Recorder) Observe(event *core.Event) error {
	r.record(event)
	return nil
}

// Emit records a legacy event
func (r *Recorder) Emit(event *core.Event) error {
	r.record(event)
	return nil
}

func (r *Recorder) record(event *core.Event) {
	c := event.Clone()
	r.mu.Lock()
	r.events = append(r.events, c)
	r.mu.Unlock()
}

// Events returns the recorded events in arrival order
func (r *Recorder) Events() []*core.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*core.Event(nil), r.events...)
}

// Len returns the number of recorded events
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Reset drops all recorded events
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

// String returns "Recorder"
func (r *Recorder) String() string {
	return "Recorder"
}
