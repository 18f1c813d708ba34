package observer

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/philipp01105/logbridge/core"
)

// MultiObserver sends each event to multiple observers
type MultiObserver struct {
	observers []core.Observer
}

var _ core.Observer = (*MultiObserver)(nil)

// NewMultiObserver creates a new multi-observer
func NewMultiObserver(observers ...core.Observer) *MultiObserver {
	return &MultiObserver{observers: append([]core.Observer(nil), observers...)}
}

// Observe sends the event to every observer in order. A failing observer
// does not stop the others; all errors are combined with multierr.
func (m *MultiObserver) Observe(event *core.Event) error {
	var err error
	for _, o := range m.observers {
		err = multierr.Append(err, o.Observe(event))
	}
	return err
}

// String lists the child observers
func (m *MultiObserver) String() string {
	names := make([]string, len(m.observers))
	for i, o := range m.observers {
		names[i] = fmt.Sprint(o)
	}
	return "MultiObserver(" + strings.Join(names, ", ") + ")"
}
