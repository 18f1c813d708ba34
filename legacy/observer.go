package legacy

import (
	"fmt"

	"github.com/philipp01105/logbridge/core"
)

// PublishingObserver is a core.LegacyObserver that publishes every legacy
// event it receives to a new-style observer. It lets code written against
// the legacy API feed the new observer chain.
type PublishingObserver struct {
	observer      core.Observer
	textFromEvent TextFunc
}

var _ core.LegacyObserver = (*PublishingObserver)(nil)

// NewPublishingObserver returns a legacy observer that forwards to
// observer, rendering legacy text with textFromEvent (nil means
// formatter.LegacyText).
func NewPublishingObserver(observer core.Observer, textFromEvent TextFunc) *PublishingObserver {
	return &PublishingObserver{observer: observer, textFromEvent: textFromEvent}
}

// Emit publishes event to the wrapped observer.
func (p *PublishingObserver) Emit(event *core.Event) error {
	return Publish(p.observer, event, p.textFromEvent)
}

// String returns "PublishingObserver(<wrapped observer>)".
func (p *PublishingObserver) String() string {
	return fmt.Sprintf("PublishingObserver(%v)", p.observer)
}
