package core

import (
	"sync"
	"sync/atomic"
	"time"
)

// Clock returns the current time. Emitters stamp events with it.
type Clock func() time.Time

// SystemClock is time.Now.
var SystemClock Clock = time.Now

// coarseTick is how often the coarse clock refreshes its cached time.
const coarseTick = 500 * time.Microsecond

var (
	coarseOnce sync.Once
	coarseNow  atomic.Pointer[time.Time]
)

// CoarseClock returns a Clock that reads a cached time refreshed every
// 500µs by a background goroutine. The goroutine is started on the first
// call and runs for the lifetime of the process.
func CoarseClock() Clock {
	coarseOnce.Do(func() {
		t := time.Now()
		coarseNow.Store(&t)
		go func() {
			ticker := time.NewTicker(coarseTick)
			for range ticker.C {
				t := time.Now()
				coarseNow.Store(&t)
			}
		}()
	})
	return coarseClock
}

func coarseClock() time.Time {
	return *coarseNow.Load()
}
