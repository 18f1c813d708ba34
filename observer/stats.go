package observer

import (
	"sync/atomic"

	"github.com/philipp01105/logbridge/core"
)

// Stats tracks observer statistics
type Stats struct {
	// Separate atomic counters per level, indexed by core.Level
	byLevel [core.CriticalLevel + 1]atomic.Uint64
	// failed counts events the observer could not deliver
	failed atomic.Uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// Record counts one event, by level when delivery succeeded, as failed otherwise
func (s *Stats) Record(event *core.Event, err error) {
	if err != nil {
		s.failed.Add(1)
		return
	}
	s.byLevel[statsLevel(event)].Add(1)
}

// statsLevel returns the event's level, falling back to the legacy
// integer level and then to LevelNone.
func statsLevel(event *core.Event) core.Level {
	switch {
	case event.LogLevel.Valid():
		return event.LogLevel
	case event.StdLevel != core.StdlibNotSet:
		return core.LevelMap.FromStdlib(event.StdLevel)
	default:
		return core.LevelNone
	}
}

// GetProcessed returns the processed count for a level
func (s *Stats) GetProcessed(level core.Level) uint64 {
	if level < core.LevelNone || level > core.CriticalLevel {
		return 0
	}
	return s.byLevel[level].Load()
}

// GetTotalProcessed returns the processed count across all levels
func (s *Stats) GetTotalProcessed() uint64 {
	var total uint64
	for i := range s.byLevel {
		total += s.byLevel[i].Load()
	}
	return total
}

// GetFailed returns the failed count
func (s *Stats) GetFailed() uint64 {
	return s.failed.Load()
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	for i := range s.byLevel {
		s.byLevel[i].Store(0)
	}
	s.failed.Store(0)
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	Processed      map[core.Level]uint64
	ProcessedTotal uint64
	FailedTotal    uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	snap := Snapshot{
		Processed:   make(map[core.Level]uint64, len(s.byLevel)),
		FailedTotal: s.GetFailed(),
	}
	for i := range s.byLevel {
		n := s.byLevel[i].Load()
		snap.Processed[core.Level(i)] = n
		snap.ProcessedTotal += n
	}
	return snap
}
