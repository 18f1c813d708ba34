package legacy

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/logbridge/core"
	"github.com/philipp01105/logbridge/formatter"
)

type namedLegacyObserver struct{}

func (namedLegacyObserver) Emit(*core.Event) error { return nil }

func (namedLegacyObserver) String() string { return "<Legacy Observer>" }

// observe sends event through a NewToLegacyAdapter and returns what the
// wrapped legacy observer received.
func observe(t *testing.T, event *core.Event) *core.Event {
	t.Helper()

	var events []*core.Event
	adapter := NewAdapter(core.LegacyObserverFunc(func(e *core.Event) error {
		events = append(events, e)
		return nil
	}))

	require.NoError(t, adapter.Observe(event))
	require.Len(t, events, 1)

	return events[0]
}

// forwardAndVerify observes a copy of event and checks that every key of
// event reached the legacy observer unchanged.
func forwardAndVerify(t *testing.T, event *core.Event) *core.Event {
	t.Helper()

	observed := observe(t, event.Clone())

	for key, want := range event.Map() {
		got, ok := observed.Lookup(key)
		require.Truef(t, ok, "key %q missing from observed event", key)
		assert.Equalf(t, want, got, "key %q changed", key)
	}

	return observed
}

func TestNewToLegacyAdapter_Interface(t *testing.T) {
	var observer core.Observer = NewAdapter(core.LegacyObserverFunc(func(*core.Event) error { return nil }))
	assert.NotNil(t, observer)
}

func TestNewToLegacyAdapter_String(t *testing.T) {
	adapter := NewAdapter(namedLegacyObserver{})
	assert.Equal(t, "NewToLegacyAdapter(<Legacy Observer>)", adapter.String())

	adapter = NewAdapter(core.LegacyObserverFunc(func(*core.Event) error { return nil }))
	assert.Equal(t, "NewToLegacyAdapter(LegacyObserverFunc)", adapter.String())
}

func TestNewToLegacyAdapter_Forward(t *testing.T) {
	forwardAndVerify(t, &core.Event{Fields: map[string]any{"foo": 1, "bar": 2}})
}

func TestNewToLegacyAdapter_System(t *testing.T) {
	event := forwardAndVerify(t, &core.Event{LogSystem: "foo"})
	assert.Equal(t, "foo", event.System)
	assert.Equal(t, "foo", event.LogSystem)
}

func TestNewToLegacyAdapter_DefaultSystem(t *testing.T) {
	event := forwardAndVerify(t, &core.Event{})
	assert.Equal(t, "-", event.System)
}

func TestNewToLegacyAdapter_KeepsLegacySystem(t *testing.T) {
	event := forwardAndVerify(t, &core.Event{System: "old", LogSystem: "new"})
	assert.Equal(t, "old", event.System)
}

func TestNewToLegacyAdapter_StdlibLevel(t *testing.T) {
	tests := []struct {
		level core.Level
		want  int
	}{
		{core.DebugLevel, core.StdlibDebug},
		{core.InfoLevel, core.StdlibInfo},
		{core.WarnLevel, core.StdlibWarning},
		{core.ErrorLevel, core.StdlibError},
		{core.CriticalLevel, core.StdlibCritical},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			event := forwardAndVerify(t, &core.Event{LogLevel: tt.level})
			assert.Equal(t, tt.want, event.StdLevel)
		})
	}
}

func TestNewToLegacyAdapter_Message(t *testing.T) {
	event := forwardAndVerify(t, &core.Event{})
	require.NotNil(t, event.Message)
	assert.Empty(t, event.Message)
}

func TestNewToLegacyAdapter_KeepsMessage(t *testing.T) {
	event := forwardAndVerify(t, &core.Event{Message: []any{"hi"}})
	assert.Equal(t, []any{"hi"}, event.Message)
}

func TestNewToLegacyAdapter_Format(t *testing.T) {
	event := forwardAndVerify(t, &core.Event{
		LogFormat: "Hello, {who}!",
		Fields:    map[string]any{"who": "world"},
	})

	assert.Equal(t, "Hello, world!", formatter.LegacyText(event))
}

func TestNewToLegacyAdapter_FormatMatchesNewRendering(t *testing.T) {
	templates := []string{
		"plain text",
		"{{braces}} and {n!r}",
		"100% {who}",
		"%(not_legacy)s stays literal",
		"{n:05d}",
		"{missing}",
	}

	for _, template := range templates {
		t.Run(template, func(t *testing.T) {
			event := &core.Event{
				LogFormat: template,
				Fields:    map[string]any{"who": "world", "n": 7},
			}
			observed := observe(t, event)
			assert.Equal(t, formatter.FormatEvent(event), formatter.LegacyText(observed))
		})
	}
}

func TestNewToLegacyAdapter_FormatIsSnapshot(t *testing.T) {
	event := &core.Event{
		LogFormat: "Hello, {who}!",
		Fields:    map[string]any{"who": "world"},
	}
	observed := observe(t, event)

	event.Fields["who"] = "moon"
	assert.Equal(t, "Hello, world!", formatter.LegacyText(observed))
}

func TestNewToLegacyAdapter_KeepsLegacyFormat(t *testing.T) {
	event := forwardAndVerify(t, &core.Event{
		LogFormat: "new",
		Format:    "old %(x)s",
		Fields:    map[string]any{"x": 1},
	})
	assert.Equal(t, "old 1", formatter.LegacyText(event))
}

func TestNewToLegacyAdapter_Failure(t *testing.T) {
	failure := errors.New("nyargh!")
	why := "oopsie..."

	event := forwardAndVerify(t, &core.Event{
		LogFailure: failure,
		LogFormat:  why,
	})

	assert.Same(t, failure, event.Failure)
	assert.True(t, event.IsError)
	assert.Equal(t, why, event.Why)
}

func TestNewToLegacyAdapter_FailureWithoutFormat(t *testing.T) {
	failure := errors.New("nyargh!")

	event := forwardAndVerify(t, &core.Event{LogFailure: failure})

	assert.Same(t, failure, event.Failure)
	assert.True(t, event.IsError)
	assert.Empty(t, event.Why)
	assert.Equal(t, "Unhandled Error\nnyargh!", formatter.LegacyText(event))
}

func TestNewToLegacyAdapter_FailureKeepsLegacyKeys(t *testing.T) {
	legacyFailure := errors.New("old")
	event := forwardAndVerify(t, &core.Event{
		LogFailure: errors.New("new"),
		Failure:    legacyFailure,
		Why:        "already explained",
		LogFormat:  "new why",
	})

	assert.Same(t, legacyFailure, event.Failure)
	assert.Equal(t, "already explained", event.Why)
}

func TestNewToLegacyAdapter_IsErrorFromLevel(t *testing.T) {
	tests := []struct {
		level core.Level
		want  bool
	}{
		{core.DebugLevel, false},
		{core.InfoLevel, false},
		{core.WarnLevel, false},
		{core.ErrorLevel, true},
		{core.CriticalLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			event := observe(t, &core.Event{LogLevel: tt.level})
			assert.Equal(t, tt.want, event.IsError)
		})
	}
}

func TestNewToLegacyAdapter_Time(t *testing.T) {
	now := time.Now()
	event := forwardAndVerify(t, &core.Event{LogTime: now})
	assert.Equal(t, now, event.Time)
}

func TestNewToLegacyAdapter_DoesNotMutate(t *testing.T) {
	event := &core.Event{
		LogSystem: "sys",
		LogLevel:  core.ErrorLevel,
		LogFormat: "{a}",
		Fields:    map[string]any{"a": 1},
	}
	before := event.Clone()

	observed := observe(t, event)

	assert.NotSame(t, event, observed)
	assert.Equal(t, before, event)

	observed.Fields["a"] = 2
	event.Fields["b"] = 3
	assert.Equal(t, 1, event.Fields["a"])
	assert.NotContains(t, observed.Fields, "b")
}

func TestNewToLegacyAdapter_PropagatesError(t *testing.T) {
	boom := errors.New("observer failed")
	calls := 0
	adapter := NewAdapter(core.LegacyObserverFunc(func(*core.Event) error {
		calls++
		return boom
	}))

	err := adapter.Observe(&core.Event{})
	assert.Same(t, boom, err)
	assert.Equal(t, 1, calls)
}

func TestNewToLegacyAdapter_PropagatesPanic(t *testing.T) {
	adapter := NewAdapter(core.LegacyObserverFunc(func(*core.Event) error {
		panic("observer exploded")
	}))

	assert.PanicsWithValue(t, "observer exploded", func() {
		_ = adapter.Observe(&core.Event{})
	})
}

func TestNewToLegacyAdapter_Concurrent(t *testing.T) {
	var (
		mu    sync.Mutex
		count int
	)
	adapter := NewAdapter(core.LegacyObserverFunc(func(*core.Event) error {
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	}))

	shared := &core.Event{LogFormat: "{n}", Fields: map[string]any{"n": 1}}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = adapter.Observe(shared)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, count)
	assert.Len(t, shared.Fields, 1)
}

func BenchmarkNewToLegacyAdapter(b *testing.B) {
	adapter := NewAdapter(core.LegacyObserverFunc(func(*core.Event) error { return nil }))
	event := &core.Event{
		LogLevel:     core.InfoLevel,
		LogNamespace: "bench",
		LogFormat:    "request {method} {path}",
		Fields:       map[string]any{"method": "GET", "path": "/"},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = adapter.Observe(event)
	}
}
