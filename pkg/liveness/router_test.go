package liveness

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replaywatch/replaywatch-go/pkg/host/hosttest"
	"github.com/replaywatch/replaywatch-go/pkg/log"
)

func TestOutcomeForSignal(t *testing.T) {
	tests := []struct {
		signal  string
		outcome Outcome
		routed  bool
	}{
		{SignalHooked, OutcomeActive, true},
		{SignalUnhooked, OutcomeInactive, true},
		{SignalActivate, OutcomeActive, true},
		{SignalDeactivate, OutcomeInactive, true},
		{SignalShow, OutcomeActive, true},
		{SignalHide, OutcomeInactive, true},
		{"rename", OutcomeInactive, false},
	}

	for _, tt := range tests {
		t.Run(tt.signal, func(t *testing.T) {
			got, routed := OutcomeForSignal(tt.signal)
			assert.Equal(t, tt.routed, routed)
			if routed {
				assert.Equal(t, tt.outcome, got)
			}
		})
	}
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "ACTIVE", OutcomeActive.String())
	assert.Equal(t, "INACTIVE", OutcomeInactive.String())
	assert.Equal(t, "UNKNOWN", Outcome(7).String())
}

// outcomeRecorder collects sink invocations.
type outcomeRecorder struct {
	mu       sync.Mutex
	outcomes []Outcome
}

func (r *outcomeRecorder) sink(o Outcome) {
	r.mu.Lock()
	r.outcomes = append(r.outcomes, o)
	r.mu.Unlock()
}

func (r *outcomeRecorder) all() []Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Outcome{}, r.outcomes...)
}

// eventRecorder collects log events.
type eventRecorder struct {
	mu     sync.Mutex
	events []log.Event
}

func (r *eventRecorder) Log(e log.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *eventRecorder) all() []log.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]log.Event{}, r.events...)
}

func TestRouter_AttachWiresFullSetWithHooks(t *testing.T) {
	bus := hosttest.NewSignalBus()
	src := hosttest.NewSource("Game", "game_capture")
	r := NewRouter(bus, log.NoopLogger{}, "w1")

	rec := &outcomeRecorder{}
	r.Attach(src, true, rec.sink)

	assert.Equal(t, 6, r.SubscriptionCount())
	assert.Equal(t,
		[]string{"activate", "deactivate", "hide", "hooked", "show", "unhooked"},
		bus.ConnectedSignals(src))
}

func TestRouter_AttachWiresGenericSetOnly(t *testing.T) {
	bus := hosttest.NewSignalBus()
	src := hosttest.NewSource("Cam", "browser_source")
	r := NewRouter(bus, log.NoopLogger{}, "w1")

	rec := &outcomeRecorder{}
	r.Attach(src, false, rec.sink)

	assert.Equal(t, 4, r.SubscriptionCount())
	assert.Equal(t,
		[]string{"activate", "deactivate", "hide", "show"},
		bus.ConnectedSignals(src))
}

func TestRouter_RoutesOutcomesAndLogsSignalNames(t *testing.T) {
	bus := hosttest.NewSignalBus()
	src := hosttest.NewSource("Game", "game_capture")
	events := &eventRecorder{}
	r := NewRouter(bus, events, "w1")

	rec := &outcomeRecorder{}
	r.Attach(src, true, rec.sink)

	bus.Emit(src, SignalHooked)
	bus.Emit(src, SignalHide)
	bus.Emit(src, SignalActivate)

	assert.Equal(t, []Outcome{OutcomeActive, OutcomeInactive, OutcomeActive}, rec.all())

	logged := events.all()
	require.Len(t, logged, 3)
	assert.Equal(t, log.CategorySignal, logged[0].Category)
	assert.Equal(t, "w1", logged[0].WatchID)
	assert.Equal(t, "Game", logged[0].Target)
	require.NotNil(t, logged[0].Signal)
	assert.Equal(t, SignalHooked, logged[0].Signal.Name)
	assert.Equal(t, "ACTIVE", logged[0].Signal.Outcome)
	assert.Equal(t, SignalHide, logged[1].Signal.Name)
	assert.Equal(t, "INACTIVE", logged[1].Signal.Outcome)
}

func TestRouter_DetachRemovesEverythingAndIsIdempotent(t *testing.T) {
	bus := hosttest.NewSignalBus()
	src := hosttest.NewSource("Game", "game_capture")
	r := NewRouter(bus, log.NoopLogger{}, "w1")

	rec := &outcomeRecorder{}
	r.Attach(src, true, rec.sink)
	require.Equal(t, 6, bus.ConnectionCount())

	r.Detach()
	assert.Zero(t, bus.ConnectionCount())
	assert.Zero(t, r.SubscriptionCount())

	// Signals after detach go nowhere.
	bus.Emit(src, SignalHooked)
	assert.Empty(t, rec.all())

	// Detaching again, or with nothing attached, is a no-op.
	r.Detach()
	NewRouter(bus, log.NoopLogger{}, "w2").Detach()
}

func TestRouter_ReattachReplacesSubscriptions(t *testing.T) {
	bus := hosttest.NewSignalBus()
	first := hosttest.NewSource("A", "game_capture")
	second := hosttest.NewSource("B", "browser_source")
	r := NewRouter(bus, log.NoopLogger{}, "w1")

	rec := &outcomeRecorder{}
	r.Attach(first, true, rec.sink)
	r.Attach(second, false, rec.sink)

	// Old source fully unwired, new one wired.
	assert.Empty(t, bus.ConnectedSignals(first))
	assert.Equal(t, 4, len(bus.ConnectedSignals(second)))

	bus.Emit(first, SignalHooked)
	assert.Empty(t, rec.all())
}
