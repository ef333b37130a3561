package watch

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/replaywatch/replaywatch-go/pkg/host"
	"github.com/replaywatch/replaywatch-go/pkg/liveness"
	"github.com/replaywatch/replaywatch-go/pkg/log"
	"github.com/replaywatch/replaywatch-go/pkg/replay"
	"github.com/replaywatch/replaywatch-go/pkg/sched"
)

// Target connection state names used in state-change events.
const (
	stateConnected    = "CONNECTED"
	stateDisconnected = "DISCONNECTED"
	stateResolving    = "RESOLVING"
)

// Config holds the collaborators a Watcher needs.
type Config struct {
	// Registry resolves and enumerates host sources.
	Registry host.Registry

	// Bus is the host signal bus.
	Bus host.SignalBus

	// Buffer is the host replay buffer toggle.
	Buffer host.ReplayBuffer

	// Sched is the scheduler adapter shared with the rest of the app.
	Sched *sched.Adapter

	// Logger receives controller events. Nil disables logging.
	Logger log.Logger

	// PreferHookSignals wires capture-hook signals in addition to the
	// generic activate/show set.
	PreferHookSignals bool
}

// Watcher resolves the configured target name to a live handle, keeps
// the liveness router subscribed to it, and re-derives everything on
// reconfiguration and host lifecycle events. It owns at most one
// resolved handle at any time.
type Watcher struct {
	id       string
	registry host.Registry
	buffer   host.ReplayBuffer
	sched    *sched.Adapter
	logger   log.Logger

	router     *liveness.Router
	controller *replay.Controller

	mu          sync.Mutex
	target      string
	preferHook  bool
	src         host.Source
	backoff     *Backoff
	retryHandle host.TimerHandle
	retryGen    uint64
}

// New creates a watcher with no target configured.
func New(cfg Config) *Watcher {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NoopLogger{}
	}

	id := uuid.New().String()

	return &Watcher{
		id:         id,
		registry:   cfg.Registry,
		buffer:     cfg.Buffer,
		sched:      cfg.Sched,
		logger:     logger,
		router:     liveness.NewRouter(cfg.Bus, logger, id),
		controller: replay.NewController(cfg.Buffer, cfg.Sched, logger, id),
		preferHook: cfg.PreferHookSignals,
		backoff:    NewBackoff(),
	}
}

// ID returns the watcher's instance ID, stamped on every log event.
func (w *Watcher) ID() string { return w.id }

// SetTarget switches the monitored source. Any existing handle,
// subscriptions, and pending retry are torn down first. An empty name
// means nothing to monitor and is not an error.
func (w *Watcher) SetTarget(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.disconnectLocked("target changed")
	w.target = name

	if name == "" {
		return
	}
	w.resolveLocked()
}

// SetPreferHookSignals changes the signal-set preference. When a handle
// is held the subscriptions are rewired and the state re-primed.
func (w *Watcher) SetPreferHookSignals(prefer bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.preferHook == prefer {
		return
	}
	w.preferHook = prefer

	if w.src != nil {
		w.disconnectLocked("signal preference changed")
		w.resolveLocked()
	}
}

// ReconnectIfNeeded triggers resolution when a target is configured but
// no handle is held. Call it on host lifecycle notifications.
func (w *Watcher) ReconnectIfNeeded() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.target == "" || w.src != nil {
		return
	}
	// A lifecycle notification opens a fresh resolution run, even after
	// a previous run exhausted its attempts.
	w.backoff.Reset()
	w.resolveLocked()
}

// Disconnect tears down the handle, its subscriptions, and any pending
// retry, driving the buffer to OFF before the handle is released.
// Idempotent: safe to call when nothing is connected.
func (w *Watcher) Disconnect() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.disconnectLocked("disconnect requested")
}

// HandleFrontendEvent reacts to host lifecycle notifications.
func (w *Watcher) HandleFrontendEvent(ev host.FrontendEvent) {
	switch ev {
	case host.EventFinishedLoading, host.EventSceneCollectionChanged:
		w.ReconnectIfNeeded()
	case host.EventReplayStarted, host.EventReplayStopped:
		// Keep the UI crisp when the buffer changes outside our control
		// or as a result of our own calls.
		w.sched.NudgeRefresh()
	}
}

// Status is a point-in-time snapshot for inspection.
type Status struct {
	WatchID           string
	Target            string
	Connected         bool
	SourceKind        string
	PreferHookSignals bool
	RetryAttempts     int
	RetryPending      bool
	BufferActive      bool
}

// Status returns a snapshot of the watcher's state.
func (w *Watcher) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()

	st := Status{
		WatchID:           w.id,
		Target:            w.target,
		PreferHookSignals: w.preferHook,
		RetryAttempts:     w.backoff.Attempts(),
		RetryPending:      w.retryHandle != 0,
		BufferActive:      w.buffer.Active(),
	}
	if w.src != nil {
		st.Connected = true
		st.SourceKind = w.src.Kind()
	}
	return st
}

// HookCapable reports whether a source kind emits capture-hook signals.
func HookCapable(kind string) bool {
	return strings.Contains(kind, "capture")
}

// resolveLocked attempts to resolve the configured name, scheduling a
// retry on failure. Caller holds w.mu.
func (w *Watcher) resolveLocked() {
	src, ok := w.registry.SourceByName(w.target)
	if !ok {
		w.scheduleRetryLocked()
		return
	}

	w.cancelRetryLocked()
	w.backoff.Reset()
	w.src = src
	w.router.Attach(src, w.preferHook, w.onOutcome)

	w.logStateLocked(stateResolving, stateConnected, "kind "+src.Kind())
	w.primeLocked(src)
}

// primeLocked aligns the buffer with the source's current condition
// immediately after (re)connecting. Caller holds w.mu.
func (w *Watcher) primeLocked(src host.Source) {
	if w.preferHook && HookCapable(src.Kind()) {
		// A capture source can be showing while the captured
		// application produces nothing; the first hook signal decides.
		return
	}
	w.controller.SetDesired(src.Active() || src.Showing())
}

// onOutcome is the router sink: every routed signal becomes a desired
// buffer state.
func (w *Watcher) onOutcome(o liveness.Outcome) {
	w.controller.SetDesired(o == liveness.OutcomeActive)
}

// scheduleRetryLocked schedules the next resolution retry, cancelling
// any pending one first. Caller holds w.mu.
func (w *Watcher) scheduleRetryLocked() {
	w.cancelRetryLocked()

	delay, ok := w.backoff.Next()
	if !ok {
		// Budget exhausted; the next lifecycle event or target change
		// starts over from attempt zero.
		w.logger.Log(log.Event{
			Timestamp: time.Now(),
			WatchID:   w.id,
			Category:  log.CategoryRetry,
			Target:    w.target,
			Retry: &log.RetryEvent{
				Attempt:   w.backoff.Attempts(),
				Abandoned: true,
			},
		})
		return
	}

	w.logger.Log(log.Event{
		Timestamp: time.Now(),
		WatchID:   w.id,
		Category:  log.CategoryRetry,
		Target:    w.target,
		Retry: &log.RetryEvent{
			Attempt: w.backoff.Attempts(),
			Delay:   delay,
		},
	})

	gen := w.retryGen
	w.retryHandle = w.sched.ScheduleOnce(delay, func() { w.retryTick(gen) })
}

// retryTick runs on the host main loop when a retry timer fires. The
// generation check catches a timer that popped before SetTarget or
// Disconnect could cancel it: such a tick must not resolve, must not
// reschedule, and must leave the currently pending retry alone.
func (w *Watcher) retryTick(gen uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if gen != w.retryGen {
		return
	}
	w.retryHandle = 0
	if w.target == "" || w.src != nil {
		return
	}
	w.resolveLocked()
}

// cancelRetryLocked removes a pending retry timer and invalidates any
// tick already in flight. Caller holds w.mu.
func (w *Watcher) cancelRetryLocked() {
	w.retryGen++
	if w.retryHandle != 0 {
		w.sched.Cancel(w.retryHandle)
		w.retryHandle = 0
	}
}

// disconnectLocked is the idempotent teardown: cancel retries, reset
// the attempt counter, and if a handle is held, detach subscriptions
// and drive the buffer OFF before releasing it. Caller holds w.mu.
func (w *Watcher) disconnectLocked(reason string) {
	w.cancelRetryLocked()
	w.backoff.Reset()

	if w.src == nil {
		return
	}

	w.router.Detach()
	// Stop is enqueued before the handle is released, so switching away
	// from a monitored target never leaves the buffer running unattended.
	w.controller.SetDesired(false)

	src := w.src
	w.src = nil
	src.Release()

	w.logStateLocked(stateConnected, stateDisconnected, reason)
}

// logStateLocked records a target state change. Caller holds w.mu.
func (w *Watcher) logStateLocked(oldState, newState, reason string) {
	w.logger.Log(log.Event{
		Timestamp: time.Now(),
		WatchID:   w.id,
		Category:  log.CategoryState,
		Target:    w.target,
		StateChange: &log.StateChangeEvent{
			Entity:   log.EntityTarget,
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}
