package sched

import (
	"sync"
	"time"

	"github.com/replaywatch/replaywatch-go/pkg/host"
)

// Scheduling constants.
const (
	// DefaultHopDelay is the delay used to hop onto the host main loop.
	// One millisecond is enough to land on the next loop tick.
	DefaultHopDelay = 1 * time.Millisecond

	// DefaultRefreshDelay is the coalescing window for UI refreshes.
	DefaultRefreshDelay = 100 * time.Millisecond
)

// Adapter wraps a host.Scheduler with the main-loop hop and the
// coalesced refresh nudge. It is safe for concurrent use.
type Adapter struct {
	scheduler host.Scheduler

	hopDelay     time.Duration
	refreshDelay time.Duration

	mu             sync.Mutex
	refreshPending bool
	onRefresh      func()
}

// NewAdapter creates an adapter with default delays.
func NewAdapter(scheduler host.Scheduler) *Adapter {
	return NewAdapterWithConfig(scheduler, Config{})
}

// Config allows customizing adapter delays.
type Config struct {
	// HopDelay overrides DefaultHopDelay when positive.
	HopDelay time.Duration

	// RefreshDelay overrides DefaultRefreshDelay when positive.
	RefreshDelay time.Duration
}

// NewAdapterWithConfig creates an adapter with custom delays.
func NewAdapterWithConfig(scheduler host.Scheduler, cfg Config) *Adapter {
	if cfg.HopDelay <= 0 {
		cfg.HopDelay = DefaultHopDelay
	}
	if cfg.RefreshDelay <= 0 {
		cfg.RefreshDelay = DefaultRefreshDelay
	}
	return &Adapter{
		scheduler:    scheduler,
		hopDelay:     cfg.HopDelay,
		refreshDelay: cfg.RefreshDelay,
	}
}

// RunSoon schedules fn to run on the host main loop on the next tick.
// Use this for every state-changing call that may originate outside the
// main loop (signal callbacks in particular).
func (a *Adapter) RunSoon(fn func()) {
	a.scheduler.ScheduleOnce(a.hopDelay, fn)
}

// NudgeRefresh schedules a coalesced UI refresh. If a refresh is
// already pending this is a no-op, so any burst of state changes
// within one refresh window produces exactly one refresh.
func (a *Adapter) NudgeRefresh() {
	a.mu.Lock()
	if a.refreshPending {
		a.mu.Unlock()
		return
	}
	a.refreshPending = true
	a.mu.Unlock()

	a.scheduler.ScheduleOnce(a.refreshDelay, a.refreshTick)
}

// refreshTick clears the pending flag and invokes the refresh callback.
func (a *Adapter) refreshTick() {
	a.mu.Lock()
	a.refreshPending = false
	fn := a.onRefresh
	a.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// OnRefresh sets the callback invoked when a coalesced refresh fires.
func (a *Adapter) OnRefresh(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onRefresh = fn
}

// RefreshPending reports whether a refresh is currently scheduled.
func (a *Adapter) RefreshPending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.refreshPending
}

// ScheduleOnce schedules fn after delay on the host main loop.
func (a *Adapter) ScheduleOnce(delay time.Duration, fn func()) host.TimerHandle {
	return a.scheduler.ScheduleOnce(delay, fn)
}

// Cancel removes a pending timer scheduled via ScheduleOnce.
func (a *Adapter) Cancel(handle host.TimerHandle) {
	a.scheduler.Cancel(handle)
}
