package hosttest

import (
	"sort"
	"sync"
	"time"

	"github.com/replaywatch/replaywatch-go/pkg/host"
)

// ManualScheduler is a host.Scheduler driven by explicit time advance.
// Nothing fires until Advance is called, so tests can assert the exact
// set of pending timers between steps.
type ManualScheduler struct {
	mu         sync.Mutex
	now        time.Duration
	nextHandle host.TimerHandle
	entries    map[host.TimerHandle]scheduledEntry
}

type scheduledEntry struct {
	handle host.TimerHandle
	at     time.Duration
	seq    uint64
	fn     func()
}

// NewManualScheduler creates a scheduler at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{entries: make(map[host.TimerHandle]scheduledEntry)}
}

// ScheduleOnce registers fn to fire once delay has been advanced past.
func (s *ManualScheduler) ScheduleOnce(delay time.Duration, fn func()) host.TimerHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextHandle++
	handle := s.nextHandle
	s.entries[handle] = scheduledEntry{
		handle: handle,
		at:     s.now + delay,
		seq:    uint64(handle),
		fn:     fn,
	}
	return handle
}

// Cancel removes a pending entry. Unknown handles are ignored.
func (s *ManualScheduler) Cancel(handle host.TimerHandle) {
	s.mu.Lock()
	delete(s.entries, handle)
	s.mu.Unlock()
}

// Pending returns the number of timers not yet fired.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Advance moves the clock forward by d, firing due entries in time
// order. Each entry is deregistered before its callback runs, and
// callbacks may schedule new entries; those fire too if they fall
// within the advanced window.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	deadline := s.now + d
	s.mu.Unlock()

	for {
		entry, ok := s.popNextDue(deadline)
		if !ok {
			break
		}
		entry.fn()
	}

	s.mu.Lock()
	s.now = deadline
	s.mu.Unlock()
}

// popNextDue removes and returns the earliest entry at or before
// deadline, advancing the clock to its firing time.
func (s *ManualScheduler) popNextDue(deadline time.Duration) (scheduledEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	due := make([]scheduledEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.at <= deadline {
			due = append(due, e)
		}
	}
	if len(due) == 0 {
		return scheduledEntry{}, false
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})

	next := due[0]
	delete(s.entries, next.handle)
	if next.at > s.now {
		s.now = next.at
	}
	return next, true
}

// Compile-time interface satisfaction check.
var _ host.Scheduler = (*ManualScheduler)(nil)
