package sched

import (
	"context"
	"sync"
	"time"

	"github.com/replaywatch/replaywatch-go/pkg/host"
)

// Loop is a single-consumer serialized task queue standing in for a
// host main loop. Tasks posted from any goroutine are executed one at
// a time by the goroutine running Run.
type Loop struct {
	tasks    chan func()
	done     chan struct{}
	stopOnce sync.Once
}

// NewLoop creates a loop with a buffered task queue.
func NewLoop() *Loop {
	return &Loop{
		tasks: make(chan func(), 128),
		done:  make(chan struct{}),
	}
}

// Run drains the task queue until ctx is cancelled or Stop is called.
// It must be called from exactly one goroutine.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.done:
			return
		case task := <-l.tasks:
			task()
		}
	}
}

// Post enqueues fn for execution on the loop. Posting to a stopped
// loop drops the task.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.done:
	case l.tasks <- fn:
	}
}

// Stop shuts the loop down. Safe to call multiple times.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

// LoopScheduler is a host.Scheduler whose timers post their callbacks
// into a Loop, so everything scheduled runs serialized.
type LoopScheduler struct {
	loop *Loop

	mu         sync.Mutex
	nextHandle host.TimerHandle
	timers     map[host.TimerHandle]*time.Timer
}

// NewLoopScheduler creates a scheduler posting into loop.
func NewLoopScheduler(loop *Loop) *LoopScheduler {
	return &LoopScheduler{
		loop:   loop,
		timers: make(map[host.TimerHandle]*time.Timer),
	}
}

// ScheduleOnce runs fn once on the loop after delay.
func (s *LoopScheduler) ScheduleOnce(delay time.Duration, fn func()) host.TimerHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextHandle++
	handle := s.nextHandle

	s.timers[handle] = time.AfterFunc(delay, func() {
		// Deregister before posting so fn may reschedule freely, and
		// so a concurrent Cancel that won the race suppresses the run.
		s.mu.Lock()
		_, live := s.timers[handle]
		delete(s.timers, handle)
		s.mu.Unlock()

		if live {
			s.loop.Post(fn)
		}
	})
	return handle
}

// Cancel removes a pending timer. Unknown handles are ignored.
func (s *LoopScheduler) Cancel(handle host.TimerHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[handle]; ok {
		t.Stop()
		delete(s.timers, handle)
	}
}

// PendingTimers returns the number of timers not yet fired.
func (s *LoopScheduler) PendingTimers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Compile-time interface satisfaction check.
var _ host.Scheduler = (*LoopScheduler)(nil)
