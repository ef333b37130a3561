package replaywatch_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/replaywatch/replaywatch-go/pkg/host/hosttest"
	"github.com/replaywatch/replaywatch-go/pkg/log"
	"github.com/replaywatch/replaywatch-go/pkg/sched"
	"github.com/replaywatch/replaywatch-go/pkg/watch"
)

// eventually polls cond until it holds or the deadline passes.
func eventually(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

// TestE2E_SignalToBuffer runs the full stack on real timers: a signal
// emitted on the bus lands on the loop, flips the buffer, and is
// written to the event log.
func TestE2E_SignalToBuffer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	registry := hosttest.NewRegistry()
	bus := hosttest.NewSignalBus()
	buffer := hosttest.NewReplayRecorder()

	loop := sched.NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)
	defer loop.Stop()

	adapter := sched.NewAdapter(sched.NewLoopScheduler(loop))

	var captured captureLogger
	watcher := watch.New(watch.Config{
		Registry: registry,
		Bus:      bus,
		Buffer:   buffer,
		Sched:    adapter,
		Logger:   &captured,
	})

	src := registry.Add("Webcam", "v4l2_input")
	watcher.SetTarget("Webcam")

	eventually(t, 2*time.Second, func() bool {
		return watcher.Status().Connected
	}, "watcher never connected")

	src.SetShowing(true)
	bus.Emit(src, "show")

	eventually(t, 2*time.Second, func() bool {
		return buffer.Active()
	}, "buffer never started after show")

	src.SetShowing(false)
	bus.Emit(src, "hide")

	eventually(t, 2*time.Second, func() bool {
		return !buffer.Active()
	}, "buffer never stopped after hide")

	if buffer.StartCalls() != 1 || buffer.StopCalls() != 1 {
		t.Errorf("buffer calls: starts=%d stops=%d, want 1/1",
			buffer.StartCalls(), buffer.StopCalls())
	}
	if captured.count(log.CategorySignal) != 2 {
		t.Errorf("signal events logged: got %d, want 2", captured.count(log.CategorySignal))
	}
}

// TestE2E_RetryResolvesLateSource covers resolution retry end to end:
// the target appears only after the first attempts have failed.
func TestE2E_RetryResolvesLateSource(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	registry := hosttest.NewRegistry()
	bus := hosttest.NewSignalBus()
	buffer := hosttest.NewReplayRecorder()

	loop := sched.NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)
	defer loop.Stop()

	adapter := sched.NewAdapter(sched.NewLoopScheduler(loop))

	watcher := watch.New(watch.Config{
		Registry: registry,
		Bus:      bus,
		Buffer:   buffer,
		Sched:    adapter,
	})

	watcher.SetTarget("LateCam")

	// Let the first retry fail, then add the source; the second retry
	// (400ms after the first) picks it up.
	time.Sleep(250 * time.Millisecond)
	src := registry.Add("LateCam", "browser_source")
	src.SetActive(true)

	eventually(t, 3*time.Second, func() bool {
		return watcher.Status().Connected
	}, "watcher never connected to late source")

	eventually(t, 2*time.Second, func() bool {
		return buffer.Active()
	}, "buffer never primed from active source")
}

// TestE2E_EventLogRoundTrip writes events through the file logger and
// reads them back with the filtered reader.
func TestE2E_EventLogRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	path := t.TempDir() + "/session.rwlog"
	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	registry := hosttest.NewRegistry()
	bus := hosttest.NewSignalBus()
	buffer := hosttest.NewReplayRecorder()

	loop := sched.NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)
	defer loop.Stop()

	adapter := sched.NewAdapter(sched.NewLoopScheduler(loop))

	watcher := watch.New(watch.Config{
		Registry:          registry,
		Bus:               bus,
		Buffer:            buffer,
		Sched:             adapter,
		Logger:            logger,
		PreferHookSignals: true,
	})

	src := registry.Add("Game", "game_capture")
	watcher.SetTarget("Game")

	eventually(t, 2*time.Second, func() bool {
		return watcher.Status().Connected
	}, "watcher never connected")

	bus.Emit(src, "hooked")
	eventually(t, 2*time.Second, func() bool {
		return buffer.Active()
	}, "buffer never started")

	watcher.Disconnect()
	eventually(t, 2*time.Second, func() bool {
		return !buffer.Active()
	}, "buffer never stopped on disconnect")

	logger.Close()

	category := log.CategorySignal
	reader, err := log.NewFilteredReader(path, log.Filter{
		WatchID:  watcher.ID(),
		Category: &category,
	})
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	event, err := reader.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if event.Signal == nil || event.Signal.Name != "hooked" {
		t.Errorf("first signal event: got %+v, want hooked", event.Signal)
	}
	if event.Target != "Game" {
		t.Errorf("Target: got %q, want %q", event.Target, "Game")
	}
}

// captureLogger collects events, safe for use from the loop goroutine
// plus the test goroutine.
type captureLogger struct {
	mu     sync.Mutex
	events []log.Event
}

func (c *captureLogger) Log(e log.Event) {
	c.mu.Lock()
	c.events = append(c.events, e)
	c.mu.Unlock()
}

func (c *captureLogger) count(cat log.Category) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, e := range c.events {
		if e.Category == cat {
			n++
		}
	}
	return n
}
