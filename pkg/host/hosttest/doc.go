// Package hosttest provides in-memory implementations of the host
// interfaces for tests and the simulator command.
//
// The pieces are deliberately simple: Registry holds scripted sources,
// SignalBus fans out emitted signals to connected callbacks,
// ReplayRecorder counts Start/Stop calls, and ManualScheduler fires
// timers only when time is advanced explicitly, which makes retry and
// coalescing behaviour fully deterministic in tests.
package hosttest
