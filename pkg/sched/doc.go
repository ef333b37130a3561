// Package sched provides the controller's scheduling layer.
//
// Everything the controller "waits" for is a one-shot timer on the
// host's serialized main loop; there are no periodic timers and no
// blocking waits. Two pieces live here:
//
//   - Adapter wraps a host.Scheduler and adds the two patterns the
//     controller needs on top of raw one-shots: RunSoon, a minimal-delay
//     hop onto the main loop for state-changing calls that may originate
//     in signal-callback context, and NudgeRefresh, a coalesced UI
//     refresh with at most one instance pending at a time.
//
//   - Loop and LoopScheduler model a host main loop for processes that
//     do not have one: Loop is a single-consumer task queue drained by
//     one goroutine, and LoopScheduler is a host.Scheduler whose timers
//     post their callbacks into a Loop. The simulator command runs on
//     these; inside a real host the host's own scheduler is used
//     instead.
package sched
