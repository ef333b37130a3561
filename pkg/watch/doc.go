// Package watch provides target resolution and lifecycle management
// for the monitored source.
//
// The Watcher owns at most one resolved handle at a time. Switching
// targets always fully tears down the old handle's subscriptions
// before resolving the new name.
//
// # Resolution Strategy
//
// Source names may not be resolvable while the host is still restoring
// state (startup, scene collection reload). Resolution retries with
// exponential backoff:
//
//  1. Initial delay: 200 milliseconds
//  2. Exponential increase: 400ms, 800ms, 1600ms
//  3. Maximum delay: 2 seconds
//  4. Hard cap: 6 attempts, then resolution is abandoned silently
//
// Abandonment is never fatal: the next frontend lifecycle event
// (finished loading, scene collection changed) or an explicit target
// change starts resolution over from attempt zero. At most one retry
// is pending at any time; scheduling a new one cancels the old one.
//
// # Initial State
//
// On successful resolution the buffer state is primed once from the
// source's active/showing probe, so the buffer aligns with reality
// without waiting for the next signal. For hook-capable kinds with
// hook signals preferred, priming defers entirely to the first hook
// signal: such a source can be showing while the captured application
// produces nothing.
package watch
