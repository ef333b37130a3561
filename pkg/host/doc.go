// Package host defines the interfaces the controller consumes from the
// hosting studio application.
//
// The controller never talks to the host directly; everything it needs
// is expressed as one of five capabilities:
//
//   - Registry: resolve a configured source name to a live handle and
//     enumerate what exists.
//   - Source: a resolved handle, owned until Release is called.
//   - SignalBus: connect callbacks to named per-source signals
//     (hooked, activate, show, ...). Connecting to a signal a source
//     kind never emits is harmless; it simply never fires.
//   - Scheduler: one-shot timers on the host's serialized main loop.
//     This is the only waiting primitive; there is no polling.
//   - ReplayBuffer: the rolling-capture toggle with its own
//     host-reported active state.
//
// Frontend lifecycle notifications (finished loading, scene collection
// changed, replay buffer started/stopped/saved) arrive as
// FrontendEvent values.
//
// The hosttest subpackage provides in-memory implementations for tests
// and the simulator command.
package host
