// Package liveness maps host source signals onto a unified liveness
// outcome.
//
// A monitored source announces availability through several unrelated
// signals. The router subscribes a fixed set and collapses every one
// of them into a two-variant outcome:
//
//	hooked     -> ACTIVE      (hook-capable kinds, when preferred)
//	unhooked   -> INACTIVE    (hook-capable kinds, when preferred)
//	activate   -> ACTIVE
//	show       -> ACTIVE
//	deactivate -> INACTIVE
//	hide       -> INACTIVE
//
// Hook signals carry the most precise liveness information for capture
// sources (the hook lands only once the captured application really
// produces frames), so they are wired in addition to the generic set
// when preferred. Subscribing a signal the source kind never emits is
// harmless; it simply never fires.
//
// The router performs no business logic: every fired signal is logged
// with its name and forwarded to a single sink callback as an Outcome.
// Detach is total - it always disconnects every signal wired at attach
// time - and idempotent.
package liveness
