// Package chime plays a configurable sound when the host reports a
// saved replay segment.
//
// This is cosmetic feedback, fully decoupled from the buffering state
// machine: playback runs fire-and-forget on its own goroutine, feeds
// nothing back, and every failure mode (feature disabled, no file
// configured, file missing, no working playback helper) is logged and
// swallowed. The worst case is silence.
//
// Playback is a chain of platform CLI helpers (afplay on macOS, paplay
// then aplay on Linux, PowerShell's SoundPlayer on Windows) with a
// terminal bell as the final fallback.
package chime
