package log

import (
	"time"
)

// Event represents a controller log event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// WatchID uniquely identifies the watcher instance (UUID).
	WatchID string `cbor:"2,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"3,keyasint"`

	// Target is the monitored source name (empty when none configured).
	Target string `cbor:"4,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Signal      *SignalEvent      `cbor:"5,keyasint,omitempty"`  // Liveness signal fired
	StateChange *StateChangeEvent `cbor:"6,keyasint,omitempty"`  // Target/buffer state
	Retry       *RetryEvent       `cbor:"7,keyasint,omitempty"`  // Resolution retry
	Playback    *PlaybackEvent    `cbor:"8,keyasint,omitempty"`  // Saved-segment sound
	Error       *ErrorEventData   `cbor:"9,keyasint,omitempty"`  // Errors
}

// Category classifies the event type.
type Category uint8

const (
	// CategorySignal indicates a liveness signal was received.
	CategorySignal Category = 0
	// CategoryState indicates a state change.
	CategoryState Category = 1
	// CategoryRetry indicates a resolution retry was scheduled or abandoned.
	CategoryRetry Category = 2
	// CategoryPlayback indicates a saved-segment playback attempt.
	CategoryPlayback Category = 3
	// CategoryError indicates an error event.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategorySignal:
		return "SIGNAL"
	case CategoryState:
		return "STATE"
	case CategoryRetry:
		return "RETRY"
	case CategoryPlayback:
		return "PLAYBACK"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// SignalEvent captures a liveness signal received from the host.
type SignalEvent struct {
	// Name is the host signal name (hooked, show, deactivate, ...).
	Name string `cbor:"1,keyasint"`

	// Outcome is the unified result the signal mapped to
	// ("ACTIVE" or "INACTIVE").
	Outcome string `cbor:"2,keyasint"`
}

// StateChangeEvent captures target connection and buffer state changes.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// EntityTarget indicates the monitored-target connection changed.
	EntityTarget StateEntity = 0
	// EntityBuffer indicates the replay buffer was toggled.
	EntityBuffer StateEntity = 1
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case EntityTarget:
		return "TARGET"
	case EntityBuffer:
		return "BUFFER"
	default:
		return "UNKNOWN"
	}
}

// RetryEvent captures a scheduled or abandoned resolution retry.
type RetryEvent struct {
	// Attempt is the retry attempt number (1-based).
	Attempt int `cbor:"1,keyasint"`

	// Delay is the backoff delay before the attempt. Zero when abandoned.
	Delay time.Duration `cbor:"2,keyasint,omitempty"`

	// Abandoned indicates the retry budget was exhausted.
	Abandoned bool `cbor:"3,keyasint,omitempty"`
}

// PlaybackEvent captures a saved-segment sound playback attempt.
type PlaybackEvent struct {
	// Path is the configured sound file path.
	Path string `cbor:"1,keyasint"`

	// Backend is the playback mechanism used ("afplay", "paplay", "bell", ...).
	Backend string `cbor:"2,keyasint,omitempty"`

	// Skipped indicates playback was not attempted (disabled, unset,
	// or missing file) and Reason says why.
	Skipped bool `cbor:"3,keyasint,omitempty"`

	// Reason explains a skip or describes a fallback.
	Reason string `cbor:"4,keyasint,omitempty"`
}

// ErrorEventData captures errors from any component.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`
}
