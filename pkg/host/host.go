package host

import "time"

// SourceInfo describes an enumerable source.
type SourceInfo struct {
	// Name is the user-visible source name (unique within the host).
	Name string

	// Kind is the host's source type identifier (e.g. "game_capture").
	Kind string
}

// Source is a resolved handle to a host source. It is valid from a
// successful Registry lookup until Release is called.
type Source interface {
	// Name returns the source name the handle was resolved from.
	Name() string

	// Kind returns the host's source type identifier.
	Kind() string

	// Showing reports whether the source is currently shown anywhere.
	Showing() bool

	// Active reports whether the source is active in the output.
	Active() bool

	// Release drops the handle. The Source must not be used afterwards.
	Release()
}

// Registry resolves names to handles and enumerates sources.
type Registry interface {
	// SourceByName resolves a name to a live handle. The caller owns
	// the returned Source and must Release it. Returns false when no
	// source with that name currently exists.
	SourceByName(name string) (Source, bool)

	// Sources enumerates all sources currently known to the host.
	Sources() []SourceInfo
}

// SignalFunc is invoked when a connected signal fires. It may be called
// from a context other than the host main loop.
type SignalFunc func()

// SignalToken identifies a signal connection. The zero value is never
// returned by Connect and disconnects nothing.
type SignalToken uint64

// SignalBus connects callbacks to named per-source signals.
type SignalBus interface {
	// Connect wires fn to the named signal on src. Connecting a signal
	// the source kind does not emit is valid; the callback never fires.
	Connect(src Source, signal string, fn SignalFunc) SignalToken

	// Disconnect removes a connection. Unknown, zero, or already
	// disconnected tokens are ignored.
	Disconnect(token SignalToken)
}

// TimerHandle identifies a scheduled one-shot timer. The zero value is
// never returned by ScheduleOnce and cancels nothing.
type TimerHandle uint64

// Scheduler schedules one-shot callbacks onto the host main loop.
type Scheduler interface {
	// ScheduleOnce runs fn once on the host main loop after delay.
	// The entry is deregistered before fn is invoked, so fn may safely
	// schedule again without colliding with its own registration.
	ScheduleOnce(delay time.Duration, fn func()) TimerHandle

	// Cancel removes a pending timer. Unknown, zero, or already fired
	// handles are ignored.
	Cancel(handle TimerHandle)
}

// ReplayBuffer is the host's rolling-capture toggle.
type ReplayBuffer interface {
	// Active reports whether the replay buffer is currently running.
	// This is host ground truth; the controller caches nothing.
	Active() bool

	// Start requests the replay buffer to start.
	Start()

	// Stop requests the replay buffer to stop.
	Stop()
}

// FrontendEvent is a host lifecycle notification.
type FrontendEvent uint8

const (
	// EventFinishedLoading fires once the host finished restoring state.
	EventFinishedLoading FrontendEvent = iota

	// EventSceneCollectionChanged fires after a scene collection switch,
	// which replaces every source.
	EventSceneCollectionChanged

	// EventReplayStarted fires when the replay buffer started.
	EventReplayStarted

	// EventReplayStopped fires when the replay buffer stopped.
	EventReplayStopped

	// EventReplaySaved fires when a replay segment was written to disk.
	EventReplaySaved
)

// String returns the event name.
func (e FrontendEvent) String() string {
	switch e {
	case EventFinishedLoading:
		return "FINISHED_LOADING"
	case EventSceneCollectionChanged:
		return "SCENE_COLLECTION_CHANGED"
	case EventReplayStarted:
		return "REPLAY_STARTED"
	case EventReplayStopped:
		return "REPLAY_STOPPED"
	case EventReplaySaved:
		return "REPLAY_SAVED"
	default:
		return "UNKNOWN"
	}
}
