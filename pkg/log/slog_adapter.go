package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes controller events to an slog.Logger.
// Useful for development when you want to see events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("watch_id", event.WatchID),
		slog.String("category", event.Category.String()),
	}

	if event.Target != "" {
		attrs = append(attrs, slog.String("target", event.Target))
	}

	// Add type-specific attributes
	switch {
	case event.Signal != nil:
		attrs = append(attrs,
			slog.String("signal", event.Signal.Name),
			slog.String("outcome", event.Signal.Outcome),
		)
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Retry != nil:
		attrs = append(attrs, slog.Int("attempt", event.Retry.Attempt))
		if event.Retry.Abandoned {
			attrs = append(attrs, slog.Bool("abandoned", true))
		} else {
			attrs = append(attrs, slog.Duration("delay", event.Retry.Delay))
		}
	case event.Playback != nil:
		attrs = append(attrs, slog.String("path", event.Playback.Path))
		if event.Playback.Backend != "" {
			attrs = append(attrs, slog.String("backend", event.Playback.Backend))
		}
		if event.Playback.Skipped {
			attrs = append(attrs, slog.Bool("skipped", true))
		}
		if event.Playback.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.Playback.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "replaywatch", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
