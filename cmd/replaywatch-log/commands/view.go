// Package commands implements the replaywatch-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/replaywatch/replaywatch-go/pkg/log"
)

// ParseCategoryFlag converts a category flag value to a log.Category.
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "signal":
		return log.CategorySignal, nil
	case "state":
		return log.CategoryState, nil
	case "retry":
		return log.CategoryRetry, nil
	case "playback":
		return log.CategoryPlayback, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("unknown category %q (signal, state, retry, playback, error)", s)
	}
}

// RunView reads events matching the filter and writes them to w in
// human-readable form.
func RunView(path string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return err
	}
	defer reader.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading event %d: %w", count+1, err)
		}
		formatEvent(w, event)
		count++
	}

	fmt.Fprintf(w, "%d events\n", count)
	return nil
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	watchID := shortenWatchID(event.WatchID)

	target := event.Target
	if target == "" {
		target = "-"
	}

	fmt.Fprintf(w, "%s [watch:%s] %-8s %s\n", ts, watchID, event.Category, target)

	switch {
	case event.Signal != nil:
		fmt.Fprintf(w, "  Signal: %s -> %s\n", event.Signal.Name, event.Signal.Outcome)

	case event.StateChange != nil:
		sc := event.StateChange
		fmt.Fprintf(w, "  %s: %s -> %s", sc.Entity, sc.OldState, sc.NewState)
		if sc.Reason != "" {
			fmt.Fprintf(w, " (%s)", sc.Reason)
		}
		fmt.Fprintln(w)

	case event.Retry != nil:
		r := event.Retry
		if r.Abandoned {
			fmt.Fprintf(w, "  Retry abandoned after %d attempts\n", r.Attempt)
		} else {
			fmt.Fprintf(w, "  Retry attempt %d in %s\n", r.Attempt, r.Delay)
		}

	case event.Playback != nil:
		p := event.Playback
		if p.Skipped {
			fmt.Fprintf(w, "  Playback skipped: %s\n", p.Reason)
		} else {
			fmt.Fprintf(w, "  Playback via %s: %s", p.Backend, p.Path)
			if p.Reason != "" {
				fmt.Fprintf(w, " (%s)", p.Reason)
			}
			fmt.Fprintln(w)
		}

	case event.Error != nil:
		fmt.Fprintf(w, "  Error: %s", event.Error.Message)
		if event.Error.Context != "" {
			fmt.Fprintf(w, " [%s]", event.Error.Context)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w)
}

// shortenWatchID returns the first 8 characters of the watcher ID.
func shortenWatchID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
