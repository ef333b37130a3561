package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/replaywatch/replaywatch-go/pkg/log"
)

// Stats summarizes a log file.
type Stats struct {
	TotalEvents int
	ByCategory  map[log.Category]int
	BySignal    map[string]int
	ByTarget    map[string]int

	BufferStarts     int
	BufferStops      int
	RetriesScheduled int
	RetriesAbandoned int
	PlaybackSkips    int

	FirstEvent time.Time
	LastEvent  time.Time
}

// CollectStats reads the whole log file and accumulates statistics.
func CollectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	stats := &Stats{
		ByCategory: make(map[log.Category]int),
		BySignal:   make(map[string]int),
		ByTarget:   make(map[string]int),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading event %d: %w", stats.TotalEvents+1, err)
		}

		stats.TotalEvents++
		stats.ByCategory[event.Category]++
		if event.Target != "" {
			stats.ByTarget[event.Target]++
		}

		if stats.FirstEvent.IsZero() || event.Timestamp.Before(stats.FirstEvent) {
			stats.FirstEvent = event.Timestamp
		}
		if event.Timestamp.After(stats.LastEvent) {
			stats.LastEvent = event.Timestamp
		}

		switch {
		case event.Signal != nil:
			stats.BySignal[event.Signal.Name]++
		case event.StateChange != nil:
			if event.StateChange.Entity == log.EntityBuffer {
				switch event.StateChange.NewState {
				case "ON":
					stats.BufferStarts++
				case "OFF":
					stats.BufferStops++
				}
			}
		case event.Retry != nil:
			if event.Retry.Abandoned {
				stats.RetriesAbandoned++
			} else {
				stats.RetriesScheduled++
			}
		case event.Playback != nil:
			if event.Playback.Skipped {
				stats.PlaybackSkips++
			}
		}
	}

	return stats, nil
}

// RunStats collects statistics for path and writes a report to w.
func RunStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Events:    %d\n", stats.TotalEvents)
	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Timespan:  %s to %s (%s)\n",
			stats.FirstEvent.UTC().Format(time.RFC3339),
			stats.LastEvent.UTC().Format(time.RFC3339),
			stats.LastEvent.Sub(stats.FirstEvent).Round(time.Millisecond))
	}

	fmt.Fprintln(w, "\nBy category:")
	for _, c := range []log.Category{
		log.CategorySignal, log.CategoryState, log.CategoryRetry,
		log.CategoryPlayback, log.CategoryError,
	} {
		if n := stats.ByCategory[c]; n > 0 {
			fmt.Fprintf(w, "  %-9s %d\n", c, n)
		}
	}

	if len(stats.BySignal) > 0 {
		fmt.Fprintln(w, "\nBy signal:")
		for _, name := range sortedKeys(stats.BySignal) {
			fmt.Fprintf(w, "  %-11s %d\n", name, stats.BySignal[name])
		}
	}

	if len(stats.ByTarget) > 0 {
		fmt.Fprintln(w, "\nBy target:")
		for _, name := range sortedKeys(stats.ByTarget) {
			fmt.Fprintf(w, "  %-24s %d\n", name, stats.ByTarget[name])
		}
	}

	fmt.Fprintf(w, "\nBuffer:    %d starts, %d stops\n", stats.BufferStarts, stats.BufferStops)
	fmt.Fprintf(w, "Retries:   %d scheduled, %d abandoned\n", stats.RetriesScheduled, stats.RetriesAbandoned)
	if stats.PlaybackSkips > 0 {
		fmt.Fprintf(w, "Playback:  %d skipped\n", stats.PlaybackSkips)
	}

	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
