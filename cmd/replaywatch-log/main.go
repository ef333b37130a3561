// Command replaywatch-log is a tool for viewing and analyzing
// replaywatch event log files.
//
// Log files are created by running replaywatch-sim with the -log-file
// flag.
//
// Usage:
//
//	replaywatch-log <command> [flags] <file.rwlog>
//
// Commands:
//
//	view     View log file in human-readable format
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View all events
//	replaywatch-log view session.rwlog
//
//	# View only retry events for one target
//	replaywatch-log view -category retry -target "Game Capture" session.rwlog
//
//	# Show statistics
//	replaywatch-log stats session.rwlog
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/replaywatch/replaywatch-go/cmd/replaywatch-log/commands"
	"github.com/replaywatch/replaywatch-go/pkg/log"
)

const usage = `replaywatch-log - Replaywatch Event Log Analyzer

Usage:
  replaywatch-log <command> [flags] <file.rwlog>

Commands:
  view     View log file in human-readable format
  stats    Show statistics about the log file

Use "replaywatch-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `replaywatch-log view - View log file in human-readable format

Usage:
  replaywatch-log view [flags] <file.rwlog>

Flags:
`)
		fs.PrintDefaults()
	}

	watchID := fs.String("watch-id", "", "Filter by watcher ID")
	category := fs.String("category", "", "Filter by category (signal, state, retry, playback, error)")
	target := fs.String("target", "", "Filter by monitored source name")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	filter := log.Filter{
		WatchID: *watchID,
		Target:  *target,
	}

	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		filter.Category = &c
	}

	if *timeStart != "" {
		t, err := time.Parse(time.RFC3339, *timeStart)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -time-start: %v\n", err)
			os.Exit(1)
		}
		filter.TimeStart = &t
	}

	if *timeEnd != "" {
		t, err := time.Parse(time.RFC3339, *timeEnd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -time-end: %v\n", err)
			os.Exit(1)
		}
		filter.TimeEnd = &t
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `replaywatch-log stats - Show statistics about the log file

Usage:
  replaywatch-log stats <file.rwlog>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunStats(fs.Arg(0), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
