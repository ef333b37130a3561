// Command replaywatch-sim runs the replay-buffer watcher against a
// simulated host.
//
// The simulator hosts a real watcher, scheduler, and sound player; the
// host side (source registry, signal bus, replay buffer) is scripted
// from an interactive console. Use it to exercise resolution, retry,
// signal routing, and buffer toggling without a recording host.
//
// Usage:
//
//	replaywatch-sim [flags]
//
// Flags:
//
//	-config string     Settings file path (YAML)
//	-target string     Source name to monitor (overrides settings file)
//	-log-file string   Write controller events to a CBOR log file (.rwlog)
//	-log-level string  Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Start with a settings file
//	replaywatch-sim -config ~/.replaywatch/settings.yaml
//
//	# Monitor a source and record an event log
//	replaywatch-sim -target "Game Capture" -log-file session.rwlog
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/replaywatch/replaywatch-go/cmd/replaywatch-sim/interactive"
	"github.com/replaywatch/replaywatch-go/pkg/chime"
	"github.com/replaywatch/replaywatch-go/pkg/config"
	"github.com/replaywatch/replaywatch-go/pkg/host"
	"github.com/replaywatch/replaywatch-go/pkg/host/hosttest"
	"github.com/replaywatch/replaywatch-go/pkg/log"
	"github.com/replaywatch/replaywatch-go/pkg/sched"
	"github.com/replaywatch/replaywatch-go/pkg/watch"
)

func main() {
	configPath := flag.String("config", "", "Settings file path (YAML)")
	target := flag.String("target", "", "Source name to monitor (overrides settings file)")
	logFile := flag.String("log-file", "", "Write controller events to a CBOR log file (.rwlog)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	slogger := newSlogger(*logLevel)

	settings := config.Default()
	var store *config.Store
	if *configPath != "" {
		store = config.NewStore(*configPath)
		loaded, err := store.Load()
		if err != nil {
			slogger.Error("failed to load settings", "path", *configPath, "error", err)
			os.Exit(1)
		}
		settings = loaded
	}
	if *target != "" {
		settings.SourceName = *target
	}

	logger, closeLog, err := buildLogger(slogger, *logFile)
	if err != nil {
		slogger.Error("failed to open log file", "path", *logFile, "error", err)
		os.Exit(1)
	}
	defer closeLog()

	// Simulated host: scripted registry, bus, and buffer; real timers
	// feeding a serialized loop that stands in for the host main loop.
	registry := hosttest.NewRegistry()
	bus := hosttest.NewSignalBus()
	buffer := hosttest.NewReplayRecorder()

	loop := sched.NewLoop()
	adapter := sched.NewAdapter(sched.NewLoopScheduler(loop))

	watcher := watch.New(watch.Config{
		Registry:          registry,
		Bus:               bus,
		Buffer:            buffer,
		Sched:             adapter,
		Logger:            logger,
		PreferHookSignals: settings.PreferHookSignals,
	})

	player := chime.NewPlayer(logger, watcher.ID())
	player.Configure(settings.PlaySoundOnSave, settings.SoundPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)
	defer loop.Stop()

	console, err := interactive.New(interactive.Config{
		Watcher:  watcher,
		Player:   player,
		Registry: registry,
		Bus:      bus,
		Buffer:   buffer,
		Store:    store,
		Settings: settings,
	})
	if err != nil {
		slogger.Error("failed to start console", "error", err)
		os.Exit(1)
	}

	adapter.OnRefresh(func() {
		fmt.Fprintf(console.Stdout(), "[ui] refresh: buffer=%v\n", buffer.Active())
	})

	slogger.Info("simulator started", "watch_id", watcher.ID(), "target", settings.SourceName)

	if settings.SourceName != "" {
		watcher.SetTarget(settings.SourceName)
	}
	watcher.HandleFrontendEvent(host.EventFinishedLoading)

	console.Run(ctx, cancel)
}

func newSlogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

// buildLogger assembles the event logger: always the slog adapter, plus
// a CBOR file logger when a path is given.
func buildLogger(slogger *slog.Logger, path string) (log.Logger, func(), error) {
	adapter := log.NewSlogAdapter(slogger)

	if path == "" {
		return adapter, func() {}, nil
	}

	fileLogger, err := log.NewFileLogger(path)
	if err != nil {
		return nil, nil, err
	}
	return log.NewMultiLogger(adapter, fileLogger), func() { _ = fileLogger.Close() }, nil
}
