// Package log provides structured event capture for the controller.
//
// This package defines the Logger interface and Event types for the
// things the controller does: liveness signals received, buffer and
// target state changes, resolution retries, and sound playback. It is
// separate from operational logging (slog) - event capture provides a
// complete machine-readable trace for debugging why the replay buffer
// was (or was not) toggled.
//
// # Basic Usage
//
// Components take a Logger; pass NoopLogger{} to disable capture:
//
//	// For development: log to console via slog
//	logger := log.NewSlogAdapter(slog.Default())
//
//	// For later analysis: write to binary file
//	logger, _ := log.NewFileLogger("watch.rwlog")
//
//	// Both: use MultiLogger
//	logger := log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # File Format
//
// Log files use CBOR encoding with integer keys and the .rwlog
// extension. The replaywatch-log command reads them back.
package log
