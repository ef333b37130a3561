package chime

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replaywatch/replaywatch-go/pkg/host"
	"github.com/replaywatch/replaywatch-go/pkg/log"
)

type eventRecorder struct {
	mu     sync.Mutex
	events []log.Event
}

func (r *eventRecorder) Log(e log.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *eventRecorder) playbacks() []log.PlaybackEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []log.PlaybackEvent
	for _, e := range r.events {
		if e.Playback != nil {
			out = append(out, *e.Playback)
		}
	}
	return out
}

func soundFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chime.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0o644))
	return path
}

func TestOnSegmentSaved_DisabledIsSkipped(t *testing.T) {
	rec := &eventRecorder{}
	p := NewPlayer(rec, "w1")
	p.run = func(name string, args ...string) error {
		t.Error("helper ran while disabled")
		return nil
	}

	p.OnSegmentSaved()

	pbs := rec.playbacks()
	require.Len(t, pbs, 1)
	assert.True(t, pbs[0].Skipped)
	assert.Equal(t, "sound feature disabled", pbs[0].Reason)
}

func TestOnSegmentSaved_EmptyPathIsSkipped(t *testing.T) {
	rec := &eventRecorder{}
	p := NewPlayer(rec, "w1")
	p.Configure(true, "")

	p.OnSegmentSaved()

	pbs := rec.playbacks()
	require.Len(t, pbs, 1)
	assert.True(t, pbs[0].Skipped)
	assert.Equal(t, "no sound file configured", pbs[0].Reason)
}

func TestOnSegmentSaved_MissingFileIsSkipped(t *testing.T) {
	rec := &eventRecorder{}
	p := NewPlayer(rec, "w1")
	p.Configure(true, filepath.Join(t.TempDir(), "missing.wav"))

	p.OnSegmentSaved()

	pbs := rec.playbacks()
	require.Len(t, pbs, 1)
	assert.True(t, pbs[0].Skipped)
	assert.Contains(t, pbs[0].Reason, "sound file not accessible")
}

func TestOnSegmentSaved_PlaysAsynchronously(t *testing.T) {
	rec := &eventRecorder{}
	p := NewPlayer(rec, "w1")
	p.Configure(true, soundFile(t))

	ran := make(chan string, 1)
	p.run = func(name string, args ...string) error {
		ran <- name
		return nil
	}

	p.OnSegmentSaved()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("playback helper never ran")
	}
}

func TestPlay_FirstHelperWins(t *testing.T) {
	rec := &eventRecorder{}
	p := NewPlayer(rec, "w1")

	var names []string
	p.run = func(name string, args ...string) error {
		names = append(names, name)
		return nil
	}
	p.bell = func() { t.Error("bell rang despite a working helper") }

	p.play("/tmp/chime.wav")

	require.Len(t, names, 1)
	pbs := rec.playbacks()
	require.Len(t, pbs, 1)
	assert.False(t, pbs[0].Skipped)
	assert.Equal(t, names[0], pbs[0].Backend)
}

func TestPlay_FallsBackToBell(t *testing.T) {
	rec := &eventRecorder{}
	p := NewPlayer(rec, "w1")

	var attempts int
	p.run = func(name string, args ...string) error {
		attempts++
		return errors.New("no such helper")
	}
	rang := false
	p.bell = func() { rang = true }

	p.play("/tmp/chime.wav")

	assert.True(t, rang)
	assert.Equal(t, len(playbackCommands(runtime.GOOS, "/tmp/chime.wav")), attempts)

	pbs := rec.playbacks()
	require.Len(t, pbs, 1)
	assert.Equal(t, "bell", pbs[0].Backend)
	assert.Equal(t, "all playback helpers failed", pbs[0].Reason)
}

func TestHandleFrontendEvent_OnlySavedTriggersPlayback(t *testing.T) {
	rec := &eventRecorder{}
	p := NewPlayer(rec, "w1")

	p.HandleFrontendEvent(host.EventReplayStarted)
	p.HandleFrontendEvent(host.EventReplayStopped)
	assert.Empty(t, rec.playbacks())

	// Disabled player still logs the skip, proving the event reached it.
	p.HandleFrontendEvent(host.EventReplaySaved)
	assert.Len(t, rec.playbacks(), 1)
}

func TestPlaybackCommands_PerPlatform(t *testing.T) {
	assert.Equal(t, [][]string{{"afplay", "/s.wav"}}, playbackCommands("darwin", "/s.wav"))

	linux := playbackCommands("linux", "/s.wav")
	require.Len(t, linux, 2)
	assert.Equal(t, "paplay", linux[0][0])
	assert.Equal(t, "aplay", linux[1][0])

	win := playbackCommands("windows", "C:\\s.wav")
	require.Len(t, win, 1)
	assert.Equal(t, "powershell", win[0][0])
}
