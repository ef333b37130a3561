package chime

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/replaywatch/replaywatch-go/pkg/host"
	"github.com/replaywatch/replaywatch-go/pkg/log"
)

// runFunc executes a playback helper; injectable for tests.
type runFunc func(name string, args ...string) error

// Player reacts to saved-segment notifications with best-effort audio.
type Player struct {
	logger  log.Logger
	watchID string

	mu      sync.Mutex
	enabled bool
	path    string

	run  runFunc
	bell func()
}

// NewPlayer creates a player with playback disabled.
// The logger may be log.NoopLogger{}.
func NewPlayer(logger log.Logger, watchID string) *Player {
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &Player{
		logger:  logger,
		watchID: watchID,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
		bell: func() {
			fmt.Fprint(os.Stderr, "\a")
		},
	}
}

// Configure sets the sound feature state and file path.
func (p *Player) Configure(enabled bool, path string) {
	p.mu.Lock()
	p.enabled = enabled
	p.path = path
	p.mu.Unlock()
}

// HandleFrontendEvent triggers playback on saved-segment notifications
// and ignores everything else.
func (p *Player) HandleFrontendEvent(ev host.FrontendEvent) {
	if ev == host.EventReplaySaved {
		p.OnSegmentSaved()
	}
}

// OnSegmentSaved plays the configured sound asynchronously. Disabled,
// unset, or unreadable configurations are logged and skipped.
func (p *Player) OnSegmentSaved() {
	p.mu.Lock()
	enabled := p.enabled
	path := p.path
	p.mu.Unlock()

	if !enabled {
		p.logPlayback(path, "", true, "sound feature disabled")
		return
	}
	if path == "" {
		p.logPlayback(path, "", true, "no sound file configured")
		return
	}
	if _, err := os.Stat(path); err != nil {
		p.logPlayback(path, "", true, "sound file not accessible: "+err.Error())
		return
	}

	go p.play(path)
}

// play walks the platform helper chain, ending in a terminal bell.
func (p *Player) play(path string) {
	for _, cmd := range playbackCommands(runtime.GOOS, path) {
		if err := p.run(cmd[0], cmd[1:]...); err == nil {
			p.logPlayback(path, cmd[0], false, "")
			return
		}
	}

	p.bell()
	p.logPlayback(path, "bell", false, "all playback helpers failed")
}

// playbackCommands returns the helper chain for an OS, tried in order.
func playbackCommands(goos, path string) [][]string {
	switch goos {
	case "darwin":
		return [][]string{{"afplay", path}}
	case "windows":
		return [][]string{{
			"powershell", "-NoProfile", "-Command",
			"(New-Object Media.SoundPlayer '" + path + "').PlaySync()",
		}}
	default:
		return [][]string{
			{"paplay", path},
			{"aplay", "-q", path},
		}
	}
}

func (p *Player) logPlayback(path, backend string, skipped bool, reason string) {
	p.logger.Log(log.Event{
		Timestamp: time.Now(),
		WatchID:   p.watchID,
		Category:  log.CategoryPlayback,
		Playback: &log.PlaybackEvent{
			Path:    path,
			Backend: backend,
			Skipped: skipped,
			Reason:  reason,
		},
	})
}
