// Package interactive provides the interactive command-line interface
// for the replaywatch simulator.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/replaywatch/replaywatch-go/pkg/chime"
	"github.com/replaywatch/replaywatch-go/pkg/config"
	"github.com/replaywatch/replaywatch-go/pkg/host"
	"github.com/replaywatch/replaywatch-go/pkg/host/hosttest"
	"github.com/replaywatch/replaywatch-go/pkg/watch"
)

// Config holds the simulator components the console drives.
type Config struct {
	Watcher  *watch.Watcher
	Player   *chime.Player
	Registry *hosttest.Registry
	Bus      *hosttest.SignalBus
	Buffer   *hosttest.ReplayRecorder
	Store    *config.Store
	Settings config.Settings
}

// Console handles interactive mode for replaywatch-sim.
type Console struct {
	watcher  *watch.Watcher
	player   *chime.Player
	registry *hosttest.Registry
	bus      *hosttest.SignalBus
	buffer   *hosttest.ReplayRecorder
	store    *config.Store
	settings config.Settings
	rl       *readline.Instance
}

// New creates a new interactive console.
func New(cfg Config) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "sim> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Console{
		watcher:  cfg.Watcher,
		player:   cfg.Player,
		registry: cfg.Registry,
		bus:      cfg.Bus,
		buffer:   cfg.Buffer,
		store:    cfg.Store,
		settings: cfg.Settings,
		rl:       rl,
	}, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (c *Console) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Run starts the interactive command loop.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			c.printHelp()

		case "sources", "ls":
			c.cmdSources()

		case "add":
			c.cmdAdd(args)

		case "remove", "rm":
			c.cmdRemove(args)

		case "target", "t":
			c.cmdTarget(args)

		case "hooked", "unhooked", "activate", "deactivate", "show", "hide":
			c.cmdSignal(cmd, args)

		case "save":
			c.cmdFrontendEvent(host.EventReplaySaved)

		case "loaded":
			c.cmdFrontendEvent(host.EventFinishedLoading)

		case "collection":
			c.cmdFrontendEvent(host.EventSceneCollectionChanged)

		case "buffer":
			c.cmdBuffer(args)

		case "prefer-hook":
			c.cmdPreferHook(args)

		case "sound":
			c.cmdSound(args)

		case "status", "st":
			c.cmdStatus()

		case "quit", "exit", "q":
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return

		default:
			fmt.Fprintf(c.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.rl.Stdout(), `
Replaywatch Simulator Commands:
  Host scripting:
    sources              - List registered sources
    add <name> <kind>    - Register a source (e.g. add Game game_capture)
    remove <name>        - Unregister a source
    hooked <name>        - Emit a capture-hook signal
    unhooked <name>      - Emit a capture-unhook signal
    activate <name>      - Mark active and emit activate
    deactivate <name>    - Mark inactive and emit deactivate
    show <name>          - Mark showing and emit show
    hide <name>          - Mark hidden and emit hide
    buffer on|off        - Toggle the replay buffer behind the watcher's back

  Host lifecycle:
    loaded               - Fire the finished-loading notification
    collection           - Fire the scene-collection-changed notification
    save                 - Fire the segment-saved notification

  Watcher:
    target <name>        - Switch the monitored source ('' to clear)
    prefer-hook on|off   - Toggle capture-hook signal preference
    sound on|off|<path>  - Configure the saved-segment sound
    status               - Show watcher and buffer state

  General:
    help                 - Show this help
    quit                 - Exit simulator`)
}

func (c *Console) cmdSources() {
	infos := c.registry.Sources()
	if len(infos) == 0 {
		fmt.Fprintln(c.rl.Stdout(), "No sources registered")
		return
	}
	for _, info := range infos {
		fmt.Fprintf(c.rl.Stdout(), "  %-24s %s\n", info.Name, info.Kind)
	}
}

func (c *Console) cmdAdd(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: add <name> <kind>")
		return
	}
	c.registry.Add(args[0], args[1])
	fmt.Fprintf(c.rl.Stdout(), "Added %q (%s)\n", args[0], args[1])

	// A source appearing is what a lifecycle notification would surface.
	c.watcher.ReconnectIfNeeded()
}

func (c *Console) cmdRemove(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: remove <name>")
		return
	}
	c.registry.Remove(args[0])
	fmt.Fprintf(c.rl.Stdout(), "Removed %q\n", args[0])
}

func (c *Console) cmdTarget(args []string) {
	name := ""
	if len(args) > 0 {
		name = strings.Join(args, " ")
	}
	c.watcher.SetTarget(name)
	c.settings.SourceName = name
	c.persistSettings()
	if name == "" {
		fmt.Fprintln(c.rl.Stdout(), "Target cleared")
		return
	}
	fmt.Fprintf(c.rl.Stdout(), "Target set to %q\n", name)
}

// cmdSignal scripts a source condition change and emits the matching
// liveness signal.
func (c *Console) cmdSignal(signal string, args []string) {
	if len(args) < 1 {
		fmt.Fprintf(c.rl.Stdout(), "Usage: %s <name>\n", signal)
		return
	}
	name := strings.Join(args, " ")

	resolved, ok := c.registry.SourceByName(name)
	if !ok {
		fmt.Fprintf(c.rl.Stdout(), "No source named %q\n", name)
		return
	}
	src := resolved.(*hosttest.Source)

	switch signal {
	case "activate":
		src.SetActive(true)
	case "deactivate":
		src.SetActive(false)
	case "show":
		src.SetShowing(true)
	case "hide":
		src.SetShowing(false)
	}

	c.bus.Emit(src, signal)
	fmt.Fprintf(c.rl.Stdout(), "Emitted %s on %q\n", signal, name)
}

func (c *Console) cmdFrontendEvent(ev host.FrontendEvent) {
	c.watcher.HandleFrontendEvent(ev)
	c.player.HandleFrontendEvent(ev)
	fmt.Fprintf(c.rl.Stdout(), "Fired %s\n", ev)
}

// cmdBuffer flips the buffer outside the watcher, like a hotkey or
// another script would.
func (c *Console) cmdBuffer(args []string) {
	if len(args) < 1 || (args[0] != "on" && args[0] != "off") {
		fmt.Fprintln(c.rl.Stdout(), "Usage: buffer on|off")
		return
	}
	on := args[0] == "on"
	c.buffer.SetActive(on)
	if on {
		c.watcher.HandleFrontendEvent(host.EventReplayStarted)
	} else {
		c.watcher.HandleFrontendEvent(host.EventReplayStopped)
	}
	fmt.Fprintf(c.rl.Stdout(), "Buffer forced %s\n", args[0])
}

func (c *Console) cmdPreferHook(args []string) {
	if len(args) < 1 || (args[0] != "on" && args[0] != "off") {
		fmt.Fprintln(c.rl.Stdout(), "Usage: prefer-hook on|off")
		return
	}
	prefer := args[0] == "on"
	c.watcher.SetPreferHookSignals(prefer)
	c.settings.PreferHookSignals = prefer
	c.persistSettings()
	fmt.Fprintf(c.rl.Stdout(), "Hook signal preference %s\n", args[0])
}

func (c *Console) cmdSound(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: sound on|off|<path>")
		return
	}
	switch args[0] {
	case "on":
		c.settings.PlaySoundOnSave = true
	case "off":
		c.settings.PlaySoundOnSave = false
	default:
		c.settings.SoundPath = strings.Join(args, " ")
	}
	c.player.Configure(c.settings.PlaySoundOnSave, c.settings.SoundPath)
	c.persistSettings()
	fmt.Fprintf(c.rl.Stdout(), "Sound: enabled=%v path=%q\n",
		c.settings.PlaySoundOnSave, c.settings.SoundPath)
}

func (c *Console) cmdStatus() {
	st := c.watcher.Status()
	out := c.rl.Stdout()

	fmt.Fprintf(out, "Watch ID:      %s\n", st.WatchID)
	fmt.Fprintf(out, "Target:        %q\n", st.Target)
	fmt.Fprintf(out, "Connected:     %v", st.Connected)
	if st.Connected {
		fmt.Fprintf(out, " (kind %s)", st.SourceKind)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Prefer hooks:  %v\n", st.PreferHookSignals)
	if st.RetryPending {
		fmt.Fprintf(out, "Retry:         pending, attempt %d of %d\n",
			st.RetryAttempts, watch.MaxRetryAttempts)
	} else if st.RetryAttempts >= watch.MaxRetryAttempts {
		fmt.Fprintln(out, "Retry:         abandoned")
	}
	fmt.Fprintf(out, "Buffer:        active=%v starts=%d stops=%d\n",
		st.BufferActive, c.buffer.StartCalls(), c.buffer.StopCalls())
	fmt.Fprintf(out, "Subscriptions: %d\n", c.bus.ConnectionCount())
}

func (c *Console) persistSettings() {
	if c.store == nil {
		return
	}
	if err := c.store.Save(c.settings); err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Warning: failed to save settings: %v\n", err)
	}
}
