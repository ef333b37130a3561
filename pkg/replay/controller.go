package replay

import (
	"time"

	"github.com/replaywatch/replaywatch-go/pkg/host"
	"github.com/replaywatch/replaywatch-go/pkg/log"
	"github.com/replaywatch/replaywatch-go/pkg/sched"
)

// Buffer state names used in state-change events.
const (
	stateOn  = "ON"
	stateOff = "OFF"
)

// Controller applies desired-state decisions to the host replay buffer.
// It holds no state of its own; the host's active-query is ground truth
// on every invocation.
type Controller struct {
	buffer  host.ReplayBuffer
	sched   *sched.Adapter
	logger  log.Logger
	watchID string
}

// NewController creates a controller. The logger may be log.NoopLogger{}.
func NewController(buffer host.ReplayBuffer, adapter *sched.Adapter, logger log.Logger, watchID string) *Controller {
	return &Controller{
		buffer:  buffer,
		sched:   adapter,
		logger:  logger,
		watchID: watchID,
	}
}

// SetDesired requests the replay buffer to be on or off. The decision
// is applied on the host main loop; callers may invoke this from any
// context, any number of times, with the same value.
func (c *Controller) SetDesired(active bool) {
	c.sched.RunSoon(func() {
		c.apply(active)
	})
}

// apply runs on the host main loop: compare against host ground truth,
// toggle only on mismatch, then nudge a coalesced UI refresh.
func (c *Controller) apply(active bool) {
	current := c.buffer.Active()

	switch {
	case active && !current:
		c.buffer.Start()
		c.logTransition(stateOff, stateOn)
	case !active && current:
		c.buffer.Stop()
		c.logTransition(stateOn, stateOff)
	}

	c.sched.NudgeRefresh()
}

func (c *Controller) logTransition(oldState, newState string) {
	c.logger.Log(log.Event{
		Timestamp: time.Now(),
		WatchID:   c.watchID,
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.EntityBuffer,
			OldState: oldState,
			NewState: newState,
		},
	})
}
