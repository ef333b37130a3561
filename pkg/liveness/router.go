package liveness

import (
	"sync"
	"time"

	"github.com/replaywatch/replaywatch-go/pkg/host"
	"github.com/replaywatch/replaywatch-go/pkg/log"
)

// Sink receives the unified outcome of every routed signal.
type Sink func(Outcome)

// Router wires a fixed set of liveness signals on one source and
// funnels them into a single sink. It owns the subscription set: the
// signals wired at Attach time are exactly the ones Detach removes.
type Router struct {
	bus     host.SignalBus
	logger  log.Logger
	watchID string

	mu     sync.Mutex
	tokens []host.SignalToken
	target string
}

// NewRouter creates a router. The logger may be log.NoopLogger{}.
func NewRouter(bus host.SignalBus, logger log.Logger, watchID string) *Router {
	return &Router{
		bus:     bus,
		logger:  logger,
		watchID: watchID,
	}
}

// Attach subscribes the signal set on src. When preferHook is true the
// hook signals are wired in addition to the generic set. Any previous
// attachment is torn down first.
func (r *Router) Attach(src host.Source, preferHook bool, sink Sink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.detachLocked()
	r.target = src.Name()

	bindings := baseBindings
	if preferHook {
		bindings = append(append([]binding{}, hookBindings...), baseBindings...)
	}

	for _, b := range bindings {
		b := b
		token := r.bus.Connect(src, b.signal, func() {
			r.route(b.signal, b.outcome, sink)
		})
		r.tokens = append(r.tokens, token)
	}
}

// route logs the fired signal and forwards its outcome to the sink.
func (r *Router) route(signal string, outcome Outcome, sink Sink) {
	r.mu.Lock()
	target := r.target
	r.mu.Unlock()

	r.logger.Log(log.Event{
		Timestamp: time.Now(),
		WatchID:   r.watchID,
		Category:  log.CategorySignal,
		Target:    target,
		Signal: &log.SignalEvent{
			Name:    signal,
			Outcome: outcome.String(),
		},
	})

	sink(outcome)
}

// Detach disconnects every signal wired at Attach time.
// Safe to call when nothing is attached, and safe to call twice.
func (r *Router) Detach() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detachLocked()
}

func (r *Router) detachLocked() {
	for _, token := range r.tokens {
		r.bus.Disconnect(token)
	}
	r.tokens = nil
	r.target = ""
}

// SubscriptionCount returns the number of wired signals.
func (r *Router) SubscriptionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}
