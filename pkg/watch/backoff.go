package watch

import (
	"sync"
	"time"
)

// Resolution retry constants.
const (
	// InitialRetryDelay is the delay before the first retry.
	InitialRetryDelay = 200 * time.Millisecond

	// MaxRetryDelay is the backoff ceiling.
	MaxRetryDelay = 2 * time.Second

	// RetryMultiplier is the factor by which the delay increases.
	RetryMultiplier = 2.0

	// MaxRetryAttempts is the hard cap on retries per resolution run.
	MaxRetryAttempts = 6
)

// Backoff calculates bounded exponential retry delays. Unlike network
// reconnection backoff there is no jitter: a single in-process watcher
// cannot stampede its own host, and the delay sequence stays exact.
type Backoff struct {
	mu sync.Mutex

	// Current delay (the one the next attempt will use)
	current time.Duration

	// Configuration
	initial     time.Duration
	max         time.Duration
	multiplier  float64
	maxAttempts int

	// Attempt counter
	attempts int
}

// NewBackoff creates a backoff calculator with default settings.
func NewBackoff() *Backoff {
	return NewBackoffWithConfig(BackoffConfig{})
}

// BackoffConfig allows customizing backoff parameters.
type BackoffConfig struct {
	Initial     time.Duration
	Max         time.Duration
	Multiplier  float64
	MaxAttempts int
}

// NewBackoffWithConfig creates a backoff calculator with custom settings.
func NewBackoffWithConfig(cfg BackoffConfig) *Backoff {
	if cfg.Initial <= 0 {
		cfg.Initial = InitialRetryDelay
	}
	if cfg.Max <= 0 {
		cfg.Max = MaxRetryDelay
	}
	if cfg.Multiplier <= 1 {
		cfg.Multiplier = RetryMultiplier
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = MaxRetryAttempts
	}

	return &Backoff{
		current:     cfg.Initial,
		initial:     cfg.Initial,
		max:         cfg.Max,
		multiplier:  cfg.Multiplier,
		maxAttempts: cfg.MaxAttempts,
	}
}

// Next returns the next retry delay and advances the backoff.
// Returns false once the attempt budget is exhausted.
func (b *Backoff) Next() (time.Duration, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attempts >= b.maxAttempts {
		return 0, false
	}

	delay := b.current

	b.attempts++
	next := time.Duration(float64(b.current) * b.multiplier)
	if next > b.max {
		next = b.max
	}
	b.current = next

	return delay, true
}

// Reset resets the backoff to initial values.
// Call this after a successful resolution or an explicit disconnect.
func (b *Backoff) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = b.initial
	b.attempts = 0
}

// Attempts returns the number of attempts since the last reset.
func (b *Backoff) Attempts() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attempts
}

// Exhausted reports whether the attempt budget is used up.
func (b *Backoff) Exhausted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attempts >= b.maxAttempts
}

// RetrySequence returns the full default delay sequence.
func RetrySequence() []time.Duration {
	return []time.Duration{
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		1600 * time.Millisecond,
		2 * time.Second, // capped
		2 * time.Second,
	}
}
