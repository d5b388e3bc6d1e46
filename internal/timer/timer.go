// Package timer implements the sterilization countdown state machine.
// Like steril, it is pure: time is always injected via time.Time parameters
// and the tick cadence is owned by the caller's event loop.
package timer

import "time"

// TickResult says what a tick did. Completion is an explicit transition
// result so the caller can fire the completion side effect exactly once,
// instead of inferring the zero-crossing by comparing old and new state.
type TickResult int

const (
	// TickIdle: the countdown was not running (or was paused); nothing changed.
	TickIdle TickResult = iota
	// TickContinuing: one second was consumed, time remains.
	TickContinuing
	// TickCompleted: this tick consumed the final second. Returned exactly
	// once per countdown.
	TickCompleted
)

// State is a point-in-time copy of the countdown, safe to hand to other
// goroutines.
type State struct {
	Running          bool
	Paused           bool
	TotalSeconds     int
	RemainingSeconds int
	StartTime        time.Time
}

// Countdown tracks a single sterilization countdown.
// Invariants: 0 <= remaining <= total; paused is only meaningful while
// running; remaining reaching 0 forces running=false on the same tick.
type Countdown struct {
	total     int
	remaining int
	running   bool
	paused    bool
	startTime time.Time
}

// New returns an idle countdown.
func New() *Countdown {
	return &Countdown{}
}

// Start arms the countdown for the given duration. A non-positive duration
// leaves the countdown idle. Starting over a running countdown restarts it.
func (c *Countdown) Start(d time.Duration, now time.Time) {
	secs := int(d / time.Second)
	if secs <= 0 {
		return
	}
	c.total = secs
	c.remaining = secs
	c.running = true
	c.paused = false
	c.startTime = now
}

// Tick consumes one second. Call once per second while the caller's loop is
// live; Tick itself decides whether anything happens.
func (c *Countdown) Tick(now time.Time) TickResult {
	if !c.running || c.paused {
		return TickIdle
	}
	if c.remaining <= 0 {
		// Completed already transitioned us out of running.
		c.running = false
		return TickIdle
	}

	c.remaining--
	if c.remaining == 0 {
		c.running = false
		c.paused = false
		return TickCompleted
	}
	return TickContinuing
}

// Pause suspends the countdown. No effect when not running.
func (c *Countdown) Pause() {
	if c.running {
		c.paused = true
	}
}

// Resume clears a pause. No effect when not running.
func (c *Countdown) Resume() {
	if c.running {
		c.paused = false
	}
}

// Reset returns to the idle state unconditionally, discarding remaining time.
func (c *Countdown) Reset() {
	*c = Countdown{}
}

// Running reports whether the countdown is armed (paused counts as running).
func (c *Countdown) Running() bool { return c.running }

// Paused reports whether a running countdown is paused.
func (c *Countdown) Paused() bool { return c.paused }

// Remaining returns the remaining whole seconds.
func (c *Countdown) Remaining() int { return c.remaining }

// Snapshot returns a copy of the current state.
func (c *Countdown) Snapshot() State {
	return State{
		Running:          c.running,
		Paused:           c.paused,
		TotalSeconds:     c.total,
		RemainingSeconds: c.remaining,
		StartTime:        c.startTime,
	}
}
