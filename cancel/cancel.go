// Package cancel provides the process-wide emergency-stop flag for in-flight
// typing, plus the double-activation detector that drives it from a global
// hotkey.
package cancel

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// DefaultWindow is the interval within which two hotkey activations count
// as a deliberate emergency stop.
const DefaultWindow = 500 * time.Millisecond

// Coordinator is the single source of truth for "should typing stop now".
// The flag is read by the typing engine's hot loop and written by the hotkey
// listener and the tray, which live on different goroutines; all access goes
// through atomics.
type Coordinator struct {
	cancelled atomic.Bool
	lastHit   atomic.Int64 // unix ms of the previous activation, 0 = none
	window    time.Duration
	now       func() time.Time
}

// New creates a Coordinator with the given double-activation window.
// A window <= 0 falls back to DefaultWindow.
func New(window time.Duration) *Coordinator {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Coordinator{window: window, now: time.Now}
}

// Signal sets the cancellation flag. Idempotent, and safe to call when no
// job is running.
func (c *Coordinator) Signal() {
	c.cancelled.Store(true)
}

// Reset clears the flag. Called exactly once per job, at job start, so a
// stale cancellation never blocks a future job.
func (c *Coordinator) Reset() {
	c.cancelled.Store(false)
}

// IsCancelled is a lock-free read, safe at high frequency.
func (c *Coordinator) IsCancelled() bool {
	return c.cancelled.Load()
}

// Activate records one hotkey activation. Two activations within the window
// fire Signal and report true; an isolated activation is ignored so normal
// use of the key doesn't trigger a stop.
func (c *Coordinator) Activate() bool {
	nowMS := c.now().UnixMilli()
	last := c.lastHit.Load()

	if last != 0 && nowMS-last <= c.window.Milliseconds() {
		slog.Info("emergency stop: double activation detected",
			"gap_ms", nowMS-last)
		c.Signal()
		// Zero so a third press doesn't re-trigger
		c.lastHit.Store(0)
		return true
	}

	c.lastHit.Store(nowMS)
	return false
}
