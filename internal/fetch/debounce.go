package fetch

import (
	"sync/atomic"
	"time"
)

// Debouncer coalesces bursts of triggers so only the last one fires.
//
// Each trigger calls Schedule and arms a timer for Delay carrying the token.
// When the timer fires, Due reports whether that token is still the latest.
type Debouncer struct {
	delay time.Duration
	seq   atomic.Uint64
}

// NewDebouncer returns a Debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay < 0 {
		delay = 0
	}
	return &Debouncer{delay: delay}
}

// Delay is the quiet period.
func (d *Debouncer) Delay() time.Duration { return d.delay }

// Schedule records a trigger and returns its token.
func (d *Debouncer) Schedule() uint64 { return d.seq.Add(1) }

// Due reports whether token belongs to the most recent trigger.
func (d *Debouncer) Due(token uint64) bool { return token == d.seq.Load() }

// Cancel invalidates every outstanding token.
func (d *Debouncer) Cancel() { d.seq.Add(1) }
