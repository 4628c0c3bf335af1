package animation

import "time"

// Clock is the time source controllers and tickers read from. The
// default is wall time; tests swap in a fake through SetClock.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

var clock Clock = realClock{}

// SetClock swaps the package clock and returns the one it replaced, so
// a test can put it back on cleanup.
func SetClock(c Clock) Clock {
	prev := clock
	clock = c
	return prev
}

// Now reads the active clock.
func Now() time.Time { return clock.Now() }
