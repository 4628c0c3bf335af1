// Package animation drives time-based motion for the carousel stack: frame
// tickers, easing curves for page snaps, and spring simulations for
// ballistic scrolling.
//
// [AnimationController] plus [Tween] cover widget-level animations, while
// scrolling consumes [SpringSimulation] and the curve functions directly.
// Tickers advance once per frame when the embedder calls [StepTickers].
package animation

import (
	"sync"
	"time"
)

// Ticker invokes a callback with the time elapsed since Start on every
// frame until stopped.
type Ticker struct {
	fn      func(elapsed time.Duration)
	started time.Time
	running bool
}

// NewTicker creates an inactive ticker for the callback.
func NewTicker(fn func(elapsed time.Duration)) *Ticker {
	return &Ticker{fn: fn}
}

var frameLoop struct {
	sync.Mutex
	tickers map[*Ticker]struct{}
}

// Start registers the ticker with the frame loop. Starting a running
// ticker is a no-op.
func (t *Ticker) Start() {
	if t.running {
		return
	}
	t.running = true
	t.started = Now()
	frameLoop.Lock()
	if frameLoop.tickers == nil {
		frameLoop.tickers = make(map[*Ticker]struct{})
	}
	frameLoop.tickers[t] = struct{}{}
	frameLoop.Unlock()
}

// Stop removes the ticker from the frame loop.
func (t *Ticker) Stop() {
	if !t.running {
		return
	}
	t.running = false
	frameLoop.Lock()
	delete(frameLoop.tickers, t)
	frameLoop.Unlock()
}

// StepTickers delivers one frame to every running ticker. Callbacks run
// outside the registry lock so they may stop tickers or start new ones.
func StepTickers() {
	frameLoop.Lock()
	batch := make([]*Ticker, 0, len(frameLoop.tickers))
	for t := range frameLoop.tickers {
		batch = append(batch, t)
	}
	frameLoop.Unlock()

	now := Now()
	for _, t := range batch {
		if t.running && t.fn != nil {
			t.fn(now.Sub(t.started))
		}
	}
}

// HasActiveTickers reports whether any ticker is waiting on frames.
func HasActiveTickers() bool {
	frameLoop.Lock()
	defer frameLoop.Unlock()
	return len(frameLoop.tickers) > 0
}
