package animation

import "time"

// AnimationStatus reports where a controller is in its 0 to 1 run.
type AnimationStatus int

const (
	// AnimationDismissed means the value rests at 0.
	AnimationDismissed AnimationStatus = iota
	// AnimationForward means the value is moving toward 1.
	AnimationForward
	// AnimationReverse means the value is moving toward 0.
	AnimationReverse
	// AnimationCompleted means the value rests at 1.
	AnimationCompleted
)

func (s AnimationStatus) String() string {
	switch s {
	case AnimationForward:
		return "forward"
	case AnimationReverse:
		return "reverse"
	case AnimationCompleted:
		return "completed"
	}
	return "dismissed"
}

// notifier fans a value out to subscribers. Remove functions returned by
// add stay valid after other subscribers leave.
type notifier[T any] struct {
	nextID int
	subs   map[int]func(T)
}

func (n *notifier[T]) add(fn func(T)) func() {
	if n.subs == nil {
		n.subs = make(map[int]func(T))
	}
	id := n.nextID
	n.nextID++
	n.subs[id] = fn
	return func() { delete(n.subs, id) }
}

func (n *notifier[T]) emit(v T) {
	for _, fn := range n.subs {
		fn(v)
	}
}

// AnimationController ramps Value between 0 and 1 over Duration, applying
// Curve to the linear progress. States subscribe with AddListener and call
// SetState from the callback to rebuild on each frame.
//
// Call Dispose when the owning state goes away.
type AnimationController struct {
	// Value is the current eased progress, in [0, 1].
	Value float64

	// Duration is how long a full 0 to 1 run takes.
	Duration time.Duration

	// Curve shapes the linear progress. Nil means linear.
	Curve func(float64) float64

	status AnimationStatus
	from   float64
	target float64
	frames *Ticker
	values notifier[struct{}]
	states notifier[AnimationStatus]
}

// NewAnimationController creates a controller resting at 0.
func NewAnimationController(duration time.Duration) *AnimationController {
	return &AnimationController{Duration: duration, Curve: LinearCurve}
}

// Forward animates from the current value to 1.
func (c *AnimationController) Forward() { c.run(1, AnimationForward) }

// Reverse animates from the current value to 0.
func (c *AnimationController) Reverse() { c.run(0, AnimationReverse) }

func (c *AnimationController) run(target float64, status AnimationStatus) {
	c.halt()
	c.from = c.Value
	c.target = target
	c.setStatus(status)
	c.frames = NewTicker(c.step)
	c.frames.Start()
}

func (c *AnimationController) step(elapsed time.Duration) {
	t := 1.0
	if c.Duration > 0 {
		t = min(float64(elapsed)/float64(c.Duration), 1)
	}
	eased := t
	if c.Curve != nil {
		eased = c.Curve(t)
	}
	c.Value = c.from + (c.target-c.from)*eased
	c.values.emit(struct{}{})

	if t >= 1 {
		c.halt()
		if c.Value >= 1 {
			c.setStatus(AnimationCompleted)
		} else if c.Value <= 0 {
			c.setStatus(AnimationDismissed)
		}
	}
}

func (c *AnimationController) halt() {
	if c.frames != nil {
		c.frames.Stop()
		c.frames = nil
	}
}

func (c *AnimationController) setStatus(status AnimationStatus) {
	if status == c.status {
		return
	}
	c.status = status
	c.states.emit(status)
}

// Status returns the controller's position in its run.
func (c *AnimationController) Status() AnimationStatus { return c.status }

// IsAnimating reports whether a ticker is currently driving the value.
func (c *AnimationController) IsAnimating() bool { return c.frames != nil }

// AddListener subscribes to value changes. The returned function removes
// the subscription.
func (c *AnimationController) AddListener(fn func()) func() {
	return c.values.add(func(struct{}) { fn() })
}

// AddStatusListener subscribes to status transitions.
func (c *AnimationController) AddStatusListener(fn func(AnimationStatus)) func() {
	return c.states.add(fn)
}

// Dispose stops the animation and drops all subscriptions.
func (c *AnimationController) Dispose() {
	c.halt()
	c.values.subs = nil
	c.states.subs = nil
}
