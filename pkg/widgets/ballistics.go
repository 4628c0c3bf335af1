package widgets

import (
	"math"
	"sync"
	"time"

	"github.com/go-drift/carousel/pkg/animation"
)

// restVelocity is the speed below which a free fling is considered settled.
const restVelocity = 5.0

// flingState is one in-flight scroll animation. It runs in one of two
// modes: a free deceleration seeded with a release velocity (optionally
// handing off to a spring while overscrolled), or an eased interpolation
// from..to over a fixed duration, used by AnimateTo and page snaps.
type flingState struct {
	position *ScrollPosition
	velocity float64
	lastTime time.Time
	spring   *animation.SpringSimulation

	curve     func(float64) float64
	from      float64
	to        float64
	duration  time.Duration
	startTime time.Time
	progress  float64
}

func newDecelFling(position *ScrollPosition, velocity float64) *flingState {
	f := &flingState{
		position: position,
		velocity: velocity,
		lastTime: animation.Now(),
	}
	if position.overscrolled() && allowsOverscroll(position.physics) {
		f.armSpring()
	}
	return f
}

func newEasedFling(position *ScrollPosition, target float64, duration time.Duration, curve func(float64) float64) *flingState {
	now := animation.Now()
	return &flingState{
		position:  position,
		lastTime:  now,
		startTime: now,
		curve:     curve,
		from:      position.offset,
		to:        target,
		duration:  duration,
	}
}

// armSpring switches the fling to a spring pulling back to the nearest
// extent.
func (f *flingState) armSpring() {
	pos := f.position
	target := pos.max
	if pos.offset < pos.min {
		target = pos.min
	}
	f.spring = animation.NewSpringSimulation(animation.IOSSpring(), pos.offset, f.velocity, target)
}

// step advances the fling to now. It reports true when the animation has
// finished.
func (f *flingState) step(now time.Time) bool {
	if f.curve != nil {
		return f.stepEased(now)
	}
	if now.Before(f.lastTime) {
		f.lastTime = now
		return false
	}
	dt := now.Sub(f.lastTime).Seconds()
	f.lastTime = now
	if dt <= 0 {
		return false
	}
	// Cap the timestep so a stalled frame cannot make the scroll catch up
	// in one visible jump.
	const maxDt = 0.032
	if dt > maxDt {
		dt = maxDt
	}
	return f.advance(dt)
}

func (f *flingState) stepEased(now time.Time) bool {
	pos := f.position
	t := now.Sub(f.startTime).Seconds() / f.duration.Seconds()
	if t >= 1 {
		f.progress = 1
		pos.offset = f.to
		pos.notify()
		return true
	}
	if t < 0 {
		t = 0
	}
	f.progress = t
	pos.offset = f.from + (f.to-f.from)*f.curve(t)
	pos.notify()
	return false
}

func (f *flingState) advance(dt float64) bool {
	pos := f.position

	if f.spring != nil {
		done := f.spring.Step(dt)
		pos.offset = f.spring.Position()
		f.velocity = f.spring.Velocity()
		pos.notify()
		return done
	}

	// A fling that crosses an extent under bouncing physics hands off to
	// the spring mid-flight.
	if pos.overscrolled() && allowsOverscroll(pos.physics) {
		f.armSpring()
		done := f.spring.Step(dt)
		pos.offset = f.spring.Position()
		f.velocity = f.spring.Velocity()
		pos.notify()
		return done
	}

	velocity := f.velocity
	decel := 2200.0 + 0.385*math.Abs(velocity)
	if velocity > 0 {
		velocity = math.Max(0, velocity-decel*dt)
	} else if velocity < 0 {
		velocity = math.Min(0, velocity+decel*dt)
	}

	f.velocity = velocity
	pos.offset = pos.clampOffset(pos.offset+velocity*dt, allowsOverscroll(pos.physics))
	pos.notify()

	return math.Abs(velocity) < restVelocity
}

// Active flings are tracked globally so the frame pump can advance every
// scrolling strip without threading a reference through the tree.
var (
	flingMu     sync.Mutex
	activeFling = make(map[*ScrollPosition]struct{})
)

func registerFling(position *ScrollPosition) {
	flingMu.Lock()
	activeFling[position] = struct{}{}
	flingMu.Unlock()
}

func unregisterFling(position *ScrollPosition) {
	flingMu.Lock()
	delete(activeFling, position)
	flingMu.Unlock()
}

// HasActiveBallistics reports whether any scroll animation is running.
func HasActiveBallistics() bool {
	flingMu.Lock()
	defer flingMu.Unlock()
	return len(activeFling) > 0
}

// StepBallistics advances every running scroll animation to the current
// animation clock time, settling the ones that finish.
func StepBallistics() {
	flingMu.Lock()
	if len(activeFling) == 0 {
		flingMu.Unlock()
		return
	}
	now := animation.Now()
	positions := make([]*ScrollPosition, 0, len(activeFling))
	for position := range activeFling {
		positions = append(positions, position)
	}
	flingMu.Unlock()

	for _, position := range positions {
		if position.fling == nil {
			continue
		}
		if position.fling.step(now) {
			position.StopBallistic()
			position.settle()
		}
	}
}
