package animation

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// SpringSpec describes the stiffness and damping of a spring.
type SpringSpec struct {
	// AngularFrequency controls how fast the spring oscillates, in
	// cycles per second. Higher values settle faster.
	AngularFrequency float64
	// DampingRatio controls oscillation decay. 1.0 is critically damped
	// (no bounce), below 1.0 underdamped (bouncy).
	DampingRatio float64
}

// IOSSpring approximates the critically damped spring used by iOS for
// scroll edge bounce-back.
func IOSSpring() SpringSpec {
	return SpringSpec{AngularFrequency: 9.0, DampingRatio: 1.0}
}

// BouncySpring is an underdamped spring with a visible overshoot.
func BouncySpring() SpringSpec {
	return SpringSpec{AngularFrequency: 6.0, DampingRatio: 0.7}
}

// springStep is the fixed integration step. The simulation runs at a
// fixed internal rate and carries fractional frame time between steps,
// so results are independent of the caller's frame rate.
const springStep = 1.0 / 120.0

// Position and velocity thresholds below which the simulation settles.
const (
	springPositionTolerance = 0.1
	springVelocityTolerance = 0.5
)

// SpringSimulation integrates a damped spring toward a target position.
//
// Used for scroll overscroll bounce-back and other gesture-driven motion
// where an eased tween would feel wrong because the start velocity is
// nonzero.
type SpringSimulation struct {
	spring   harmonica.Spring
	position float64
	velocity float64
	target   float64
	carry    float64
	done     bool
}

// NewSpringSimulation creates a simulation starting at position with the
// given initial velocity, settling at target.
func NewSpringSimulation(spec SpringSpec, position, velocity, target float64) *SpringSimulation {
	return &SpringSimulation{
		spring:   harmonica.NewSpring(harmonica.FPS(120), spec.AngularFrequency, spec.DampingRatio),
		position: position,
		velocity: velocity,
		target:   target,
	}
}

// Step advances the simulation by dt seconds. Returns true once the
// spring has settled at the target.
func (s *SpringSimulation) Step(dt float64) bool {
	if s.done {
		return true
	}
	s.carry += dt
	for s.carry >= springStep {
		s.position, s.velocity = s.spring.Update(s.position, s.velocity, s.target)
		s.carry -= springStep
		if s.settled() {
			s.position = s.target
			s.velocity = 0
			s.done = true
			return true
		}
	}
	return false
}

// Position returns the current position.
func (s *SpringSimulation) Position() float64 {
	return s.position
}

// Velocity returns the current velocity.
func (s *SpringSimulation) Velocity() float64 {
	return s.velocity
}

// IsDone reports whether the spring has settled.
func (s *SpringSimulation) IsDone() bool {
	return s.done
}

func (s *SpringSimulation) settled() bool {
	return math.Abs(s.position-s.target) < springPositionTolerance &&
		math.Abs(s.velocity) < springVelocityTolerance
}
