package widgets

import (
	"math"
	"time"
)

// ScrollPhysics shapes how drags and releases move a [ScrollPosition].
type ScrollPhysics interface {
	// ApplyPhysicsToUserOffset may scale a raw drag delta, e.g. to add
	// resistance while overscrolled.
	ApplyPhysicsToUserOffset(position *ScrollPosition, offset float64) float64
	// ApplyBoundaryConditions returns the portion of a proposed offset
	// that lies outside the allowed range and must be discarded.
	ApplyBoundaryConditions(position *ScrollPosition, value float64) float64
}

// ClampingScrollPhysics stops dead at the extents, Android style.
type ClampingScrollPhysics struct{}

func (ClampingScrollPhysics) ApplyPhysicsToUserOffset(_ *ScrollPosition, offset float64) float64 {
	return offset
}

func (ClampingScrollPhysics) ApplyBoundaryConditions(position *ScrollPosition, value float64) float64 {
	if value < position.min {
		return value - position.min
	}
	if value > position.max {
		return value - position.max
	}
	return 0
}

// BouncingScrollPhysics lets a drag run past the extents against growing
// resistance and springs back on release, iOS style.
type BouncingScrollPhysics struct{}

func (BouncingScrollPhysics) ApplyPhysicsToUserOffset(position *ScrollPosition, offset float64) float64 {
	dragsOutward := (position.offset <= position.min && offset < 0) ||
		(position.offset >= position.max && offset > 0)
	if !dragsOutward {
		return offset
	}
	overscroll := 0.0
	if position.offset < position.min {
		overscroll = position.min - position.offset
	} else if position.offset > position.max {
		overscroll = position.offset - position.max
	}
	fraction := overscroll / viewportExtentOf(position)
	resistance := 1.0 / (1.0 + 2.4*fraction)
	if resistance < 0.12 {
		resistance = 0.12
	}
	return offset * resistance
}

func (BouncingScrollPhysics) ApplyBoundaryConditions(_ *ScrollPosition, _ float64) float64 {
	return 0
}

// PagingVelocityThreshold is the fling speed, in logical pixels per second,
// above which a release advances to the adjacent page instead of settling
// on the nearest one.
const PagingVelocityThreshold = 300.0

// DefaultSnapDuration is the length of the page snap animation when a
// [PagingScrollPhysics] does not override it.
const DefaultSnapDuration = 350 * time.Millisecond

// PagingScrollPhysics makes a strip settle on multiples of SnapInterval,
// which is how a card carousel rests on exactly one card. While dragging it
// clamps like [ClampingScrollPhysics].
type PagingScrollPhysics struct {
	// SnapInterval is the distance between adjacent page boundaries,
	// card width plus item spacing for a carousel. Non-positive disables
	// snapping.
	SnapInterval float64
	// SnapDuration overrides DefaultSnapDuration when positive.
	SnapDuration time.Duration
	// SnapCurve overrides animation.Snappy when non-nil.
	SnapCurve func(float64) float64
}

func (PagingScrollPhysics) ApplyPhysicsToUserOffset(_ *ScrollPosition, offset float64) float64 {
	return offset
}

func (PagingScrollPhysics) ApplyBoundaryConditions(position *ScrollPosition, value float64) float64 {
	return ClampingScrollPhysics{}.ApplyBoundaryConditions(position, value)
}

// TargetOffset resolves the boundary a release should settle on: one page
// over for flings past [PagingVelocityThreshold], the nearest page
// otherwise.
func (p PagingScrollPhysics) TargetOffset(offset, velocity float64) float64 {
	if p.SnapInterval <= 0 {
		return offset
	}
	page := offset / p.SnapInterval
	switch {
	case velocity > PagingVelocityThreshold:
		page = math.Floor(page) + 1
	case velocity < -PagingVelocityThreshold:
		page = math.Ceil(page) - 1
	default:
		page = math.Round(page)
	}
	if page < 0 {
		page = 0
	}
	return page * p.SnapInterval
}

func (p PagingScrollPhysics) snapDuration() time.Duration {
	if p.SnapDuration > 0 {
		return p.SnapDuration
	}
	return DefaultSnapDuration
}

func allowsOverscroll(physics ScrollPhysics) bool {
	_, ok := physics.(BouncingScrollPhysics)
	return ok
}
