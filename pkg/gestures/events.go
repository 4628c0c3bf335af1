// Package gestures provides pointer event types, gesture recognizers, and
// the gesture arena used to disambiguate between competing recognizers.
package gestures

import (
	"time"

	"github.com/go-drift/carousel/pkg/graphics"
)

// PointerPhase identifies the stage of a pointer interaction.
type PointerPhase int

const (
	PointerPhaseDown PointerPhase = iota
	PointerPhaseMove
	PointerPhaseUp
	PointerPhaseCancel
)

func (p PointerPhase) String() string {
	switch p {
	case PointerPhaseDown:
		return "down"
	case PointerPhaseMove:
		return "move"
	case PointerPhaseUp:
		return "up"
	case PointerPhaseCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerEvent is a single pointer sample routed through hit testing.
//
// Position is in global coordinates. Delta is the movement since the
// previous event for the same pointer, when known. Timestamp may be zero
// for synthetic events; recognizers fall back to an assumed frame spacing
// when estimating velocity.
type PointerEvent struct {
	PointerID int64
	Position  graphics.Offset
	Delta     graphics.Offset
	Phase     PointerPhase
	Timestamp time.Time
}

// DefaultTouchSlop is the distance in logical pixels a pointer must travel
// before a drag gesture is recognized.
const DefaultTouchSlop = 18.0

// DragStartDetails describes the start of a drag.
type DragStartDetails struct {
	Position graphics.Offset
}

// DragUpdateDetails describes an incremental drag movement.
//
// PrimaryDelta is the component of Delta along the recognizer's axis.
// For pan recognizers PrimaryDelta is zero.
type DragUpdateDetails struct {
	Position     graphics.Offset
	Delta        graphics.Offset
	PrimaryDelta float64
}

// DragEndDetails describes the end of a drag, with the estimated velocity
// in logical pixels per second.
type DragEndDetails struct {
	Velocity        graphics.Offset
	PrimaryVelocity float64
}
