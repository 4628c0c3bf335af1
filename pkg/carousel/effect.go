package carousel

import (
	"fmt"
	"math"

	"github.com/go-drift/carousel/pkg/widgets"
)

// Effect selects how a card's inner content shifts horizontally as the
// card moves away from the viewport center during scrolling. The shift
// is applied opposite to the scroll direction, producing parallax.
type Effect int

const (
	// EffectNone applies no parallax; card content stays fixed.
	EffectNone Effect = iota
	// EffectLinearOffset shifts content 1:1 with the card's distance from
	// the viewport center.
	EffectLinearOffset
	// EffectClampedOffset shifts content at 1.4x the card's distance, capped
	// at 1.4x the card width so far-off cards don't run away.
	EffectClampedOffset
)

func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectLinearOffset:
		return "linear-offset"
	case EffectClampedOffset:
		return "clamped-offset"
	default:
		return fmt.Sprintf("Effect(%d)", int(e))
	}
}

// clampedRate is the parallax acceleration and cap factor for EffectClampedOffset.
const clampedRate = 1.4

// Displacement maps a card's signed distance from the viewport center to
// the horizontal shift of its content. The sign of the result follows the
// sign of distance.
func (e Effect) Displacement(distance, cardWidth float64) float64 {
	switch e {
	case EffectLinearOffset:
		return distance
	case EffectClampedOffset:
		shift := math.Min(math.Abs(distance)*clampedRate, cardWidth*clampedRate)
		return math.Copysign(shift, distance)
	default:
		return 0
	}
}

const (
	minDistanceScale = 0.9
	distanceFalloff  = 0.1
)

// DistanceScale computes a card's render scale from its distance to the
// viewport center. Cards at the center render at 1.0; scale falls off
// linearly to 0.9 at one half-viewport from center and stays there.
func DistanceScale(distance, halfViewport float64) float64 {
	if halfViewport <= 0 {
		return 1
	}
	scale := 1 - (math.Abs(distance)/halfViewport)*distanceFalloff
	return math.Max(minDistanceScale, scale)
}

// settleDip is how far card scale dips at the midpoint of a snap animation.
const settleDip = 0.05

// SettleScale computes the extra scale applied while a snap animation is
// in flight, from its raw time progress t in [0, 1]. The scale dips to
// 0.95 at mid-transition and returns to 1.0 at both ends.
func SettleScale(t float64) float64 {
	t = widgets.Clamp(t, 0, 1)
	return 1 - settleDip*(1-math.Abs(2*t-1))
}
