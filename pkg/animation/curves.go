package animation

import "math"

// A curve reshapes linear progress in [0, 1] into eased progress. Assign
// one to an [AnimationController]'s Curve field; the controller applies
// it before listeners see Value.

// LinearCurve passes progress through unchanged.
func LinearCurve(t float64) float64 {
	return t
}

// IOSNavigationCurve approximates the easing iOS uses for navigation
// transitions.
var IOSNavigationCurve = CubicBezier(0.22, 1.0, 0.36, 1.0)

// Ease matches CSS ease.
var Ease = CubicBezier(0.25, 0.1, 0.25, 1.0)

// EaseIn starts slowly and accelerates, matching CSS ease-in. Suits
// elements leaving the screen.
var EaseIn = CubicBezier(0.4, 0.0, 1.0, 1.0)

// EaseOut starts fast and decelerates, matching CSS ease-out. Suits
// elements arriving on screen.
var EaseOut = CubicBezier(0.0, 0.0, 0.2, 1.0)

// EaseInOut ramps up and back down, matching CSS ease-in-out.
var EaseInOut = CubicBezier(0.4, 0.0, 0.2, 1.0)

// Snappy decelerates hard with a slight overshoot before settling. Used
// for paging snap animations.
var Snappy = CubicBezier(0.33, 1.08, 0.3, 1.0)

// CubicBezier builds an easing function from the two control points of a
// CSS cubic-bezier() curve. The curve is anchored at (0,0) and (1,1).
func CubicBezier(x1, y1, x2, y2 float64) func(float64) float64 {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		// Newton-Raphson first; it converges in a few iterations for
		// well-behaved control points.
		u := t
		for i := 0; i < 8; i++ {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return sampleCurve(y1, y2, clampUnit(u))
			}
			dx := sampleCurveDerivative(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// Bisection keeps the solution stable when Newton diverges.
		lo, hi := 0.0, 1.0
		u = clampUnit(u)
		for i := 0; i < 12; i++ {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) * 0.5
		}

		return sampleCurve(y1, y2, u)
	}
}

func sampleCurve(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func sampleCurveDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
