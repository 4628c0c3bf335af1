package animation

import "github.com/go-drift/carousel/pkg/graphics"

// Tween maps a controller's 0 to 1 value onto another range or type.
type Tween[T any] struct {
	Begin T
	End   T
	// Lerp interpolates between a and b at progress t in [0, 1].
	Lerp func(a, b T, t float64) T
}

// Evaluate returns the value at progress t. A tween without a Lerp
// function always returns End.
func (tw *Tween[T]) Evaluate(t float64) T {
	if tw.Lerp == nil {
		return tw.End
	}
	return tw.Lerp(tw.Begin, tw.End, t)
}

// Transform evaluates the tween at the controller's current value.
func (tw *Tween[T]) Transform(c *AnimationController) T {
	return tw.Evaluate(c.Value)
}

// LerpFloat64 linearly interpolates between a and b.
func LerpFloat64(a, b, t float64) float64 { return a + (b-a)*t }

// LerpOffset interpolates both axes independently.
func LerpOffset(a, b graphics.Offset, t float64) graphics.Offset {
	return graphics.Offset{X: LerpFloat64(a.X, b.X, t), Y: LerpFloat64(a.Y, b.Y, t)}
}

// LerpColor interpolates each ARGB channel independently.
func LerpColor(a, b graphics.Color, t float64) graphics.Color {
	mix := func(shift uint) uint32 {
		av := float64((uint32(a) >> shift) & 0xFF)
		bv := float64((uint32(b) >> shift) & 0xFF)
		return uint32(LerpFloat64(av, bv, t)) << shift
	}
	return graphics.Color(mix(24) | mix(16) | mix(8) | mix(0))
}

// TweenFloat64 tweens between two float64 values.
func TweenFloat64(begin, end float64) *Tween[float64] {
	return &Tween[float64]{Begin: begin, End: end, Lerp: LerpFloat64}
}

// TweenOffset tweens between two offsets.
func TweenOffset(begin, end graphics.Offset) *Tween[graphics.Offset] {
	return &Tween[graphics.Offset]{Begin: begin, End: end, Lerp: LerpOffset}
}

// TweenColor tweens between two colors.
func TweenColor(begin, end graphics.Color) *Tween[graphics.Color] {
	return &Tween[graphics.Color]{Begin: begin, End: end, Lerp: LerpColor}
}
