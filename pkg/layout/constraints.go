// Package layout provides the render object protocol: constraints, the box
// layout base, the paint context, and the pipeline owner that schedules work.
package layout

import (
	"github.com/go-drift/carousel/pkg/graphics"
)

// Constraints describe the min/max box a render object may occupy.
type Constraints struct {
	MinWidth  float64
	MaxWidth  float64
	MinHeight float64
	MaxHeight float64
}

// Tight returns constraints that force an exact size.
func Tight(size graphics.Size) Constraints {
	return Constraints{
		MinWidth:  size.Width,
		MaxWidth:  size.Width,
		MinHeight: size.Height,
		MaxHeight: size.Height,
	}
}

// Loose returns constraints that allow any size up to the given maximum.
func Loose(size graphics.Size) Constraints {
	return Constraints{MaxWidth: size.Width, MaxHeight: size.Height}
}

// IsTight returns true when only one size satisfies the constraints.
func (c Constraints) IsTight() bool {
	return c.MinWidth == c.MaxWidth && c.MinHeight == c.MaxHeight
}

// Constrain clamps a size to satisfy the constraints.
func (c Constraints) Constrain(size graphics.Size) graphics.Size {
	return graphics.Size{
		Width:  clampDim(size.Width, c.MinWidth, c.MaxWidth),
		Height: clampDim(size.Height, c.MinHeight, c.MaxHeight),
	}
}

// Deflate returns constraints reduced by the given insets.
func (c Constraints) Deflate(insets EdgeInsets) Constraints {
	horizontal := insets.Horizontal()
	vertical := insets.Vertical()
	return Constraints{
		MinWidth:  maxDim(0, c.MinWidth-horizontal),
		MaxWidth:  maxDim(0, c.MaxWidth-horizontal),
		MinHeight: maxDim(0, c.MinHeight-vertical),
		MaxHeight: maxDim(0, c.MaxHeight-vertical),
	}
}

// EdgeInsets describes offsets from the four edges of a box.
type EdgeInsets struct {
	Left, Top, Right, Bottom float64
}

// EdgeInsetsAll returns uniform insets on all sides.
func EdgeInsetsAll(value float64) EdgeInsets {
	return EdgeInsets{Left: value, Top: value, Right: value, Bottom: value}
}

// EdgeInsetsSymmetric returns insets with the given horizontal and vertical values.
func EdgeInsetsSymmetric(horizontal, vertical float64) EdgeInsets {
	return EdgeInsets{Left: horizontal, Top: vertical, Right: horizontal, Bottom: vertical}
}

// EdgeInsetsOnly returns insets with explicit per-side values.
func EdgeInsetsOnly(left, top, right, bottom float64) EdgeInsets {
	return EdgeInsets{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Horizontal returns the combined left and right insets.
func (e EdgeInsets) Horizontal() float64 { return e.Left + e.Right }

// Vertical returns the combined top and bottom insets.
func (e EdgeInsets) Vertical() float64 { return e.Top + e.Bottom }

// Add returns insets uniformly increased by value.
func (e EdgeInsets) Add(value float64) EdgeInsets {
	return EdgeInsets{
		Left:   e.Left + value,
		Top:    e.Top + value,
		Right:  e.Right + value,
		Bottom: e.Bottom + value,
	}
}

func clampDim(value, min, max float64) float64 {
	if max < min {
		max = min
	}
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

func maxDim(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
