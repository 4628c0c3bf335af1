package widgets

import (
	"github.com/go-drift/carousel/pkg/core"
	"github.com/go-drift/carousel/pkg/graphics"
	"github.com/go-drift/carousel/pkg/layout"
)

// getChildOffset reads the offset a parent stored in a child's parent data.
func getChildOffset(child layout.RenderBox) graphics.Offset {
	if child == nil {
		return graphics.Offset{}
	}
	if data, ok := child.ParentData().(*layout.BoxParentData); ok {
		return data.Offset
	}
	return graphics.Offset{}
}

// Root wraps a widget tree in a top-level [View].
func Root(child core.Widget) View {
	return View{ChildWidget: child}
}

// VSpace is a fixed-height gap, e.g. between a card strip and its
// indicator.
func VSpace(height float64) SizedBox {
	return SizedBox{Height: height}
}

// HSpace is a fixed-width gap between horizontal neighbors.
func HSpace(width float64) SizedBox {
	return SizedBox{Width: width}
}

// Spacer soaks up free space along the main axis of a [Row] or [Column].
func Spacer() Expanded {
	return Expanded{ChildWidget: SizedBox{}}
}

// Clamp bounds value to [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
