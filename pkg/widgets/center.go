package widgets

import (
	"math"

	"github.com/go-drift/carousel/pkg/core"
	"github.com/go-drift/carousel/pkg/graphics"
	"github.com/go-drift/carousel/pkg/layout"
)

// Center fills the available space and places its loosely constrained
// child in the middle of it. Under unbounded constraints it shrink-wraps
// to the child instead.
type Center struct {
	ChildWidget core.Widget
}

func (c Center) CreateElement() core.Element {
	return core.NewRenderObjectElement(c, nil)
}

func (c Center) Key() any { return nil }

func (c Center) Child() core.Widget { return c.ChildWidget }

func (c Center) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	center := &renderCenter{}
	center.SetSelf(center)
	return center
}

func (c Center) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {}

type renderCenter struct {
	childBox
}

func (r *renderCenter) PerformLayout() {
	constraints := r.Constraints()

	targetWidth := constraints.MaxWidth
	targetHeight := constraints.MaxHeight
	measured := false

	// An unbounded axis adopts the child's size on that axis, which takes
	// a measuring pass first.
	if r.child != nil && (math.IsInf(targetWidth, 1) || targetWidth == math.MaxFloat64 ||
		math.IsInf(targetHeight, 1) || targetHeight == math.MaxFloat64) {
		r.child.Layout(layout.Loose(graphics.Size{Width: targetWidth, Height: targetHeight}), true)
		childSize := r.child.Size()
		bothUnbounded := true
		if targetWidth == math.MaxFloat64 || math.IsInf(targetWidth, 1) {
			targetWidth = childSize.Width
		} else {
			bothUnbounded = false
		}
		if targetHeight == math.MaxFloat64 || math.IsInf(targetHeight, 1) {
			targetHeight = childSize.Height
		} else {
			bothUnbounded = false
		}
		// With both axes unbounded the measuring pass already used the
		// final constraints.
		measured = bothUnbounded
	}

	size := constraints.Constrain(graphics.Size{Width: targetWidth, Height: targetHeight})
	r.SetSize(size)

	if r.child == nil {
		return
	}
	if !measured {
		r.child.Layout(layout.Loose(size), true)
	}
	childSize := r.child.Size()
	r.child.SetParentData(&layout.BoxParentData{Offset: graphics.Offset{
		X: (size.Width - childSize.Width) / 2,
		Y: (size.Height - childSize.Height) / 2,
	}})
}

func (r *renderCenter) Paint(ctx *layout.PaintContext) {
	if r.child != nil {
		ctx.PaintChild(r.child, getChildOffset(r.child))
	}
}

// HitTest only reports hits on the child; the empty area around it stays
// transparent to pointers.
func (r *renderCenter) HitTest(position graphics.Offset, result *layout.HitTestResult) bool {
	if !layout.WithinBounds(position, r.Size()) {
		return false
	}
	local := position.Sub(getChildOffset(r.child))
	if r.child != nil && r.child.HitTest(local, result) {
		return true
	}
	return false
}
