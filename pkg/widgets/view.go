package widgets

import (
	"github.com/go-drift/carousel/pkg/core"
	"github.com/go-drift/carousel/pkg/graphics"
	"github.com/go-drift/carousel/pkg/layout"
)

// View roots a widget tree: it fills the surface it is given and lays its
// child out tight to that size. [Root] wraps a tree in one.
type View struct {
	core.RenderObjectBase
	ChildWidget core.Widget
}

func (v View) Child() core.Widget {
	return v.ChildWidget
}

func (v View) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	view := &renderView{}
	view.SetSelf(view)
	return view
}

func (v View) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {}

type renderView struct {
	childBox
}

// IsRepaintBoundary is always true at the root.
func (r *renderView) IsRepaintBoundary() bool {
	return true
}

func (r *renderView) PerformLayout() {
	constraints := r.Constraints()
	width := constraints.MaxWidth
	if width <= 0 {
		width = constraints.MinWidth
	}
	height := constraints.MaxHeight
	if height <= 0 {
		height = constraints.MinHeight
	}
	size := graphics.Size{Width: width, Height: height}
	r.SetSize(size)
	if r.child != nil {
		// Tight constraints make the child a relayout boundary.
		r.child.Layout(layout.Tight(size), false)
	}
}

func (r *renderView) Paint(ctx *layout.PaintContext) {
	if r.child != nil {
		ctx.PaintChild(r.child, graphics.Offset{})
	}
}

func (r *renderView) HitTest(position graphics.Offset, result *layout.HitTestResult) bool {
	if r.child != nil {
		return r.child.HitTest(position, result)
	}
	return false
}
