package widgets

import (
	"github.com/go-drift/carousel/pkg/core"
	"github.com/go-drift/carousel/pkg/graphics"
	"github.com/go-drift/carousel/pkg/layout"
)

// ColorBox paints a solid rectangle, optionally sized and optionally
// wrapping a child.
//
// With Width or Height set the box is fixed along that axis; otherwise it
// sizes to its child, or fills the incoming constraints when it has none.
//
//	widgets.ColorBox{
//	    Color:  graphics.RGB(94, 92, 230),
//	    Width:  310,
//	    Height: 403,
//	}
type ColorBox struct {
	core.RenderObjectBase
	Color       graphics.Color
	Width       float64
	Height      float64
	ChildWidget core.Widget
}

func (c ColorBox) Child() core.Widget {
	return c.ChildWidget
}

func (c ColorBox) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	r := &renderColorBox{
		color:  c.Color,
		width:  c.Width,
		height: c.Height,
	}
	r.SetSelf(r)
	return r
}

func (c ColorBox) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	if r, ok := renderObject.(*renderColorBox); ok {
		r.color = c.Color
		r.width = c.Width
		r.height = c.Height
		r.MarkNeedsLayout()
		r.MarkNeedsPaint()
	}
}

type renderColorBox struct {
	layout.RenderBoxBase
	child  layout.RenderBox
	color  graphics.Color
	width  float64
	height float64
}

func (r *renderColorBox) SetChild(child layout.RenderObject) {
	layout.SetParentOnChild(r.child, nil)
	r.child = layout.AsRenderBox(child)
	layout.SetParentOnChild(r.child, r)
}

func (r *renderColorBox) VisitChildren(visitor func(layout.RenderObject)) {
	if r.child != nil {
		visitor(r.child)
	}
}

func (r *renderColorBox) PerformLayout() {
	constraints := r.Constraints()
	inner := constraints
	if r.width > 0 {
		inner.MinWidth = r.width
		inner.MaxWidth = r.width
	}
	if r.height > 0 {
		inner.MinHeight = r.height
		inner.MaxHeight = r.height
	}

	if r.child != nil {
		r.child.Layout(inner, true)
		r.child.SetParentData(&layout.BoxParentData{})
		size := r.child.Size()
		if r.width > 0 {
			size.Width = r.width
		}
		if r.height > 0 {
			size.Height = r.height
		}
		r.SetSize(constraints.Constrain(size))
		return
	}

	size := graphics.Size{Width: r.width, Height: r.height}
	if size.Width <= 0 {
		size.Width = inner.MaxWidth
	}
	if size.Height <= 0 {
		size.Height = inner.MaxHeight
	}
	r.SetSize(constraints.Constrain(size))
}

func (r *renderColorBox) Paint(ctx *layout.PaintContext) {
	size := r.Size()
	ctx.Canvas.DrawRect(graphics.RectFromLTWH(0, 0, size.Width, size.Height), r.color)
	if r.child != nil {
		ctx.PaintChild(r.child, getChildOffset(r.child))
	}
}

func (r *renderColorBox) HitTest(position graphics.Offset, result *layout.HitTestResult) bool {
	if !layout.WithinBounds(position, r.Size()) {
		return false
	}
	if r.child != nil && r.child.HitTest(position, result) {
		result.Add(r)
		return true
	}
	result.Add(r)
	return true
}
