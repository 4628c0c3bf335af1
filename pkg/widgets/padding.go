package widgets

import (
	"github.com/go-drift/carousel/pkg/core"
	"github.com/go-drift/carousel/pkg/graphics"
	"github.com/go-drift/carousel/pkg/layout"
)

// Padding insets its child by an [layout.EdgeInsets]. Without a child it
// occupies just the inset area.
//
//	Padding{Padding: layout.EdgeInsetsSymmetric(24, 12), ChildWidget: label}
type Padding struct {
	Padding     layout.EdgeInsets
	ChildWidget core.Widget
}

func (p Padding) CreateElement() core.Element {
	return core.NewRenderObjectElement(p, nil)
}

func (p Padding) Key() any { return nil }

func (p Padding) Child() core.Widget { return p.ChildWidget }

func (p Padding) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	pad := &renderPadding{padding: p.Padding}
	pad.SetSelf(pad)
	return pad
}

func (p Padding) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	if pad, ok := renderObject.(*renderPadding); ok {
		pad.padding = p.Padding
		pad.MarkNeedsLayout()
		pad.MarkNeedsPaint()
	}
}

type renderPadding struct {
	childBox
	padding layout.EdgeInsets
}

func (r *renderPadding) PerformLayout() {
	constraints := r.Constraints()
	if r.child == nil {
		r.SetSize(constraints.Constrain(graphics.Size{
			Width:  r.padding.Horizontal(),
			Height: r.padding.Vertical(),
		}))
		return
	}
	r.child.Layout(constraints.Deflate(r.padding), true)
	childSize := r.child.Size()
	r.SetSize(constraints.Constrain(graphics.Size{
		Width:  childSize.Width + r.padding.Horizontal(),
		Height: childSize.Height + r.padding.Vertical(),
	}))
	r.child.SetParentData(&layout.BoxParentData{
		Offset: graphics.Offset{X: r.padding.Left, Y: r.padding.Top},
	})
}

func (r *renderPadding) Paint(ctx *layout.PaintContext) {
	if r.child != nil {
		ctx.PaintChild(r.child, getChildOffset(r.child))
	}
}

func (r *renderPadding) HitTest(position graphics.Offset, result *layout.HitTestResult) bool {
	if !layout.WithinBounds(position, r.Size()) {
		return false
	}
	local := position.Sub(getChildOffset(r.child))
	if r.child != nil && r.child.HitTest(local, result) {
		return true
	}
	result.Add(r)
	return true
}
