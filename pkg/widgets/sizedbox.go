package widgets

import (
	"github.com/go-drift/carousel/pkg/core"
	"github.com/go-drift/carousel/pkg/graphics"
	"github.com/go-drift/carousel/pkg/layout"
)

// SizedBox fixes one or both dimensions of its child. A dimension left at
// zero defers to the child's own size, so SizedBox doubles as a spacer when
// it has no child at all ([VSpace] and [HSpace] build those).
//
//	SizedBox{Width: 310, Height: 403, ChildWidget: cardBody}
type SizedBox struct {
	core.RenderObjectBase
	Width       float64
	Height      float64
	ChildWidget core.Widget
}

func (s SizedBox) Child() core.Widget {
	return s.ChildWidget
}

func (s SizedBox) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	box := &renderSizedBox{width: s.Width, height: s.Height}
	box.SetSelf(box)
	return box
}

func (s SizedBox) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	if box, ok := renderObject.(*renderSizedBox); ok {
		box.width = s.Width
		box.height = s.Height
		box.MarkNeedsLayout()
		box.MarkNeedsPaint()
	}
}

type renderSizedBox struct {
	childBox
	width  float64
	height float64
}

// PerformLayout tightens the child's constraints along each explicitly
// sized axis and adopts the child's size along the rest.
func (r *renderSizedBox) PerformLayout() {
	constraints := r.Constraints()
	requested := constraints.Constrain(graphics.Size{Width: r.width, Height: r.height})

	if r.child == nil {
		r.SetSize(requested)
		return
	}

	childConstraints := constraints
	if r.width > 0 {
		childConstraints.MinWidth = requested.Width
		childConstraints.MaxWidth = requested.Width
	}
	if r.height > 0 {
		childConstraints.MinHeight = requested.Height
		childConstraints.MaxHeight = requested.Height
	}
	r.child.Layout(childConstraints, true)
	r.child.SetParentData(&layout.BoxParentData{})

	size := r.child.Size()
	if r.width > 0 {
		size.Width = requested.Width
	}
	if r.height > 0 {
		size.Height = requested.Height
	}
	r.SetSize(constraints.Constrain(size))
}

func (r *renderSizedBox) Paint(ctx *layout.PaintContext) {
	if r.child != nil {
		ctx.PaintChild(r.child, graphics.Offset{})
	}
}

func (r *renderSizedBox) HitTest(position graphics.Offset, result *layout.HitTestResult) bool {
	if !layout.WithinBounds(position, r.Size()) {
		return false
	}
	if r.child != nil && r.child.HitTest(position, result) {
		return true
	}
	result.Add(r)
	return true
}
