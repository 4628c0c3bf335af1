package widgets

import (
	"github.com/go-drift/carousel/pkg/core"
	"github.com/go-drift/carousel/pkg/graphics"
	"github.com/go-drift/carousel/pkg/layout"
)

// RepaintBoundary fences its subtree off into its own paint layer, so
// static content does not re-record while a neighbor animates. The carousel
// strip marks itself as one implicitly; wrap a card's expensive body in an
// explicit boundary when its siblings repaint every scroll tick.
type RepaintBoundary struct {
	ChildWidget core.Widget
}

func (r RepaintBoundary) CreateElement() core.Element {
	return core.NewRenderObjectElement(r, nil)
}

func (r RepaintBoundary) Key() any { return nil }

func (r RepaintBoundary) Child() core.Widget { return r.ChildWidget }

func (r RepaintBoundary) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	box := &renderRepaintBoundary{}
	box.SetSelf(box)
	return box
}

func (r RepaintBoundary) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
}

type renderRepaintBoundary struct {
	childBox
}

func (r *renderRepaintBoundary) IsRepaintBoundary() bool {
	return true
}

func (r *renderRepaintBoundary) PerformLayout() {
	constraints := r.Constraints()
	if r.child == nil {
		r.SetSize(constraints.Constrain(graphics.Size{}))
		return
	}
	r.child.Layout(constraints, true)
	r.SetSize(r.child.Size())
}

func (r *renderRepaintBoundary) Paint(ctx *layout.PaintContext) {
	if r.child != nil {
		ctx.PaintChild(r.child, getChildOffset(r.child))
	}
}

func (r *renderRepaintBoundary) HitTest(position graphics.Offset, result *layout.HitTestResult) bool {
	if !layout.WithinBounds(position, r.Size()) {
		return false
	}
	if r.child == nil {
		return false
	}
	local := position.Sub(getChildOffset(r.child))
	return r.child.HitTest(local, result)
}
