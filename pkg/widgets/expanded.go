package widgets

import (
	"github.com/go-drift/carousel/pkg/core"
	"github.com/go-drift/carousel/pkg/graphics"
	"github.com/go-drift/carousel/pkg/layout"
)

// Expanded claims free main-axis space inside a [Row] or [Column]. When
// several Expanded children compete, space is split in proportion to their
// Flex factors (default 1). The parent must use MainAxisSizeMax, otherwise
// there is no free space to claim.
//
// In this kit it mostly appears through [Spacer], pushing a footer or an
// indicator away from the card strip.
type Expanded struct {
	ChildWidget core.Widget
	Flex        int
}

func (e Expanded) CreateElement() core.Element {
	return core.NewRenderObjectElement(e, nil)
}

func (e Expanded) Key() any { return nil }

func (e Expanded) Child() core.Widget { return e.ChildWidget }

func (e Expanded) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	box := &renderFlexChild{flex: e.effectiveFlex()}
	box.SetSelf(box)
	return box
}

func (e Expanded) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	if box, ok := renderObject.(*renderFlexChild); ok {
		box.flex = e.effectiveFlex()
		box.MarkNeedsLayout()
	}
}

func (e Expanded) effectiveFlex() int {
	if e.Flex <= 0 {
		return 1
	}
	return e.Flex
}

// renderFlexChild reports a flex factor to the enclosing renderFlex and
// otherwise passes the allocated constraints straight through to its child.
type renderFlexChild struct {
	childBox
	flex int
}

func (r *renderFlexChild) FlexFactor() int {
	return r.flex
}

// PerformLayout forwards the constraints the parent flex computed for this
// child's share. The main axis arrives tight, so sizing to the child is
// already sizing to the allocation; clamping guards against a child that
// ignores its constraints.
func (r *renderFlexChild) PerformLayout() {
	constraints := r.Constraints()
	if r.child == nil {
		r.SetSize(constraints.Constrain(graphics.Size{}))
		return
	}
	r.child.Layout(constraints, true)
	r.SetSize(constraints.Constrain(r.child.Size()))
	r.child.SetParentData(&layout.BoxParentData{})
}

func (r *renderFlexChild) Paint(ctx *layout.PaintContext) {
	if r.child != nil {
		ctx.PaintChild(r.child, graphics.Offset{})
	}
}

func (r *renderFlexChild) HitTest(position graphics.Offset, result *layout.HitTestResult) bool {
	if !layout.WithinBounds(position, r.Size()) {
		return false
	}
	if r.child != nil && r.child.HitTest(position, result) {
		return true
	}
	result.Add(r)
	return true
}
