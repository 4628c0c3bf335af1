package widgets

import "github.com/go-drift/carousel/pkg/layout"

// childBox carries the single-child plumbing shared by this package's
// render boxes: child storage, parent wiring, and traversal.
type childBox struct {
	layout.RenderBoxBase
	child layout.RenderBox
}

func (r *childBox) SetChild(child layout.RenderObject) {
	layout.SetParentOnChild(r.child, nil)
	r.child = layout.AsRenderBox(child)
	layout.SetParentOnChild(r.child, r.Self())
}

func (r *childBox) VisitChildren(visitor func(layout.RenderObject)) {
	if r.child != nil {
		visitor(r.child)
	}
}
