package layout

import (
	"github.com/go-drift/carousel/pkg/graphics"
)

// RenderObject is one node in the render tree. It lays itself out under
// constraints, records paint ops, and answers hit tests.
type RenderObject interface {
	Layout(constraints Constraints, parentUsesSize bool)
	Size() graphics.Size
	Paint(ctx *PaintContext)
	HitTest(position graphics.Offset, result *HitTestResult) bool
	ParentData() any
	SetParentData(data any)
	MarkNeedsLayout()
	MarkNeedsPaint()
	SetOwner(owner *PipelineOwner)
	IsRepaintBoundary() bool
}

// RenderBox is a render object using box layout.
type RenderBox interface {
	RenderObject
}

// ChildVisitor is implemented by render objects that hold children.
type ChildVisitor interface {
	VisitChildren(visitor func(RenderObject))
}

// BoxParentData carries the child's offset within its parent.
type BoxParentData struct {
	Offset graphics.Offset
}

// RenderBoxBase holds the bookkeeping every render box needs: size,
// parent link, dirty flags, and the cached relayout and repaint
// boundaries. Concrete boxes embed it and implement PerformLayout,
// Paint, and HitTest on top.
type RenderBoxBase struct {
	size             graphics.Size
	parentData       any
	owner            *PipelineOwner
	self             RenderObject
	parent           RenderObject
	depth            int // root = 0
	relayoutBoundary RenderObject
	needsLayout      bool
	constraints      Constraints // last constraints received
	repaintBoundary  RenderObject
	needsPaint       bool
}

func (r *RenderBoxBase) Size() graphics.Size {
	return r.size
}

// SetSize records the laid-out size. A changed size dirties paint, since
// the recorded ops assume the old extent.
func (r *RenderBoxBase) SetSize(size graphics.Size) {
	if r.size == size {
		return
	}
	r.size = size
	r.MarkNeedsPaint()
}

func (r *RenderBoxBase) ParentData() any {
	return r.parentData
}

// SetParentData stores parent-assigned data. A moved offset dirties the
// parent's paint, because the parent's recorded ops embed child offsets.
func (r *RenderBoxBase) SetParentData(data any) {
	if incoming, ok := data.(*BoxParentData); ok && r.parent != nil {
		previous, had := r.parentData.(*BoxParentData)
		if !had || previous.Offset != incoming.Offset {
			r.parent.MarkNeedsPaint()
		}
	}
	r.parentData = data
}

// MarkNeedsLayout dirties this box and walks up toward the nearest
// relayout boundary, which schedules itself with the pipeline owner.
// Every node on the path keeps needsLayout set so the boundary's layout
// pass reaches back down through them.
func (r *RenderBoxBase) MarkNeedsLayout() {
	if r.needsLayout {
		return
	}
	r.needsLayout = true

	if r.owner == nil || r.self == nil {
		return
	}

	if r.relayoutBoundary == r.self {
		r.owner.ScheduleLayout(r.self)
		return
	}

	if r.parent != nil {
		r.parent.MarkNeedsLayout()
		return
	}

	// Detached and not a boundary, which happens while the tree is still
	// being assembled. Schedule directly so the node is not lost.
	r.owner.ScheduleLayout(r.self)
}

// MarkNeedsPaint dirties this box and walks up to the nearest repaint
// boundary, which schedules itself. The walk stops there: a content
// change below a boundary never re-records ancestors.
//
// There is no early return on needsPaint. SetSelf pre-sets the flag
// before any owner exists, and SchedulePaint dedupes on its own.
func (r *RenderBoxBase) MarkNeedsPaint() {
	r.needsPaint = true

	if r.owner == nil || r.self == nil {
		return
	}

	if r.self.IsRepaintBoundary() {
		r.owner.SchedulePaint(r.self)
		return
	}

	if r.parent != nil {
		r.parent.MarkNeedsPaint()
		return
	}

	r.owner.SchedulePaint(r.self)
}

func (r *RenderBoxBase) SetOwner(owner *PipelineOwner) {
	r.owner = owner
}

// SetSelf registers the concrete render object embedding this base.
// Fresh objects start dirty on both axes.
func (r *RenderBoxBase) SetSelf(self RenderObject) {
	r.self = self
	r.needsLayout = true
	r.needsPaint = true
}

// Self returns the concrete render object registered with SetSelf.
func (r *RenderBoxBase) Self() RenderObject {
	return r.self
}

func (r *RenderBoxBase) Parent() RenderObject {
	return r.parent
}

// SetParent relinks this box under parent and recomputes depth. Cached
// boundaries and constraints are dropped so nothing stale survives a
// move between subtrees, and both old and new parent repaint since their
// recorded child ops no longer match.
func (r *RenderBoxBase) SetParent(parent RenderObject) {
	if r.parent == parent {
		return
	}
	previous := r.parent
	r.parent = parent
	switch {
	case parent == nil:
		r.depth = 0
	default:
		if getter, ok := parent.(interface{ Depth() int }); ok {
			r.depth = getter.Depth() + 1
		} else {
			r.depth = 1
		}
	}
	r.relayoutBoundary = nil
	r.constraints = Constraints{}
	r.needsLayout = true
	r.repaintBoundary = nil
	r.needsPaint = true

	if previous != nil {
		previous.MarkNeedsPaint()
	}
	if parent != nil {
		parent.MarkNeedsPaint()
	}
}

// Depth returns the node's distance from the root.
func (r *RenderBoxBase) Depth() int {
	return r.depth
}

// RelayoutBoundary returns the cached nearest relayout boundary.
func (r *RenderBoxBase) RelayoutBoundary() RenderObject {
	return r.relayoutBoundary
}

// NeedsLayout reports whether this box is layout-dirty.
func (r *RenderBoxBase) NeedsLayout() bool {
	return r.needsLayout
}

// Constraints returns the constraints from the last layout pass.
func (r *RenderBoxBase) Constraints() Constraints {
	return r.constraints
}

// IsRepaintBoundary reports whether this box records its paint ops
// independently of its ancestors. The base never does; boxes that
// isolate their paint override it.
func (r *RenderBoxBase) IsRepaintBoundary() bool {
	return false
}

// RepaintBoundary returns the cached nearest repaint boundary.
func (r *RenderBoxBase) RepaintBoundary() RenderObject {
	return r.repaintBoundary
}

// NeedsPaint reports whether this box is paint-dirty.
func (r *RenderBoxBase) NeedsPaint() bool {
	return r.needsPaint
}

// ClearNeedsPaint marks this box as painted.
func (r *RenderBoxBase) ClearNeedsPaint() {
	r.needsPaint = false
}

// Layout resolves this box's boundaries and runs PerformLayout when
// dirty.
//
// A box is its own relayout boundary when the constraints are tight,
// it is the root, or the parent ignores its size. Boundaries contain
// layout: MarkNeedsLayout's upward walk ends there instead of dirtying
// the whole ancestor chain.
//
// Clean boxes receiving unchanged constraints skip PerformLayout
// entirely.
func (r *RenderBoxBase) Layout(constraints Constraints, parentUsesSize bool) {
	ownBoundary := constraints.IsTight() || r.parent == nil || !parentUsesSize

	if ownBoundary {
		r.relayoutBoundary = r.self
	} else if r.parent != nil {
		if getter, ok := r.parent.(interface{ RelayoutBoundary() RenderObject }); ok {
			r.relayoutBoundary = getter.RelayoutBoundary()
		}
	}

	if r.self != nil && r.self.IsRepaintBoundary() {
		r.repaintBoundary = r.self
		// First layout is the earliest point a boundary can schedule its
		// pending paint; at SetSelf time there was no owner yet.
		if r.needsPaint && r.owner != nil {
			r.owner.SchedulePaint(r.self)
		}
	} else if r.parent != nil {
		if getter, ok := r.parent.(interface{ RepaintBoundary() RenderObject }); ok {
			r.repaintBoundary = getter.RepaintBoundary()
		}
	}

	if !r.needsLayout && r.constraints == constraints {
		return
	}

	r.constraints = constraints
	r.needsLayout = false

	if performer, ok := r.self.(interface{ PerformLayout() }); ok {
		performer.PerformLayout()
	}
}

// SetParentOnChild points child at parent and layout-dirties both sides
// of the move. Children without a SetParent method are left alone.
func SetParentOnChild(child, parent RenderObject) {
	if child == nil {
		return
	}
	setter, ok := child.(interface{ SetParent(RenderObject) })
	if !ok {
		return
	}
	var current RenderObject
	if getter, ok := child.(interface{ Parent() RenderObject }); ok {
		current = getter.Parent()
	}
	if current == parent {
		return
	}
	setter.SetParent(parent)
	if current != nil {
		current.MarkNeedsLayout()
	}
	if parent != nil {
		parent.MarkNeedsLayout()
	}
}

// AsRenderBox narrows child to a RenderBox, returning nil for nil or
// non-box children.
func AsRenderBox(child RenderObject) RenderBox {
	box, _ := child.(RenderBox)
	return box
}

// WithinBounds reports whether position falls inside a box of the given
// size, with the origin at the top left.
func WithinBounds(position graphics.Offset, size graphics.Size) bool {
	return position.X >= 0 && position.Y >= 0 && position.X <= size.Width && position.Y <= size.Height
}
