package layout

import "slices"

// PipelineOwner collects the render objects waiting for layout or paint
// and drains them once per frame.
//
// Only relayout boundaries land in the layout queue. MarkNeedsLayout
// walks from a dirtied node up to its boundary, leaving needsLayout set
// along the way; flushing the boundary then reaches those nodes as its
// subtree is laid out.
type PipelineOwner struct {
	dirtyLayout    []RenderObject
	dirtyLayoutSet map[RenderObject]bool
	dirtyPaint     map[RenderObject]struct{}
	needsLayout    bool
	needsPaint     bool
}

// ScheduleLayout queues a relayout boundary. Intermediate nodes are
// never queued; their boundary covers them.
func (p *PipelineOwner) ScheduleLayout(object RenderObject) {
	if p.dirtyLayoutSet == nil {
		p.dirtyLayoutSet = make(map[RenderObject]bool)
	}
	if p.dirtyLayoutSet[object] {
		return
	}
	p.dirtyLayoutSet[object] = true
	p.dirtyLayout = append(p.dirtyLayout, object)
	p.needsLayout = true
	p.needsPaint = true
}

// SchedulePaint queues a render object for repaint.
func (p *PipelineOwner) SchedulePaint(object RenderObject) {
	if p.dirtyPaint == nil {
		p.dirtyPaint = make(map[RenderObject]struct{})
	}
	if _, queued := p.dirtyPaint[object]; queued {
		return
	}
	p.dirtyPaint[object] = struct{}{}
	p.needsPaint = true
}

// NeedsLayout reports whether anything is waiting for layout.
func (p *PipelineOwner) NeedsLayout() bool {
	return p.needsLayout
}

// NeedsPaint reports whether anything is waiting for paint.
func (p *PipelineOwner) NeedsPaint() bool {
	return p.needsPaint
}

// FlushLayoutForRoot lays the whole tree out from root.
//
// A frame runs FlushBuild, then this, then paint. The root is laid out
// with parentUsesSize false, so it is always a boundary; dirty nodes
// below it run PerformLayout while clean ones with unchanged constraints
// are skipped. Boundaries scheduled during the pass itself, by
// MarkNeedsLayout calls inside someone's PerformLayout, get a follow-up
// flush before the frame moves on.
func (p *PipelineOwner) FlushLayoutForRoot(root RenderObject, constraints Constraints) {
	if !p.needsLayout || root == nil {
		return
	}

	root.Layout(constraints, false)

	p.flushDirtyBoundaries()

	p.dirtyLayout = nil
	p.dirtyLayoutSet = nil
	p.needsLayout = false
}

// FlushLayoutFromBoundaries drains the queued boundaries without laying
// out from a root, for incremental updates outside the frame cycle.
func (p *PipelineOwner) FlushLayoutFromBoundaries() {
	if !p.needsLayout {
		return
	}

	p.flushDirtyBoundaries()

	p.dirtyLayout = nil
	p.dirtyLayoutSet = nil
	p.needsLayout = false
}

// flushDirtyBoundaries lays out queued boundaries shallowest first.
// When a parent and one of its descendants are both queued, the parent
// goes first and its subtree layout usually cleans the descendant, whose
// own turn then becomes a no-op.
func (p *PipelineOwner) flushDirtyBoundaries() {
	for len(p.dirtyLayout) > 0 {
		slices.SortFunc(p.dirtyLayout, func(a, b RenderObject) int {
			return getDepth(a) - getDepth(b)
		})

		// Laying out a batch can queue more boundaries; loop until quiet.
		dirty := p.dirtyLayout
		p.dirtyLayout = nil
		p.dirtyLayoutSet = nil

		for _, node := range dirty {
			layouter, ok := node.(interface {
				NeedsLayout() bool
				Constraints() Constraints
				Layout(Constraints, bool)
			})
			if !ok || !layouter.NeedsLayout() {
				continue
			}
			// Boundaries re-run under their cached constraints and never
			// push a size change upward.
			layouter.Layout(layouter.Constraints(), false)
		}
	}
}

func getDepth(obj RenderObject) int {
	if getter, ok := obj.(interface{ Depth() int }); ok {
		return getter.Depth()
	}
	return 0
}

// FlushPaint drains the paint queue and returns the boundaries still
// dirty, shallowest first.
func (p *PipelineOwner) FlushPaint() []RenderObject {
	if !p.needsPaint || len(p.dirtyPaint) == 0 {
		p.dirtyPaint = nil
		p.needsPaint = false
		return nil
	}

	dirty := make([]RenderObject, 0, len(p.dirtyPaint))
	for obj := range p.dirtyPaint {
		dirty = append(dirty, obj)
	}

	slices.SortFunc(dirty, func(a, b RenderObject) int {
		return getDepth(a) - getDepth(b)
	})

	result := dirty[:0]
	for _, node := range dirty {
		if np, ok := node.(interface{ NeedsPaint() bool }); ok && np.NeedsPaint() {
			result = append(result, node)
		}
	}

	p.dirtyPaint = nil
	p.needsPaint = false
	return result
}

// FlushLayout drops the layout queue without running layout.
func (p *PipelineOwner) FlushLayout() {
	p.dirtyLayout = nil
	p.needsLayout = false
}
