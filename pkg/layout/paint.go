package layout

import (
	"github.com/go-drift/carousel/pkg/gestures"
	"github.com/go-drift/carousel/pkg/graphics"
)

// HitTestResult accumulates the render objects under a pointer, deepest
// last.
type HitTestResult struct {
	Entries []RenderObject
}

// Add appends target to the result.
func (h *HitTestResult) Add(target RenderObject) {
	h.Entries = append(h.Entries, target)
}

// PointerHandler is implemented by render objects that consume pointer
// events found through hit testing.
type PointerHandler interface {
	HandlePointer(event gestures.PointerEvent)
}

// PaintContext carries the canvas a render object paints onto.
type PaintContext struct {
	Canvas graphics.Canvas
}

// PaintChild paints child translated by offset, restoring the canvas
// transform afterward.
func (p *PaintContext) PaintChild(child RenderBox, offset graphics.Offset) {
	if child == nil {
		return
	}
	p.Canvas.Save()
	p.Canvas.Translate(offset.X, offset.Y)
	child.Paint(p)
	p.Canvas.Restore()
}
