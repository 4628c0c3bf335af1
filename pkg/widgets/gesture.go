package widgets

import (
	"github.com/go-drift/carousel/pkg/core"
	"github.com/go-drift/carousel/pkg/gestures"
	"github.com/go-drift/carousel/pkg/graphics"
	"github.com/go-drift/carousel/pkg/layout"
)

// Re-exported so widget code rarely needs the gestures import.
type DragStartDetails = gestures.DragStartDetails

type DragUpdateDetails = gestures.DragUpdateDetails

type DragEndDetails = gestures.DragEndDetails

// DragCallbacks bundles the handlers for one drag axis. A group with all
// nil fields leaves that axis unrecognized.
type DragCallbacks struct {
	OnStart  func(DragStartDetails)
	OnUpdate func(DragUpdateDetails)
	OnEnd    func(DragEndDetails)
	OnCancel func()
}

func (c DragCallbacks) empty() bool {
	return c.OnStart == nil && c.OnUpdate == nil && c.OnEnd == nil && c.OnCancel == nil
}

// GestureDetector makes its child interactive. A card body typically sets
// OnTap; the tap then competes in the gesture arena with the carousel
// strip's own drag recognizer, so swipes scroll and clean presses tap.
//
//	widgets.GestureDetector{
//	    OnTap:       func() { selectCard() },
//	    ChildWidget: body,
//	}
//
// Drag handlers are grouped per axis. Pan is ignored when an axis group is
// set, since a free-form recognizer would race its own sibling.
type GestureDetector struct {
	core.RenderObjectBase
	ChildWidget core.Widget

	OnTap func()

	HorizontalDrag DragCallbacks
	VerticalDrag   DragCallbacks
	Pan            DragCallbacks
}

func (g GestureDetector) Child() core.Widget {
	return g.ChildWidget
}

func (g GestureDetector) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	detector := &renderGestureDetector{}
	detector.SetSelf(detector)
	detector.configure(g)
	return detector
}

func (g GestureDetector) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	if detector, ok := renderObject.(*renderGestureDetector); ok {
		detector.configure(g)
		detector.MarkNeedsPaint()
	}
}

// pointerTarget is the slice of the recognizer API the detector routes
// events through.
type pointerTarget interface {
	AddPointer(gestures.PointerEvent)
	HandleEvent(gestures.PointerEvent)
}

type renderGestureDetector struct {
	childBox

	tap        *gestures.TapGestureRecognizer
	horizontal *gestures.HorizontalDragGestureRecognizer
	vertical   *gestures.VerticalDragGestureRecognizer
	pan        *gestures.PanGestureRecognizer

	// active mirrors the non-nil recognizers for event routing.
	active []pointerTarget
}

// PerformLayout sizes the detector to its child; an empty detector
// collapses to the smallest size the constraints allow.
func (r *renderGestureDetector) PerformLayout() {
	constraints := r.Constraints()
	if r.child == nil {
		r.SetSize(constraints.Constrain(graphics.Size{}))
		return
	}
	r.child.Layout(constraints, true)
	r.SetSize(r.child.Size())
	r.child.SetParentData(&layout.BoxParentData{})
}

func (r *renderGestureDetector) Paint(ctx *layout.PaintContext) {
	if r.child != nil {
		ctx.PaintChild(r.child, graphics.Offset{})
	}
}

func (r *renderGestureDetector) HitTest(position graphics.Offset, result *layout.HitTestResult) bool {
	if !layout.WithinBounds(position, r.Size()) {
		return false
	}
	if r.child != nil {
		r.child.HitTest(position, result)
	}
	result.Add(r)
	return true
}

// HandlePointer feeds the event to every configured recognizer; the arena
// decides which of them owns the sequence.
func (r *renderGestureDetector) HandlePointer(event gestures.PointerEvent) {
	for _, recognizer := range r.active {
		if event.Phase == gestures.PointerPhaseDown {
			recognizer.AddPointer(event)
		} else {
			recognizer.HandleEvent(event)
		}
	}
}

func (r *renderGestureDetector) configure(g GestureDetector) {
	r.configureTap(g.OnTap)
	r.configureHorizontal(g.HorizontalDrag)
	r.configureVertical(g.VerticalDrag)

	pan := g.Pan
	if !g.HorizontalDrag.empty() || !g.VerticalDrag.empty() {
		pan = DragCallbacks{}
	}
	r.configurePan(pan)

	r.active = r.active[:0]
	if r.tap != nil {
		r.active = append(r.active, r.tap)
	}
	if r.horizontal != nil {
		r.active = append(r.active, r.horizontal)
	}
	if r.vertical != nil {
		r.active = append(r.active, r.vertical)
	}
	if r.pan != nil {
		r.active = append(r.active, r.pan)
	}
}

func (r *renderGestureDetector) configureTap(onTap func()) {
	if onTap == nil {
		if r.tap != nil {
			r.tap.Dispose()
			r.tap = nil
		}
		return
	}
	if r.tap == nil {
		r.tap = gestures.NewTapGestureRecognizer(gestures.DefaultArena)
	}
	r.tap.OnTap = onTap
}

func (r *renderGestureDetector) configureHorizontal(callbacks DragCallbacks) {
	if callbacks.empty() {
		if r.horizontal != nil {
			r.horizontal.Dispose()
			r.horizontal = nil
		}
		return
	}
	if r.horizontal == nil {
		r.horizontal = gestures.NewHorizontalDragGestureRecognizer(gestures.DefaultArena)
	}
	r.horizontal.OnStart = callbacks.OnStart
	r.horizontal.OnUpdate = callbacks.OnUpdate
	r.horizontal.OnEnd = callbacks.OnEnd
	r.horizontal.OnCancel = callbacks.OnCancel
}

func (r *renderGestureDetector) configureVertical(callbacks DragCallbacks) {
	if callbacks.empty() {
		if r.vertical != nil {
			r.vertical.Dispose()
			r.vertical = nil
		}
		return
	}
	if r.vertical == nil {
		r.vertical = gestures.NewVerticalDragGestureRecognizer(gestures.DefaultArena)
	}
	r.vertical.OnStart = callbacks.OnStart
	r.vertical.OnUpdate = callbacks.OnUpdate
	r.vertical.OnEnd = callbacks.OnEnd
	r.vertical.OnCancel = callbacks.OnCancel
}

func (r *renderGestureDetector) configurePan(callbacks DragCallbacks) {
	if callbacks.empty() {
		if r.pan != nil {
			r.pan.Dispose()
			r.pan = nil
		}
		return
	}
	if r.pan == nil {
		r.pan = gestures.NewPanGestureRecognizer(gestures.DefaultArena)
	}
	r.pan.OnStart = callbacks.OnStart
	r.pan.OnUpdate = callbacks.OnUpdate
	r.pan.OnEnd = callbacks.OnEnd
	r.pan.OnCancel = callbacks.OnCancel
}
