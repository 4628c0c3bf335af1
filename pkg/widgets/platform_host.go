package widgets

import (
	"github.com/go-drift/carousel/pkg/core"
	"github.com/go-drift/carousel/pkg/graphics"
	"github.com/go-drift/carousel/pkg/layout"
	"github.com/go-drift/carousel/pkg/platform"
)

// PlatformViewHost reserves layout space for a native platform view and
// keeps the view's on-screen geometry in sync with the widget tree.
//
// The view itself is created and owned by the caller, typically in a
// stateful widget's InitState:
//
//	view, err := platform.GetPlatformViewRegistry().Create("page_indicator", params)
//
//	// in Build:
//	widgets.PlatformViewHost{View: view, Height: 26}
//
// Each time this widget paints it reports its global position, size, and
// any ancestor viewport clip to the platform view registry. Frames are
// bracketed by the registry's geometry batch so moved or vanished views are
// hidden natively rather than left stale.
type PlatformViewHost struct {
	core.RenderObjectBase
	// View is the native view whose geometry tracks this widget.
	View platform.PlatformView

	// Width of the host in logical pixels (0 = expand to fill).
	Width float64

	// Height of the host in logical pixels.
	Height float64
}

// CreateRenderObject creates the render object for this widget.
func (h PlatformViewHost) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	r := &renderPlatformViewHost{
		view:   h.View,
		width:  h.Width,
		height: h.Height,
	}
	r.SetSelf(r)
	return r
}

// UpdateRenderObject updates the render object with new widget properties.
func (h PlatformViewHost) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	if r, ok := renderObject.(*renderPlatformViewHost); ok {
		r.view = h.View
		r.width = h.Width
		r.height = h.Height
		r.MarkNeedsLayout()
		r.MarkNeedsPaint()
	}
}

type renderPlatformViewHost struct {
	layout.RenderBoxBase
	view   platform.PlatformView
	width  float64
	height float64
}

func (r *renderPlatformViewHost) PerformLayout() {
	constraints := r.Constraints()
	width := r.width
	if width == 0 {
		width = constraints.MaxWidth
	}
	width = min(max(width, constraints.MinWidth), constraints.MaxWidth)

	height := r.height
	height = min(max(height, constraints.MinHeight), constraints.MaxHeight)

	r.SetSize(graphics.Size{Width: width, Height: height})
}

func (r *renderPlatformViewHost) Paint(ctx *layout.PaintContext) {
	r.syncGeometry()
}

// syncGeometry reports the host's global rect to the registry. The global
// offset is recovered by walking parent data up the render tree; ancestors
// that translate their children at paint time (scroll viewports) expose the
// translation through a ScrollOffset method and clip the view to their
// bounds.
func (r *renderPlatformViewHost) syncGeometry() {
	if r.view == nil || r.view.ViewID() == 0 {
		return
	}

	type pendingClip struct {
		local graphics.Offset // host origin in the clipping ancestor's coords
		size  graphics.Size
	}

	offset := graphics.Offset{}
	var clips []pendingClip

	node := layout.RenderObject(r.Self())
	for node != nil {
		if data, ok := node.ParentData().(*layout.BoxParentData); ok && data != nil {
			offset = offset.Add(data.Offset)
		}
		getter, ok := node.(interface{ Parent() layout.RenderObject })
		if !ok {
			break
		}
		parent := getter.Parent()
		if parent == nil {
			break
		}
		if scroller, ok := parent.(interface{ ScrollOffset() graphics.Offset }); ok {
			offset = offset.Add(scroller.ScrollOffset())
			clips = append(clips, pendingClip{local: offset, size: parent.Size()})
		}
		node = parent
	}

	size := r.Size()
	var clip *graphics.Rect
	for _, c := range clips {
		rect := graphics.RectFromLTWH(offset.X-c.local.X, offset.Y-c.local.Y, c.size.Width, c.size.Height)
		if clip == nil {
			clip = &rect
			continue
		}
		intersected := clip.Intersect(rect)
		clip = &intersected
	}
	if clip != nil && clip.IsEmpty() {
		zero := graphics.Rect{}
		clip = &zero
	}

	registry := platform.GetPlatformViewRegistry()
	_ = registry.UpdateViewGeometry(r.view.ViewID(), offset, size, clip)
}

func (r *renderPlatformViewHost) HitTest(position graphics.Offset, result *layout.HitTestResult) bool {
	if !layout.WithinBounds(position, r.Size()) {
		return false
	}
	result.Add(r)
	return true
}
