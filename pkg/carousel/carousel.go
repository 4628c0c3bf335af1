package carousel

import (
	"math"

	"github.com/go-drift/carousel/pkg/animation"
	"github.com/go-drift/carousel/pkg/core"
	"github.com/go-drift/carousel/pkg/gestures"
	"github.com/go-drift/carousel/pkg/graphics"
	"github.com/go-drift/carousel/pkg/layout"
	"github.com/go-drift/carousel/pkg/platform"
	"github.com/go-drift/carousel/pkg/widgets"
)

// Default card geometry, in logical pixels.
const (
	DefaultCardWidth  = 310.0
	DefaultCardHeight = 403.0

	// DefaultItemSpacing is the horizontal gap between adjacent cards.
	DefaultItemSpacing = 16.0

	// DefaultControlSpacing is the vertical gap between the card strip
	// and the page indicator.
	DefaultControlSpacing = 8.0
)

// CarouselView renders a bound collection as a horizontally paged strip of
// fixed-size cards with an attached page indicator.
//
// The strip snaps to one card at rest. While scrolling, each card scales
// down with distance from the viewport center and, depending on Effect,
// its content drifts opposite to the scroll direction. The indicator
// highlights the settled card and taps on its dots animate the strip to
// the corresponding card.
type CarouselView[T Item] struct {
	core.StatefulBase

	// Data binds the externally owned item collection. The carousel reads
	// it on every build and never stores a copy.
	Data Binding[[]T]

	// Content builds one card from a binding to its item. It is invoked
	// once per item per build and may write the item back through the
	// binding.
	Content func(Binding[T]) core.Widget

	// Effect selects the parallax strategy. Defaults to EffectNone.
	Effect Effect

	// CardWidth and CardHeight size every card. Zero or negative values
	// fall back to the defaults.
	CardWidth  float64
	CardHeight float64

	// ItemSpacing is the gap between adjacent cards. Negative values fall
	// back to the default.
	ItemSpacing float64

	// PagingControlSpacing is the gap above the page indicator. Negative
	// values fall back to the default.
	PagingControlSpacing float64

	// IndicatorTint and ActiveIndicatorTint color the indicator dots.
	IndicatorTint       graphics.Color
	ActiveIndicatorTint graphics.Color
}

func (w CarouselView[T]) CreateState() core.State {
	return &carouselState[T]{}
}

func (w CarouselView[T]) cardWidth() float64 {
	if w.CardWidth <= 0 {
		return DefaultCardWidth
	}
	return w.CardWidth
}

func (w CarouselView[T]) cardHeight() float64 {
	if w.CardHeight <= 0 {
		return DefaultCardHeight
	}
	return w.CardHeight
}

func (w CarouselView[T]) itemSpacing() float64 {
	if w.ItemSpacing <= 0 {
		return DefaultItemSpacing
	}
	return w.ItemSpacing
}

func (w CarouselView[T]) controlSpacing() float64 {
	if w.PagingControlSpacing <= 0 {
		return DefaultControlSpacing
	}
	return w.PagingControlSpacing
}

// snapInterval is the distance between adjacent snap offsets.
func (w CarouselView[T]) snapInterval() float64 {
	return w.cardWidth() + w.itemSpacing()
}

type carouselState[T Item] struct {
	core.StateBase

	controller *widgets.ScrollController

	// selectedID tracks the settled card across rebuilds and collection
	// reorders. Empty until the first settle.
	selectedID string
}

func (s *carouselState[T]) InitState() {
	s.controller = &widgets.ScrollController{}
}

func (s *carouselState[T]) config() CarouselView[T] {
	element := s.Element()
	if element == nil {
		return CarouselView[T]{}
	}
	widget, _ := element.Widget().(CarouselView[T])
	return widget
}

// activeIndex resolves the settled selection to a collection index,
// falling back to 0 when the identifier is unset or no longer present.
func (s *carouselState[T]) activeIndex(items []T) int {
	return indexOfItem(items, s.selectedID)
}

// handleSettle records the card the strip came to rest on.
func (s *carouselState[T]) handleSettle(page int) {
	items := s.config().Data.Value()
	if page < 0 || page >= len(items) {
		return
	}
	id := items[page].ItemID()
	if id == s.selectedID {
		return
	}
	s.SetState(func() {
		s.selectedID = id
	})
}

// handlePageTap animates the strip so the tapped page becomes the settled
// selection. Out-of-range indexes are ignored.
func (s *carouselState[T]) handlePageTap(page int) {
	widget := s.config()
	items := widget.Data.Value()
	if page < 0 || page >= len(items) {
		return
	}
	target := float64(page) * widget.snapInterval()
	s.controller.AnimateTo(target, widgets.DefaultSnapDuration, animation.Snappy)
}

func (s *carouselState[T]) Build(ctx core.BuildContext) core.Widget {
	widget, _ := ctx.Widget().(CarouselView[T])
	items := widget.Data.Value()

	cards := make([]core.Widget, 0, len(items))
	if widget.Content != nil {
		for i := range items {
			cards = append(cards, widget.Content(ElementBinding(widget.Data, i)))
		}
	}

	return widgets.Column{
		CrossAxisAlignment: widgets.CrossAxisAlignmentCenter,
		ChildrenWidgets: []core.Widget{
			carouselStrip{
				Cards:       cards,
				CardWidth:   widget.cardWidth(),
				CardHeight:  widget.cardHeight(),
				ItemSpacing: widget.itemSpacing(),
				Effect:      widget.Effect,
				Controller:  s.controller,
				OnSettle:    s.handleSettle,
			},
			widgets.VSpace(widget.controlSpacing()),
			PageIndicator{
				PageCount:      len(items),
				CurrentPage:    s.activeIndex(items),
				Tint:           widget.IndicatorTint,
				ActiveTint:     widget.ActiveIndicatorTint,
				OnPageSelected: s.handlePageTap,
			},
		},
	}
}

// carouselStrip is the render object widget for the scrollable card strip.
type carouselStrip struct {
	Cards       []core.Widget
	CardWidth   float64
	CardHeight  float64
	ItemSpacing float64
	Effect      Effect
	Controller  *widgets.ScrollController
	OnSettle    func(page int)
}

func (c carouselStrip) CreateElement() core.Element {
	return core.NewRenderObjectElement(c, nil)
}

func (c carouselStrip) Key() any {
	return nil
}

func (c carouselStrip) Children() []core.Widget {
	return c.Cards
}

func (c carouselStrip) physics() widgets.PagingScrollPhysics {
	return widgets.PagingScrollPhysics{
		SnapInterval: c.CardWidth + c.ItemSpacing,
	}
}

func (c carouselStrip) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	strip := &renderCarouselStrip{
		cardWidth:   c.CardWidth,
		cardHeight:  c.CardHeight,
		itemSpacing: c.ItemSpacing,
		effect:      c.Effect,
		onSettle:    c.OnSettle,
	}
	strip.SetSelf(strip)
	strip.position = widgets.NewScrollPosition(c.Controller, c.physics(), func() {
		strip.MarkNeedsPaint()
	})
	strip.position.OnIdle = strip.notifySettle
	strip.configureDrag()
	return strip
}

func (c carouselStrip) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	strip, ok := renderObject.(*renderCarouselStrip)
	if !ok {
		return
	}
	strip.cardWidth = c.CardWidth
	strip.cardHeight = c.CardHeight
	strip.itemSpacing = c.ItemSpacing
	strip.effect = c.Effect
	strip.onSettle = c.OnSettle
	strip.position.SetPhysics(c.physics())
	strip.MarkNeedsLayout()
	strip.MarkNeedsPaint()
}

// renderCarouselStrip lays out cards in a horizontal run with a symmetric
// inset so the first and last cards can center in the viewport, and paints
// each card through its scroll-dependent transform.
type renderCarouselStrip struct {
	layout.RenderBoxBase
	children    []layout.RenderBox
	cardWidth   float64
	cardHeight  float64
	itemSpacing float64
	effect      Effect
	position    *widgets.ScrollPosition
	drag        *gestures.HorizontalDragGestureRecognizer
	onSettle    func(page int)
}

// IsRepaintBoundary returns true; the strip repaints on every scroll tick
// and should not force ancestors to re-record.
func (r *renderCarouselStrip) IsRepaintBoundary() bool {
	return true
}

func (r *renderCarouselStrip) SetChildren(children []layout.RenderObject) {
	for _, child := range r.children {
		layout.SetParentOnChild(child, nil)
	}
	r.children = r.children[:0]
	for _, child := range children {
		if box, ok := child.(layout.RenderBox); ok {
			r.children = append(r.children, box)
			layout.SetParentOnChild(box, r)
		}
	}
}

func (r *renderCarouselStrip) VisitChildren(visitor func(layout.RenderObject)) {
	for _, child := range r.children {
		visitor(child)
	}
}

func (r *renderCarouselStrip) interval() float64 {
	return r.cardWidth + r.itemSpacing
}

// inset is the symmetric horizontal margin that lets edge cards center.
func (r *renderCarouselStrip) inset(viewportWidth float64) float64 {
	inset := (viewportWidth - r.cardWidth) / 2
	if inset < 0 {
		return 0
	}
	return inset
}

func (r *renderCarouselStrip) scrollOffset() float64 {
	if r.position == nil {
		return 0
	}
	return r.position.Offset()
}

// slotX returns the resting left edge of card i in viewport coordinates,
// with the current scroll applied.
func (r *renderCarouselStrip) slotX(i int, viewportWidth float64) float64 {
	return r.inset(viewportWidth) + float64(i)*r.interval() - r.scrollOffset()
}

func (r *renderCarouselStrip) PerformLayout() {
	constraints := r.Constraints()

	width := constraints.MaxWidth
	if math.IsInf(width, 1) {
		// Unbounded width; fall back to the display width.
		width = platform.Display.Size().Width
		if width <= 0 {
			width = r.cardWidth
		}
	}

	cardConstraints := layout.Tight(graphics.Size{Width: r.cardWidth, Height: r.cardHeight})
	for i, child := range r.children {
		child.Layout(cardConstraints, false)
		child.SetParentData(&layout.BoxParentData{
			Offset: graphics.Offset{X: r.inset(width) + float64(i)*r.interval()},
		})
	}

	if r.position != nil {
		maxOffset := 0.0
		if n := len(r.children); n > 1 {
			maxOffset = float64(n-1) * r.interval()
		}
		r.position.SetExtents(0, maxOffset)
	}

	r.SetSize(constraints.Constrain(graphics.Size{Width: width, Height: r.cardHeight}))
}

func (r *renderCarouselStrip) Paint(ctx *layout.PaintContext) {
	size := r.Size()
	halfViewport := size.Width / 2

	settle := 1.0
	if r.position != nil {
		if t, ok := r.position.AnimationProgress(); ok {
			settle = SettleScale(t)
		}
	}

	canvas := ctx.Canvas
	canvas.Save()
	canvas.ClipRect(graphics.RectFromLTWH(0, 0, size.Width, size.Height))

	for i, child := range r.children {
		left := r.slotX(i, size.Width)
		if left+r.cardWidth < 0 || left > size.Width {
			continue
		}

		distance := left + r.cardWidth/2 - halfViewport
		scale := DistanceScale(distance, halfViewport) * settle
		shift := r.effect.Displacement(distance, r.cardWidth)

		canvas.Save()
		canvas.Translate(left+r.cardWidth/2, size.Height/2)
		canvas.Scale(scale, scale)
		canvas.Translate(-r.cardWidth/2, -r.cardHeight/2)
		canvas.ClipRect(graphics.RectFromLTWH(0, 0, r.cardWidth, r.cardHeight))
		ctx.PaintChild(child, graphics.Offset{X: -shift})
		canvas.Restore()
	}

	canvas.Restore()
}

// ScrollOffset exposes the strip's paint translation so platform view
// geometry walks can account for scrolling.
func (r *renderCarouselStrip) ScrollOffset() graphics.Offset {
	return graphics.Offset{X: -r.scrollOffset()}
}

// HitTest routes pointers to the card at the resting slot geometry, and
// otherwise to the strip itself so drags anywhere in the viewport scroll.
func (r *renderCarouselStrip) HitTest(position graphics.Offset, result *layout.HitTestResult) bool {
	size := r.Size()
	if !layout.WithinBounds(position, size) {
		return false
	}
	top := (size.Height - r.cardHeight) / 2
	for i := len(r.children) - 1; i >= 0; i-- {
		local := graphics.Offset{
			X: position.X - r.slotX(i, size.Width),
			Y: position.Y - top,
		}
		if r.children[i].HitTest(local, result) {
			result.Add(r)
			return true
		}
	}
	result.Add(r)
	return true
}

func (r *renderCarouselStrip) HandlePointer(event gestures.PointerEvent) {
	if r.drag == nil {
		return
	}
	switch event.Phase {
	case gestures.PointerPhaseDown:
		if r.position != nil {
			r.position.StopBallistic()
		}
		r.drag.AddPointer(event)
	default:
		r.drag.HandleEvent(event)
	}
}

func (r *renderCarouselStrip) configureDrag() {
	if r.drag == nil {
		r.drag = gestures.NewHorizontalDragGestureRecognizer(gestures.DefaultArena)
	}
	r.drag.OnStart = func(details gestures.DragStartDetails) {
		if r.position != nil {
			r.position.StopBallistic()
		}
	}
	r.drag.OnUpdate = func(details gestures.DragUpdateDetails) {
		if r.position != nil {
			r.position.ApplyUserOffset(-details.PrimaryDelta)
		}
	}
	r.drag.OnEnd = func(details gestures.DragEndDetails) {
		if r.position != nil {
			r.position.StartBallistic(-details.PrimaryVelocity)
		}
	}
	r.drag.OnCancel = func() {
		if r.position != nil {
			r.position.StopBallistic()
		}
	}
}

// notifySettle converts the rest offset to a page index and reports it.
// Runs only when a fling or snap animation completes on its own.
func (r *renderCarouselStrip) notifySettle() {
	if r.onSettle == nil || len(r.children) == 0 {
		return
	}
	interval := r.interval()
	if interval <= 0 {
		return
	}
	page := int(math.Round(r.scrollOffset() / interval))
	if page < 0 {
		page = 0
	}
	if page >= len(r.children) {
		page = len(r.children) - 1
	}
	r.onSettle(page)
}
