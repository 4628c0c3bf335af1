package widgets

import (
	"math"
	"slices"
	"time"

	"github.com/go-drift/carousel/pkg/animation"
)

// ScrollController observes and drives the scroll offset of a card strip.
//
// A controller may be shared with the embedding application to move the
// strip programmatically (for example when an indicator dot is tapped)
// or to watch the offset change during a drag:
//
//	controller := &widgets.ScrollController{}
//	controller.AddListener(func() {
//	    fmt.Println("offset:", controller.Offset())
//	})
type ScrollController struct {
	// InitialScrollOffset seeds newly attached positions, and records the
	// last requested offset while no position is attached.
	InitialScrollOffset float64

	positions      []*ScrollPosition
	viewportExtent float64
	listeners      map[int]func()
	nextListenerID int
}

// Offset reports the offset of the first attached position, or the initial
// offset when nothing is attached yet.
func (c *ScrollController) Offset() float64 {
	if len(c.positions) > 0 {
		return c.positions[0].Offset()
	}
	return c.InitialScrollOffset
}

// ViewportExtent reports the main-axis size of the attached viewport.
func (c *ScrollController) ViewportExtent() float64 {
	return c.viewportExtent
}

// AddListener registers a callback invoked whenever the offset or the
// viewport extent changes. The returned function removes the listener.
func (c *ScrollController) AddListener(listener func()) func() {
	if listener == nil {
		return func() {}
	}
	if c.listeners == nil {
		c.listeners = make(map[int]func())
	}
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = listener
	return func() {
		delete(c.listeners, id)
	}
}

// JumpTo moves every attached position to offset without animating.
func (c *ScrollController) JumpTo(offset float64) {
	c.InitialScrollOffset = offset
	if len(c.positions) == 0 {
		c.notifyListeners()
		return
	}
	for _, position := range c.positions {
		position.SetOffset(offset)
	}
}

// AnimateTo eases every attached position to offset over duration. A nil
// curve means [animation.Snappy]. Without attached positions the offset
// takes effect immediately.
func (c *ScrollController) AnimateTo(offset float64, duration time.Duration, curve func(float64) float64) {
	c.InitialScrollOffset = offset
	if len(c.positions) == 0 {
		c.notifyListeners()
		return
	}
	for _, position := range c.positions {
		position.AnimateTo(offset, duration, curve)
	}
}

func (c *ScrollController) attach(position *ScrollPosition) {
	if slices.Contains(c.positions, position) {
		return
	}
	c.positions = append(c.positions, position)
}

func (c *ScrollController) detach(position *ScrollPosition) {
	for i, existing := range c.positions {
		if existing == position {
			c.positions = append(c.positions[:i], c.positions[i+1:]...)
			return
		}
	}
}

func (c *ScrollController) setViewportExtent(extent float64) {
	if extent == c.viewportExtent {
		return
	}
	c.viewportExtent = extent
	c.notifyListeners()
}

func (c *ScrollController) notifyListeners() {
	for _, listener := range c.listeners {
		listener()
	}
}

// ScrollPosition holds one strip's offset, its scrollable extents, and any
// in-flight fling or snap animation.
type ScrollPosition struct {
	offset     float64
	min        float64
	max        float64
	physics    ScrollPhysics
	onUpdate   func()
	controller *ScrollController
	fling      *flingState

	// OnIdle fires when a fling or animated scroll runs to completion,
	// as opposed to being cut short by a new drag.
	OnIdle func()
}

// NewScrollPosition creates a position attached to controller. onUpdate is
// invoked on every offset change, typically to schedule a repaint. A nil
// physics defaults to [ClampingScrollPhysics].
func NewScrollPosition(controller *ScrollController, physics ScrollPhysics, onUpdate func()) *ScrollPosition {
	if physics == nil {
		physics = ClampingScrollPhysics{}
	}
	position := &ScrollPosition{
		physics:    physics,
		onUpdate:   onUpdate,
		controller: controller,
	}
	if controller != nil {
		position.offset = controller.InitialScrollOffset
		controller.attach(position)
	}
	return position
}

// Offset returns the current scroll offset.
func (p *ScrollPosition) Offset() float64 {
	return p.offset
}

// SetOffset moves the position, clamping per the active physics. Bouncing
// physics permit a bounded overscroll past the extents.
func (p *ScrollPosition) SetOffset(value float64) {
	clamped := p.clampOffset(value, allowsOverscroll(p.physics))
	if clamped == p.offset {
		return
	}
	p.offset = clamped
	p.notify()
}

// SetExtents replaces the scrollable range. The current offset is re-clamped
// against the new range.
func (p *ScrollPosition) SetExtents(min, max float64) {
	if max < min {
		max = min
	}
	p.min = min
	p.max = max
	p.SetOffset(p.offset)
}

// MaxExtent returns the largest reachable offset.
func (p *ScrollPosition) MaxExtent() float64 {
	return p.max
}

// SetPhysics swaps the scroll physics. Nil is ignored.
func (p *ScrollPosition) SetPhysics(physics ScrollPhysics) {
	if physics == nil {
		return
	}
	p.physics = physics
}

// ApplyUserOffset feeds a drag delta through the physics and moves the
// position accordingly. Any running fling is stopped first.
func (p *ScrollPosition) ApplyUserOffset(delta float64) {
	p.StopBallistic()
	if p.physics == nil {
		p.SetOffset(p.offset + delta)
		return
	}
	adjusted := p.physics.ApplyPhysicsToUserOffset(p, delta)
	proposed := p.offset + adjusted
	proposed -= p.physics.ApplyBoundaryConditions(p, proposed)
	p.SetOffset(proposed)
}

// AnimateTo eases the offset toward target, clamped to the extents. A nil
// curve means [animation.Snappy]; a non-positive duration jumps and settles
// immediately.
func (p *ScrollPosition) AnimateTo(target float64, duration time.Duration, curve func(float64) float64) {
	p.StopBallistic()
	target = Clamp(target, p.min, p.max)
	if duration <= 0 || target == p.offset {
		p.SetOffset(target)
		p.settle()
		return
	}
	if curve == nil {
		curve = animation.Snappy
	}
	p.fling = newEasedFling(p, target, duration, curve)
	registerFling(p)
	p.notify()
}

// StartBallistic releases the position with a fling velocity.
//
// Under [PagingScrollPhysics] the release is resolved to a snap animation
// toward a page boundary rather than a free deceleration.
func (p *ScrollPosition) StartBallistic(velocity float64) {
	p.StopBallistic()
	velocity = p.limitFlingVelocity(velocity)
	if paging, ok := p.physics.(PagingScrollPhysics); ok {
		target := paging.TargetOffset(p.offset, velocity)
		p.AnimateTo(target, paging.snapDuration(), paging.SnapCurve)
		return
	}
	// Overscrolled releases always animate back, whatever the speed.
	if p.overscrolled() {
		p.fling = newDecelFling(p, velocity)
		registerFling(p)
		p.notify()
		return
	}
	if math.Abs(velocity) < restVelocity {
		return
	}
	p.fling = newDecelFling(p, velocity)
	registerFling(p)
	p.notify()
}

func (p *ScrollPosition) limitFlingVelocity(velocity float64) float64 {
	if math.IsNaN(velocity) || math.IsInf(velocity, 0) {
		return 0
	}
	if _, ok := p.physics.(PagingScrollPhysics); ok {
		// Paging only reads the sign and threshold; no cap needed.
		return velocity
	}
	velocity *= 0.9
	viewport := viewportExtentOf(p)
	maxAbs := Clamp(viewport*5.4, 1080, 4500)
	return Clamp(velocity, -maxAbs, maxAbs)
}

// StopBallistic cancels any running fling or snap animation.
func (p *ScrollPosition) StopBallistic() {
	if p.fling != nil {
		unregisterFling(p)
		p.fling = nil
	}
}

// IsAnimating reports whether a fling or animated scroll is in flight.
func (p *ScrollPosition) IsAnimating() bool {
	return p.fling != nil
}

// AnimationProgress returns the time progress of an active eased scroll in
// [0, 1]. The second result is false for free flings and when idle.
func (p *ScrollPosition) AnimationProgress() (float64, bool) {
	if p.fling == nil || p.fling.curve == nil {
		return 0, false
	}
	return p.fling.progress, true
}

func (p *ScrollPosition) clampOffset(value float64, allowOverscroll bool) float64 {
	if !allowOverscroll {
		return Clamp(value, p.min, p.max)
	}
	limit := Clamp(viewportExtentOf(p)*0.35, 80, 220)
	return Clamp(value, p.min-limit, p.max+limit)
}

func (p *ScrollPosition) overscrolled() bool {
	return p.offset < p.min || p.offset > p.max
}

func (p *ScrollPosition) settle() {
	if p.OnIdle != nil {
		p.OnIdle()
	}
}

func (p *ScrollPosition) notify() {
	if p.onUpdate != nil {
		p.onUpdate()
	}
	if p.controller != nil {
		p.controller.notifyListeners()
	}
}

func viewportExtentOf(p *ScrollPosition) float64 {
	if p != nil && p.controller != nil && p.controller.viewportExtent > 0 {
		return p.controller.viewportExtent
	}
	return 600
}
