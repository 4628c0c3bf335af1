package gestures

import (
	"math"
	"time"

	"github.com/go-drift/carousel/pkg/graphics"
)

// assumedFrameInterval is the sample spacing used for velocity estimation
// when pointer events carry no timestamps.
const assumedFrameInterval = 16 * time.Millisecond

// velocityWindow bounds how far back samples contribute to a velocity
// estimate. Older samples describe a different phase of the gesture.
const velocityWindow = 100 * time.Millisecond

type velocitySample struct {
	position graphics.Offset
	time     time.Time
}

// velocityTracker estimates pointer velocity from recent position samples.
type velocityTracker struct {
	samples []velocitySample
}

func (v *velocityTracker) reset() {
	v.samples = v.samples[:0]
}

func (v *velocityTracker) addSample(event PointerEvent) {
	t := event.Timestamp
	if t.IsZero() {
		if len(v.samples) > 0 {
			t = v.samples[len(v.samples)-1].time.Add(assumedFrameInterval)
		} else {
			t = time.Unix(0, 0)
		}
	}
	v.samples = append(v.samples, velocitySample{position: event.Position, time: t})
	if len(v.samples) > 20 {
		v.samples = v.samples[len(v.samples)-20:]
	}
}

// velocity returns the estimated velocity in logical pixels per second.
func (v *velocityTracker) velocity() graphics.Offset {
	if len(v.samples) < 2 {
		return graphics.Offset{}
	}
	newest := v.samples[len(v.samples)-1]
	oldest := newest
	for i := len(v.samples) - 2; i >= 0; i-- {
		if newest.time.Sub(v.samples[i].time) > velocityWindow {
			break
		}
		oldest = v.samples[i]
	}
	dt := newest.time.Sub(oldest.time).Seconds()
	if dt <= 0 {
		return graphics.Offset{}
	}
	return graphics.Offset{
		X: (newest.position.X - oldest.position.X) / dt,
		Y: (newest.position.Y - oldest.position.Y) / dt,
	}
}

// TapGestureRecognizer recognizes a tap: pointer down and up without the
// pointer wandering past the touch slop.
type TapGestureRecognizer struct {
	OnTap func()

	arena      *GestureArena
	pointer    int64
	tracking   bool
	accepted   bool
	upReceived bool
	down       graphics.Offset
}

func NewTapGestureRecognizer(arena *GestureArena) *TapGestureRecognizer {
	return &TapGestureRecognizer{arena: arena}
}

// AddPointer begins tracking a pointer and joins the arena for it.
func (r *TapGestureRecognizer) AddPointer(event PointerEvent) {
	if r.tracking {
		return
	}
	r.tracking = true
	r.pointer = event.PointerID
	r.accepted = false
	r.upReceived = false
	r.down = event.Position
	r.arena.Add(event.PointerID, r)
}

// HandleEvent processes move, up, and cancel events for a tracked pointer.
func (r *TapGestureRecognizer) HandleEvent(event PointerEvent) {
	if !r.tracking || event.PointerID != r.pointer {
		return
	}
	switch event.Phase {
	case PointerPhaseMove:
		dx := event.Position.X - r.down.X
		dy := event.Position.Y - r.down.Y
		if math.Hypot(dx, dy) > DefaultTouchSlop {
			r.arena.Resolve(r.pointer, r, false)
			// The slide also cancels a tap that had already won its
			// arena, e.g. as the lone member at close.
			r.resetTracking()
		}
	case PointerPhaseUp:
		if r.accepted {
			tap := r.OnTap
			r.resetTracking()
			if tap != nil {
				tap()
			}
			return
		}
		// Arena still open. Fire on acceptance (typically at sweep).
		r.upReceived = true
	case PointerPhaseCancel:
		r.arena.Resolve(r.pointer, r, false)
	}
}

func (r *TapGestureRecognizer) AcceptGesture(pointer int64) {
	if !r.tracking || pointer != r.pointer {
		return
	}
	r.accepted = true
	if r.upReceived {
		tap := r.OnTap
		r.resetTracking()
		if tap != nil {
			tap()
		}
	}
}

func (r *TapGestureRecognizer) RejectGesture(pointer int64) {
	if !r.tracking || pointer != r.pointer {
		return
	}
	r.resetTracking()
}

// Dispose releases the recognizer, withdrawing from any open arena.
func (r *TapGestureRecognizer) Dispose() {
	if r.tracking {
		r.arena.Remove(r.pointer, r)
	}
	r.resetTracking()
	r.OnTap = nil
}

func (r *TapGestureRecognizer) resetTracking() {
	r.tracking = false
	r.accepted = false
	r.upReceived = false
}

type dragAxis int

const (
	dragAxisHorizontal dragAxis = iota
	dragAxisVertical
	dragAxisPan
)

// dragRecognizer is the shared core of the drag and pan recognizers.
//
// Axis recognizers claim the arena when movement along their axis exceeds
// the touch slop while dominating the cross axis, and withdraw when the
// cross axis wins instead. A recognizer accepted before any movement (a
// lone arena member, for example) still waits for the slop before
// reporting a drag, so cross-axis movement produces no updates.
type dragRecognizer struct {
	OnStart  func(DragStartDetails)
	OnUpdate func(DragUpdateDetails)
	OnEnd    func(DragEndDetails)
	OnCancel func()

	arena    *GestureArena
	axis     dragAxis
	pointer  int64
	tracking bool
	accepted bool
	started  bool
	down     graphics.Offset
	current  graphics.Offset
	// lastReported is the position already delivered through OnUpdate.
	lastReported graphics.Offset
	tracker      velocityTracker
}

// AddPointer begins tracking a pointer and joins the arena for it.
func (r *dragRecognizer) AddPointer(event PointerEvent) {
	if r.tracking {
		return
	}
	r.tracking = true
	r.pointer = event.PointerID
	r.accepted = false
	r.started = false
	r.down = event.Position
	r.current = event.Position
	r.tracker.reset()
	r.tracker.addSample(event)
	r.arena.Add(event.PointerID, r)
}

// HandleEvent processes move, up, and cancel events for a tracked pointer.
func (r *dragRecognizer) HandleEvent(event PointerEvent) {
	if !r.tracking || event.PointerID != r.pointer {
		return
	}
	switch event.Phase {
	case PointerPhaseMove:
		r.current = event.Position
		r.tracker.addSample(event)

		if !r.accepted {
			r.resolveFromMovement()
			if !r.tracking {
				return
			}
		}
		if r.accepted && !r.started && r.pastSlop() {
			r.startDrag()
		}
		if r.started {
			r.reportUpdate(event.Position)
		}
	case PointerPhaseUp:
		if r.started {
			velocity := r.tracker.velocity()
			end := r.OnEnd
			details := DragEndDetails{
				Velocity:        velocity,
				PrimaryVelocity: r.primary(velocity),
			}
			r.resetTracking()
			if end != nil {
				end(details)
			}
			return
		}
		if r.accepted {
			r.resetTracking()
		}
		// Not yet resolved: the arena sweep decides, and with no drag
		// started there is nothing to deliver either way.
	case PointerPhaseCancel:
		started := r.started
		cancel := r.OnCancel
		if !r.accepted {
			r.arena.Resolve(r.pointer, r, false)
		}
		r.resetTracking()
		if started && cancel != nil {
			cancel()
		}
	}
}

func (r *dragRecognizer) AcceptGesture(pointer int64) {
	if !r.tracking || pointer != r.pointer {
		return
	}
	r.accepted = true
	if !r.started && r.pastSlop() {
		r.startDrag()
		r.reportUpdate(r.current)
	}
}

func (r *dragRecognizer) RejectGesture(pointer int64) {
	if !r.tracking || pointer != r.pointer {
		return
	}
	r.resetTracking()
}

// Dispose releases the recognizer, withdrawing from any open arena.
func (r *dragRecognizer) Dispose() {
	if r.tracking {
		r.arena.Remove(r.pointer, r)
	}
	r.resetTracking()
	r.OnStart = nil
	r.OnUpdate = nil
	r.OnEnd = nil
	r.OnCancel = nil
}

// resolveFromMovement claims or withdraws from the arena based on the total
// movement since pointer down.
func (r *dragRecognizer) resolveFromMovement() {
	dx := r.current.X - r.down.X
	dy := r.current.Y - r.down.Y
	switch r.axis {
	case dragAxisHorizontal:
		if math.Abs(dx) > DefaultTouchSlop && math.Abs(dx) > math.Abs(dy) {
			r.arena.Resolve(r.pointer, r, true)
		} else if math.Abs(dy) > DefaultTouchSlop && math.Abs(dy) >= math.Abs(dx) {
			r.arena.Resolve(r.pointer, r, false)
		}
	case dragAxisVertical:
		if math.Abs(dy) > DefaultTouchSlop && math.Abs(dy) > math.Abs(dx) {
			r.arena.Resolve(r.pointer, r, true)
		} else if math.Abs(dx) > DefaultTouchSlop && math.Abs(dx) >= math.Abs(dy) {
			r.arena.Resolve(r.pointer, r, false)
		}
	case dragAxisPan:
		if math.Hypot(dx, dy) > DefaultTouchSlop {
			r.arena.Resolve(r.pointer, r, true)
		}
	}
}

// pastSlop reports whether movement along the primary axis exceeds the
// touch slop (any direction for pan).
func (r *dragRecognizer) pastSlop() bool {
	dx := r.current.X - r.down.X
	dy := r.current.Y - r.down.Y
	switch r.axis {
	case dragAxisHorizontal:
		return math.Abs(dx) > DefaultTouchSlop
	case dragAxisVertical:
		return math.Abs(dy) > DefaultTouchSlop
	default:
		return math.Hypot(dx, dy) > DefaultTouchSlop
	}
}

// startDrag fires OnStart and positions lastReported so the first update
// only carries the movement beyond the slop.
func (r *dragRecognizer) startDrag() {
	r.started = true
	r.lastReported = r.down
	switch r.axis {
	case dragAxisHorizontal:
		r.lastReported.X += math.Copysign(DefaultTouchSlop, r.current.X-r.down.X)
	case dragAxisVertical:
		r.lastReported.Y += math.Copysign(DefaultTouchSlop, r.current.Y-r.down.Y)
	}
	if r.OnStart != nil {
		r.OnStart(DragStartDetails{Position: r.current})
	}
}

func (r *dragRecognizer) reportUpdate(position graphics.Offset) {
	delta := graphics.Offset{
		X: position.X - r.lastReported.X,
		Y: position.Y - r.lastReported.Y,
	}
	r.lastReported = position
	if delta.X == 0 && delta.Y == 0 {
		return
	}
	if r.OnUpdate != nil {
		r.OnUpdate(DragUpdateDetails{
			Position:     position,
			Delta:        delta,
			PrimaryDelta: r.primary(delta),
		})
	}
}

func (r *dragRecognizer) primary(v graphics.Offset) float64 {
	switch r.axis {
	case dragAxisHorizontal:
		return v.X
	case dragAxisVertical:
		return v.Y
	default:
		return 0
	}
}

func (r *dragRecognizer) resetTracking() {
	r.tracking = false
	r.accepted = false
	r.started = false
}

// HorizontalDragGestureRecognizer recognizes drags along the horizontal axis.
type HorizontalDragGestureRecognizer struct {
	dragRecognizer
}

func NewHorizontalDragGestureRecognizer(arena *GestureArena) *HorizontalDragGestureRecognizer {
	r := &HorizontalDragGestureRecognizer{}
	r.arena = arena
	r.axis = dragAxisHorizontal
	return r
}

// VerticalDragGestureRecognizer recognizes drags along the vertical axis.
type VerticalDragGestureRecognizer struct {
	dragRecognizer
}

func NewVerticalDragGestureRecognizer(arena *GestureArena) *VerticalDragGestureRecognizer {
	r := &VerticalDragGestureRecognizer{}
	r.arena = arena
	r.axis = dragAxisVertical
	return r
}

// PanGestureRecognizer recognizes free-form drags in any direction.
type PanGestureRecognizer struct {
	dragRecognizer
}

func NewPanGestureRecognizer(arena *GestureArena) *PanGestureRecognizer {
	r := &PanGestureRecognizer{}
	r.arena = arena
	r.axis = dragAxisPan
	return r
}
