package gestures

import (
	"testing"

	"github.com/go-drift/carousel/pkg/graphics"
)

func feed(r interface {
	AddPointer(PointerEvent)
	HandleEvent(PointerEvent)
}, arena *GestureArena, pointer int64, path []graphics.Offset) {
	r.AddPointer(PointerEvent{PointerID: pointer, Position: path[0], Phase: PointerPhaseDown})
	arena.Close(pointer)
	for _, pos := range path[1 : len(path)-1] {
		r.HandleEvent(PointerEvent{PointerID: pointer, Position: pos, Phase: PointerPhaseMove})
	}
	r.HandleEvent(PointerEvent{PointerID: pointer, Position: path[len(path)-1], Phase: PointerPhaseUp})
	arena.Sweep(pointer)
}

func TestHorizontalDrag_AcceptsHorizontalMovement(t *testing.T) {
	arena := NewGestureArena()
	r := NewHorizontalDragGestureRecognizer(arena)
	defer r.Dispose()

	var started bool
	var moved float64
	var ended bool
	r.OnStart = func(DragStartDetails) { started = true }
	r.OnUpdate = func(d DragUpdateDetails) { moved += d.PrimaryDelta }
	r.OnEnd = func(DragEndDetails) { ended = true }

	feed(r, arena, 1, []graphics.Offset{
		{X: 100, Y: 100},
		{X: 100 + DefaultTouchSlop + 40, Y: 100},
		{X: 100 + DefaultTouchSlop + 80, Y: 100},
	})

	if !started {
		t.Error("horizontal movement past the slop should start a drag")
	}
	if moved <= 0 {
		t.Errorf("accumulated delta = %v, want > 0", moved)
	}
	if !ended {
		t.Error("lifting the pointer should end the drag")
	}
}

func TestHorizontalDrag_IgnoresVerticalMovement(t *testing.T) {
	arena := NewGestureArena()
	r := NewHorizontalDragGestureRecognizer(arena)
	defer r.Dispose()

	var started bool
	r.OnStart = func(DragStartDetails) { started = true }

	feed(r, arena, 2, []graphics.Offset{
		{X: 100, Y: 100},
		{X: 100, Y: 100 + DefaultTouchSlop + 40},
		{X: 100, Y: 100 + DefaultTouchSlop + 80},
	})

	if started {
		t.Error("a vertical swipe must not start a horizontal drag")
	}
}

func TestVerticalDrag_IgnoresHorizontalMovement(t *testing.T) {
	arena := NewGestureArena()
	r := NewVerticalDragGestureRecognizer(arena)
	defer r.Dispose()

	var started bool
	r.OnStart = func(DragStartDetails) { started = true }

	feed(r, arena, 3, []graphics.Offset{
		{X: 100, Y: 100},
		{X: 100 + DefaultTouchSlop + 40, Y: 100},
	})

	if started {
		t.Error("a horizontal swipe must not start a vertical drag")
	}
}

func TestHorizontalDrag_WithinSlopDoesNotStart(t *testing.T) {
	arena := NewGestureArena()
	r := NewHorizontalDragGestureRecognizer(arena)
	defer r.Dispose()

	var started bool
	r.OnStart = func(DragStartDetails) { started = true }

	feed(r, arena, 4, []graphics.Offset{
		{X: 100, Y: 100},
		{X: 100 + DefaultTouchSlop/2, Y: 100},
	})

	if started {
		t.Error("movement within the touch slop must not start a drag")
	}
}

func TestTapRecognizer_FiresOnCleanTap(t *testing.T) {
	arena := NewGestureArena()
	r := NewTapGestureRecognizer(arena)
	defer r.Dispose()

	var taps int
	r.OnTap = func() { taps++ }

	feed(r, arena, 5, []graphics.Offset{
		{X: 50, Y: 50},
		{X: 51, Y: 50},
	})

	if taps != 1 {
		t.Errorf("taps = %d, want 1", taps)
	}
}

func TestTapRecognizer_CancelledBySlide(t *testing.T) {
	arena := NewGestureArena()
	r := NewTapGestureRecognizer(arena)
	defer r.Dispose()

	var taps int
	r.OnTap = func() { taps++ }

	feed(r, arena, 6, []graphics.Offset{
		{X: 50, Y: 50},
		{X: 50 + DefaultTouchSlop + 30, Y: 50},
	})

	if taps != 0 {
		t.Errorf("taps = %d, want 0 after sliding past the slop", taps)
	}
}

// A tap and a horizontal drag competing for the same pointer: the drag wins
// once movement passes the slop, which is how a card's tap target yields to
// the strip's scroll.
func TestArena_DragBeatsTapOnMovement(t *testing.T) {
	arena := NewGestureArena()
	tap := NewTapGestureRecognizer(arena)
	defer tap.Dispose()
	drag := NewHorizontalDragGestureRecognizer(arena)
	defer drag.Dispose()

	var taps int
	var dragStarted bool
	tap.OnTap = func() { taps++ }
	drag.OnStart = func(DragStartDetails) { dragStarted = true }

	down := PointerEvent{PointerID: 7, Position: graphics.Offset{X: 100, Y: 100}, Phase: PointerPhaseDown}
	tap.AddPointer(down)
	drag.AddPointer(down)
	arena.Close(7)

	move := PointerEvent{PointerID: 7, Position: graphics.Offset{X: 100 + DefaultTouchSlop + 60, Y: 100}, Phase: PointerPhaseMove}
	tap.HandleEvent(move)
	drag.HandleEvent(move)

	up := PointerEvent{PointerID: 7, Position: move.Position, Phase: PointerPhaseUp}
	tap.HandleEvent(up)
	drag.HandleEvent(up)
	arena.Sweep(7)

	if taps != 0 {
		t.Errorf("taps = %d, want 0 when the drag claims the pointer", taps)
	}
	if !dragStarted {
		t.Error("drag should claim the pointer after movement past the slop")
	}
}

// A clean tap with both recognizers in the arena resolves to the tap on
// sweep: nothing moved, so the drag never claims the pointer.
func TestArena_TapWinsWithoutMovement(t *testing.T) {
	arena := NewGestureArena()
	tap := NewTapGestureRecognizer(arena)
	defer tap.Dispose()
	drag := NewHorizontalDragGestureRecognizer(arena)
	defer drag.Dispose()

	var taps int
	var dragStarted bool
	tap.OnTap = func() { taps++ }
	drag.OnStart = func(DragStartDetails) { dragStarted = true }

	down := PointerEvent{PointerID: 8, Position: graphics.Offset{X: 100, Y: 100}, Phase: PointerPhaseDown}
	tap.AddPointer(down)
	drag.AddPointer(down)
	arena.Close(8)

	up := PointerEvent{PointerID: 8, Position: graphics.Offset{X: 101, Y: 100}, Phase: PointerPhaseUp}
	tap.HandleEvent(up)
	drag.HandleEvent(up)
	arena.Sweep(8)

	if taps != 1 {
		t.Errorf("taps = %d, want 1", taps)
	}
	if dragStarted {
		t.Error("drag must not start without movement")
	}
}
