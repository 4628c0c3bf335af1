package testing

import (
	"fmt"

	"github.com/go-drift/carousel/pkg/gestures"
	"github.com/go-drift/carousel/pkg/graphics"
	"github.com/go-drift/carousel/pkg/layout"
)

// pointerState is one in-flight pointer stroke. Handlers are captured by
// the hit test at pointer-down and receive every later event of the
// stroke, matching how a platform delivers touch sequences.
type pointerState struct {
	handlers []layout.PointerHandler
	position graphics.Offset
}

var nextPointerID int64

func allocPointerID() int64 {
	nextPointerID++
	return nextPointerID
}

// Tap presses and releases at the center of the first match.
func (t *WidgetTester) Tap(finder Finder) error {
	center, err := t.centerOf(finder, "Tap")
	if err != nil {
		return err
	}
	return t.TapAt(center)
}

// TapAt presses and releases at a logical position.
func (t *WidgetTester) TapAt(pos graphics.Offset) error {
	id := int(allocPointerID())
	if err := t.SendPointerDown(pos, id); err != nil {
		return err
	}
	return t.SendPointerUp(pos, id)
}

// DragFrom presses at start, moves by delta, and releases. With the fake
// clock the whole stroke lands inside one frame, so recognizers see the
// full delta as a single fast swipe.
func (t *WidgetTester) DragFrom(start, delta graphics.Offset) error {
	id := int(allocPointerID())
	if err := t.SendPointerDown(start, id); err != nil {
		return err
	}
	end := start.Add(delta)
	if err := t.SendPointerMove(end, id); err != nil {
		return err
	}
	return t.SendPointerUp(end, id)
}

func (t *WidgetTester) centerOf(finder Finder, op string) (graphics.Offset, error) {
	result := t.Find(finder)
	if !result.Exists() {
		return graphics.Offset{}, fmt.Errorf("%s: finder matched no elements: %s", op, finder.Description())
	}
	ro := extractRenderObject(result.First())
	if ro == nil {
		return graphics.Offset{}, fmt.Errorf("%s: element has no render object: %s", op, finder.Description())
	}
	size := ro.Size()
	abs := absoluteOffset(ro)
	return graphics.Offset{X: abs.X + size.Width/2, Y: abs.Y + size.Height/2}, nil
}

// SendPointerDown starts a stroke for pointerID at pos.
func (t *WidgetTester) SendPointerDown(pos graphics.Offset, pointerID int) error {
	return t.sendPointer(gestures.PointerEvent{
		PointerID: int64(pointerID),
		Position:  pos,
		Phase:     gestures.PointerPhaseDown,
	})
}

// SendPointerMove continues a stroke, computing the delta from the
// previous position.
func (t *WidgetTester) SendPointerMove(pos graphics.Offset, pointerID int) error {
	return t.sendPointer(gestures.PointerEvent{
		PointerID: int64(pointerID),
		Position:  pos,
		Delta:     t.strokeDelta(pointerID, pos),
		Phase:     gestures.PointerPhaseMove,
	})
}

// SendPointerUp ends a stroke at pos.
func (t *WidgetTester) SendPointerUp(pos graphics.Offset, pointerID int) error {
	return t.sendPointer(gestures.PointerEvent{
		PointerID: int64(pointerID),
		Position:  pos,
		Delta:     t.strokeDelta(pointerID, pos),
		Phase:     gestures.PointerPhaseUp,
	})
}

func (t *WidgetTester) strokeDelta(pointerID int, pos graphics.Offset) graphics.Offset {
	state := t.pointers[pointerID]
	if state == nil {
		return graphics.Offset{}
	}
	return pos.Sub(state.position)
}

func (t *WidgetTester) sendPointer(event gestures.PointerEvent) error {
	if t.rootRender == nil {
		return fmt.Errorf("no widget mounted")
	}
	id := int(event.PointerID)

	if event.Phase == gestures.PointerPhaseDown {
		result := &layout.HitTestResult{}
		t.rootRender.HitTest(event.Position, result)
		t.pointers[id] = &pointerState{
			handlers: pointerHandlersOf(result.Entries),
			position: event.Position,
		}
	}

	state := t.pointers[id]
	if state == nil {
		return nil
	}
	state.position = event.Position
	for _, h := range state.handlers {
		h.HandlePointer(event)
	}

	switch event.Phase {
	case gestures.PointerPhaseDown:
		gestures.DefaultArena.Close(event.PointerID)
	case gestures.PointerPhaseUp, gestures.PointerPhaseCancel:
		gestures.DefaultArena.Sweep(event.PointerID)
		delete(t.pointers, id)
	}
	return nil
}

// pointerHandlersOf filters hit test entries down to unique pointer
// handlers in paint order.
func pointerHandlersOf(entries []layout.RenderObject) []layout.PointerHandler {
	handlers := make([]layout.PointerHandler, 0, len(entries))
	seen := make(map[layout.PointerHandler]struct{})
	for _, entry := range entries {
		h, ok := entry.(layout.PointerHandler)
		if !ok {
			continue
		}
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		handlers = append(handlers, h)
	}
	return handlers
}

// absoluteOffset accumulates BoxParentData offsets up the parent chain to
// place a render object in root coordinates.
func absoluteOffset(ro layout.RenderObject) graphics.Offset {
	offset := graphics.Offset{}
	for cur := ro; cur != nil; {
		if pd, ok := cur.ParentData().(*layout.BoxParentData); ok {
			offset = offset.Add(pd.Offset)
		}
		parent, ok := cur.(interface{ Parent() layout.RenderObject })
		if !ok {
			break
		}
		cur = parent.Parent()
	}
	return offset
}
