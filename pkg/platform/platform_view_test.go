package platform

import (
	"testing"

	"github.com/go-drift/carousel/pkg/graphics"
)

// indicatorStub satisfies PlatformView without touching the registry, so
// batching tests can seed views directly.
type indicatorStub struct{ id int64 }

func (v *indicatorStub) ViewID() int64                      { return v.id }
func (v *indicatorStub) ViewType() string                   { return "page_indicator" }
func (v *indicatorStub) Create(params map[string]any) error { return nil }
func (v *indicatorStub) Dispose()                           {}
func (v *indicatorStub) SetSize(graphics.Size)              {}
func (v *indicatorStub) SetOffset(graphics.Offset)          {}
func (v *indicatorStub) SetVisible(bool)                    {}

const geometryTestChannel = "test/indicator_views"

// newGeometryRegistry builds an isolated registry preloaded with stub views.
func newGeometryRegistry(viewIDs ...int64) *PlatformViewRegistry {
	r := &PlatformViewRegistry{
		factories:          make(map[string]PlatformViewFactory),
		views:              make(map[int64]PlatformView),
		channel:            NewMethodChannel(geometryTestChannel),
		geometryCache:      make(map[int64]viewGeometryCache),
		viewsSeenThisFrame: make(map[int64]struct{}),
	}
	for _, id := range viewIDs {
		r.views[id] = &indicatorStub{id: id}
	}
	return r
}

// geometryBatches flattens every batchSetGeometry call into per-call entry
// slices, keyed in call order.
func geometryBatches(bridge *LoopbackBridge) [][]map[string]any {
	var batches [][]map[string]any
	for _, call := range bridge.CallsTo(geometryTestChannel, "batchSetGeometry") {
		raw, _ := call.Args["geometries"].([]any)
		entries := make([]map[string]any, 0, len(raw))
		for _, g := range raw {
			if m, ok := g.(map[string]any); ok {
				entries = append(entries, m)
			}
		}
		batches = append(batches, entries)
	}
	return batches
}

func entryForView(entries []map[string]any, viewID int64) map[string]any {
	for _, e := range entries {
		if id, ok := e["viewId"].(float64); ok && int64(id) == viewID {
			return e
		}
	}
	return nil
}

// clipIsEmpty reports whether the entry carries the all-zero clip that
// hides a view.
func clipIsEmpty(entry map[string]any) bool {
	for _, key := range []string{"clipLeft", "clipTop", "clipRight", "clipBottom"} {
		v, ok := entry[key].(float64)
		if !ok || v != 0 {
			return false
		}
	}
	return true
}

var (
	indicatorOffset = graphics.Offset{X: 40, Y: 700}
	indicatorSize   = graphics.Size{Width: 310, Height: 24}
	indicatorClip   = graphics.Rect{Left: 0, Top: 0, Right: 310, Bottom: 24}
)

func TestGeometryBatch_CulledViewGetsHidden(t *testing.T) {
	bridge := setupLoopback(t)
	reg := newGeometryRegistry(1, 2)

	// View 2 scrolled out with the strip; only view 1 reports geometry.
	reg.BeginGeometryBatch()
	reg.UpdateViewGeometry(1, indicatorOffset, indicatorSize, &indicatorClip)
	reg.FlushGeometryBatch()

	batches := geometryBatches(bridge)
	if len(batches) != 1 {
		t.Fatalf("batch calls = %d, want 1", len(batches))
	}
	entries := batches[0]
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want the visible view plus a hide entry", len(entries))
	}

	visible := entryForView(entries, 1)
	hidden := entryForView(entries, 2)
	switch {
	case visible == nil:
		t.Fatal("no entry for the visible view")
	case hidden == nil:
		t.Fatal("no hide entry for the culled view")
	case clipIsEmpty(visible):
		t.Error("the visible view must not be clipped away")
	case !clipIsEmpty(hidden):
		t.Error("the culled view should get an empty clip")
	}
}

func TestGeometryBatch_AllViewsVisible(t *testing.T) {
	bridge := setupLoopback(t)
	reg := newGeometryRegistry(1, 2)

	reg.BeginGeometryBatch()
	reg.UpdateViewGeometry(1, indicatorOffset, indicatorSize, nil)
	reg.UpdateViewGeometry(2, graphics.Offset{X: 366, Y: 700}, indicatorSize, nil)
	reg.FlushGeometryBatch()

	batches := geometryBatches(bridge)
	if len(batches) != 1 || len(batches[0]) != 2 {
		t.Fatalf("batches = %v, want one batch with two entries", batches)
	}
	for _, entry := range batches[0] {
		if clipIsEmpty(entry) {
			t.Errorf("view %v hidden despite being updated this frame", entry["viewId"])
		}
	}
}

func TestGeometryBatch_HiddenViewComesBack(t *testing.T) {
	bridge := setupLoopback(t)
	reg := newGeometryRegistry(1)

	// First frame never mentions the view, so the flush hides it.
	reg.BeginGeometryBatch()
	reg.FlushGeometryBatch()

	batches := geometryBatches(bridge)
	if len(batches) != 1 || len(batches[0]) != 1 {
		t.Fatalf("first frame batches = %v, want a single hide entry", batches)
	}
	if !clipIsEmpty(batches[0][0]) {
		t.Fatal("unseen view should be hidden on flush")
	}

	// Next frame the strip scrolls it back in.
	reg.BeginGeometryBatch()
	reg.UpdateViewGeometry(1, indicatorOffset, indicatorSize, &indicatorClip)
	reg.FlushGeometryBatch()

	batches = geometryBatches(bridge)
	if len(batches) != 2 {
		t.Fatalf("batch calls = %d, want 2", len(batches))
	}
	restored := batches[1]
	if len(restored) != 1 || clipIsEmpty(restored[0]) {
		t.Errorf("restored frame entries = %v, want the view visible again", restored)
	}
}

func TestGeometryBatch_EmptyRegistrySendsNothing(t *testing.T) {
	bridge := setupLoopback(t)
	reg := newGeometryRegistry()

	reg.BeginGeometryBatch()
	reg.FlushGeometryBatch()

	if batches := geometryBatches(bridge); len(batches) != 0 {
		t.Fatalf("batch calls = %d, want none with no views", len(batches))
	}
}

func TestGeometryBatch_UnchangedGeometryIsDeduped(t *testing.T) {
	bridge := setupLoopback(t)
	reg := newGeometryRegistry(1)

	for frame := 0; frame < 2; frame++ {
		reg.BeginGeometryBatch()
		reg.UpdateViewGeometry(1, indicatorOffset, indicatorSize, nil)
		reg.FlushGeometryBatch()
	}

	// The second frame repeats the first exactly: nothing to send, and the
	// still-visible view must not be swept into a hide entry.
	if batches := geometryBatches(bridge); len(batches) != 1 {
		t.Fatalf("batch calls = %d, want only the first frame's", len(batches))
	}
}

func TestGeometryBatch_HideInvalidatesDedupCache(t *testing.T) {
	bridge := setupLoopback(t)
	reg := newGeometryRegistry(1)

	// Visible, then culled, then back at the identical position. The hide
	// frame rewrote the cache, so the third frame must send a restore even
	// though its geometry matches frame one.
	reg.BeginGeometryBatch()
	reg.UpdateViewGeometry(1, indicatorOffset, indicatorSize, &indicatorClip)
	reg.FlushGeometryBatch()

	reg.BeginGeometryBatch()
	reg.FlushGeometryBatch()

	reg.BeginGeometryBatch()
	reg.UpdateViewGeometry(1, indicatorOffset, indicatorSize, &indicatorClip)
	reg.FlushGeometryBatch()

	batches := geometryBatches(bridge)
	if len(batches) != 3 {
		t.Fatalf("batch calls = %d, want 3", len(batches))
	}
	if !clipIsEmpty(batches[1][0]) {
		t.Error("second frame should hide the culled view")
	}
	if clipIsEmpty(batches[2][0]) {
		t.Error("third frame should restore the view, not stay hidden")
	}
}

func TestUpdateViewGeometry_OutsideBatchSendsImmediately(t *testing.T) {
	bridge := setupLoopback(t)
	reg := newGeometryRegistry(1)

	if err := reg.UpdateViewGeometry(1, indicatorOffset, indicatorSize, nil); err != nil {
		t.Fatalf("UpdateViewGeometry: %v", err)
	}

	calls := bridge.CallsTo(geometryTestChannel, "setGeometry")
	if len(calls) != 1 {
		t.Fatalf("setGeometry calls = %d, want 1", len(calls))
	}
	if got := calls[0].Args["x"].(float64); got != indicatorOffset.X {
		t.Errorf("x = %v, want %v", got, indicatorOffset.X)
	}
}
