package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/carousel/pkg/animation"
	"github.com/go-drift/carousel/pkg/core"
	"github.com/go-drift/carousel/pkg/graphics"
	"github.com/go-drift/carousel/pkg/layout"
	"github.com/go-drift/carousel/pkg/platform"
	"github.com/go-drift/carousel/pkg/widgets"
)

// Default logical surface size when SetSize is never called.
const (
	DefaultTestWidth  = 800
	DefaultTestHeight = 600
)

// ErrSettleTimeout reports that PumpAndSettle ran out of time with work
// still pending.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: framework did not settle")

// WidgetTester runs widget trees headlessly. It drives the same build, layout, and paint phases as a real host but
// uses a fake clock, a recording canvas, and a loopback native bridge.
type WidgetTester struct {
	buildOwner *core.BuildOwner
	root       core.Element
	rootRender layout.RenderObject
	clock      *FakeClock
	prevClock  animation.Clock
	size       graphics.Size
	dispatches []func()
	pointers   map[int]*pointerState
	canvas     *graphics.RecordingCanvas
	bridge     *platform.LoopbackBridge
}

// NewWidgetTester builds a tester with default surface size. The caller
// owns Cleanup; prefer NewWidgetTesterWithT, which wires it up.
func NewWidgetTester() *WidgetTester {
	clk := NewFakeClock()
	t := &WidgetTester{
		buildOwner: core.NewBuildOwner(),
		clock:      clk,
		size:       graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight},
		pointers:   make(map[int]*pointerState),
		canvas:     &graphics.RecordingCanvas{},
		bridge:     platform.NewLoopbackBridge(),
	}
	t.prevClock = animation.SetClock(clk)
	// Stand in for the native host so platform views and channels work.
	platform.SetNativeBridge(t.bridge, platform.BridgeProtocolVersion)
	// Route platform.Dispatch callbacks through the tester's frame queue.
	platform.RegisterDispatch(t.Dispatch)
	return t
}

// NewWidgetTesterWithT builds a tester whose global state is restored
// automatically when the test ends.
func NewWidgetTesterWithT(t *testing.T) *WidgetTester {
	tester := NewWidgetTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts the tree and puts back the animation clock and the
// platform bridge this tester swapped in.
func (t *WidgetTester) Cleanup() {
	if t.root != nil {
		t.root.Unmount()
		t.root = nil
		t.rootRender = nil
	}
	animation.SetClock(t.prevClock)
	platform.ResetForTest()
}

// SetSize changes the logical surface size. Call it before PumpWidget.
func (t *WidgetTester) SetSize(size graphics.Size) {
	t.size = size
}

// Clock returns the fake clock driving animations under this tester.
func (t *WidgetTester) Clock() *FakeClock {
	return t.clock
}

// Canvas returns the recording canvas holding the ops of the most recent
// painted frame.
func (t *WidgetTester) Canvas() *graphics.RecordingCanvas {
	return t.canvas
}

// Bridge returns the loopback native bridge, for asserting on calls that
// crossed to the (simulated) platform side.
func (t *WidgetTester) Bridge() *platform.LoopbackBridge {
	return t.bridge
}

// PumpWidget replaces the mounted tree with widget and runs one frame.
func (t *WidgetTester) PumpWidget(widget core.Widget) error {
	if t.root != nil {
		t.root.Unmount()
		t.root = nil
		t.rootRender = nil
	}

	t.root = core.MountRoot(widget, t.buildOwner)
	if renderElement, ok := t.root.(interface{ RenderObject() layout.RenderObject }); ok {
		t.rootRender = renderElement.RenderObject()
	}

	if t.rootRender != nil {
		pipeline := t.buildOwner.Pipeline()
		pipeline.ScheduleLayout(t.rootRender)
		pipeline.SchedulePaint(t.rootRender)
	}

	return t.Pump()
}

// Pump runs a single frame cycle: dispatches, ballistics, tickers, build,
// layout, paint.
func (t *WidgetTester) Pump() error {
	dispatches := t.dispatches
	t.dispatches = nil
	for _, fn := range dispatches {
		fn()
	}

	widgets.StepBallistics()
	animation.StepTickers()

	t.buildOwner.FlushBuild()

	if t.rootRender == nil {
		return nil
	}
	pipeline := t.buildOwner.Pipeline()
	pipeline.FlushLayoutForRoot(t.rootRender, layout.Tight(t.size))

	// Repaint the whole tree when any boundary is dirty. The geometry
	// batch brackets the repaint so platform views that stop reporting
	// geometry get hidden natively.
	dirty := pipeline.FlushPaint()
	if len(dirty) == 0 {
		return nil
	}
	registry := platform.GetPlatformViewRegistry()
	registry.BeginGeometryBatch()
	t.canvas.Reset()
	ctx := &layout.PaintContext{Canvas: t.canvas}
	t.rootRender.Paint(ctx)
	clearPaintFlags(t.rootRender)
	return registry.FlushGeometryBatch()
}

// PumpAndSettle runs frames until the framework is idle or the timeout is
// reached. Each frame advances the fake clock by 16ms. Returns
// ErrSettleTimeout if the framework does not settle within timeout.
func (t *WidgetTester) PumpAndSettle(timeout time.Duration) error {
	const frameDuration = 16 * time.Millisecond
	var elapsed time.Duration
	for elapsed < timeout {
		if err := t.Pump(); err != nil {
			return err
		}
		if !t.needsWork() {
			return nil
		}
		t.clock.Advance(frameDuration)
		elapsed += frameDuration
	}
	return ErrSettleTimeout
}

// needsWork reports pending builds, tickers, ballistics, or dispatches.
func (t *WidgetTester) needsWork() bool {
	return t.buildOwner.NeedsWork() ||
		animation.HasActiveTickers() ||
		widgets.HasActiveBallistics() ||
		len(t.dispatches) > 0
}

// Dispatch queues a callback for the next frame.
func (t *WidgetTester) Dispatch(fn func()) {
	t.dispatches = append(t.dispatches, fn)
}

// RootElement returns the mounted tree's root element.
func (t *WidgetTester) RootElement() core.Element {
	return t.root
}

// RootRenderObject returns the mounted tree's root render object.
func (t *WidgetTester) RootRenderObject() layout.RenderObject {
	return t.rootRender
}

// Find runs finder over the mounted tree.
func (t *WidgetTester) Find(finder Finder) FinderResult {
	if t.root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		elements: finder.Evaluate(t.root),
		finder:   finder,
	}
}

// clearPaintFlags marks a subtree as painted after a full-tree repaint.
func clearPaintFlags(ro layout.RenderObject) {
	if cleaner, ok := ro.(interface{ ClearNeedsPaint() }); ok {
		cleaner.ClearNeedsPaint()
	}
	if visitor, ok := ro.(layout.ChildVisitor); ok {
		visitor.VisitChildren(clearPaintFlags)
	}
}

// extractRenderObject pulls the render object off an element, if it has
// one.
func extractRenderObject(e core.Element) layout.RenderObject {
	if e == nil {
		return nil
	}
	if ro, ok := e.(interface{ RenderObject() layout.RenderObject }); ok {
		return ro.RenderObject()
	}
	return nil
}
