package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/go-drift/carousel/pkg/animation"
	"github.com/go-drift/carousel/pkg/core"
	"github.com/go-drift/carousel/pkg/graphics"
	"github.com/go-drift/carousel/pkg/layout"
	"github.com/go-drift/carousel/pkg/platform"
	"github.com/go-drift/carousel/pkg/widgets"
)

const (
	surfaceWidth  = 390
	surfaceHeight = 844

	frameInterval = 16 * time.Millisecond
)

func main() {
	deckPath := flag.String("deck", "deck.yaml", "path to the deck YAML file")
	flag.Parse()

	deck, err := LoadDeck(*deckPath)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("loaded %d cards from %s", len(deck), *deckPath)

	bridge := platform.NewLoopbackBridge()
	if err := platform.SetNativeBridge(bridge, platform.BridgeProtocolVersion); err != nil {
		log.Fatal(err)
	}

	h := newHost(graphics.Size{Width: surfaceWidth, Height: surfaceHeight})
	platform.RegisterDispatch(h.dispatch)

	platform.Lifecycle.AddHandler(func(state platform.LifecycleState) {
		log.Printf("lifecycle: %s", state)
	})

	if err := h.mount(App(&deck)); err != nil {
		log.Fatal(err)
	}
	if err := h.settle(5 * time.Second); err != nil {
		log.Fatal(err)
	}

	indicatorID, ok := indicatorViewID(bridge)
	if !ok {
		log.Fatal("no page indicator view was created")
	}
	log.Printf("native page indicator created (view %d)", indicatorID)

	// Simulate a native tap on the third dot and let the snap animation
	// play out.
	_, err = bridge.InvokeGoMethod("carousel/platform_views", "viewEvent", map[string]any{
		"viewId": indicatorID,
		"event":  "pageSelected",
		"args":   map[string]any{"page": 2},
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := h.settle(5 * time.Second); err != nil {
		log.Fatal(err)
	}
	log.Printf("after tapping dot 2: indicator shows page %d", currentPage(bridge))

	// Mutate the bound collection: drop the first card. The carousel keeps
	// its selection by id, so the indicator follows the card to index 1.
	deck = deck[1:]
	h.rebuild()
	if err := h.settle(5 * time.Second); err != nil {
		log.Fatal(err)
	}
	log.Printf("after removing the first card: indicator shows page %d of %d",
		currentPage(bridge), len(deck))

	// Park the app the way a native host does when it goes to background.
	if err := bridge.EmitEvent("carousel/lifecycle/events", map[string]any{"state": "paused"}); err != nil {
		log.Fatal(err)
	}
	if err := h.settle(time.Second); err != nil {
		log.Fatal(err)
	}

	log.Printf("final frame recorded %d canvas ops, %d native calls total",
		len(h.canvas.Ops()), len(bridge.Calls()))
}

// indicatorViewID finds the view id of the first page indicator the
// framework asked native to create.
func indicatorViewID(bridge *platform.LoopbackBridge) (int64, bool) {
	for _, call := range bridge.CallsTo("carousel/platform_views", "create") {
		if call.Args["viewType"] != "page_indicator" {
			continue
		}
		if id, ok := asInt64(call.Args["viewId"]); ok {
			return id, true
		}
	}
	return 0, false
}

// currentPage returns the highlighted dot index from the most recent
// config update sent to native.
func currentPage(bridge *platform.LoopbackBridge) int {
	page := int64(0)
	for _, call := range bridge.CallsTo("carousel/platform_views", "invokeViewMethod") {
		if call.Args["method"] != "updateConfig" {
			continue
		}
		if v, ok := asInt64(call.Args["currentPage"]); ok {
			page = v
		}
	}
	return int(page)
}

// asInt64 normalizes the numeric types the bridge codec may produce.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

// host drives build, layout, and paint frames against a recording canvas,
// the same pipeline a native embedder runs per vsync.
type host struct {
	buildOwner *core.BuildOwner
	root       core.Element
	rootRender layout.RenderObject
	size       graphics.Size
	dispatches []func()
	canvas     *graphics.RecordingCanvas
}

func newHost(size graphics.Size) *host {
	return &host{
		buildOwner: core.NewBuildOwner(),
		size:       size,
		canvas:     &graphics.RecordingCanvas{},
	}
}

func (h *host) dispatch(fn func()) {
	h.dispatches = append(h.dispatches, fn)
}

func (h *host) mount(widget core.Widget) error {
	h.root = core.MountRoot(widget, h.buildOwner)
	if renderElement, ok := h.root.(interface{ RenderObject() layout.RenderObject }); ok {
		h.rootRender = renderElement.RenderObject()
	}
	if h.rootRender != nil {
		pipeline := h.buildOwner.Pipeline()
		pipeline.ScheduleLayout(h.rootRender)
		pipeline.SchedulePaint(h.rootRender)
	}
	return h.frame()
}

// rebuild schedules a full relayout, used after external data changes that
// the framework cannot observe on its own.
func (h *host) rebuild() {
	if h.root != nil {
		h.root.MarkNeedsBuild()
	}
}

// frame runs one pipeline pass: dispatches, ballistics, tickers, build,
// layout, paint.
func (h *host) frame() error {
	pending := h.dispatches
	h.dispatches = nil
	for _, fn := range pending {
		fn()
	}

	widgets.StepBallistics()
	animation.StepTickers()

	h.buildOwner.FlushBuild()

	if h.rootRender == nil {
		return nil
	}
	pipeline := h.buildOwner.Pipeline()
	pipeline.FlushLayoutForRoot(h.rootRender, layout.Tight(h.size))

	dirty := pipeline.FlushPaint()
	if len(dirty) == 0 {
		return nil
	}
	registry := platform.GetPlatformViewRegistry()
	registry.BeginGeometryBatch()
	h.canvas.Reset()
	h.rootRender.Paint(&layout.PaintContext{Canvas: h.canvas})
	clearPaintFlags(h.rootRender)
	return registry.FlushGeometryBatch()
}

// settle runs frames at the display rate until the framework goes idle.
func (h *host) settle(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if err := h.frame(); err != nil {
			return err
		}
		if !h.needsWork() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("showcase: frame loop did not settle within %s", timeout)
		}
		time.Sleep(frameInterval)
	}
}

func (h *host) needsWork() bool {
	return h.buildOwner.NeedsWork() ||
		animation.HasActiveTickers() ||
		widgets.HasActiveBallistics() ||
		len(h.dispatches) > 0
}

func clearPaintFlags(ro layout.RenderObject) {
	if cleaner, ok := ro.(interface{ ClearNeedsPaint() }); ok {
		cleaner.ClearNeedsPaint()
	}
	if visitor, ok := ro.(layout.ChildVisitor); ok {
		visitor.VisitChildren(clearPaintFlags)
	}
}
