package platform

import (
	"sync"
	"sync/atomic"

	"github.com/go-drift/carousel/pkg/graphics"
)

// PlatformView is the Go handle for a native view composited into the
// tree, such as the host-rendered page indicator. Geometry setters take
// logical pixels.
type PlatformView interface {
	ViewID() int64

	// ViewType names the kind of view, e.g. "page_indicator".
	ViewType() string

	// Create initializes the native counterpart.
	Create(params map[string]any) error

	Dispose()

	SetSize(size graphics.Size)
	SetOffset(offset graphics.Offset)
	SetVisible(visible bool)
}

// viewEventHandler marks views that want interaction events forwarded
// from their native counterpart, like indicator dot taps.
type viewEventHandler interface {
	handleViewEvent(event string, args map[string]any)
}

// PlatformViewFactory builds views of one registered type.
type PlatformViewFactory interface {
	Create(viewID int64, params map[string]any) (PlatformView, error)
	ViewType() string
}

// viewGeometryCache holds the last geometry sent to native for one view,
// used to skip redundant updates between frames.
type viewGeometryCache struct {
	offset  graphics.Offset
	size    graphics.Size
	clip    graphics.Rect
	hasClip bool
	hidden  bool
}

// PlatformViewRegistry tracks view factories and live view instances, and
// owns the channel that mirrors their state to native.
type PlatformViewRegistry struct {
	factories map[string]PlatformViewFactory
	views     map[int64]PlatformView
	nextID    atomic.Int64
	mu        sync.RWMutex
	channel   *MethodChannel

	// Frame geometry batching. During a batch, geometry updates are
	// collected and sent to native in a single call; views that received
	// no update during the frame are hidden with an empty clip.
	batchMu            sync.Mutex
	batchMode          bool
	batchUpdates       []map[string]any
	geometryCache      map[int64]viewGeometryCache
	viewsSeenThisFrame map[int64]struct{}
}

var platformViewRegistry *PlatformViewRegistry

// GetPlatformViewRegistry returns the process-wide registry, creating it
// on first use.
func GetPlatformViewRegistry() *PlatformViewRegistry {
	if platformViewRegistry == nil {
		platformViewRegistry = newPlatformViewRegistry()
	}
	return platformViewRegistry
}

func newPlatformViewRegistry() *PlatformViewRegistry {
	r := &PlatformViewRegistry{
		factories:          make(map[string]PlatformViewFactory),
		views:              make(map[int64]PlatformView),
		channel:            NewMethodChannel("carousel/platform_views"),
		geometryCache:      make(map[int64]viewGeometryCache),
		viewsSeenThisFrame: make(map[int64]struct{}),
	}

	r.channel.SetHandler(r.handleMethodCall)

	return r
}

// RegisterFactory makes a view type creatable. Registering a type twice
// keeps the later factory.
func (r *PlatformViewRegistry) RegisterFactory(factory PlatformViewFactory) {
	r.mu.Lock()
	r.factories[factory.ViewType()] = factory
	r.mu.Unlock()
}

// Create instantiates a view of viewType on both sides: the Go object
// through its factory, then the native counterpart over the channel. A
// native failure rolls the Go side back.
func (r *PlatformViewRegistry) Create(viewType string, params map[string]any) (PlatformView, error) {
	r.mu.RLock()
	factory, ok := r.factories[viewType]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrViewTypeNotFound
	}

	viewID := r.nextID.Add(1)

	view, err := factory.Create(viewID, params)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.views[viewID] = view
	r.mu.Unlock()

	_, err = r.channel.Invoke("create", map[string]any{
		"viewId":   viewID,
		"viewType": viewType,
		"params":   params,
	})
	if err != nil {
		r.mu.Lock()
		delete(r.views, viewID)
		r.mu.Unlock()
		return nil, err
	}

	return view, nil
}

// Dispose tears a view down on both sides. Unknown IDs are ignored.
func (r *PlatformViewRegistry) Dispose(viewID int64) {
	r.mu.Lock()
	view, ok := r.views[viewID]
	if ok {
		delete(r.views, viewID)
	}
	r.mu.Unlock()

	if ok {
		view.Dispose()
		r.channel.Invoke("dispose", map[string]any{
			"viewId": viewID,
		})
	}
}

// GetView returns the live view with viewID, or nil.
func (r *PlatformViewRegistry) GetView(viewID int64) PlatformView {
	r.mu.RLock()
	view := r.views[viewID]
	r.mu.RUnlock()
	return view
}

// UpdateViewGeometry notifies native of a view's position and size change.
// The optional clip restricts the visible region in the view's own
// coordinates. Inside a geometry batch the update is collected and
// deduplicated; outside a batch it is sent immediately.
func (r *PlatformViewRegistry) UpdateViewGeometry(viewID int64, offset graphics.Offset, size graphics.Size, clip *graphics.Rect) error {
	entry := viewGeometryCache{offset: offset, size: size}
	if clip != nil {
		entry.clip = *clip
		entry.hasClip = true
	}

	r.batchMu.Lock()
	if r.batchMode {
		r.viewsSeenThisFrame[viewID] = struct{}{}
		if cached, ok := r.geometryCache[viewID]; ok && cached == entry {
			r.batchMu.Unlock()
			return nil
		}
		r.geometryCache[viewID] = entry
		r.batchUpdates = append(r.batchUpdates, geometryPayload(viewID, entry))
		r.batchMu.Unlock()
		return nil
	}
	r.geometryCache[viewID] = entry
	r.batchMu.Unlock()

	_, err := r.channel.Invoke("setGeometry", geometryPayload(viewID, entry))
	return err
}

// geometryPayload builds the wire representation of one view's geometry.
func geometryPayload(viewID int64, g viewGeometryCache) map[string]any {
	payload := map[string]any{
		"viewId": viewID,
		"x":      g.offset.X,
		"y":      g.offset.Y,
		"width":  g.size.Width,
		"height": g.size.Height,
	}
	if g.hasClip {
		payload["clipLeft"] = g.clip.Left
		payload["clipTop"] = g.clip.Top
		payload["clipRight"] = g.clip.Right
		payload["clipBottom"] = g.clip.Bottom
	}
	return payload
}

// BeginGeometryBatch starts collecting geometry updates for one frame.
func (r *PlatformViewRegistry) BeginGeometryBatch() {
	r.batchMu.Lock()
	r.batchMode = true
	r.batchUpdates = nil
	r.viewsSeenThisFrame = make(map[int64]struct{})
	r.batchMu.Unlock()
}

// FlushGeometryBatch sends collected geometry updates in a single call.
// Registered views that received no update this frame are hidden by sending
// an empty clip, so culled views do not linger on screen.
func (r *PlatformViewRegistry) FlushGeometryBatch() error {
	r.mu.RLock()
	viewIDs := make([]int64, 0, len(r.views))
	for id := range r.views {
		viewIDs = append(viewIDs, id)
	}
	r.mu.RUnlock()

	r.batchMu.Lock()
	for _, id := range viewIDs {
		if _, seen := r.viewsSeenThisFrame[id]; seen {
			continue
		}
		hidden := r.geometryCache[id]
		hidden.clip = graphics.Rect{}
		hidden.hasClip = true
		hidden.hidden = true
		if cached, ok := r.geometryCache[id]; ok && cached == hidden {
			continue
		}
		r.geometryCache[id] = hidden
		r.batchUpdates = append(r.batchUpdates, geometryPayload(id, hidden))
	}
	updates := r.batchUpdates
	r.batchUpdates = nil
	r.batchMode = false
	r.batchMu.Unlock()

	if len(updates) == 0 {
		return nil
	}
	_, err := r.channel.Invoke("batchSetGeometry", map[string]any{
		"geometries": updates,
	})
	return err
}

// SetViewVisible toggles the native view's visibility.
func (r *PlatformViewRegistry) SetViewVisible(viewID int64, visible bool) error {
	_, err := r.channel.Invoke("setVisible", map[string]any{
		"viewId":  viewID,
		"visible": visible,
	})
	return err
}

// InvokeViewMethod calls a method on one native view, addressed by ID.
func (r *PlatformViewRegistry) InvokeViewMethod(viewID int64, method string, args map[string]any) (any, error) {
	// The caller's map stays untouched.
	size := 2
	if args != nil {
		size += len(args)
	}
	invokeArgs := make(map[string]any, size)
	for k, v := range args {
		invokeArgs[k] = v
	}
	invokeArgs["viewId"] = viewID
	invokeArgs["method"] = method
	return r.channel.Invoke("invokeViewMethod", invokeArgs)
}

// handleMethodCall services the native-to-Go half of the channel.
func (r *PlatformViewRegistry) handleMethodCall(method string, args any) (any, error) {
	switch method {
	case "onViewCreated", "onViewDisposed":
		// Acknowledgements; nothing to do.
		return nil, nil

	case "viewEvent":
		// A user interaction on one view, forwarded by native.
		m := parseMap(args)
		if m == nil {
			return nil, ErrInvalidArguments
		}
		viewID, ok := toInt64(m["viewId"])
		if !ok {
			return nil, ErrInvalidArguments
		}
		event := parseString(m["event"])
		if event == "" {
			return nil, ErrInvalidArguments
		}
		view := r.GetView(viewID)
		if view == nil {
			return nil, ErrViewTypeNotFound
		}
		if handler, ok := view.(viewEventHandler); ok {
			handler.handleViewEvent(event, parseMap(m["args"]))
		}
		return nil, nil

	default:
		_ = args
		return nil, ErrMethodNotFound
	}
}

// basePlatformView carries the geometry plumbing concrete views embed.
type basePlatformView struct {
	viewID   int64
	viewType string
	offset   graphics.Offset
	size     graphics.Size
	visible  bool
}

func (v *basePlatformView) ViewID() int64 {
	return v.viewID
}

func (v *basePlatformView) ViewType() string {
	return v.viewType
}

func (v *basePlatformView) SetSize(size graphics.Size) {
	v.size = size
	GetPlatformViewRegistry().UpdateViewGeometry(v.viewID, v.offset, v.size, nil)
}

func (v *basePlatformView) SetOffset(offset graphics.Offset) {
	v.offset = offset
	GetPlatformViewRegistry().UpdateViewGeometry(v.viewID, v.offset, v.size, nil)
}

func (v *basePlatformView) SetVisible(visible bool) {
	v.visible = visible
	GetPlatformViewRegistry().SetViewVisible(v.viewID, visible)
}
