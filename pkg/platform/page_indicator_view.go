package platform

import (
	"sync"
)

// PageIndicatorConfig defines styling and content passed to the native
// page indicator (dot) control.
type PageIndicatorConfig struct {
	// PageCount is the number of dots to display.
	PageCount int

	// CurrentPage is the highlighted dot index.
	CurrentPage int

	// TintColor is the inactive dot color (ARGB).
	TintColor uint32

	// ActiveTintColor is the highlighted dot color (ARGB).
	ActiveTintColor uint32
}

// PageIndicatorClient receives callbacks from the native page indicator.
type PageIndicatorClient interface {
	// OnPageSelected is called when the user taps a dot.
	OnPageSelected(page int)
}

// PageIndicatorView is a platform view for the native paging dot control.
type PageIndicatorView struct {
	basePlatformView
	config PageIndicatorConfig
	client PageIndicatorClient
	mu     sync.RWMutex
}

// NewPageIndicatorView creates a new page indicator platform view.
func NewPageIndicatorView(viewID int64, config PageIndicatorConfig, client PageIndicatorClient) *PageIndicatorView {
	return &PageIndicatorView{
		basePlatformView: basePlatformView{
			viewID:   viewID,
			viewType: "page_indicator",
		},
		config: config,
		client: client,
	}
}

// SetClient sets the callback client for this view.
func (v *PageIndicatorView) SetClient(client PageIndicatorClient) {
	v.mu.Lock()
	v.client = client
	v.mu.Unlock()
}

// Create initializes the native view.
func (v *PageIndicatorView) Create(params map[string]any) error {
	return nil
}

// Dispose cleans up the native view.
func (v *PageIndicatorView) Dispose() {
	// Cleanup handled by registry
}

// SetNumberOfPages updates the dot count from the Go side.
func (v *PageIndicatorView) SetNumberOfPages(count int) {
	if count < 0 {
		count = 0
	}

	v.mu.Lock()
	v.config.PageCount = count
	if v.config.CurrentPage >= count {
		if count > 0 {
			v.config.CurrentPage = count - 1
		} else {
			v.config.CurrentPage = 0
		}
	}
	v.mu.Unlock()

	GetPlatformViewRegistry().InvokeViewMethod(v.viewID, "setNumberOfPages", map[string]any{
		"count": count,
	})
}

// SetCurrentPage updates the highlighted dot from the Go side.
// Indexes outside [0, PageCount) are clamped.
func (v *PageIndicatorView) SetCurrentPage(page int) {
	v.mu.Lock()
	if page < 0 {
		page = 0
	}
	if v.config.PageCount > 0 && page >= v.config.PageCount {
		page = v.config.PageCount - 1
	}
	v.config.CurrentPage = page
	v.mu.Unlock()

	GetPlatformViewRegistry().InvokeViewMethod(v.viewID, "setCurrentPage", map[string]any{
		"page": page,
	})
}

// NumberOfPages returns the current dot count.
func (v *PageIndicatorView) NumberOfPages() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.config.PageCount
}

// CurrentPage returns the highlighted dot index.
func (v *PageIndicatorView) CurrentPage() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.config.CurrentPage
}

// UpdateConfig updates the view configuration.
func (v *PageIndicatorView) UpdateConfig(config PageIndicatorConfig) {
	v.mu.Lock()
	v.config = config
	v.mu.Unlock()

	GetPlatformViewRegistry().InvokeViewMethod(v.viewID, "updateConfig", map[string]any{
		"pageCount":       config.PageCount,
		"currentPage":     config.CurrentPage,
		"tintColor":       config.TintColor,
		"activeTintColor": config.ActiveTintColor,
	})
}

// handleViewEvent processes interaction events from native.
// Taps on dots outside the valid page range are ignored.
func (v *PageIndicatorView) handleViewEvent(event string, args map[string]any) {
	switch event {
	case "pageSelected":
		page, ok := toInt(args["page"])
		if !ok {
			return
		}

		v.mu.Lock()
		if page < 0 || page >= v.config.PageCount {
			v.mu.Unlock()
			return
		}
		v.config.CurrentPage = page
		client := v.client
		v.mu.Unlock()

		if client != nil {
			client.OnPageSelected(page)
		}
	}
}

// pageIndicatorFactory creates page indicator platform views.
type pageIndicatorFactory struct{}

func (f *pageIndicatorFactory) ViewType() string {
	return "page_indicator"
}

func (f *pageIndicatorFactory) Create(viewID int64, params map[string]any) (PlatformView, error) {
	config := PageIndicatorConfig{}

	if v, ok := toInt(params["pageCount"]); ok {
		config.PageCount = v
	}
	if v, ok := toInt(params["currentPage"]); ok {
		config.CurrentPage = v
	}
	if v, ok := toUint32(params["tintColor"]); ok {
		config.TintColor = v
	}
	if v, ok := toUint32(params["activeTintColor"]); ok {
		config.ActiveTintColor = v
	}

	return NewPageIndicatorView(viewID, config, nil), nil
}

// RegisterPageIndicatorFactory registers the page indicator view factory.
func RegisterPageIndicatorFactory() {
	GetPlatformViewRegistry().RegisterFactory(&pageIndicatorFactory{})
}

func init() {
	RegisterPageIndicatorFactory()
}
