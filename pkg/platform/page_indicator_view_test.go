package platform

import (
	"testing"
)

// recordingClient captures page selection callbacks.
type recordingClient struct {
	pages []int
}

func (c *recordingClient) OnPageSelected(page int) {
	c.pages = append(c.pages, page)
}

func setupLoopback(t *testing.T) *LoopbackBridge {
	t.Helper()
	SetupTestBridge(t.Cleanup)
	bridge := NewLoopbackBridge()
	if err := SetNativeBridge(bridge, BridgeProtocolVersion); err != nil {
		t.Fatalf("SetNativeBridge: %v", err)
	}
	return bridge
}

func createIndicator(t *testing.T, params map[string]any) *PageIndicatorView {
	t.Helper()
	view, err := GetPlatformViewRegistry().Create("page_indicator", params)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	indicator, ok := view.(*PageIndicatorView)
	if !ok {
		t.Fatalf("expected *PageIndicatorView, got %T", view)
	}
	return indicator
}

func TestPageIndicatorCreateSendsParams(t *testing.T) {
	bridge := setupLoopback(t)

	createIndicator(t, map[string]any{
		"pageCount":   5,
		"currentPage": 2,
	})

	calls := bridge.CallsTo("carousel/platform_views", "create")
	if len(calls) != 1 {
		t.Fatalf("expected 1 create call, got %d", len(calls))
	}
	if calls[0].Args["viewType"] != "page_indicator" {
		t.Errorf("viewType = %v, want page_indicator", calls[0].Args["viewType"])
	}
}

func TestPageIndicatorFactoryParsesConfig(t *testing.T) {
	setupLoopback(t)

	indicator := createIndicator(t, map[string]any{
		"pageCount":   float64(4), // JSON numbers decode as float64
		"currentPage": float64(1),
	})

	if indicator.NumberOfPages() != 4 {
		t.Errorf("NumberOfPages = %d, want 4", indicator.NumberOfPages())
	}
	if indicator.CurrentPage() != 1 {
		t.Errorf("CurrentPage = %d, want 1", indicator.CurrentPage())
	}
}

func TestPageIndicatorSetCurrentPageClamps(t *testing.T) {
	bridge := setupLoopback(t)
	indicator := createIndicator(t, map[string]any{"pageCount": 3})

	indicator.SetCurrentPage(7)
	if indicator.CurrentPage() != 2 {
		t.Errorf("CurrentPage = %d, want 2 (clamped)", indicator.CurrentPage())
	}

	indicator.SetCurrentPage(-1)
	if indicator.CurrentPage() != 0 {
		t.Errorf("CurrentPage = %d, want 0 (clamped)", indicator.CurrentPage())
	}

	calls := bridge.CallsTo("carousel/platform_views", "invokeViewMethod")
	if len(calls) != 2 {
		t.Fatalf("expected 2 invokeViewMethod calls, got %d", len(calls))
	}
}

func TestPageIndicatorSetNumberOfPagesShrinksCurrent(t *testing.T) {
	setupLoopback(t)
	indicator := createIndicator(t, map[string]any{"pageCount": 5, "currentPage": 4})

	indicator.SetNumberOfPages(2)
	if indicator.CurrentPage() != 1 {
		t.Errorf("CurrentPage = %d, want 1 after shrink", indicator.CurrentPage())
	}

	indicator.SetNumberOfPages(0)
	if indicator.CurrentPage() != 0 {
		t.Errorf("CurrentPage = %d, want 0 with no pages", indicator.CurrentPage())
	}
}

func TestPageIndicatorTapNotifiesClient(t *testing.T) {
	bridge := setupLoopback(t)
	indicator := createIndicator(t, map[string]any{"pageCount": 3})

	client := &recordingClient{}
	indicator.SetClient(client)

	_, err := bridge.InvokeGoMethod("carousel/platform_views", "viewEvent", map[string]any{
		"viewId": indicator.ViewID(),
		"event":  "pageSelected",
		"args":   map[string]any{"page": 2},
	})
	if err != nil {
		t.Fatalf("viewEvent: %v", err)
	}

	if len(client.pages) != 1 || client.pages[0] != 2 {
		t.Fatalf("client pages = %v, want [2]", client.pages)
	}
	if indicator.CurrentPage() != 2 {
		t.Errorf("CurrentPage = %d, want 2", indicator.CurrentPage())
	}
}

func TestPageIndicatorTapOutOfRangeIgnored(t *testing.T) {
	bridge := setupLoopback(t)
	indicator := createIndicator(t, map[string]any{"pageCount": 3})

	client := &recordingClient{}
	indicator.SetClient(client)

	for _, page := range []int{-1, 3, 99} {
		_, err := bridge.InvokeGoMethod("carousel/platform_views", "viewEvent", map[string]any{
			"viewId": indicator.ViewID(),
			"event":  "pageSelected",
			"args":   map[string]any{"page": page},
		})
		if err != nil {
			t.Fatalf("viewEvent(%d): %v", page, err)
		}
	}

	if len(client.pages) != 0 {
		t.Fatalf("out-of-range taps should be ignored, got %v", client.pages)
	}
	if indicator.CurrentPage() != 0 {
		t.Errorf("CurrentPage = %d, want 0", indicator.CurrentPage())
	}
}

func TestPageIndicatorDisposeNotifiesNative(t *testing.T) {
	bridge := setupLoopback(t)
	indicator := createIndicator(t, map[string]any{"pageCount": 2})

	GetPlatformViewRegistry().Dispose(indicator.ViewID())

	calls := bridge.CallsTo("carousel/platform_views", "dispose")
	if len(calls) != 1 {
		t.Fatalf("expected 1 dispose call, got %d", len(calls))
	}
	if GetPlatformViewRegistry().GetView(indicator.ViewID()) != nil {
		t.Error("view should be removed from registry after dispose")
	}
}
