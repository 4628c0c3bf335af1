package carousel

import (
	"github.com/go-drift/carousel/pkg/core"
	"github.com/go-drift/carousel/pkg/graphics"
	"github.com/go-drift/carousel/pkg/platform"
	"github.com/go-drift/carousel/pkg/widgets"
)

// DefaultIndicatorHeight is the logical height reserved for the native
// dot control.
const DefaultIndicatorHeight = 26.0

// Default dot tints, matching the native control's appearance.
var (
	DefaultTint       = graphics.RGBA8(0xFF, 0xFF, 0xFF, 0x4D)
	DefaultActiveTint = graphics.RGB(0xFF, 0xFF, 0xFF)
)

// PageIndicator hosts the native paging dot control.
//
// It is a thin adapter: prop changes become native property writes, and
// native dot taps surface through OnPageSelected. The widget keeps no
// state of its own beyond the platform view handle.
type PageIndicator struct {
	core.StatefulBase

	// PageCount is the number of dots. Zero renders an empty control.
	PageCount int

	// CurrentPage is the highlighted dot. The native control clamps it
	// to the valid range.
	CurrentPage int

	// Tint and ActiveTint color the inactive and highlighted dots. Zero
	// values fall back to the defaults.
	Tint       graphics.Color
	ActiveTint graphics.Color

	// OnPageSelected is invoked with the tapped dot's index. Taps outside
	// the dot range never reach it.
	OnPageSelected func(page int)

	// Height overrides the control's logical height when positive.
	Height float64
}

func (w PageIndicator) CreateState() core.State {
	return &pageIndicatorState{}
}

func (w PageIndicator) tint() graphics.Color {
	if w.Tint == 0 {
		return DefaultTint
	}
	return w.Tint
}

func (w PageIndicator) activeTint() graphics.Color {
	if w.ActiveTint == 0 {
		return DefaultActiveTint
	}
	return w.ActiveTint
}

func (w PageIndicator) height() float64 {
	if w.Height <= 0 {
		return DefaultIndicatorHeight
	}
	return w.Height
}

func (w PageIndicator) config() platform.PageIndicatorConfig {
	return platform.PageIndicatorConfig{
		PageCount:       w.PageCount,
		CurrentPage:     w.CurrentPage,
		TintColor:       w.tint().ARGB(),
		ActiveTintColor: w.activeTint().ARGB(),
	}
}

type pageIndicatorState struct {
	core.StateBase
	view *platform.PageIndicatorView
}

func (s *pageIndicatorState) widget() PageIndicator {
	element := s.Element()
	if element == nil {
		return PageIndicator{}
	}
	w, _ := element.Widget().(PageIndicator)
	return w
}

func (s *pageIndicatorState) InitState() {
	w := s.widget()
	config := w.config()
	view, err := platform.GetPlatformViewRegistry().Create("page_indicator", map[string]any{
		"pageCount":       config.PageCount,
		"currentPage":     config.CurrentPage,
		"tintColor":       config.TintColor,
		"activeTintColor": config.ActiveTintColor,
	})
	if err != nil {
		return
	}
	if indicator, ok := view.(*platform.PageIndicatorView); ok {
		s.view = indicator
		indicator.SetClient(s)
	}
}

// OnPageSelected implements [platform.PageIndicatorClient].
func (s *pageIndicatorState) OnPageSelected(page int) {
	if callback := s.widget().OnPageSelected; callback != nil {
		callback(page)
	}
}

func (s *pageIndicatorState) DidUpdateWidget(oldWidget core.StatefulWidget) {
	if s.view == nil {
		return
	}
	old, _ := oldWidget.(PageIndicator)
	current := s.widget()
	if old.config() == current.config() {
		return
	}
	s.view.UpdateConfig(current.config())
}

func (s *pageIndicatorState) Dispose() {
	if s.view != nil {
		platform.GetPlatformViewRegistry().Dispose(s.view.ViewID())
		s.view = nil
	}
	s.StateBase.Dispose()
}

func (s *pageIndicatorState) Build(ctx core.BuildContext) core.Widget {
	host := widgets.PlatformViewHost{Height: s.widget().height()}
	if s.view != nil {
		host.View = s.view
	}
	return host
}
