package platform

import (
	"fmt"
	"sync"

	"github.com/go-drift/carousel/pkg/graphics"
)

// Display provides window metrics reported by the native side.
var Display = &DisplayService{
	events: NewEventChannel("carousel/display/events"),
}

// DisplayMetrics describes the logical window geometry.
type DisplayMetrics struct {
	// Size is the window size in logical pixels.
	Size graphics.Size

	// Scale is the device pixel ratio.
	Scale float64

	// Insets are the safe area insets from system UI elements.
	Insets EdgeInsets
}

// EdgeInsets represents insets from system UI elements in logical pixels.
type EdgeInsets struct {
	Top, Bottom, Left, Right float64
}

// DisplayService manages display metric events from native.
type DisplayService struct {
	events   *EventChannel
	stream   *Stream[DisplayMetrics]
	metrics  DisplayMetrics
	handlers []func(DisplayMetrics)
	mu       sync.RWMutex
}

func init() {
	Display.stream = NewStream("carousel/display/events", Display.events, parseDisplayMetrics)
	initDisplayListeners()
	registerBuiltinInit(initDisplayListeners)
}

func initDisplayListeners() {
	Display.stream.Listen(func(m DisplayMetrics) {
		Display.updateMetrics(m)
	})
}

// parseDisplayMetrics decodes a display event payload.
func parseDisplayMetrics(data any) (DisplayMetrics, error) {
	m := parseMap(data)
	if m == nil {
		return DisplayMetrics{}, fmt.Errorf("display event payload is not a map: %T", data)
	}

	metrics := DisplayMetrics{Scale: 1}
	if v, ok := toFloat64(m["width"]); ok {
		metrics.Size.Width = v
	}
	if v, ok := toFloat64(m["height"]); ok {
		metrics.Size.Height = v
	}
	if v, ok := toFloat64(m["scale"]); ok && v > 0 {
		metrics.Scale = v
	}
	if insets := parseMap(m["insets"]); insets != nil {
		if v, ok := toFloat64(insets["top"]); ok {
			metrics.Insets.Top = v
		}
		if v, ok := toFloat64(insets["bottom"]); ok {
			metrics.Insets.Bottom = v
		}
		if v, ok := toFloat64(insets["left"]); ok {
			metrics.Insets.Left = v
		}
		if v, ok := toFloat64(insets["right"]); ok {
			metrics.Insets.Right = v
		}
	}
	return metrics, nil
}

// Metrics returns the most recently reported display metrics.
func (s *DisplayService) Metrics() DisplayMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metrics
}

// Size returns the current window size in logical pixels.
func (s *DisplayService) Size() graphics.Size {
	return s.Metrics().Size
}

// AddHandler registers a handler to be called on metric changes.
// Returns a function that can be called to remove the handler.
func (s *DisplayService) AddHandler(handler func(DisplayMetrics)) func() {
	s.mu.Lock()
	s.handlers = append(s.handlers, handler)
	index := len(s.handlers) - 1
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		if index < len(s.handlers) {
			s.handlers = append(s.handlers[:index], s.handlers[index+1:]...)
		}
		s.mu.Unlock()
	}
}

// updateMetrics stores new metrics and notifies handlers.
func (s *DisplayService) updateMetrics(newMetrics DisplayMetrics) {
	s.mu.Lock()
	if s.metrics == newMetrics {
		s.mu.Unlock()
		return
	}
	s.metrics = newMetrics
	handlers := make([]func(DisplayMetrics), len(s.handlers))
	copy(handlers, s.handlers)
	s.mu.Unlock()

	for _, h := range handlers {
		h(newMetrics)
	}
}
