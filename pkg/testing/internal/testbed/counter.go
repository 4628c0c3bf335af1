// Package testbed provides internal test widgets for the testing framework.
package testbed

import (
	"github.com/go-drift/carousel/pkg/core"
	"github.com/go-drift/carousel/pkg/graphics"
	"github.com/go-drift/carousel/pkg/widgets"
)

// CountColor maps a count to a distinct fill color, so tests can locate
// the counter's current value with a color finder.
func CountColor(count int) graphics.Color {
	return graphics.RGB(uint8(count*16%256), uint8(count*48%256), 0x80)
}

// Counter is a stateful widget that renders a colored box keyed to its
// count and increments on tap.
type Counter struct {
	Initial int
	OnTap   func(count int)
}

func (c Counter) CreateElement() core.Element {
	return core.NewStatefulElement(c, nil)
}

func (c Counter) Key() any { return nil }

func (c Counter) CreateState() core.State {
	return &counterState{}
}

type counterState struct {
	core.StateBase
	count int
	onTap func(int)
}

func (s *counterState) InitState() {
	w := s.Element().Widget().(Counter)
	s.count = w.Initial
	s.onTap = w.OnTap
}

func (s *counterState) Build(ctx core.BuildContext) core.Widget {
	return widgets.GestureDetector{
		OnTap: func() {
			s.SetState(func() {
				s.count++
			})
			if s.onTap != nil {
				s.onTap(s.count)
			}
		},
		ChildWidget: widgets.ColorBox{
			Width:  100,
			Height: 40,
			Color:  CountColor(s.count),
		},
	}
}

func (s *counterState) DidUpdateWidget(oldWidget core.StatefulWidget) {
	if w, ok := s.Element().Widget().(Counter); ok {
		s.onTap = w.OnTap
	}
}
