package testbed

import (
	"time"

	"github.com/go-drift/carousel/pkg/animation"
	"github.com/go-drift/carousel/pkg/core"
	"github.com/go-drift/carousel/pkg/graphics"
)

// GrowingCard tweens its width from From to To over Duration, driving one
// rebuild per animation tick. Tests use it to exercise the fake clock and
// settle detection.
type GrowingCard struct {
	Duration time.Duration
	From     float64
	To       float64
	Height   float64
	Color    graphics.Color
}

func (g GrowingCard) CreateElement() core.Element {
	return core.NewStatefulElement(g, nil)
}

func (g GrowingCard) Key() any { return nil }

func (g GrowingCard) CreateState() core.State {
	return &growingCardState{}
}

type growingCardState struct {
	core.StateBase
	controller *animation.AnimationController
	width      *animation.Tween[float64]
}

func (s *growingCardState) InitState() {
	w := s.Element().Widget().(GrowingCard)
	s.controller = animation.NewAnimationController(w.Duration)
	s.width = animation.TweenFloat64(w.From, w.To)
	s.controller.AddListener(func() {
		s.SetState(func() {})
	})
	s.controller.Forward()
}

func (s *growingCardState) Build(ctx core.BuildContext) core.Widget {
	w := s.Element().Widget().(GrowingCard)
	return Card{
		Width:  s.width.Transform(s.controller),
		Height: w.Height,
		Color:  w.Color,
	}
}

func (s *growingCardState) Dispose() {
	if s.controller != nil {
		s.controller.Dispose()
	}
	s.StateBase.Dispose()
}
