package testbed

import (
	"github.com/go-drift/carousel/pkg/core"
	"github.com/go-drift/carousel/pkg/graphics"
	"github.com/go-drift/carousel/pkg/layout"
)

// Card is a fixed-size filled rectangle standing in for one carousel card
// in layout and paint tests.
type Card struct {
	Width  float64
	Height float64
	Color  graphics.Color
}

func (c Card) CreateElement() core.Element {
	return core.NewRenderObjectElement(c, nil)
}

func (c Card) Key() any { return nil }

func (c Card) CreateRenderObject(_ core.BuildContext) layout.RenderObject {
	ro := &renderCard{card: c}
	ro.SetSelf(ro)
	return ro
}

func (c Card) UpdateRenderObject(_ core.BuildContext, renderObject layout.RenderObject) {
	if ro, ok := renderObject.(*renderCard); ok {
		ro.card = c
		ro.MarkNeedsLayout()
		ro.MarkNeedsPaint()
	}
}

type renderCard struct {
	layout.RenderBoxBase
	card Card
}

func (r *renderCard) PerformLayout() {
	wanted := graphics.Size{Width: r.card.Width, Height: r.card.Height}
	r.SetSize(r.Constraints().Constrain(wanted))
}

func (r *renderCard) Paint(ctx *layout.PaintContext) {
	if r.card.Color == 0 {
		return
	}
	ctx.Canvas.DrawRect(graphics.RectFromLTWH(0, 0, r.Size().Width, r.Size().Height), r.card.Color)
}

func (r *renderCard) HitTest(position graphics.Offset, result *layout.HitTestResult) bool {
	if !layout.WithinBounds(position, r.Size()) {
		return false
	}
	result.Add(r)
	return true
}
