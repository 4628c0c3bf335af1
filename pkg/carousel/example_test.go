package carousel_test

import (
	"github.com/go-drift/carousel/pkg/carousel"
	"github.com/go-drift/carousel/pkg/core"
	"github.com/go-drift/carousel/pkg/graphics"
	"github.com/go-drift/carousel/pkg/widgets"
)

type Photo struct {
	ID    string
	Color graphics.Color
}

func (p Photo) ItemID() string { return p.ID }

// This example shows a paged carousel over an externally owned collection.
// The collection is bound by pointer, so edits made elsewhere show up on
// the next build.
func ExampleCarouselView() {
	photos := []Photo{
		{ID: "sunrise", Color: graphics.RGB(255, 149, 0)},
		{ID: "harbor", Color: graphics.RGB(10, 132, 255)},
		{ID: "forest", Color: graphics.RGB(52, 199, 89)},
	}

	view := carousel.CarouselView[Photo]{
		Data:   carousel.Items(&photos),
		Effect: carousel.EffectClampedOffset,
		Content: func(item carousel.Binding[Photo]) core.Widget {
			return widgets.ColorBox{Color: item.Value().Color}
		},
	}
	_ = view
}

// This example shows custom card geometry and indicator colors.
func ExampleCarouselView_styling() {
	items := []Photo{{ID: "a", Color: graphics.RGB(94, 92, 230)}}

	view := carousel.CarouselView[Photo]{
		Data:                carousel.Items(&items),
		Effect:              carousel.EffectLinearOffset,
		CardWidth:           280,
		CardHeight:          360,
		ItemSpacing:         12,
		IndicatorTint:       graphics.RGBA8(0, 0, 0, 0x4D),
		ActiveIndicatorTint: graphics.RGB(0, 0, 0),
		Content: func(item carousel.Binding[Photo]) core.Widget {
			return widgets.ColorBox{Color: item.Value().Color}
		},
	}
	_ = view
}
