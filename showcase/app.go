// Package main provides the carousel demo application.
// It loads a deck of cards from YAML and drives a headless frame loop so
// the paging, parallax, and native indicator plumbing can be observed
// without a device.
package main

import (
	"github.com/go-drift/carousel/pkg/carousel"
	"github.com/go-drift/carousel/pkg/core"
	"github.com/go-drift/carousel/pkg/graphics"
	"github.com/go-drift/carousel/pkg/layout"
	"github.com/go-drift/carousel/pkg/widgets"
)

// App returns the demo root: a clamped-offset carousel over the deck.
// The deck pointer is shared so edits from the demo script flow back
// through the carousel's data binding.
func App(deck *[]DeckCard) core.Widget {
	return widgets.Center{
		ChildWidget: carousel.CarouselView[DeckCard]{
			Data:    carousel.Items(deck),
			Effect:  carousel.EffectClampedOffset,
			Content: cardContent,
		},
	}
}

// cardContent builds one card: a solid panel with a translucent footer
// strip standing in for the title label. A Spacer pushes the footer to
// the bottom edge.
func cardContent(item carousel.Binding[DeckCard]) core.Widget {
	card := item.Value()
	return widgets.ColorBox{
		Color: card.Color,
		ChildWidget: widgets.Column{
			CrossAxisAlignment: widgets.CrossAxisAlignmentCenter,
			MainAxisSize:       widgets.MainAxisSizeMax,
			ChildrenWidgets: []core.Widget{
				widgets.Spacer(),
				widgets.Padding{
					Padding: layout.EdgeInsetsAll(20),
					ChildWidget: widgets.ColorBox{
						Color:  graphics.RGBA8(0xFF, 0xFF, 0xFF, 0x59),
						Width:  140,
						Height: 10,
					},
				},
			},
		},
	}
}
