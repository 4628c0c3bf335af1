package widgets_test

import (
	"fmt"

	"github.com/go-drift/carousel/pkg/animation"
	"github.com/go-drift/carousel/pkg/core"
	"github.com/go-drift/carousel/pkg/graphics"
	"github.com/go-drift/carousel/pkg/layout"
	"github.com/go-drift/carousel/pkg/widgets"
)

// A column in the shape of a carousel screen: the card area, a gap, and a
// footer pushed down by a Spacer.
func ExampleColumn() {
	screen := widgets.Column{
		MainAxisSize:       widgets.MainAxisSizeMax,
		CrossAxisAlignment: widgets.CrossAxisAlignmentCenter,
		ChildrenWidgets: []core.Widget{
			widgets.ColorBox{Color: graphics.RGB(33, 150, 243), Width: 310, Height: 403},
			widgets.VSpace(8),
			widgets.Spacer(),
			widgets.ColorBox{Color: graphics.RGB(120, 120, 120), Width: 200, Height: 24},
		},
	}
	_ = screen
}

// Dots of a hand-rolled indicator laid out in a Row.
func ExampleRow() {
	dot := func(active bool) core.Widget {
		tint := graphics.RGB(189, 189, 189)
		if active {
			tint = graphics.RGB(33, 33, 33)
		}
		return widgets.ColorBox{Color: tint, Width: 8, Height: 8}
	}
	row := widgets.Row{
		MainAxisAlignment: widgets.MainAxisAlignmentCenter,
		ChildrenWidgets:   []core.Widget{dot(false), dot(true), dot(false)},
	}
	_ = row
}

// Driving a card strip to the third page the way an indicator tap does.
func ExampleScrollController() {
	const snapInterval = 310 + 16 // card width + item spacing

	controller := &widgets.ScrollController{}
	controller.AddListener(func() {
		fmt.Println("offset:", controller.Offset())
	})

	controller.AnimateTo(2*snapInterval, widgets.DefaultSnapDuration, animation.Snappy)
}

// Paging physics resolve a release to the page boundary it should rest on.
func ExamplePagingScrollPhysics() {
	physics := widgets.PagingScrollPhysics{SnapInterval: 326}

	fmt.Println(physics.TargetOffset(100, 0))   // gentle release: nearest page
	fmt.Println(physics.TargetOffset(100, 400)) // fast fling: next page
	// Output:
	// 0
	// 326
}

// A tappable card body. Inside a carousel the strip's drag recognizer and
// this tap compete in the gesture arena; movement wins the drag, a clean
// press wins the tap.
func ExampleGestureDetector() {
	card := widgets.GestureDetector{
		OnTap: func() {
			fmt.Println("card tapped")
		},
		ChildWidget: widgets.ColorBox{
			Color:  graphics.RGB(200, 200, 200),
			Width:  310,
			Height: 403,
		},
	}
	_ = card
}

// Insetting card content from the card edge.
func ExamplePadding() {
	content := widgets.Padding{
		Padding:     layout.EdgeInsetsSymmetric(24, 12),
		ChildWidget: widgets.ColorBox{Color: graphics.RGB(0, 0, 0), Width: 50, Height: 50},
	}
	_ = content
}

func ExampleCenter() {
	center := widgets.Center{
		ChildWidget: widgets.ColorBox{Color: graphics.RGB(100, 149, 237), Width: 80, Height: 80},
	}
	_ = center
}

// Splitting a card footer 1:2 between a label area and a detail area.
func ExampleExpanded() {
	footer := widgets.Row{
		MainAxisSize: widgets.MainAxisSizeMax,
		ChildrenWidgets: []core.Widget{
			widgets.Expanded{
				Flex:        1,
				ChildWidget: widgets.ColorBox{Color: graphics.RGB(255, 0, 0)},
			},
			widgets.Expanded{
				Flex:        2,
				ChildWidget: widgets.ColorBox{Color: graphics.RGB(0, 0, 255)},
			},
		},
	}
	_ = footer
}
