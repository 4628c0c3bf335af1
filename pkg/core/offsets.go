package core

import (
	"github.com/go-drift/carousel/pkg/graphics"
	"github.com/go-drift/carousel/pkg/layout"
)

// ScrollOffsetProvider is implemented by render objects that shift their
// children at paint time, such as a scrolling card strip. GlobalOffsetOf
// folds these shifts in so hit positions line up with what was painted.
type ScrollOffsetProvider interface {
	ScrollOffset() graphics.Offset
}

// GlobalOffsetOf walks from element to the root and sums the paint offsets
// along the way, giving the element's position in root coordinates.
func GlobalOffsetOf(element Element) graphics.Offset {
	var total graphics.Offset
	var previous layout.RenderObject

	for current := element; current != nil; {
		// Component elements report the render object of their subtree, so
		// several consecutive elements can share one render object. Count
		// each render object once.
		if holder, ok := current.(interface{ RenderObject() layout.RenderObject }); ok {
			if ro := holder.RenderObject(); ro != nil && ro != previous {
				if data, ok := ro.ParentData().(*layout.BoxParentData); ok && data != nil {
					total = total.Add(data.Offset)
				}
				if scroller, ok := ro.(ScrollOffsetProvider); ok {
					total = total.Add(scroller.ScrollOffset())
				}
				previous = ro
			}
		}

		walker, ok := current.(interface{ parentElement() Element })
		if !ok {
			break
		}
		current = walker.parentElement()
	}

	return total
}
