package core

import (
	"github.com/go-drift/carousel/pkg/layout"
)

// StatelessBase supplies the boilerplate half of the Widget interface for
// widgets whose whole behavior is a Build method. Embed it and implement
// Build:
//
//	type DotRow struct {
//	    core.StatelessBase
//	    Count int
//	}
//
//	func (d DotRow) Build(ctx core.BuildContext) core.Widget { ... }
type StatelessBase struct{}

func (StatelessBase) CreateElement() Element { return NewStatelessElement(nil, nil) }

func (StatelessBase) Key() any { return nil }

// StatefulBase is the stateful counterpart of [StatelessBase]. The widget
// implements CreateState; everything else is supplied.
type StatefulBase struct{}

func (StatefulBase) CreateElement() Element { return NewStatefulElement(nil, nil) }

func (StatefulBase) Key() any { return nil }

// RenderObjectBase completes the Widget interface for widgets that create
// render objects themselves. The widget still implements
// CreateRenderObject and UpdateRenderObject.
type RenderObjectBase struct{}

func (RenderObjectBase) CreateElement() Element { return NewRenderObjectElement(nil, nil) }

func (RenderObjectBase) Key() any { return nil }

// RenderObjectWidget is a widget backed directly by a render object rather
// than by a built subtree.
type RenderObjectWidget interface {
	Widget
	CreateRenderObject(ctx BuildContext) layout.RenderObject
	UpdateRenderObject(ctx BuildContext, renderObject layout.RenderObject)
}

// Stateful builds an inline stateful widget from two closures, for small
// self-contained fragments that do not warrant a named State type:
//
//	core.Stateful(
//	    func() int { return 0 },
//	    func(selected int, ctx core.BuildContext, setState func(func(int) int)) core.Widget {
//	        return widgets.GestureDetector{
//	            OnTap:       func() { setState(func(int) int { return cardIndex }) },
//	            ChildWidget: card,
//	        }
//	    },
//	)
//
// The type parameter is the state value. setState applies a transform to the
// current value and schedules a rebuild. Widgets with lifecycle needs or
// more than one state field should use a named struct embedding
// [StatefulBase] instead.
func Stateful[S any](
	init func() S,
	build func(state S, ctx BuildContext, setState func(func(S) S)) Widget,
) Widget {
	return &closureWidget[S]{init: init, build: build}
}

type closureWidget[S any] struct {
	init  func() S
	build func(state S, ctx BuildContext, setState func(func(S) S)) Widget
}

func (w *closureWidget[S]) CreateElement() Element { return NewStatefulElement(w, nil) }

func (w *closureWidget[S]) Key() any { return nil }

func (w *closureWidget[S]) CreateState() State {
	return &closureState[S]{widget: w}
}

type closureState[S any] struct {
	widget  *closureWidget[S]
	value   S
	element *StatefulElement
}

func (s *closureState[S]) SetElement(element *StatefulElement) { s.element = element }

func (s *closureState[S]) InitState() { s.value = s.widget.init() }

func (s *closureState[S]) Build(ctx BuildContext) Widget {
	return s.widget.build(s.value, ctx, func(transform func(S) S) {
		s.value = transform(s.value)
		s.markDirty()
	})
}

func (s *closureState[S]) SetState(fn func()) {
	if fn != nil {
		fn()
	}
	s.markDirty()
}

func (s *closureState[S]) markDirty() {
	if s.element != nil {
		s.element.MarkNeedsBuild()
	}
}

func (s *closureState[S]) DidUpdateWidget(StatefulWidget) {
	// Later builds must read the replacement widget's closures.
	if s.element != nil {
		if w, ok := s.element.Widget().(*closureWidget[S]); ok {
			s.widget = w
		}
	}
}

func (s *closureState[S]) Dispose() {}
