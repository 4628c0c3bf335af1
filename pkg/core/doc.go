// Package core holds the widget and element machinery the carousel kit is
// built on.
//
// A Widget is an immutable description of a piece of UI. An Element is that
// description instantiated at one position in the tree; elements own
// identity and lifecycle, widgets are rebuilt freely. The split is what lets
// a carousel rebuild its visible cards every scroll tick without tearing
// down their state.
//
// # Writing widgets
//
// Stateless widgets embed [StatelessBase] and implement Build. Widgets with
// mutable state embed [StatefulBase], return a State from CreateState, and
// embed [StateBase] in that state struct:
//
//	type pageLabelState struct {
//	    core.StateBase
//	    page int
//	}
//
//	func (s *pageLabelState) Build(ctx core.BuildContext) core.Widget {
//	    return widgets.SizedBox{Width: 12 * float64(s.page+1)}
//	}
//
// Widgets that produce render objects directly embed [RenderObjectBase] and
// implement CreateRenderObject and UpdateRenderObject.
//
// # Constructors
//
// Long-lived mutable objects (controllers, channels) are created through
// NewX constructors returning pointers. Widgets stay plain struct literals;
// they are configuration, not objects.
package core
