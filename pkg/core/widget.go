package core

// Widget is an immutable description of part of the UI.
//
// Widgets are lightweight configuration values. The framework turns them
// into elements (which hold identity and lifecycle) and render objects
// (which hold geometry). Rebuilding with a new widget of the same type
// updates the existing element in place.
type Widget interface {
	// CreateElement instantiates the element that will host this widget.
	CreateElement() Element
	// Key distinguishes widgets of the same type during reconciliation.
	// Widgets with different keys are never updated in place.
	Key() any
}

// StatelessWidget describes UI purely from its own configuration.
type StatelessWidget interface {
	Widget
	Build(ctx BuildContext) Widget
}

// StatefulWidget describes UI that depends on mutable state held in a
// separate State object, which survives widget rebuilds.
type StatefulWidget interface {
	Widget
	CreateState() State
}

// State holds mutable state for a StatefulWidget.
//
// Embed [StateBase] to get default implementations of everything except
// Build.
type State interface {
	// InitState is called once when the state is first attached to the tree.
	InitState()
	// Build describes the UI for the current state.
	Build(ctx BuildContext) Widget
	// DidUpdateWidget is called when the hosting element receives a new
	// widget configuration of the same type.
	DidUpdateWidget(oldWidget StatefulWidget)
	// Dispose is called when the state is permanently removed from the tree.
	Dispose()
	// SetState runs fn and schedules a rebuild.
	SetState(fn func())
}

// BuildContext is the element's view handed to Build methods.
type BuildContext interface {
	// Widget returns the widget currently hosted at this location.
	Widget() Widget
	// FindAncestor walks up the element tree and returns the first
	// ancestor matching the predicate, or nil.
	FindAncestor(predicate func(Element) bool) Element
}

// Element is the instantiation of a Widget at a location in the tree.
type Element interface {
	// Widget returns the current widget configuration.
	Widget() Widget
	// Mount attaches the element below parent.
	Mount(parent Element, slot any)
	// Update replaces the widget configuration in place.
	Update(newWidget Widget)
	// Unmount detaches the element and releases its resources.
	Unmount()
	// RebuildIfNeeded rebuilds the subtree if the element is dirty.
	RebuildIfNeeded()
	// MarkNeedsBuild schedules the element for rebuild.
	MarkNeedsBuild()
	// Depth returns the distance from the root element.
	Depth() int
	// VisitChildren calls visitor for each child until it returns false.
	VisitChildren(visitor func(Element) bool)
	// FindAncestor walks up the element tree and returns the first
	// ancestor matching the predicate, or nil.
	FindAncestor(predicate func(Element) bool) Element
}

// MountRoot inflates a widget as the root of a new element tree.
func MountRoot(widget Widget, owner *BuildOwner) Element {
	element := inflateWidget(widget, owner)
	if element == nil {
		return nil
	}
	element.Mount(nil, nil)
	return element
}
