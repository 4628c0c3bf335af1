package core

import (
	"reflect"
	"time"

	"github.com/go-drift/carousel/pkg/errors"
	"github.com/go-drift/carousel/pkg/layout"
)

// elementBase carries the bookkeeping shared by every element kind: the
// current widget, the tree position, and the dirty flag that feeds the
// BuildOwner's rebuild queue.
type elementBase struct {
	widget       Widget
	parent       Element
	self         Element
	buildOwner   *BuildOwner
	renderParent *RenderObjectElement
	slot         any
	depth        int
	dirty        bool
	mounted      bool
}

func (e *elementBase) Widget() Widget { return e.widget }

func (e *elementBase) Depth() int { return e.depth }

func (e *elementBase) MarkNeedsBuild() {
	if e.dirty {
		return
	}
	e.dirty = true
	if e.buildOwner != nil && e.self != nil {
		e.buildOwner.ScheduleBuild(e.self)
	}
}

// attach records the element's position below parent. Every Mount calls
// this before its kind-specific setup.
func (e *elementBase) attach(parent Element, slot any) {
	e.parent = parent
	e.slot = slot
	if parent != nil {
		e.depth = parent.Depth() + 1
	}
	e.mounted = true
}

func (e *elementBase) parentElement() Element { return e.parent }

func (e *elementBase) isMounted() bool { return e.mounted }

func (e *elementBase) setSelf(self Element) { e.self = self }

func (e *elementBase) setBuildOwner(owner *BuildOwner) { e.buildOwner = owner }

// setWidget installs the widget configuration when the element was created
// without one (via the embeddable widget bases).
func (e *elementBase) setWidget(widget Widget) {
	if e.widget == nil {
		e.widget = widget
	}
}

// FindAncestor walks toward the root and returns the first element the
// predicate accepts, or nil.
func (e *elementBase) FindAncestor(predicate func(Element) bool) Element {
	for current := e.parent; current != nil; {
		if predicate(current) {
			return current
		}
		base, ok := current.(interface{ parentElement() Element })
		if !ok {
			return nil
		}
		current = base.parentElement()
	}
	return nil
}

// findRenderParent returns the nearest ancestor that owns a render object.
func (e *elementBase) findRenderParent() *RenderObjectElement {
	for current := e.parent; current != nil; {
		if ro, ok := current.(*RenderObjectElement); ok {
			return ro
		}
		base, ok := current.(interface{ parentElement() Element })
		if !ok {
			return nil
		}
		current = base.parentElement()
	}
	return nil
}

// safeBuild runs buildFn, converting a panic into a reported BuildError
// and an error widget so one bad Build cannot take down the frame.
func (e *elementBase) safeBuild(buildFn func() Widget) (built Widget) {
	var failure *errors.BuildError

	func() {
		defer func() {
			if r := recover(); r != nil {
				failure = &errors.BuildError{
					Widget:     reflect.TypeOf(e.widget).String(),
					Element:    reflect.TypeOf(e.self).String(),
					Recovered:  r,
					StackTrace: errors.CaptureStack(),
					Timestamp:  time.Now(),
				}
			}
		}()
		built = buildFn()
	}()

	if failure == nil {
		return built
	}
	errors.ReportBuildError(failure)
	if builder := GetErrorWidgetBuilder(); builder != nil {
		if w := builder(failure); w != nil {
			return w
		}
	}
	return errorPlaceholder{err: failure}
}

// errorPlaceholder renders nothing in place of a subtree whose build
// failed with no error widget builder configured.
type errorPlaceholder struct {
	err *errors.BuildError
}

func (p errorPlaceholder) CreateElement() Element {
	return NewStatelessElement(p, nil)
}

func (p errorPlaceholder) Key() any { return nil }

func (p errorPlaceholder) Build(ctx BuildContext) Widget {
	return nil
}

// componentElement hosts a widget that describes its subtree through a
// Build method producing a single child.
type componentElement struct {
	elementBase
	child Element
}

func (e *componentElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

// RenderObject returns the render object produced by the built subtree.
func (e *componentElement) RenderObject() layout.RenderObject {
	if e.child == nil {
		return nil
	}
	return childRenderObject(e.child)
}

func (e *componentElement) rebuildWith(built Widget) {
	e.child = updateChild(e.child, built, e.self, e.buildOwner)
}

func (e *componentElement) unmountChild() {
	e.mounted = false
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
}

// StatelessElement hosts a StatelessWidget.
type StatelessElement struct {
	componentElement
}

func NewStatelessElement(widget StatelessWidget, owner *BuildOwner) *StatelessElement {
	e := &StatelessElement{}
	e.widget = widget
	e.buildOwner = owner
	e.setSelf(e)
	return e
}

func (e *StatelessElement) Mount(parent Element, slot any) {
	e.attach(parent, slot)
	e.renderParent = e.findRenderParent()
	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *StatelessElement) Update(newWidget Widget) {
	e.widget = newWidget
	e.MarkNeedsBuild()
}

func (e *StatelessElement) Unmount() {
	e.unmountChild()
}

func (e *StatelessElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	widget := e.widget.(StatelessWidget)
	e.rebuildWith(e.safeBuild(func() Widget { return widget.Build(e) }))
}

// StatefulElement hosts a StatefulWidget and the State it creates.
type StatefulElement struct {
	componentElement
	state State
}

func NewStatefulElement(widget StatefulWidget, owner *BuildOwner) *StatefulElement {
	e := &StatefulElement{}
	e.widget = widget
	e.buildOwner = owner
	e.setSelf(e)
	return e
}

func (e *StatefulElement) Mount(parent Element, slot any) {
	e.attach(parent, slot)
	e.renderParent = e.findRenderParent()

	e.state = e.widget.(StatefulWidget).CreateState()
	if setter, ok := e.state.(interface{ SetElement(*StatefulElement) }); ok {
		setter.SetElement(e)
	}
	e.state.InitState()

	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *StatefulElement) Update(newWidget Widget) {
	oldWidget := e.widget.(StatefulWidget)
	e.widget = newWidget
	e.state.DidUpdateWidget(oldWidget)
	e.MarkNeedsBuild()
}

func (e *StatefulElement) Unmount() {
	e.unmountChild()
	if e.state != nil {
		e.state.Dispose()
	}
}

func (e *StatefulElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	e.rebuildWith(e.safeBuild(func() Widget { return e.state.Build(e) }))
}

// State returns the state object the element hosts.
func (e *StatefulElement) State() State {
	return e.state
}

// RenderObjectElement hosts a render object and reconciles its child
// widgets into render tree children.
type RenderObjectElement struct {
	elementBase
	renderObject layout.RenderObject
	children     []Element
}

func NewRenderObjectElement(widget RenderObjectWidget, owner *BuildOwner) *RenderObjectElement {
	e := &RenderObjectElement{}
	e.widget = widget
	e.buildOwner = owner
	e.setSelf(e)
	return e
}

func (e *RenderObjectElement) Mount(parent Element, slot any) {
	e.attach(parent, slot)

	widget := e.widget.(RenderObjectWidget)
	e.renderObject = widget.CreateRenderObject(e)
	if e.buildOwner != nil {
		e.renderObject.SetOwner(e.buildOwner.Pipeline())
	}

	// The render object joins the render tree before children build, so
	// descendants can find it as their render parent.
	e.renderParent = e.findRenderParent()
	if e.renderParent != nil {
		e.renderParent.adoptRenderChild(e.renderObject)
	}

	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *RenderObjectElement) Update(newWidget Widget) {
	e.widget = newWidget
	e.MarkNeedsBuild()
}

func (e *RenderObjectElement) Unmount() {
	e.mounted = false

	// Children detach their own render objects first.
	for _, child := range e.children {
		child.Unmount()
	}
	e.children = nil

	if e.renderParent != nil {
		e.renderParent.dropRenderChild(e.renderObject)
		e.renderParent = nil
	}
}

func (e *RenderObjectElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false

	widget := e.widget.(RenderObjectWidget)
	widget.UpdateRenderObject(e, e.renderObject)

	switch typed := e.widget.(type) {
	case interface{ Child() Widget }:
		e.reconcileSingle(typed.Child())
	case interface{ Children() []Widget }:
		e.reconcileList(typed.Children())
	}
}

func (e *RenderObjectElement) reconcileSingle(childWidget Widget) {
	var existing Element
	if len(e.children) > 0 {
		existing = e.children[0]
	}
	child := updateChild(existing, childWidget, e, e.buildOwner)
	if child == nil {
		e.children = nil
		return
	}
	e.children = []Element{child}
}

func (e *RenderObjectElement) reconcileList(widgets []Widget) {
	updated := make([]Element, 0, len(widgets))
	for i, childWidget := range widgets {
		var existing Element
		if i < len(e.children) {
			existing = e.children[i]
		}
		if child := updateChild(existing, childWidget, e, e.buildOwner); child != nil {
			updated = append(updated, child)
		}
	}
	for i := len(widgets); i < len(e.children); i++ {
		e.children[i].Unmount()
	}
	e.children = updated

	// adoptRenderChild only sets parent pointers for multi-child render
	// objects; the ordered child list can only be rebuilt once e.children
	// is complete.
	e.syncRenderChildren()
}

func (e *RenderObjectElement) VisitChildren(visitor func(Element) bool) {
	for _, child := range e.children {
		if !visitor(child) {
			return
		}
	}
}

// RenderObject exposes the element's own render object.
func (e *RenderObjectElement) RenderObject() layout.RenderObject {
	return e.renderObject
}

// adoptRenderChild links child into this element's render object. Single
// child render objects take it directly; multi-child ones get their list
// from syncRenderChildren once reconciliation finishes.
func (e *RenderObjectElement) adoptRenderChild(child layout.RenderObject) {
	if child == nil {
		return
	}
	if setter, ok := child.(interface{ SetParent(layout.RenderObject) }); ok {
		setter.SetParent(e.renderObject)
	}
	if single, ok := e.renderObject.(interface{ SetChild(layout.RenderObject) }); ok {
		single.SetChild(child)
	}
}

func (e *RenderObjectElement) dropRenderChild(child layout.RenderObject) {
	if child == nil {
		return
	}
	if setter, ok := child.(interface{ SetParent(layout.RenderObject) }); ok {
		setter.SetParent(nil)
	}
	if single, ok := e.renderObject.(interface{ SetChild(layout.RenderObject) }); ok {
		single.SetChild(nil)
		return
	}
	e.syncRenderChildren()
}

func (e *RenderObjectElement) syncRenderChildren() {
	multi, ok := e.renderObject.(interface{ SetChildren([]layout.RenderObject) })
	if !ok {
		return
	}
	objects := make([]layout.RenderObject, 0, len(e.children))
	for _, child := range e.children {
		if ro := childRenderObject(child); ro != nil {
			objects = append(objects, ro)
		}
	}
	multi.SetChildren(objects)
}

func childRenderObject(child Element) layout.RenderObject {
	provider, ok := child.(interface{ RenderObject() layout.RenderObject })
	if !ok {
		return nil
	}
	return provider.RenderObject()
}

// updateChild reconciles one child slot: update in place when the widget
// type and key match, otherwise unmount the old element and inflate fresh.
func updateChild(existing Element, widget Widget, parent Element, owner *BuildOwner) Element {
	if widget == nil {
		if existing != nil {
			existing.Unmount()
		}
		return nil
	}
	if existing != nil && canUpdateWidget(existing.Widget(), widget) {
		existing.Update(widget)
		return existing
	}
	if existing != nil {
		existing.Unmount()
	}
	element := inflateWidget(widget, owner)
	element.Mount(parent, nil)
	return element
}

// canUpdateWidget reports whether next can replace existing in place.
// Only types and keys are compared: widget fields routinely hold funcs,
// which DeepEqual cannot inspect.
func canUpdateWidget(existing Widget, next Widget) bool {
	if existing == nil || next == nil {
		return false
	}
	if reflect.TypeOf(existing) != reflect.TypeOf(next) {
		return false
	}
	return reflect.DeepEqual(existing.Key(), next.Key())
}

func inflateWidget(widget Widget, owner *BuildOwner) Element {
	if widget == nil {
		return nil
	}
	element := widget.CreateElement()
	if setter, ok := element.(interface{ setWidget(Widget) }); ok {
		setter.setWidget(widget)
	}
	if setter, ok := element.(interface{ setBuildOwner(*BuildOwner) }); ok {
		setter.setBuildOwner(owner)
	}
	if setter, ok := element.(interface{ setSelf(Element) }); ok {
		setter.setSelf(element)
	}
	return element
}
