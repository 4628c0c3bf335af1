package core

import (
	"testing"

	"github.com/go-drift/carousel/pkg/errors"
	"github.com/go-drift/carousel/pkg/graphics"
	"github.com/go-drift/carousel/pkg/layout"
)

// buildProbe is a stateless widget whose Build is a closure, so tests can
// observe or sabotage builds.
type buildProbe struct {
	build func(BuildContext) Widget
}

func (w buildProbe) CreateElement() Element { return NewStatelessElement(w, nil) }

func (w buildProbe) Key() any { return nil }

func (w buildProbe) Build(ctx BuildContext) Widget {
	if w.build == nil {
		return nil
	}
	return w.build(ctx)
}

// statefulProbe pairs with probeState the same way.
type statefulProbe struct {
	createState func() State
}

func (w statefulProbe) CreateElement() Element { return NewStatefulElement(w, nil) }

func (w statefulProbe) Key() any { return nil }

func (w statefulProbe) CreateState() State {
	if w.createState == nil {
		return &probeState{}
	}
	return w.createState()
}

type probeState struct {
	StateBase
	build func(BuildContext) Widget
}

func (s *probeState) Build(ctx BuildContext) Widget {
	if s.build == nil {
		return nil
	}
	return s.build(ctx)
}

// recordingHandler collects reported build errors.
type recordingHandler struct {
	errors.LogHandler
	buildErrors []*errors.BuildError
}

func (h *recordingHandler) HandleBuildError(err *errors.BuildError) {
	h.buildErrors = append(h.buildErrors, err)
}

func mountWithHandler(t *testing.T, widget Widget) *recordingHandler {
	t.Helper()
	handler := &recordingHandler{}
	errors.SetHandler(handler)
	t.Cleanup(func() { errors.SetHandler(nil) })

	element := inflateWidget(widget, NewBuildOwner())
	element.Mount(nil, nil)
	return handler
}

func TestBuildPanic_Stateless_IsReported(t *testing.T) {
	handler := mountWithHandler(t, buildProbe{
		build: func(ctx BuildContext) Widget { panic("card body exploded") },
	})

	if len(handler.buildErrors) != 1 {
		t.Fatalf("reported errors = %d, want 1", len(handler.buildErrors))
	}
	err := handler.buildErrors[0]
	if err.Recovered != "card body exploded" {
		t.Errorf("Recovered = %v, want the panic value", err.Recovered)
	}
	if err.Widget == "" || err.StackTrace == "" {
		t.Error("report should carry the widget type and a stack trace")
	}
}

func TestBuildPanic_Stateful_IsReported(t *testing.T) {
	handler := mountWithHandler(t, statefulProbe{
		createState: func() State {
			return &probeState{build: func(ctx BuildContext) Widget { panic("state build failed") }}
		},
	})

	if len(handler.buildErrors) != 1 {
		t.Fatalf("reported errors = %d, want 1", len(handler.buildErrors))
	}
	if got := handler.buildErrors[0].Recovered; got != "state build failed" {
		t.Errorf("Recovered = %v, want the panic value", got)
	}
}

func TestBuildPanic_FallsBackToPlaceholder(t *testing.T) {
	SetErrorWidgetBuilder(func(err *errors.BuildError) Widget { return nil })
	defer SetErrorWidgetBuilder(nil)

	handler := &recordingHandler{}
	errors.SetHandler(handler)
	defer errors.SetHandler(nil)

	element := NewStatelessElement(buildProbe{
		build: func(ctx BuildContext) Widget { panic("no fallback configured") },
	}, NewBuildOwner())
	element.Mount(nil, nil)

	if element.child == nil {
		t.Fatal("failed build should still produce a child")
	}
	if _, ok := element.child.Widget().(errorPlaceholder); !ok {
		t.Errorf("child widget = %T, want errorPlaceholder", element.child.Widget())
	}
}

func TestBuildPanic_UsesInstalledErrorBuilder(t *testing.T) {
	var seen *errors.BuildError
	fallback := buildProbe{}
	SetErrorWidgetBuilder(func(err *errors.BuildError) Widget {
		seen = err
		return fallback
	})
	defer SetErrorWidgetBuilder(nil)

	handler := mountWithHandler(t, buildProbe{
		build: func(ctx BuildContext) Widget { panic("routed to builder") },
	})

	if seen == nil {
		t.Fatal("installed error builder was never called")
	}
	if seen.Recovered != "routed to builder" {
		t.Errorf("builder saw Recovered = %v, want the panic value", seen.Recovered)
	}
	if len(handler.buildErrors) != 1 {
		t.Errorf("handler should still be notified, got %d reports", len(handler.buildErrors))
	}
}

func TestErrorPlaceholder_BuildsNothing(t *testing.T) {
	placeholder := errorPlaceholder{err: &errors.BuildError{Widget: "cardBody"}}
	if placeholder.Build(nil) != nil {
		t.Error("placeholder should build nil")
	}
}

func TestSetErrorWidgetBuilder_NilRestoresDefault(t *testing.T) {
	SetErrorWidgetBuilder(func(err *errors.BuildError) Widget { return buildProbe{} })
	SetErrorWidgetBuilder(nil)

	builder := GetErrorWidgetBuilder()
	if builder == nil {
		t.Fatal("builder should never be nil")
	}
	if builder(&errors.BuildError{}) != nil {
		t.Error("default builder should return nil")
	}
}

func TestNormalBuild_ReportsNothing(t *testing.T) {
	built := false
	handler := mountWithHandler(t, buildProbe{
		build: func(ctx BuildContext) Widget {
			built = true
			return nil
		},
	})

	if !built {
		t.Error("mount should run the first build")
	}
	if len(handler.buildErrors) != 0 {
		t.Errorf("clean build reported %d errors", len(handler.buildErrors))
	}
}

// leafBox is a render object widget with a configurable key, standing in
// for one card in a strip.
type leafBox struct {
	key any
	id  string
}

func (w leafBox) CreateElement() Element { return NewRenderObjectElement(w, nil) }

func (w leafBox) Key() any { return w.key }

func (w leafBox) CreateRenderObject(ctx BuildContext) layout.RenderObject {
	ro := &stubRenderBox{id: w.id}
	ro.SetSelf(ro)
	return ro
}

func (w leafBox) UpdateRenderObject(ctx BuildContext, renderObject layout.RenderObject) {}

type stubRenderBox struct {
	layout.RenderBoxBase
	id       string
	children []layout.RenderObject
}

func (r *stubRenderBox) SetChildren(children []layout.RenderObject) {
	r.children = children
}

func (r *stubRenderBox) PerformLayout() {
	r.SetSize(r.Constraints().Constrain(graphics.Size{}))
}

func (r *stubRenderBox) Paint(ctx *layout.PaintContext) {}

func (r *stubRenderBox) HitTest(position graphics.Offset, result *layout.HitTestResult) bool {
	return false
}

// stripBox hosts an ordered list of leafBox children, like the carousel
// strip hosts cards.
type stripBox struct {
	cards []Widget
}

func (w stripBox) CreateElement() Element { return NewRenderObjectElement(w, nil) }

func (w stripBox) Key() any { return nil }

func (w stripBox) CreateRenderObject(ctx BuildContext) layout.RenderObject {
	ro := &stubRenderBox{id: "strip"}
	ro.SetSelf(ro)
	return ro
}

func (w stripBox) UpdateRenderObject(ctx BuildContext, renderObject layout.RenderObject) {}

func (w stripBox) Children() []Widget { return w.cards }

func TestRenderObjectElement_ChildOrderFollowsWidgets(t *testing.T) {
	element := NewRenderObjectElement(stripBox{
		cards: []Widget{leafBox{id: "a"}, leafBox{id: "b"}, leafBox{id: "c"}},
	}, NewBuildOwner())
	element.Mount(nil, nil)

	ro := element.RenderObject().(*stubRenderBox)
	if len(ro.children) != 3 {
		t.Fatalf("render children = %d, want 3", len(ro.children))
	}
	for i, want := range []string{"a", "b", "c"} {
		if got := ro.children[i].(*stubRenderBox).id; got != want {
			t.Errorf("child %d = %q, want %q", i, got, want)
		}
	}
}

func TestRenderObjectElement_RemovedChildrenLeaveRenderList(t *testing.T) {
	owner := NewBuildOwner()
	element := NewRenderObjectElement(stripBox{
		cards: []Widget{leafBox{id: "a"}, leafBox{id: "b"}, leafBox{id: "c"}},
	}, owner)
	element.Mount(nil, nil)

	element.Update(stripBox{cards: []Widget{leafBox{id: "a"}}})
	element.RebuildIfNeeded()

	ro := element.RenderObject().(*stubRenderBox)
	if len(ro.children) != 1 {
		t.Fatalf("render children after shrink = %d, want 1", len(ro.children))
	}
}

func TestRenderObjectElement_UnmountCascades(t *testing.T) {
	element := NewRenderObjectElement(stripBox{
		cards: []Widget{leafBox{id: "a"}},
	}, NewBuildOwner())
	element.Mount(nil, nil)

	child := element.children[0].(*RenderObjectElement)
	element.Unmount()

	if child.isMounted() {
		t.Error("child should unmount with its parent")
	}
	if element.isMounted() {
		t.Error("parent should be unmounted")
	}
}

func TestUpdateChild_SameTypeSameKeyReuses(t *testing.T) {
	owner := NewBuildOwner()
	parent := NewStatelessElement(buildProbe{}, owner)
	parent.Mount(nil, nil)

	first := updateChild(nil, leafBox{key: "k", id: "1"}, parent, owner)
	second := updateChild(first, leafBox{key: "k", id: "2"}, parent, owner)

	if second != first {
		t.Error("matching type and key should update in place")
	}
}

func TestUpdateChild_KeyChangeReplaces(t *testing.T) {
	owner := NewBuildOwner()
	parent := NewStatelessElement(buildProbe{}, owner)
	parent.Mount(nil, nil)

	first := updateChild(nil, leafBox{key: "a", id: "1"}, parent, owner)
	second := updateChild(first, leafBox{key: "b", id: "2"}, parent, owner)

	if second == first {
		t.Error("a changed key should inflate a fresh element")
	}
	if first.(*RenderObjectElement).isMounted() {
		t.Error("the replaced element should be unmounted")
	}
}

func TestUpdateChild_NilWidgetUnmounts(t *testing.T) {
	owner := NewBuildOwner()
	parent := NewStatelessElement(buildProbe{}, owner)
	parent.Mount(nil, nil)

	child := updateChild(nil, leafBox{id: "1"}, parent, owner)
	if got := updateChild(child, nil, parent, owner); got != nil {
		t.Errorf("nil widget should clear the slot, got %v", got)
	}
	if child.(*RenderObjectElement).isMounted() {
		t.Error("the cleared child should be unmounted")
	}
}

func TestCanUpdateWidget(t *testing.T) {
	cases := []struct {
		name     string
		existing Widget
		next     Widget
		want     bool
	}{
		{"same type same key", leafBox{key: "k", id: "1"}, leafBox{key: "k", id: "2"}, true},
		{"same type different key", leafBox{key: "a"}, leafBox{key: "b"}, false},
		{"different type", leafBox{}, buildProbe{}, false},
		{"nil existing", nil, leafBox{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := canUpdateWidget(tc.existing, tc.next); got != tc.want {
				t.Errorf("canUpdateWidget = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestStatefulElement_Lifecycle(t *testing.T) {
	initCalls := 0
	disposeCalls := 0
	var updates []StatefulWidget

	newState := func() State {
		s := &probeState{}
		return &lifecycleWrapper{
			inner:       s,
			onInit:      func() { initCalls++ },
			onDispose:   func() { disposeCalls++ },
			onDidUpdate: func(old StatefulWidget) { updates = append(updates, old) },
		}
	}

	element := NewStatefulElement(statefulProbe{createState: newState}, NewBuildOwner())
	element.Mount(nil, nil)

	if initCalls != 1 {
		t.Fatalf("InitState ran %d times after mount, want 1", initCalls)
	}

	element.Update(statefulProbe{createState: newState})
	if len(updates) != 1 {
		t.Fatalf("DidUpdateWidget ran %d times, want 1", len(updates))
	}
	if initCalls != 1 {
		t.Errorf("state should survive an update, InitState ran %d times", initCalls)
	}

	element.Unmount()
	if disposeCalls != 1 {
		t.Errorf("Dispose ran %d times, want 1", disposeCalls)
	}
}

// lifecycleWrapper decorates a State with observation hooks.
type lifecycleWrapper struct {
	inner       State
	onInit      func()
	onDispose   func()
	onDidUpdate func(StatefulWidget)
}

func (w *lifecycleWrapper) InitState() {
	w.inner.InitState()
	if w.onInit != nil {
		w.onInit()
	}
}

func (w *lifecycleWrapper) Build(ctx BuildContext) Widget { return w.inner.Build(ctx) }

func (w *lifecycleWrapper) DidUpdateWidget(old StatefulWidget) {
	w.inner.DidUpdateWidget(old)
	if w.onDidUpdate != nil {
		w.onDidUpdate(old)
	}
}

func (w *lifecycleWrapper) Dispose() {
	w.inner.Dispose()
	if w.onDispose != nil {
		w.onDispose()
	}
}

func (w *lifecycleWrapper) SetState(fn func()) { w.inner.SetState(fn) }

func TestSetState_SchedulesRebuild(t *testing.T) {
	owner := NewBuildOwner()

	builds := 0
	state := &probeState{}
	state.build = func(ctx BuildContext) Widget {
		builds++
		return nil
	}

	element := NewStatefulElement(statefulProbe{createState: func() State { return state }}, owner)
	element.Mount(nil, nil)

	if builds != 1 {
		t.Fatalf("builds after mount = %d, want 1", builds)
	}

	state.SetState(func() {})
	owner.FlushBuild()

	if builds != 2 {
		t.Errorf("builds after SetState and flush = %d, want 2", builds)
	}
}

func TestMountRoot(t *testing.T) {
	built := false
	root := MountRoot(buildProbe{
		build: func(ctx BuildContext) Widget {
			built = true
			return nil
		},
	}, NewBuildOwner())

	if root == nil {
		t.Fatal("MountRoot returned nil")
	}
	if !built {
		t.Error("mounting the root should build it")
	}
	if root.Depth() != 0 {
		t.Errorf("root depth = %d, want 0", root.Depth())
	}
}

func TestFlushBuild_SkipsUnmountedElements(t *testing.T) {
	owner := NewBuildOwner()

	builds := 0
	state := &probeState{}
	state.build = func(ctx BuildContext) Widget {
		builds++
		return nil
	}
	element := NewStatefulElement(statefulProbe{createState: func() State { return state }}, owner)
	element.Mount(nil, nil)

	element.MarkNeedsBuild()
	element.Unmount()
	owner.FlushBuild()

	if builds != 1 {
		t.Errorf("unmounted element rebuilt, builds = %d", builds)
	}
}

func TestFindAncestor(t *testing.T) {
	var leaf Element
	root := MountRoot(buildProbe{
		build: func(ctx BuildContext) Widget {
			return buildProbe{
				build: func(inner BuildContext) Widget {
					leaf = inner.(Element)
					return nil
				},
			}
		},
	}, NewBuildOwner())

	if leaf == nil {
		t.Fatal("inner build never ran")
	}

	if found := leaf.FindAncestor(func(e Element) bool { return e == root }); found != root {
		t.Errorf("FindAncestor = %v, want the root", found)
	}
}
