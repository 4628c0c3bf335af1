package testing

import (
	"fmt"
	"reflect"

	"github.com/go-drift/carousel/pkg/core"
	"github.com/go-drift/carousel/pkg/graphics"
	"github.com/go-drift/carousel/pkg/layout"
	"github.com/go-drift/carousel/pkg/widgets"
)

// Finder selects elements out of a mounted tree. Evaluate reports matches
// in depth-first pre-order, so a strip's cards come back left to right.
type Finder interface {
	Evaluate(root core.Element) []core.Element
	// Description labels the finder in panic messages.
	Description() string
}

// FinderResult holds one evaluation's matches.
type FinderResult struct {
	elements []core.Element
	finder   Finder
}

func (r FinderResult) describe() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// First returns the first match, panicking when there is none. Use
// FirstOrNil when absence is an acceptable outcome.
func (r FinderResult) First() core.Element {
	if len(r.elements) == 0 {
		panic(fmt.Sprintf("Finder found no elements: %s", r.describe()))
	}
	return r.elements[0]
}

// FirstOrNil returns the first match, or nil.
func (r FinderResult) FirstOrNil() core.Element {
	if len(r.elements) == 0 {
		return nil
	}
	return r.elements[0]
}

// At returns the match at index in traversal order, panicking when out of
// range.
func (r FinderResult) At(index int) core.Element {
	if index < 0 || index >= len(r.elements) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.elements), r.describe()))
	}
	return r.elements[index]
}

// All returns every match in traversal order.
func (r FinderResult) All() []core.Element { return r.elements }

// Count returns how many elements matched.
func (r FinderResult) Count() int { return len(r.elements) }

// Exists reports whether anything matched.
func (r FinderResult) Exists() bool { return len(r.elements) > 0 }

// Widget returns the first match's widget.
func (r FinderResult) Widget() core.Widget {
	return r.First().Widget()
}

// RenderObject returns the first match's render object, or nil when the
// element does not own one.
func (r FinderResult) RenderObject() layout.RenderObject {
	return extractRenderObject(r.First())
}

type typeFinder struct {
	widgetType reflect.Type
	typeName   string
}

func (f *typeFinder) Evaluate(root core.Element) []core.Element {
	return collectMatches(root, func(e core.Element) bool {
		return reflect.TypeOf(e.Widget()) == f.widgetType
	})
}

func (f *typeFinder) Description() string {
	return fmt.Sprintf("ByType(%s)", f.typeName)
}

// ByType matches elements hosting a widget of type T:
//
//	tester.Find(ByType[widgets.Row]())
func ByType[T core.Widget]() Finder {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return &typeFinder{widgetType: t, typeName: t.String()}
}

type keyFinder struct {
	key any
}

func (f *keyFinder) Evaluate(root core.Element) []core.Element {
	return collectMatches(root, func(e core.Element) bool {
		return keysEqual(e.Widget().Key(), f.key)
	})
}

// keysEqual compares widget keys, tolerating non-comparable key types.
func keysEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return reflect.DeepEqual(a, b)
	}
	return a == b
}

func (f *keyFinder) Description() string {
	return fmt.Sprintf("ByKey(%v)", f.key)
}

// ByKey matches elements whose widget key equals key. Card widgets keyed
// by item identity are found this way regardless of their position.
func ByKey(key any) Finder {
	return &keyFinder{key: key}
}

type colorFinder struct {
	color graphics.Color
}

func (f *colorFinder) Evaluate(root core.Element) []core.Element {
	return collectMatches(root, func(e core.Element) bool {
		box, ok := e.Widget().(widgets.ColorBox)
		return ok && box.Color == f.color
	})
}

func (f *colorFinder) Description() string {
	return fmt.Sprintf("ByColor(%08x)", f.color.ARGB())
}

// ByColor matches [widgets.ColorBox] elements filled with color.
func ByColor(color graphics.Color) Finder {
	return &colorFinder{color: color}
}

type predicateFinder struct {
	fn   func(core.Element) bool
	desc string
}

func (f *predicateFinder) Evaluate(root core.Element) []core.Element {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string { return f.desc }

// ByPredicate matches elements satisfying fn.
func ByPredicate(fn func(core.Element) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root core.Element) []core.Element {
	var results []core.Element
	seen := make(map[core.Element]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		// The ancestor itself is excluded; only its subtree is searched.
		ancestor.VisitChildren(func(child core.Element) bool {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
			return true
		})
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant matches elements satisfying matching that sit below an
// element satisfying of, e.g. the ColorBox inside one particular card.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

type ancestorFinder struct {
	of       Finder
	matching Finder
}

func (f *ancestorFinder) Evaluate(root core.Element) []core.Element {
	descendants := f.of.Evaluate(root)
	if len(descendants) == 0 {
		return nil
	}
	candidates := f.matching.Evaluate(root)

	var results []core.Element
	seen := make(map[core.Element]bool)
	for _, d := range descendants {
		for _, candidate := range candidates {
			if !seen[candidate] && subtreeContains(candidate, d) {
				seen[candidate] = true
				results = append(results, candidate)
			}
		}
	}
	return results
}

func (f *ancestorFinder) Description() string {
	return fmt.Sprintf("Ancestor(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Ancestor matches elements satisfying matching that contain an element
// satisfying of.
func Ancestor(of, matching Finder) Finder {
	return &ancestorFinder{of: of, matching: matching}
}

func subtreeContains(root, target core.Element) bool {
	found := false
	walkTree(root, func(e core.Element) bool {
		if e == target {
			found = true
			return false
		}
		return true
	})
	return found
}

func collectMatches(root core.Element, predicate func(core.Element) bool) []core.Element {
	var results []core.Element
	walkTree(root, func(e core.Element) bool {
		if predicate(e) {
			results = append(results, e)
		}
		return true
	})
	return results
}

// walkTree visits the tree depth-first pre-order; the visitor returns
// false to stop early.
func walkTree(root core.Element, visitor func(core.Element) bool) {
	if !visitor(root) {
		return
	}
	root.VisitChildren(func(child core.Element) bool {
		walkTree(child, visitor)
		return true
	})
}
