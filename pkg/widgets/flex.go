package widgets

import (
	"log"
	"math"

	"github.com/go-drift/carousel/pkg/core"
	"github.com/go-drift/carousel/pkg/graphics"
	"github.com/go-drift/carousel/pkg/layout"
)

// Axis is a layout direction. The zero value is vertical so that
// ScrollDirection fields default sensibly.
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

func (a Axis) String() string {
	if a == AxisHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// MainAxisAlignment positions children along a flex container's main axis
// (horizontal for [Row], vertical for [Column]).
type MainAxisAlignment int

const (
	MainAxisAlignmentStart MainAxisAlignment = iota
	MainAxisAlignmentEnd
	MainAxisAlignmentCenter
	// MainAxisAlignmentSpaceBetween puts free space only between children.
	MainAxisAlignmentSpaceBetween
	// MainAxisAlignmentSpaceAround gives each child equal space around it,
	// leaving half a gap at each edge.
	MainAxisAlignmentSpaceAround
	// MainAxisAlignmentSpaceEvenly spreads free space into equal gaps,
	// edges included.
	MainAxisAlignmentSpaceEvenly
)

var mainAxisAlignmentNames = [...]string{
	"start", "end", "center", "space_between", "space_around", "space_evenly",
}

func (a MainAxisAlignment) String() string {
	if int(a) < len(mainAxisAlignmentNames) {
		return mainAxisAlignmentNames[a]
	}
	return "start"
}

// CrossAxisAlignment positions children along the perpendicular axis.
type CrossAxisAlignment int

const (
	CrossAxisAlignmentStart CrossAxisAlignment = iota
	CrossAxisAlignmentEnd
	CrossAxisAlignmentCenter
	// CrossAxisAlignmentStretch forces children to fill the cross axis.
	CrossAxisAlignmentStretch
)

var crossAxisAlignmentNames = [...]string{"start", "end", "center", "stretch"}

func (a CrossAxisAlignment) String() string {
	if int(a) < len(crossAxisAlignmentNames) {
		return crossAxisAlignmentNames[a]
	}
	return "start"
}

// MainAxisSize decides whether a flex container shrink-wraps its children
// (the default) or expands to the incoming main axis constraint. Expansion
// is what gives [Expanded] children space to fill.
type MainAxisSize int

const (
	MainAxisSizeMin MainAxisSize = iota
	MainAxisSizeMax
)

func (s MainAxisSize) String() string {
	if s == MainAxisSizeMax {
		return "max"
	}
	return "min"
}

// FlexFactor is implemented by render boxes that claim a share of the free
// main axis space instead of a fixed size.
type FlexFactor interface {
	FlexFactor() int
}

// Row lays out children left to right in a single non-wrapping run.
// For vertical layout use [Column].
type Row struct {
	ChildrenWidgets    []core.Widget
	MainAxisAlignment  MainAxisAlignment
	CrossAxisAlignment CrossAxisAlignment
	MainAxisSize       MainAxisSize
}

// RowOf builds a Row from alignment settings and children.
func RowOf(alignment MainAxisAlignment, crossAlignment CrossAxisAlignment, size MainAxisSize, children ...core.Widget) Row {
	return Row{
		ChildrenWidgets:    children,
		MainAxisAlignment:  alignment,
		CrossAxisAlignment: crossAlignment,
		MainAxisSize:       size,
	}
}

func (r Row) CreateElement() core.Element {
	return core.NewRenderObjectElement(r, nil)
}

func (r Row) Key() any { return nil }

func (r Row) Children() []core.Widget { return r.ChildrenWidgets }

func (r Row) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	return newRenderFlex(AxisHorizontal, r.MainAxisAlignment, r.CrossAxisAlignment, r.MainAxisSize)
}

func (r Row) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	applyFlexConfig(renderObject, AxisHorizontal, r.MainAxisAlignment, r.CrossAxisAlignment, r.MainAxisSize)
}

// Column lays out children top to bottom in a single non-wrapping run.
// For horizontal layout use [Row].
type Column struct {
	ChildrenWidgets    []core.Widget
	MainAxisAlignment  MainAxisAlignment
	CrossAxisAlignment CrossAxisAlignment
	MainAxisSize       MainAxisSize
}

// ColumnOf builds a Column from alignment settings and children.
func ColumnOf(alignment MainAxisAlignment, crossAlignment CrossAxisAlignment, size MainAxisSize, children ...core.Widget) Column {
	return Column{
		ChildrenWidgets:    children,
		MainAxisAlignment:  alignment,
		CrossAxisAlignment: crossAlignment,
		MainAxisSize:       size,
	}
}

func (c Column) CreateElement() core.Element {
	return core.NewRenderObjectElement(c, nil)
}

func (c Column) Key() any { return nil }

func (c Column) Children() []core.Widget { return c.ChildrenWidgets }

func (c Column) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	return newRenderFlex(AxisVertical, c.MainAxisAlignment, c.CrossAxisAlignment, c.MainAxisSize)
}

func (c Column) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	applyFlexConfig(renderObject, AxisVertical, c.MainAxisAlignment, c.CrossAxisAlignment, c.MainAxisSize)
}

func newRenderFlex(direction Axis, align MainAxisAlignment, cross CrossAxisAlignment, size MainAxisSize) *renderFlex {
	flex := &renderFlex{
		direction:      direction,
		alignment:      align,
		crossAlignment: cross,
		axisSize:       size,
	}
	flex.SetSelf(flex)
	return flex
}

func applyFlexConfig(renderObject layout.RenderObject, direction Axis, align MainAxisAlignment, cross CrossAxisAlignment, size MainAxisSize) {
	flex, ok := renderObject.(*renderFlex)
	if !ok {
		return
	}
	flex.direction = direction
	flex.alignment = align
	flex.crossAlignment = cross
	flex.axisSize = size
	flex.MarkNeedsLayout()
	flex.MarkNeedsPaint()
}

type renderFlex struct {
	layout.RenderBoxBase
	children       []layout.RenderBox
	direction      Axis
	alignment      MainAxisAlignment
	crossAlignment CrossAxisAlignment
	axisSize       MainAxisSize

	// unboundedFlex is set when flex children meet an unbounded main axis.
	// Layout then falls back to a fixed error box.
	unboundedFlex   bool
	warnedUnbounded bool
}

func (r *renderFlex) SetChildren(children []layout.RenderObject) {
	for _, child := range r.children {
		layout.SetParentOnChild(child, nil)
	}
	r.children = r.children[:0]
	for _, child := range children {
		if box, ok := child.(layout.RenderBox); ok {
			r.children = append(r.children, box)
			layout.SetParentOnChild(box, r)
		}
	}
}

func (r *renderFlex) VisitChildren(visitor func(layout.RenderObject)) {
	for _, child := range r.children {
		visitor(child)
	}
}

// main and cross project a size onto the container's axes.
func (r *renderFlex) main(size graphics.Size) float64 {
	if r.direction == AxisHorizontal {
		return size.Width
	}
	return size.Height
}

func (r *renderFlex) cross(size graphics.Size) float64 {
	if r.direction == AxisHorizontal {
		return size.Height
	}
	return size.Width
}

func (r *renderFlex) sizeOf(main, cross float64) graphics.Size {
	if r.direction == AxisHorizontal {
		return graphics.Size{Width: main, Height: cross}
	}
	return graphics.Size{Width: cross, Height: main}
}

func (r *renderFlex) offsetOf(main, cross float64) graphics.Offset {
	if r.direction == AxisHorizontal {
		return graphics.Offset{X: main, Y: cross}
	}
	return graphics.Offset{X: cross, Y: main}
}

// PerformLayout runs two measure passes: fixed children first, then flex
// children splitting whatever main axis space is left.
func (r *renderFlex) PerformLayout() {
	constraints := r.Constraints()
	maxSize := graphics.Size{Width: constraints.MaxWidth, Height: constraints.MaxHeight}
	maxMain := r.main(maxSize)

	var flexChildren []layout.RenderBox
	var flexFactors []int
	totalFlex := 0
	usedMain := 0.0
	crossSize := 0.0

	for _, child := range r.children {
		if factor := flexFactorOf(child); factor > 0 {
			flexChildren = append(flexChildren, child)
			flexFactors = append(flexFactors, factor)
			totalFlex += factor
			continue
		}
		child.Layout(r.fixedChildConstraints(maxSize), true)
		usedMain += r.main(child.Size())
		crossSize = math.Max(crossSize, r.cross(child.Size()))
	}

	r.unboundedFlex = totalFlex > 0 && maxMain == math.MaxFloat64
	if r.unboundedFlex {
		if !r.warnedUnbounded {
			log.Printf("WARNING: flex children cannot flex in an unbounded %s axis; giving the container a fallback size", r.direction)
			r.warnedUnbounded = true
		}
		r.SetSize(constraints.Constrain(r.unboundedFallbackSize(crossSize)))
		return
	}

	free := 0.0
	if r.axisSize == MainAxisSizeMax {
		free = math.Max(maxMain-usedMain, 0)
	}
	for i, child := range flexChildren {
		share := free * float64(flexFactors[i]) / float64(totalFlex)
		child.Layout(r.flexChildConstraints(constraints, share), true)
		usedMain += r.main(child.Size())
		crossSize = math.Max(crossSize, r.cross(child.Size()))
	}

	finalMain := usedMain
	if r.axisSize == MainAxisSizeMax {
		finalMain = maxMain
	}
	size := constraints.Constrain(r.sizeOf(finalMain, crossSize))
	r.SetSize(size)

	r.placeChildren(math.Max(0, r.main(size)-usedMain))
}

// placeChildren assigns offsets in child order, inserting the alignment's
// leading offset and inter-child gaps.
func (r *renderFlex) placeChildren(freeSpace float64) {
	gap, cursor := 0.0, 0.0
	n := len(r.children)
	switch r.alignment {
	case MainAxisAlignmentEnd:
		cursor = freeSpace
	case MainAxisAlignmentCenter:
		cursor = freeSpace / 2
	case MainAxisAlignmentSpaceBetween:
		if n > 1 {
			gap = freeSpace / float64(n-1)
		}
	case MainAxisAlignmentSpaceAround:
		if n > 0 {
			gap = freeSpace / float64(n)
			cursor = gap / 2
		}
	case MainAxisAlignmentSpaceEvenly:
		if n > 0 {
			gap = freeSpace / float64(n+1)
			cursor = gap
		}
	}

	for _, child := range r.children {
		crossOffset := r.crossOffsetFor(child.Size())
		child.SetParentData(&layout.BoxParentData{Offset: r.offsetOf(cursor, crossOffset)})
		cursor += r.main(child.Size()) + gap
	}
}

func (r *renderFlex) crossOffsetFor(childSize graphics.Size) float64 {
	free := r.cross(r.Size()) - r.cross(childSize)
	if free <= 0 {
		return 0
	}
	switch r.crossAlignment {
	case CrossAxisAlignmentEnd:
		return free
	case CrossAxisAlignmentCenter:
		return free / 2
	}
	return 0
}

func flexFactorOf(child layout.RenderBox) int {
	if flexChild, ok := child.(FlexFactor); ok {
		return flexChild.FlexFactor()
	}
	return 0
}

// fixedChildConstraints loosens the incoming constraints for non-flex
// children, pinning the cross axis when stretching.
func (r *renderFlex) fixedChildConstraints(maxSize graphics.Size) layout.Constraints {
	if r.crossAlignment != CrossAxisAlignmentStretch {
		return layout.Loose(maxSize)
	}
	if r.direction == AxisHorizontal {
		return layout.Constraints{
			MaxWidth:  maxSize.Width,
			MinHeight: maxSize.Height,
			MaxHeight: maxSize.Height,
		}
	}
	return layout.Constraints{
		MinWidth:  maxSize.Width,
		MaxWidth:  maxSize.Width,
		MaxHeight: maxSize.Height,
	}
}

// flexChildConstraints pins the child's main axis to its allocated share.
func (r *renderFlex) flexChildConstraints(constraints layout.Constraints, mainSize float64) layout.Constraints {
	if r.direction == AxisHorizontal {
		minHeight := 0.0
		if r.crossAlignment == CrossAxisAlignmentStretch {
			minHeight = constraints.MaxHeight
		}
		return layout.Constraints{
			MinWidth:  mainSize,
			MaxWidth:  mainSize,
			MinHeight: minHeight,
			MaxHeight: constraints.MaxHeight,
		}
	}
	minWidth := 0.0
	if r.crossAlignment == CrossAxisAlignmentStretch {
		minWidth = constraints.MaxWidth
	}
	return layout.Constraints{
		MinWidth:  minWidth,
		MaxWidth:  constraints.MaxWidth,
		MinHeight: mainSize,
		MaxHeight: mainSize,
	}
}

func (r *renderFlex) unboundedFallbackSize(crossSize float64) graphics.Size {
	constraints := r.Constraints()
	fallbackMain := math.Max(constraints.MinWidth, 200)
	if r.direction == AxisVertical {
		fallbackMain = math.Max(constraints.MinHeight, 50)
	}
	if crossSize == 0 {
		crossSize = 50
	}
	return r.sizeOf(fallbackMain, crossSize)
}

func (r *renderFlex) Paint(ctx *layout.PaintContext) {
	if r.unboundedFlex {
		// Bright pink box flags the layout error on screen.
		ctx.Canvas.DrawRect(
			graphics.RectFromLTWH(0, 0, r.Size().Width, r.Size().Height),
			graphics.RGB(255, 0, 127),
		)
		return
	}
	for _, child := range r.children {
		ctx.PaintChild(child, getChildOffset(child))
	}
}

func (r *renderFlex) HitTest(position graphics.Offset, result *layout.HitTestResult) bool {
	if !layout.WithinBounds(position, r.Size()) {
		return false
	}
	// Children may hold stale offsets after an unbounded flex fallback.
	if r.unboundedFlex {
		result.Add(r)
		return true
	}
	for i := len(r.children) - 1; i >= 0; i-- {
		child := r.children[i]
		offset := getChildOffset(child)
		local := position.Sub(offset)
		if child.HitTest(local, result) {
			return true
		}
	}
	result.Add(r)
	return true
}
