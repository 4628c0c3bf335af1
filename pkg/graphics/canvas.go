package graphics

// Canvas receives paint commands from the render tree.
//
// The engine supplies a hardware-backed implementation; tests use
// [RecordingCanvas] to capture the command stream for assertions.
type Canvas interface {
	Save()
	Restore()
	Translate(dx, dy float64)
	Scale(sx, sy float64)
	ClipRect(rect Rect)
	DrawRect(rect Rect, color Color)
}

// CanvasOpKind identifies a recorded canvas command.
type CanvasOpKind int

const (
	OpSave CanvasOpKind = iota
	OpRestore
	OpTranslate
	OpScale
	OpClipRect
	OpDrawRect
)

// String returns a human-readable representation of the op kind.
func (k CanvasOpKind) String() string {
	switch k {
	case OpSave:
		return "save"
	case OpRestore:
		return "restore"
	case OpTranslate:
		return "translate"
	case OpScale:
		return "scale"
	case OpClipRect:
		return "clipRect"
	case OpDrawRect:
		return "drawRect"
	default:
		return "unknown"
	}
}

// CanvasOp is a single recorded canvas command.
type CanvasOp struct {
	Kind  CanvasOpKind
	Rect  Rect
	Color Color
	Dx    float64
	Dy    float64
	Sx    float64
	Sy    float64
}

// RecordingCanvas captures paint commands for inspection in tests.
type RecordingCanvas struct {
	ops []CanvasOp
}

// Ops returns the recorded commands in issue order.
func (c *RecordingCanvas) Ops() []CanvasOp {
	return c.ops
}

// Reset discards all recorded commands.
func (c *RecordingCanvas) Reset() {
	c.ops = c.ops[:0]
}

func (c *RecordingCanvas) Save() {
	c.ops = append(c.ops, CanvasOp{Kind: OpSave})
}

func (c *RecordingCanvas) Restore() {
	c.ops = append(c.ops, CanvasOp{Kind: OpRestore})
}

func (c *RecordingCanvas) Translate(dx, dy float64) {
	c.ops = append(c.ops, CanvasOp{Kind: OpTranslate, Dx: dx, Dy: dy})
}

func (c *RecordingCanvas) Scale(sx, sy float64) {
	c.ops = append(c.ops, CanvasOp{Kind: OpScale, Sx: sx, Sy: sy})
}

func (c *RecordingCanvas) ClipRect(rect Rect) {
	c.ops = append(c.ops, CanvasOp{Kind: OpClipRect, Rect: rect})
}

func (c *RecordingCanvas) DrawRect(rect Rect, color Color) {
	c.ops = append(c.ops, CanvasOp{Kind: OpDrawRect, Rect: rect, Color: color})
}
