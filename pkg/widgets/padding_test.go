package widgets_test

import (
	"testing"

	"github.com/go-drift/carousel/pkg/graphics"
	"github.com/go-drift/carousel/pkg/layout"
	uitest "github.com/go-drift/carousel/pkg/testing"
	"github.com/go-drift/carousel/pkg/widgets"
)

func TestPadding_ChildOffset(t *testing.T) {
	tester := uitest.NewWidgetTesterWithT(t)
	tester.SetSize(graphics.Size{Width: 200, Height: 200})

	tester.PumpWidget(widgets.Padding{
		Padding:     layout.EdgeInsetsAll(16),
		ChildWidget: widgets.ColorBox{Color: graphics.RGB(0, 0, 255), Width: 50, Height: 50},
	})

	result := tester.Find(uitest.ByType[widgets.ColorBox]())
	if !result.Exists() {
		t.Fatal("no ColorBox in the tree")
	}
	pd, ok := result.RenderObject().ParentData().(*layout.BoxParentData)
	if !ok {
		t.Fatal("child render object should carry BoxParentData")
	}
	if pd.Offset.X != 16 || pd.Offset.Y != 16 {
		t.Errorf("child offset = {%v, %v}, want {16, 16}", pd.Offset.X, pd.Offset.Y)
	}
}

func TestPadding_Size(t *testing.T) {
	tester := uitest.NewWidgetTesterWithT(t)
	tester.SetSize(graphics.Size{Width: 200, Height: 200})

	// Center loosens the constraints so the Padding sizes to content
	// instead of the tester surface.
	tester.PumpWidget(widgets.Center{
		ChildWidget: widgets.Padding{
			Padding:     layout.EdgeInsetsOnly(10, 20, 30, 40),
			ChildWidget: widgets.SizedBox{Width: 50, Height: 50},
		},
	})

	result := tester.Find(uitest.ByType[widgets.Padding]())
	if !result.Exists() {
		t.Fatal("no Padding in the tree")
	}
	// Child 50x50 plus insets: 10+30 wide, 20+40 tall.
	size := result.RenderObject().Size()
	if size.Width != 90 || size.Height != 110 {
		t.Errorf("size = {%v, %v}, want {90, 110}", size.Width, size.Height)
	}
}

func TestPadding_ConstraintDeflation(t *testing.T) {
	tester := uitest.NewWidgetTesterWithT(t)
	tester.SetSize(graphics.Size{Width: 200, Height: 200})

	tester.PumpWidget(widgets.Padding{
		Padding:     layout.EdgeInsetsAll(20),
		ChildWidget: widgets.SizedBox{Width: 500, Height: 500},
	})

	result := tester.Find(uitest.ByType[widgets.Padding]())
	if !result.Exists() {
		t.Fatal("no Padding in the tree")
	}
	// The child wants 500x500 but sees constraints deflated by 20 per
	// edge, so it clamps to 160x160 and the padded box fills 200x200.
	size := result.RenderObject().Size()
	if size.Width != 200 || size.Height != 200 {
		t.Errorf("size = {%v, %v}, want {200, 200}", size.Width, size.Height)
	}
}

func TestPadding_PaintTranslatesChild(t *testing.T) {
	tester := uitest.NewWidgetTesterWithT(t)
	tester.SetSize(graphics.Size{Width: 200, Height: 200})

	tester.PumpWidget(widgets.Padding{
		Padding:     layout.EdgeInsetsAll(8),
		ChildWidget: widgets.ColorBox{Color: graphics.RGB(255, 0, 0), Width: 40, Height: 40},
	})

	for _, op := range tester.Canvas().Ops() {
		if op.Kind == graphics.OpTranslate && op.Dx == 8 && op.Dy == 8 {
			return
		}
	}
	t.Error("no translate op matching the 8px insets")
}
