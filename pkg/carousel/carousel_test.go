package carousel_test

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/go-drift/carousel/pkg/carousel"
	"github.com/go-drift/carousel/pkg/core"
	"github.com/go-drift/carousel/pkg/graphics"
	uitest "github.com/go-drift/carousel/pkg/testing"
	"github.com/go-drift/carousel/pkg/widgets"
)

type card struct {
	ID    string
	Color graphics.Color
}

func (c card) ItemID() string { return c.ID }

func deck(n int) []card {
	cards := make([]card, n)
	for i := range cards {
		cards[i] = card{
			ID:    fmt.Sprintf("card-%d", i),
			Color: graphics.RGB(uint8(i*40%256), 0x20, 0x80),
		}
	}
	return cards
}

func cardContent(b carousel.Binding[card]) core.Widget {
	return widgets.ColorBox{
		Width:  carousel.DefaultCardWidth,
		Height: carousel.DefaultCardHeight,
		Color:  b.Value().Color,
	}
}

// pumpCarousel mounts a carousel over items on a 390pt-wide surface, the
// geometry used throughout: inset 40, snap interval 326.
func pumpCarousel(t *testing.T, items *[]card, effect carousel.Effect) *uitest.WidgetTester {
	t.Helper()
	tester := uitest.NewWidgetTesterWithT(t)
	tester.SetSize(graphics.Size{Width: 390, Height: 600})
	err := tester.PumpWidget(carousel.CarouselView[card]{
		Data:    carousel.BindValue(items),
		Content: cardContent,
		Effect:  effect,
	})
	if err != nil {
		t.Fatalf("PumpWidget failed: %v", err)
	}
	return tester
}

func indicatorWidget(t *testing.T, tester *uitest.WidgetTester) carousel.PageIndicator {
	t.Helper()
	result := tester.Find(uitest.ByType[carousel.PageIndicator]())
	if !result.Exists() {
		t.Fatal("expected a PageIndicator in the tree")
	}
	return result.Widget().(carousel.PageIndicator)
}

func settle(t *testing.T, tester *uitest.WidgetTester) {
	t.Helper()
	if err := tester.PumpAndSettle(2 * time.Second); err != nil {
		t.Fatalf("did not settle: %v", err)
	}
}

func TestCarouselView_BuildsCardsAndIndicator(t *testing.T) {
	items := deck(3)
	tester := pumpCarousel(t, &items, carousel.EffectNone)

	if got := tester.Find(uitest.ByType[widgets.ColorBox]()).Count(); got != 3 {
		t.Errorf("expected 3 cards, got %d", got)
	}

	indicator := indicatorWidget(t, tester)
	if indicator.PageCount != 3 {
		t.Errorf("indicator PageCount = %d, want 3", indicator.PageCount)
	}
	if indicator.CurrentPage != 0 {
		t.Errorf("indicator CurrentPage = %d, want 0", indicator.CurrentPage)
	}
}

func TestCarouselView_EmptyCollection(t *testing.T) {
	items := []card{}
	tester := pumpCarousel(t, &items, carousel.EffectNone)

	if got := tester.Find(uitest.ByType[widgets.ColorBox]()).Count(); got != 0 {
		t.Errorf("expected 0 cards, got %d", got)
	}

	indicator := indicatorWidget(t, tester)
	if indicator.PageCount != 0 {
		t.Errorf("indicator PageCount = %d, want 0", indicator.PageCount)
	}
	if indicator.CurrentPage != 0 {
		t.Errorf("indicator CurrentPage = %d, want 0", indicator.CurrentPage)
	}
}

func TestCarouselView_IndicatorTapSelectsPage(t *testing.T) {
	items := deck(6)
	tester := pumpCarousel(t, &items, carousel.EffectNone)

	indicatorWidget(t, tester).OnPageSelected(2)
	settle(t, tester)
	if got := indicatorWidget(t, tester).CurrentPage; got != 2 {
		t.Fatalf("after tapping dot 2: CurrentPage = %d, want 2", got)
	}

	indicatorWidget(t, tester).OnPageSelected(5)
	settle(t, tester)
	if got := indicatorWidget(t, tester).CurrentPage; got != 5 {
		t.Fatalf("after tapping dot 5: CurrentPage = %d, want 5", got)
	}
}

func TestCarouselView_RoundTripSelection(t *testing.T) {
	items := deck(4)
	tester := pumpCarousel(t, &items, carousel.EffectNone)

	for page := 1; page < len(items); page++ {
		indicatorWidget(t, tester).OnPageSelected(page)
		settle(t, tester)
		if got := indicatorWidget(t, tester).CurrentPage; got != page {
			t.Fatalf("after tapping dot %d: CurrentPage = %d", page, got)
		}
	}
}

func TestCarouselView_IndicatorTapOutOfRange(t *testing.T) {
	items := deck(3)
	tester := pumpCarousel(t, &items, carousel.EffectNone)

	indicatorWidget(t, tester).OnPageSelected(10)
	settle(t, tester)
	if got := indicatorWidget(t, tester).CurrentPage; got != 0 {
		t.Errorf("out-of-range tap changed CurrentPage to %d", got)
	}

	indicatorWidget(t, tester).OnPageSelected(-1)
	settle(t, tester)
	if got := indicatorWidget(t, tester).CurrentPage; got != 0 {
		t.Errorf("negative tap changed CurrentPage to %d", got)
	}
}

func TestCarouselView_StaleSelectionFallsBackToFirst(t *testing.T) {
	items := deck(4)
	tester := pumpCarousel(t, &items, carousel.EffectNone)

	indicatorWidget(t, tester).OnPageSelected(2)
	settle(t, tester)

	// Remove the settled card. Its id no longer resolves, so the derived
	// index falls back to 0 on the next build.
	items = append(items[:2], items[3:]...)
	tester.Find(uitest.ByType[carousel.CarouselView[card]]()).First().MarkNeedsBuild()
	settle(t, tester)

	indicator := indicatorWidget(t, tester)
	if indicator.CurrentPage != 0 {
		t.Errorf("CurrentPage = %d, want 0 after removing the settled card", indicator.CurrentPage)
	}
	if indicator.PageCount != 3 {
		t.Errorf("PageCount = %d, want 3", indicator.PageCount)
	}
}

func TestCarouselView_FlingAdvancesPage(t *testing.T) {
	items := deck(6)
	tester := pumpCarousel(t, &items, carousel.EffectNone)

	// A fast leftward drag flings the strip forward one page.
	err := tester.DragFrom(
		graphics.Offset{X: 195, Y: 200},
		graphics.Offset{X: -120, Y: 0},
	)
	if err != nil {
		t.Fatalf("DragFrom failed: %v", err)
	}
	settle(t, tester)

	if got := indicatorWidget(t, tester).CurrentPage; got != 1 {
		t.Errorf("after fling: CurrentPage = %d, want 1", got)
	}
}

func TestCarouselView_PaintScalesByDistance(t *testing.T) {
	items := deck(3)
	tester := pumpCarousel(t, &items, carousel.EffectNone)

	// Card 0 sits centered (distance 0, scale 1.0); card 1 is one snap
	// interval away, past the half viewport, so it scales to 0.9.
	var sawFull, sawMin bool
	for _, op := range tester.Canvas().Ops() {
		if op.Kind != graphics.OpScale {
			continue
		}
		if math.Abs(op.Sx-1.0) < 1e-9 {
			sawFull = true
		}
		if math.Abs(op.Sx-0.9) < 1e-9 {
			sawMin = true
		}
	}
	if !sawFull {
		t.Error("expected a scale op of 1.0 for the centered card")
	}
	if !sawMin {
		t.Error("expected a scale op of 0.9 for the off-center card")
	}
}

func TestCarouselView_LinearEffectShiftsContent(t *testing.T) {
	items := deck(3)
	tester := pumpCarousel(t, &items, carousel.EffectLinearOffset)

	// Card 1's center is one snap interval (326) right of the viewport
	// center, so its content shifts left by the same amount.
	found := false
	for _, op := range tester.Canvas().Ops() {
		if op.Kind == graphics.OpTranslate && math.Abs(op.Dx-(-326)) < 1e-9 && op.Dy == 0 {
			found = true
		}
	}
	if !found {
		t.Error("expected a -326 content translate for the off-center card")
	}
}

func TestCarouselView_NoEffectDoesNotShiftContent(t *testing.T) {
	items := deck(3)
	tester := pumpCarousel(t, &items, carousel.EffectNone)

	for _, op := range tester.Canvas().Ops() {
		if op.Kind == graphics.OpTranslate && math.Abs(op.Dx-(-326)) < 1e-9 {
			t.Fatal("EffectNone should not shift card content")
		}
	}
}

func TestCarouselView_ContentBindingWritesBack(t *testing.T) {
	items := deck(2)
	tester := uitest.NewWidgetTesterWithT(t)
	tester.SetSize(graphics.Size{Width: 390, Height: 600})

	var firstBinding carousel.Binding[card]
	err := tester.PumpWidget(carousel.CarouselView[card]{
		Data: carousel.BindValue(&items),
		Content: func(b carousel.Binding[card]) core.Widget {
			if b.Value().ID == "card-0" {
				firstBinding = b
			}
			return cardContent(b)
		},
	})
	if err != nil {
		t.Fatalf("PumpWidget failed: %v", err)
	}

	firstBinding.Update(card{ID: "card-0", Color: graphics.RGB(1, 2, 3)})
	if items[0].Color != graphics.RGB(1, 2, 3) {
		t.Errorf("binding write did not reach host collection: %+v", items[0])
	}
}
