// Package testing runs widget trees headlessly so carousel behavior can
// be asserted without a native host.
//
// The entry point is [WidgetTester]. Pump a widget, drive time through
// the fake clock, and inspect the tree with finders:
//
//	func TestStripSnaps(t *testing.T) {
//	    tester := uitest.NewWidgetTesterWithT(t)
//	    tester.PumpWidget(myCarousel())
//
//	    tester.DragFrom(graphics.Offset{X: 300, Y: 200}, graphics.Offset{X: -180, Y: 0})
//	    if err := tester.PumpAndSettle(time.Second); err != nil {
//	        t.Fatal(err)
//	    }
//
//	    if !tester.Find(uitest.ByKey("card-1")).Exists() {
//	        t.Error("second card should be mounted after the swipe")
//	    }
//	}
//
// Paint output lands on a recording canvas ([WidgetTester.Canvas]), and
// everything sent over platform channels is captured by a loopback
// bridge ([WidgetTester.Bridge]), so native-side effects like indicator
// updates are assertable too.
//
// Render trees can be snapshotted and compared against golden files:
//
//	tester.CaptureSnapshot().MatchesFile(t, "testdata/strip.snapshot.json")
//
// Regenerate goldens with UPDATE_SNAPSHOTS=1 go test ./...
//
// The package shares its name with the standard library, so import it
// under an alias:
//
//	import uitest "github.com/go-drift/carousel/pkg/testing"
package testing
