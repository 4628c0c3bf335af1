package errors

import (
	"strings"
	"testing"
	"time"
)

func TestError_StringIncludesChannel(t *testing.T) {
	err := &Error{
		Op:      "carousel.parseEvent",
		Kind:    KindParsing,
		Channel: "carousel/page_indicator",
		Err:     &ParseError{Channel: "carousel/page_indicator", DataType: "PageEvent", Got: nil},
	}
	got := err.Error()
	if !strings.Contains(got, "channel=carousel/page_indicator") {
		t.Errorf("Error() = %q, want the channel name included", got)
	}
	if !strings.Contains(got, "[parsing]") {
		t.Errorf("Error() = %q, want the kind included", got)
	}
}

func TestError_StringWithoutChannel(t *testing.T) {
	err := &Error{
		Op:   "strip.settle",
		Kind: KindRender,
		Err:  &ParseError{DataType: "Offset", Got: "oops"},
	}
	if got := err.Error(); strings.Contains(got, "channel=") {
		t.Errorf("Error() = %q, channel part should be absent", got)
	}
}

func TestErrorKind_String(t *testing.T) {
	cases := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindPlatform, "platform"},
		{KindParsing, "parsing"},
		{KindInit, "init"},
		{KindRender, "render"},
		{KindPanic, "panic"},
		{KindBuild, "build"},
		{ErrorKind(99), "unknown"},
		{ErrorKind(-1), "unknown"},
	}
	for _, tc := range cases {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tc.kind, got, tc.want)
		}
	}
}

func TestPanicError_String(t *testing.T) {
	bare := &PanicError{Value: "index out of range"}
	if got := bare.Error(); got != "panic: index out of range" {
		t.Errorf("Error() = %q", got)
	}

	withOp := &PanicError{Op: "gestures.HandlePointer", Value: "index out of range"}
	if got := withOp.Error(); got != "panic in gestures.HandlePointer: index out of range" {
		t.Errorf("Error() = %q", got)
	}
}

func TestParseError_NamesActualType(t *testing.T) {
	err := &ParseError{Channel: "carousel/page_indicator", DataType: "PageEvent", Got: 123}
	if got := err.Error(); !strings.Contains(got, "int") {
		t.Errorf("Error() = %q, want the received type named", got)
	}
}

func TestBuildError_String(t *testing.T) {
	cases := []struct {
		name string
		err  *BuildError
		want string
	}{
		{
			"panic",
			&BuildError{Widget: "carousel.CarouselView[card]", Recovered: "nil item builder"},
			"panic in carousel.CarouselView[card].Build(): nil item builder",
		},
		{
			"error",
			&BuildError{Widget: "carousel.CarouselView[card]", Err: &ParseError{DataType: "card"}},
			"error in carousel.CarouselView[card].Build()",
		},
		{
			"neither",
			&BuildError{Widget: "carousel.CarouselView[card]"},
			"unknown error in carousel.CarouselView[card].Build()",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); !strings.Contains(got, tc.want) {
				t.Errorf("Error() = %q, want it to contain %q", got, tc.want)
			}
		})
	}
}

// captureHandler records everything routed through the package.
type captureHandler struct {
	errs   []*Error
	panics []*PanicError
	builds []*BuildError
}

func (h *captureHandler) HandleError(err *Error)           { h.errs = append(h.errs, err) }
func (h *captureHandler) HandlePanic(err *PanicError)      { h.panics = append(h.panics, err) }
func (h *captureHandler) HandleBuildError(err *BuildError) { h.builds = append(h.builds, err) }

func installCapture(t *testing.T) *captureHandler {
	t.Helper()
	h := &captureHandler{}
	SetHandler(h)
	t.Cleanup(func() { SetHandler(nil) })
	return h
}

func TestReport_StampsTimestamp(t *testing.T) {
	h := installCapture(t)

	Report(&Error{Op: "bridge.invoke", Kind: KindPlatform})

	if len(h.errs) != 1 {
		t.Fatalf("handler saw %d errors, want 1", len(h.errs))
	}
	if h.errs[0].Timestamp.IsZero() {
		t.Error("Report should stamp a zero timestamp")
	}
}

func TestReport_KeepsCallerTimestamp(t *testing.T) {
	h := installCapture(t)

	stamp := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	Report(&Error{Op: "bridge.invoke", Timestamp: stamp})

	if got := h.errs[0].Timestamp; !got.Equal(stamp) {
		t.Errorf("Timestamp = %v, want the caller's %v", got, stamp)
	}
}

func TestReport_NilIsIgnored(t *testing.T) {
	h := installCapture(t)
	Report(nil)
	ReportPanic(nil)
	ReportBuildError(nil)
	if len(h.errs)+len(h.panics)+len(h.builds) != 0 {
		t.Error("nil reports should not reach the handler")
	}
}

func TestRecover_ReportsAndSwallows(t *testing.T) {
	h := installCapture(t)

	func() {
		defer Recover("strip.paint")
		panic("bad transform")
	}()

	if len(h.panics) != 1 {
		t.Fatalf("handler saw %d panics, want 1", len(h.panics))
	}
	p := h.panics[0]
	if p.Op != "strip.paint" || p.Value != "bad transform" {
		t.Errorf("recovered Op=%q Value=%v", p.Op, p.Value)
	}
	if p.StackTrace == "" {
		t.Error("recovered panic should carry a stack trace")
	}
}

func TestRecover_NoPanicNoReport(t *testing.T) {
	h := installCapture(t)
	func() {
		defer Recover("strip.paint")
	}()
	if len(h.panics) != 0 {
		t.Errorf("handler saw %d panics, want 0", len(h.panics))
	}
}

func TestReportBuildError_Delivers(t *testing.T) {
	h := installCapture(t)

	ReportBuildError(&BuildError{Widget: "showcase.cardBody", Recovered: "boom"})

	if len(h.builds) != 1 {
		t.Fatalf("handler saw %d build errors, want 1", len(h.builds))
	}
	if h.builds[0].Timestamp.IsZero() {
		t.Error("ReportBuildError should stamp a zero timestamp")
	}
}

func TestCaptureStack_HasFrames(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Fatal("CaptureStack returned nothing")
	}
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack should show test or runtime frames:\n%s", stack)
	}
}

func TestSetHandler_NilRestoresLogHandler(t *testing.T) {
	SetHandler(&captureHandler{})
	SetHandler(nil)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("DefaultHandler = %T, want *LogHandler", DefaultHandler)
	}
}
