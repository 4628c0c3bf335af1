// Package errors defines the structured error types the framework reports
// through a pluggable handler, plus panic recovery helpers.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind buckets reported errors by origin.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindPlatform covers channel and native bridge failures.
	KindPlatform
	// KindParsing covers malformed payloads arriving over a channel.
	KindParsing
	// KindInit covers startup wiring failures.
	KindInit
	// KindRender covers layout and paint failures.
	KindRender
	// KindPanic marks a recovered panic.
	KindPanic
	// KindBuild covers widget build failures.
	KindBuild
)

var kindNames = [...]string{
	KindUnknown:  "unknown",
	KindPlatform: "platform",
	KindParsing:  "parsing",
	KindInit:     "init",
	KindRender:   "render",
	KindPanic:    "panic",
	KindBuild:    "build",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Error is the structured error the framework reports. Op names the failing
// operation ("platform.InvokeMethod", "lifecycle.parseEvent"); Channel is
// set when the failure involved a platform channel.
type Error struct {
	Op         string
	Kind       ErrorKind
	Err        error
	Channel    string
	StackTrace string
	Timestamp  time.Time
}

func (e *Error) Error() string {
	if e.Channel != "" {
		return fmt.Sprintf("%s [%s] channel=%s: %v", e.Op, e.Kind, e.Channel, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// PanicError carries a recovered panic and where it happened.
type PanicError struct {
	Op         string
	Value      any
	StackTrace string
	Timestamp  time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ParseError reports channel data that did not match the expected shape.
type ParseError struct {
	Channel  string
	DataType string
	Got      any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s from channel %s: got %T", e.DataType, e.Channel, e.Got)
}

// BuildError reports a widget whose Build failed. Exactly one of Recovered
// (a panic value) and Err is set.
type BuildError struct {
	Widget     string
	Element    string
	Recovered  any
	Err        error
	StackTrace string
	Timestamp  time.Time
}

func (e *BuildError) Error() string {
	switch {
	case e.Recovered != nil:
		return fmt.Sprintf("panic in %s.Build(): %v", e.Widget, e.Recovered)
	case e.Err != nil:
		return fmt.Sprintf("error in %s.Build(): %v", e.Widget, e.Err)
	default:
		return fmt.Sprintf("unknown error in %s.Build()", e.Widget)
	}
}

func (e *BuildError) Unwrap() error { return e.Err }

// ErrorHandler receives everything reported through this package. The zero
// behavior is stderr logging; tests install recording handlers.
type ErrorHandler interface {
	HandleError(err *Error)
	HandlePanic(err *PanicError)
	HandleBuildError(err *BuildError)
}
