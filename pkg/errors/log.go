package errors

import (
	"fmt"
	"os"
)

// LogHandler writes reported errors to stderr. It is the handler of last
// resort; embedding applications usually install their own.
type LogHandler struct {
	// Verbose adds kind, channel, and stack trace detail.
	Verbose bool
}

func (h *LogHandler) HandleError(err *Error) {
	if err == nil {
		return
	}
	if !h.Verbose {
		fmt.Fprintf(os.Stderr, "[carousel error] %s: %v\n", err.Op, err.Err)
		return
	}
	fmt.Fprintf(os.Stderr, "[carousel error] %s [%s]", err.Op, err.Kind)
	if err.Channel != "" {
		fmt.Fprintf(os.Stderr, " channel=%s", err.Channel)
	}
	fmt.Fprintf(os.Stderr, ": %v\n", err.Err)
	if err.StackTrace != "" {
		fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", err.StackTrace)
	}
}

func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Op != "" {
		fmt.Fprintf(os.Stderr, "[carousel panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(os.Stderr, "[carousel panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", err.StackTrace)
	}
}

func (h *LogHandler) HandleBuildError(err *BuildError) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "[carousel build error] %s\n", err.Error())
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", err.StackTrace)
	}
}
