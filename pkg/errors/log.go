package errors

import (
	"fmt"
	"io"
	"os"
)

// LogHandler is an ErrorHandler that writes errors as log lines.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Out receives the log lines. Nil means os.Stderr.
	Out io.Writer
}

func (h *LogHandler) out() io.Writer {
	if h.Out == nil {
		return os.Stderr
	}
	return h.Out
}

// HandleError logs a WeftError.
func (h *LogHandler) HandleError(err *WeftError) {
	if err == nil {
		return
	}
	w := h.out()
	if !h.Verbose {
		fmt.Fprintf(w, "[weft error] %s: %v\n", err.Op, err.Err)
		return
	}
	fmt.Fprintf(w, "[weft error] %s [%s]", err.Op, err.Kind)
	if err.Component != "" {
		fmt.Fprintf(w, " component=%s", err.Component)
	}
	if err.Binding != "" {
		fmt.Fprintf(w, " binding=%s", err.Binding)
	}
	fmt.Fprintf(w, ": %v\n", err.Err)
	if err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	w := h.out()
	if err.Op != "" {
		fmt.Fprintf(w, "[weft panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(w, "[weft panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}

// HandleBindingError logs a BindingError.
func (h *LogHandler) HandleBindingError(err *BindingError) {
	if err == nil {
		return
	}
	w := h.out()
	fmt.Fprintf(w, "[weft binding error] %s\n", err.Error())
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}
