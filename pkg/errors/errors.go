// Package errors provides structured error handling for the weft framework.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors wrapped by WeftError.Err and returned from API calls.
var (
	// ErrNotBoolean is reported when Toggle is called on a non-boolean cell.
	ErrNotBoolean = errors.New("value is not boolean")
	// ErrTypeMismatch is returned when an erased assignment does not fit the cell type.
	ErrTypeMismatch = errors.New("value type does not match cell type")
	// ErrTemplateArity is returned when a template has the wrong number of values.
	ErrTemplateArity = errors.New("template needs exactly one value between each pair of parts")
	// ErrAlreadyTemplated is returned when a component template is invoked twice.
	ErrAlreadyTemplated = errors.New("component template already materialized")
	// ErrNotTemplated is reported when an unmaterialized component is inserted.
	ErrNotTemplated = errors.New("component has no template")
	// ErrAlreadyAttached is reported when a component fragment is inserted twice.
	ErrAlreadyAttached = errors.New("component already attached")
	// ErrRootNotFound is returned when the document has no root marker.
	ErrRootNotFound = errors.New("root marker not found in document")
	// ErrDispatchLimit is reported when one update cycle applies too many bindings.
	ErrDispatchLimit = errors.New("dispatch limit exceeded, possible update cycle")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return errors.As(err, target) }

// New returns an error with the given text.
func New(text string) error { return errors.New(text) }

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindState indicates a misuse of a state cell.
	KindState
	// KindExpression indicates an expression that failed to compile or evaluate.
	KindExpression
	// KindBinding indicates a failure while scanning or applying a binding.
	KindBinding
	// KindRender indicates a failure attaching components to the document.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates a configuration error.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindState:
		return "state"
	case KindExpression:
		return "expression"
	case KindBinding:
		return "binding"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// WeftError represents a structured error in the weft framework.
type WeftError struct {
	// Op is the operation that failed (e.g., "reactive.State.Toggle").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Component is the name of the component involved, if any.
	Component string
	// Binding is the binding kind involved, if any.
	Binding string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *WeftError) Error() string {
	if e.Binding != "" {
		return fmt.Sprintf("%s [%s] binding=%s: %v", e.Op, e.Kind, e.Binding, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *WeftError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "dom.Node.Dispatch").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// BindingError represents a failure while applying one binding.
// The failure is isolated: other bindings of the same notification pass
// still run.
type BindingError struct {
	// Component is the name of the owning component.
	Component string
	// Binding is the binding kind (text, attr, class, if, ...).
	Binding string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BindingError) Error() string {
	name := e.Binding
	if e.Component != "" {
		name = e.Component + "." + e.Binding
	}
	if e.Recovered != nil {
		return fmt.Sprintf("panic applying %s binding: %v", name, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error applying %s binding: %v", name, e.Err)
	}
	return fmt.Sprintf("unknown error applying %s binding", name)
}

func (e *BindingError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by the weft framework.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *WeftError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleBindingError is called when a binding fails to apply.
	HandleBindingError(err *BindingError)
}
