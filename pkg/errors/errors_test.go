package errors

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestWeftErrorString(t *testing.T) {
	err := &WeftError{
		Op:   "reactive.State.Toggle",
		Kind: KindState,
		Err:  ErrNotBoolean,
	}
	want := "reactive.State.Toggle [state]: value is not boolean"
	if got := err.Error(); got != want {
		t.Errorf("WeftError.Error() = %q, want %q", got, want)
	}
}

func TestWeftErrorWithBinding(t *testing.T) {
	err := &WeftError{
		Op:      "core.Component.scan",
		Kind:    KindBinding,
		Binding: "component",
		Err:     ErrAlreadyAttached,
	}
	got := err.Error()
	if !strings.Contains(got, "binding=component") {
		t.Errorf("error string %q should contain %q", got, "binding=component")
	}
	if !Is(err, ErrAlreadyAttached) {
		t.Error("expected WeftError to unwrap to ErrAlreadyAttached")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindState, "state"},
		{KindExpression, "expression"},
		{KindBinding, "binding"},
		{KindRender, "render"},
		{KindPanic, "panic"},
		{KindConfig, "config"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "boom", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: boom"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
	err.Op = "dom.Node.Dispatch"
	if got, want := err.Error(), "panic in dom.Node.Dispatch: boom"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestBindingErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *BindingError
		want string
	}{
		{
			name: "panic",
			err:  &BindingError{Component: "counter", Binding: "text", Recovered: "nil map"},
			want: "panic applying counter.text binding: nil map",
		},
		{
			name: "error",
			err:  &BindingError{Binding: "class", Err: fmt.Errorf("bad class")},
			want: "error applying class binding: bad class",
		},
		{
			name: "unknown",
			err:  &BindingError{Binding: "if"},
			want: "unknown error applying if binding",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("BindingError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReport(t *testing.T) {
	var captured *WeftError
	restore := install(&testHandler{onError: func(err *WeftError) { captured = err }})
	defer restore()

	Report(&WeftError{Op: "test.op", Kind: KindRender, Err: ErrRootNotFound})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportBindingError(t *testing.T) {
	var captured *BindingError
	restore := install(&testHandler{onBinding: func(err *BindingError) { captured = err }})
	defer restore()

	ReportBindingError(&BindingError{Binding: "attr", Err: ErrTypeMismatch})

	if captured == nil {
		t.Fatal("expected binding error to be captured")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	restore := install(&testHandler{onPanic: func(err *PanicError) { captured = err }})
	defer restore()

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", captured.Value, "intentional test panic")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Fatal("expected non-empty stack trace")
	}
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandlerNil(t *testing.T) {
	old := Handler()
	defer SetHandler(old)

	SetHandler(nil)
	if _, ok := Handler().(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", Handler())
	}
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Out: &buf}
	h.HandleError(&WeftError{Op: "core.Session.Render", Kind: KindRender, Err: ErrRootNotFound})
	h.HandlePanic(&PanicError{Op: "dom.Node.Dispatch", Value: "boom"})
	h.HandleBindingError(&BindingError{Binding: "text", Err: ErrTypeMismatch})

	want := "[weft error] core.Session.Render: root marker not found in document\n" +
		"[weft panic] dom.Node.Dispatch: boom\n" +
		"[weft binding error] error applying text binding: value type does not match cell type\n"
	if got := buf.String(); got != want {
		t.Errorf("log output = %q, want %q", got, want)
	}
}

func TestLogHandlerVerbose(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Out: &buf, Verbose: true}
	h.HandleError(&WeftError{
		Op:         "core.bind",
		Kind:       KindBinding,
		Component:  "todo",
		Binding:    "list",
		Err:        ErrNotTemplated,
		StackTrace: "main.main\n",
	})
	got := buf.String()
	for _, want := range []string{"[binding]", "component=todo", "binding=list", "Stack trace:"} {
		if !strings.Contains(got, want) {
			t.Errorf("verbose output %q should contain %q", got, want)
		}
	}
}

func install(h ErrorHandler) func() {
	old := Handler()
	SetHandler(h)
	return func() { SetHandler(old) }
}

type testHandler struct {
	onError   func(*WeftError)
	onPanic   func(*PanicError)
	onBinding func(*BindingError)
}

func (h *testHandler) HandleError(err *WeftError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}

func (h *testHandler) HandleBindingError(err *BindingError) {
	if h.onBinding != nil {
		h.onBinding(err)
	}
}
