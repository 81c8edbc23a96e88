package core

import (
	"testing"

	"github.com/weft-ui/weft/pkg/dom"
	"github.com/weft-ui/weft/pkg/errors"
)

const testPage = `<!DOCTYPE html><html><head></head><body><main data-is="root"></main></body></html>`

// newTestSession returns a session over testPage and the root marker.
func newTestSession(t *testing.T, opts ...Option) (*Session, *dom.Node) {
	t.Helper()
	doc, err := dom.ParseString(testPage)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	s := NewSession(doc, opts...)
	root := doc.QueryAttr(DefaultRootAttr, DefaultRootValue)
	if root == nil {
		t.Fatal("root marker not found")
	}
	return s, root
}

// mustMarkup templates c or fails the test.
func mustMarkup(t *testing.T, c *Component, src string, values ...Value) *Component {
	t.Helper()
	if err := c.Markup(src, values...); err != nil {
		t.Fatalf("Markup(%s): %v", c.Name(), err)
	}
	return c
}

func mustRender(t *testing.T, s *Session, c *Component) {
	t.Helper()
	if err := s.Render(c); err != nil {
		t.Fatalf("Render: %v", err)
	}
}

type reports struct {
	errors   []*errors.WeftError
	bindings []*errors.BindingError
	panics   []*errors.PanicError
}

func (r *reports) HandleError(err *errors.WeftError)          { r.errors = append(r.errors, err) }
func (r *reports) HandlePanic(err *errors.PanicError)         { r.panics = append(r.panics, err) }
func (r *reports) HandleBindingError(err *errors.BindingError) { r.bindings = append(r.bindings, err) }

// captureReports routes reported errors to the returned collector until the
// test ends.
func captureReports(t *testing.T) *reports {
	t.Helper()
	r := &reports{}
	errors.SetHandler(r)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return r
}
