package testing

import (
	"sync"
	"testing"

	"github.com/weft-ui/weft/pkg/core"
	"github.com/weft-ui/weft/pkg/dom"
	"github.com/weft-ui/weft/pkg/errors"
)

// DefaultPage is the host page a tester renders into.
const DefaultPage = `<!DOCTYPE html><html><head></head><body><div data-is="root"></div></body></html>`

// Tester provides isolated component testing against an in-memory
// document. It installs itself as the error handler so reported errors
// can be asserted on.
type Tester struct {
	session     *core.Session
	doc         *dom.Document
	root        *core.Component
	prevHandler errors.ErrorHandler

	mu   sync.Mutex
	errs []error
}

// NewTester creates a tester over DefaultPage.
// Call Cleanup() when done, or use NewTesterWithT() instead.
func NewTester(opts ...core.Option) *Tester {
	t, err := NewTesterWithPage(DefaultPage, opts...)
	if err != nil {
		// DefaultPage always parses.
		panic(err)
	}
	return t
}

// NewTesterWithPage creates a tester over the given host page.
func NewTesterWithPage(page string, opts ...core.Option) (*Tester, error) {
	doc, err := dom.ParseString(page)
	if err != nil {
		return nil, err
	}
	t := &Tester{
		doc:         doc,
		session:     core.NewSession(doc, opts...),
		prevHandler: errors.Handler(),
	}
	errors.SetHandler(t)
	return t, nil
}

// NewTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T, opts ...core.Option) *Tester {
	tester := NewTester(opts...)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup restores the previous error handler. Must be called if not using
// NewTesterWithT.
func (t *Tester) Cleanup() {
	errors.SetHandler(t.prevHandler)
}

// Session returns the tester's session.
func (t *Tester) Session() *core.Session {
	return t.session
}

// Document returns the tester's document.
func (t *Tester) Document() *dom.Document {
	return t.doc
}

// NewComponent creates a component in the tester's session.
func (t *Tester) NewComponent(name string) *core.Component {
	return t.session.NewComponent(name)
}

// Render renders c at the root marker.
func (t *Tester) Render(c *core.Component) error {
	if err := t.session.Render(c); err != nil {
		return err
	}
	t.root = c
	return nil
}

// Root returns the rendered root component.
func (t *Tester) Root() *core.Component {
	return t.root
}

// Find evaluates a finder against the document body.
func (t *Tester) Find(finder Finder) FinderResult {
	body := t.doc.Body()
	if body == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		nodes:  finder.Evaluate(body),
		finder: finder,
	}
}

// HTML returns the body's inner HTML.
func (t *Tester) HTML() string {
	if body := t.doc.Body(); body != nil {
		return body.InnerHTML()
	}
	return ""
}

// Errors returns every error reported since the tester was created or
// last cleared.
func (t *Tester) Errors() []error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]error(nil), t.errs...)
}

// ClearErrors forgets reported errors.
func (t *Tester) ClearErrors() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errs = nil
}

func (t *Tester) record(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errs = append(t.errs, err)
}

// HandleError implements errors.ErrorHandler.
func (t *Tester) HandleError(err *errors.WeftError) { t.record(err) }

// HandlePanic implements errors.ErrorHandler.
func (t *Tester) HandlePanic(err *errors.PanicError) { t.record(err) }

// HandleBindingError implements errors.ErrorHandler.
func (t *Tester) HandleBindingError(err *errors.BindingError) { t.record(err) }
