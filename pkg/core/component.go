package core

import (
	"maps"

	"github.com/weft-ui/weft/pkg/dom"
	"github.com/weft-ui/weft/pkg/errors"
	"github.com/weft-ui/weft/pkg/reactive"
)

// Component owns a template, its materialized fragment and the bindings
// created from it. Create components with Session.NewComponent.
type Component struct {
	session *Session
	name    string
	params  map[string]any

	fragment *dom.Node
	nodes    []*dom.Node

	materialized bool
	attached     bool
	deferredDone bool
	mounted      bool

	// Value pools, indexed by the placeholder token of each kind.
	funcs  []Value
	bools  []bool
	objs   []any
	arrs   [][]*Component
	states []reactive.Cell
	ises   []*reactive.Expr
	comps  []*Component

	bindings []*reactive.Binding
	deferred []*reactive.Binding
	mounts   []func(nodes []*dom.Node)
	children []*Component
}

// Name returns the component's name.
func (c *Component) Name() string { return c.name }

// Session returns the session the component belongs to.
func (c *Component) Session() *Session { return c.session }

// AddParam stores a named parameter on the component.
func (c *Component) AddParam(name string, value any) {
	if c.params == nil {
		c.params = make(map[string]any)
	}
	c.params[name] = value
}

// Param returns a parameter stored with AddParam.
func (c *Component) Param(name string) (any, bool) {
	v, ok := c.params[name]
	return v, ok
}

// Params returns a copy of all parameters.
func (c *Component) Params() map[string]any {
	return maps.Clone(c.params)
}

// Fragment returns the fragment the template was materialized into. Its
// children move into the document when the component is attached, so it
// is empty afterwards.
func (c *Component) Fragment() *dom.Node { return c.fragment }

// Nodes returns the top-level nodes of the materialized template.
func (c *Component) Nodes() []*dom.Node { return c.nodes }

// Bindings returns every binding created for the component, in scan order.
func (c *Component) Bindings() []*reactive.Binding { return c.bindings }

// Materialized reports whether a template has been set.
func (c *Component) Materialized() bool { return c.materialized }

// Attached reports whether the fragment has been inserted somewhere.
func (c *Component) Attached() bool { return c.attached }

// Mounted reports whether mount callbacks have fired.
func (c *Component) Mounted() bool { return c.mounted }

// OnMount registers a callback that fires once, after the component's nodes
// are connected to the document. Callbacks registered after mounting run
// immediately.
func (c *Component) OnMount(fn func(nodes []*dom.Node)) {
	if fn == nil {
		return
	}
	if c.mounted {
		c.runMount(fn)
		return
	}
	c.mounts = append(c.mounts, fn)
}

// ApplyDeferred runs the component's deferred bindings. It is idempotent.
func (c *Component) ApplyDeferred() {
	if c.deferredDone {
		return
	}
	c.deferredDone = true
	for _, b := range c.deferred {
		_ = c.session.hub.Run(b)
	}
}

// connected reports whether any top-level node is in the document.
func (c *Component) connected() bool {
	for _, n := range c.nodes {
		if n.IsConnected() {
			return true
		}
	}
	return false
}

// mount fires mount callbacks, children first. Children whose nodes are
// not in the document stay unmounted until mountChildren finds them there.
func (c *Component) mount() {
	if c.mounted {
		return
	}
	c.mounted = true
	c.mountChildren()
	mounts := c.mounts
	c.mounts = nil
	for _, fn := range mounts {
		c.runMount(fn)
	}
}

// mountChildren mounts adopted children that are now connected, descending
// into children that are already mounted. It does nothing until c mounts.
func (c *Component) mountChildren() {
	if !c.mounted {
		return
	}
	for _, child := range c.children {
		switch {
		case child.mounted:
			child.mountChildren()
		case child.connected():
			child.mount()
		}
	}
}

func (c *Component) runMount(fn func([]*dom.Node)) {
	defer errors.Recover("core.Component.OnMount")
	fn(c.nodes)
}

// adopt finishes attaching a child component inserted by c. Its deferred
// bindings run right away; mount callbacks run once both c is mounted and
// the child is connected.
func (c *Component) adopt(child *Component) {
	child.ApplyDeferred()
	c.children = append(c.children, child)
	if c.mounted && child.connected() {
		child.mount()
	}
}

// checkAttachable reports why child cannot be inserted, or nil.
func checkAttachable(child *Component) error {
	switch {
	case child == nil || !child.materialized:
		return errors.ErrNotTemplated
	case child.attached:
		return errors.ErrAlreadyAttached
	}
	return nil
}

func (c *Component) report(op, binding string, err error) {
	errors.Report(&errors.WeftError{
		Op:        op,
		Kind:      errors.KindBinding,
		Component: c.name,
		Binding:   binding,
		Err:       err,
	})
}

// register records a binding with the component and the hub. Deferred
// bindings wait for ApplyDeferred; the rest apply immediately.
func (c *Component) register(kind string, deps []reactive.Cell, apply func() error, deferred bool) *reactive.Binding {
	b := &reactive.Binding{
		Owner:     c,
		Component: c.name,
		Kind:      kind,
		Deps:      deps,
		Apply:     apply,
	}
	c.bindings = append(c.bindings, b)
	c.session.hub.Register(b)
	if deferred && !c.deferredDone {
		c.deferred = append(c.deferred, b)
		return b
	}
	_ = c.session.hub.Run(b)
	return b
}
