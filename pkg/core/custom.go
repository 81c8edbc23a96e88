package core

import "github.com/weft-ui/weft/pkg/dom"

// BindingContext is handed to a custom binding for each attribute it
// handles.
type BindingContext struct {
	// Node is the element carrying the attribute.
	Node *dom.Node
	// Name is the binding name without the data- prefix.
	Name string
	// Value is the value the attribute was bound to.
	Value Value
	// Kind is the kind of Value.
	Kind Kind
	// Component is the component being templated.
	Component *Component
}

// CustomBinding handles data-<name> attributes registered with
// Session.AddBinding. It returns the function applied now and again whenever
// a cell the value depends on changes, or nil when nothing needs applying.
type CustomBinding func(ctx BindingContext) func() error

func (c *Component) bindCustom(s slot, name string) {
	handler := c.session.binding(name)
	if handler == nil {
		return
	}
	v := s.value()
	apply := handler(BindingContext{Node: s.node, Name: name, Value: v, Kind: v.Kind(), Component: c})
	if apply == nil {
		return
	}
	if !v.reactive() {
		if err := apply(); err != nil {
			c.report("core.Component.bindCustom", name, err)
		}
		return
	}
	c.register(name, v.Dependencies(), apply, false)
}
