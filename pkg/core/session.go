package core

import (
	"github.com/weft-ui/weft/pkg/dom"
	"github.com/weft-ui/weft/pkg/errors"
	"github.com/weft-ui/weft/pkg/reactive"
)

// Default root marker.
const (
	DefaultRootAttr  = "data-is"
	DefaultRootValue = "root"
)

// Session is the context of one render: the document components
// materialize into, the hub that dispatches state changes, custom bindings
// and components registered by name.
type Session struct {
	doc       *dom.Document
	hub       *reactive.Hub
	hubOpts   []reactive.HubOption
	custom    map[string]CustomBinding
	named     map[string][]*Component
	tops      []*Component
	rootAttr  string
	rootValue string
}

// Option configures a Session.
type Option func(*Session)

// WithRootMarker sets the attribute and value Render looks for.
func WithRootMarker(attr, value string) Option {
	return func(s *Session) {
		s.rootAttr = attr
		s.rootValue = value
	}
}

// WithHubOptions configures the session's dispatch hub.
func WithHubOptions(opts ...reactive.HubOption) Option {
	return func(s *Session) {
		s.hubOpts = append(s.hubOpts, opts...)
	}
}

// NewSession returns a session rendering into doc. A nil doc gets a blank
// page.
func NewSession(doc *dom.Document, opts ...Option) *Session {
	if doc == nil {
		doc = dom.NewDocument()
	}
	s := &Session{
		doc:       doc,
		custom:    make(map[string]CustomBinding),
		named:     make(map[string][]*Component),
		rootAttr:  DefaultRootAttr,
		rootValue: DefaultRootValue,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.hub = reactive.NewHub(s.hubOpts...)
	return s
}

// Document returns the session's document.
func (s *Session) Document() *dom.Document { return s.doc }

// Hub returns the session's dispatch hub.
func (s *Session) Hub() *reactive.Hub { return s.hub }

// NewComponent returns an empty component.
func (s *Session) NewComponent(name string) *Component {
	return &Component{session: s, name: name}
}

// AddBinding registers a custom binding for data-<name> attributes. It only
// affects templates materialized afterwards.
func (s *Session) AddBinding(name string, b CustomBinding) {
	if b == nil {
		delete(s.custom, name)
		return
	}
	s.custom[name] = b
}

func (s *Session) binding(name string) CustomBinding {
	return s.custom[name]
}

// Register makes components available to static data-component and
// data-list markers under name.
func (s *Session) Register(name string, comps ...*Component) {
	s.named[name] = comps
}

// Render attaches root at the root marker, removes the marker attribute,
// applies deferred bindings, fires mount callbacks and resolves named
// markers.
func (s *Session) Render(root *Component) error {
	const op = "core.Session.Render"
	marker := s.doc.QueryAttr(s.rootAttr, s.rootValue)
	if marker == nil {
		return &errors.WeftError{Op: op, Kind: errors.KindRender, Err: errors.ErrRootNotFound}
	}
	if err := checkAttachable(root); err != nil {
		name := ""
		if root != nil {
			name = root.name
		}
		return &errors.WeftError{Op: op, Kind: errors.KindRender, Component: name, Err: err}
	}
	marker.AppendChild(root.fragment)
	root.attached = true
	marker.RemoveAttr(s.rootAttr)
	s.tops = append(s.tops, root)
	root.ApplyDeferred()
	root.mount()
	s.RenderNamed()
	return nil
}

// RenderNamed replaces static data-component and data-list markers in the
// document with the components registered under their value. Markers with no
// registered name are removed.
func (s *Session) RenderNamed() {
	for _, marker := range s.doc.QueryAllAttr("data-list") {
		name, _ := marker.Attr("data-list")
		s.insertNamed(marker, s.named[name], KindNameList)
	}
	for _, marker := range s.doc.QueryAllAttr("data-component") {
		name, _ := marker.Attr("data-component")
		comps := s.named[name]
		if len(comps) > 1 {
			comps = comps[:1]
		}
		s.insertNamed(marker, comps, KindNameComponent)
	}
}

func (s *Session) insertNamed(marker *dom.Node, comps []*Component, kind string) {
	if len(comps) == 0 {
		marker.Remove()
		return
	}
	for _, c := range comps {
		if err := checkAttachable(c); err != nil {
			errors.Report(&errors.WeftError{Op: "core.Session.RenderNamed", Kind: errors.KindRender, Binding: kind, Err: err})
			marker.Remove()
			return
		}
	}
	agg := s.doc.CreateFragment()
	for _, c := range comps {
		agg.AppendChild(c.fragment)
		c.attached = true
	}
	marker.ReplaceWith(agg)
	s.tops = append(s.tops, comps...)
	for _, c := range comps {
		c.ApplyDeferred()
		if c.connected() {
			c.mount()
		}
	}
}

// mountConnected mounts every rendered component, and every descendant,
// whose nodes are connected and that has not mounted yet.
func (s *Session) mountConnected() {
	for _, c := range s.tops {
		switch {
		case c.mounted:
			c.mountChildren()
		case c.connected():
			c.mount()
		}
	}
}
