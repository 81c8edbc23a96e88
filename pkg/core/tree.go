package core

import (
	"fmt"

	"github.com/weft-ui/weft/pkg/dom"
	"github.com/weft-ui/weft/pkg/errors"
)

// placeholderTag is the element Embed, Each and When materialize into. It is
// replaced or unwrapped while binding and never reaches the document.
const placeholderTag = "weft-slot"

// Part is a node of a structured template built with El, Attr, Bind, Text,
// Embed, Each and When.
type Part interface {
	part()
}

type elementPart struct {
	tag   string
	parts []Part
}

type attrPart struct {
	name, value string
}

type bindPart struct {
	name  string
	value Value
}

type textPart struct {
	segs []segment
}

func (elementPart) part() {}
func (attrPart) part()    {}
func (bindPart) part()    {}
func (textPart) part()    {}

// El returns an element with the given attributes and children.
func El(tag string, parts ...Part) Part {
	return elementPart{tag: tag, parts: parts}
}

// Attr returns a static attribute.
func Attr(name, value string) Part {
	return attrPart{name: name, value: value}
}

// Bind returns an attribute bound to v. The name selects the binding the
// same way an attribute in markup does.
func Bind(name string, v Value) Part {
	return bindPart{name: name, value: v}
}

// Text returns a text node made of literal strings and values. Any other
// segment is formatted with fmt.Sprint.
func Text(segments ...any) Part {
	var t textPart
	for _, s := range segments {
		switch s := s.(type) {
		case string:
			t.segs = append(t.segs, segment{literal: s})
		case Value:
			if s.kind == KindRaw {
				t.segs = append(t.segs, segment{literal: s.raw})
			} else {
				t.segs = append(t.segs, segment{value: s, bound: true})
			}
		default:
			t.segs = append(t.segs, segment{literal: fmt.Sprint(s)})
		}
	}
	return t
}

// Embed places a child component.
func Embed(child *Component) Part {
	return El(placeholderTag, Bind("data-component", Comp(child)))
}

// Each places a sequence of child components.
func Each(children ...*Component) Part {
	return El(placeholderTag, Bind("data-list", List(children...)))
}

// When shows parts while cond is truthy.
func When(cond Value, parts ...Part) Part {
	return El(placeholderTag, append([]Part{Bind("data-if", cond)}, parts...)...)
}

// Build sets the component's template from a structured tree. Values are
// bound by reference; no placeholder tokens are involved.
func (c *Component) Build(parts ...Part) error {
	const op = "core.Component.Build"
	if c.materialized {
		return &errors.WeftError{Op: op, Kind: errors.KindBinding, Component: c.name, Err: errors.ErrAlreadyTemplated}
	}
	frag := c.session.doc.CreateFragment()
	var slots []slot
	for _, p := range parts {
		if err := c.materialize(frag, p, &slots); err != nil {
			return &errors.WeftError{Op: op, Kind: errors.KindBinding, Component: c.name, Err: err}
		}
	}
	c.finish(frag, slots)
	return nil
}

// materialize appends p under parent and collects its slots in the same
// order scanMarkup would.
func (c *Component) materialize(parent *dom.Node, p Part, slots *[]slot) error {
	doc := c.session.doc
	switch p := p.(type) {
	case elementPart:
		el := doc.CreateElement(p.tag)
		parent.AppendChild(el)
		var children []Part
		for _, child := range p.parts {
			switch a := child.(type) {
			case attrPart:
				el.SetAttr(a.name, a.value)
			case bindPart:
				if a.value.kind == KindRaw {
					el.SetAttr(a.name, a.value.raw)
					continue
				}
				*slots = append(*slots, slot{node: el, attr: a.name, segs: []segment{{value: a.value, bound: true}}})
			default:
				children = append(children, child)
			}
		}
		for _, child := range children {
			if err := c.materialize(el, child, slots); err != nil {
				return err
			}
		}
	case textPart:
		node := doc.CreateText(literalText(p.segs))
		parent.AppendChild(node)
		if hasBound(p.segs) {
			*slots = append(*slots, slot{node: node, text: true, segs: p.segs})
		}
	case attrPart, bindPart:
		return fmt.Errorf("attribute %q outside of an element", attrName(p))
	case nil:
	default:
		return fmt.Errorf("unknown template part %T", p)
	}
	return nil
}

func attrName(p Part) string {
	switch p := p.(type) {
	case attrPart:
		return p.name
	case bindPart:
		return p.name
	}
	return ""
}

func literalText(segs []segment) string {
	var s string
	for _, seg := range segs {
		if !seg.bound {
			s += seg.literal
		}
	}
	return s
}

func hasBound(segs []segment) bool {
	for _, seg := range segs {
		if seg.bound {
			return true
		}
	}
	return false
}
