package core

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/weft-ui/weft/pkg/dom"
	"github.com/weft-ui/weft/pkg/reactive"
)

// Binding kinds, as reported on reactive.Binding.Kind.
const (
	KindNameText      = "text"
	KindNameAttr      = "attr"
	KindNameClass     = "class"
	KindNameIf        = "if"
	KindNameList      = "list"
	KindNameComponent = "component"
	KindNameEvent     = "event"
	KindNameTextInput = "textinput"
	KindNameCustom    = "custom"
)

// segment is literal text or a value inside a text node or attribute.
type segment struct {
	literal string
	value   Value
	bound   bool
}

// slot is one bindable place found while scanning: an attribute of an
// element, or a text node.
type slot struct {
	node *dom.Node
	attr string
	text bool
	segs []segment
}

// value returns the first bound value of the slot.
func (s slot) value() Value {
	for _, seg := range s.segs {
		if seg.bound {
			return seg.value
		}
	}
	return Value{}
}

// single reports whether the slot is exactly one value with no literal text.
func (s slot) single() bool {
	return len(s.segs) == 1 && s.segs[0].bound
}

// attrBinders dispatches data-* attributes by name. Names that are DOM
// events and names registered with Session.AddBinding are handled apart.
var attrBinders = map[string]func(c *Component, s slot){
	KindNameComponent: (*Component).bindComponent,
	KindNameList:      (*Component).bindList,
	KindNameIf:        (*Component).bindIf,
	KindNameClass:     (*Component).bindClass,
	KindNameTextInput: (*Component).bindTextInput,
}

// classify returns the binding kind for an attribute name, and the event or
// custom binding name it carries.
func classify(attr string) (kind, name string) {
	rest, ok := strings.CutPrefix(attr, "data-")
	if !ok {
		return KindNameAttr, attr
	}
	if dom.IsEvent(rest) {
		return KindNameEvent, rest
	}
	if _, ok := attrBinders[rest]; ok {
		return rest, rest
	}
	return KindNameCustom, rest
}

func (c *Component) bindSlot(s slot) {
	if s.text {
		c.bindText(s)
		return
	}
	kind, name := classify(s.attr)
	switch kind {
	case KindNameAttr:
		c.bindAttr(s)
	case KindNameEvent:
		c.bindEvent(s, name)
	case KindNameCustom:
		c.bindCustom(s, name)
	default:
		attrBinders[kind](c, s)
	}
	if kind != KindNameAttr {
		s.node.RemoveAttr(s.attr)
	}
}

// deps collects the cells every bound segment depends on.
func deps(segs []segment) []reactive.Cell {
	var out []reactive.Cell
	for _, seg := range segs {
		if seg.bound {
			out = append(out, seg.value.Dependencies()...)
		}
	}
	return out
}

func isReactive(segs []segment) bool {
	for _, seg := range segs {
		if seg.bound && seg.value.reactive() {
			return true
		}
	}
	return false
}

// render concatenates the segments with every value resolved.
func render(segs []segment) (string, error) {
	var sb strings.Builder
	for _, seg := range segs {
		if !seg.bound {
			sb.WriteString(seg.literal)
			continue
		}
		v, err := seg.value.Resolve()
		if err != nil {
			return "", err
		}
		sb.WriteString(stringify(v))
	}
	return sb.String(), nil
}

// stringify formats a resolved value for text and attribute content.
func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case []string:
		return strings.Join(v, " ")
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(v)
}

func (c *Component) bindText(s slot) {
	node := s.node
	apply := func() error {
		text, err := render(s.segs)
		if err != nil {
			return err
		}
		if node.Text() != text {
			node.SetText(text)
		}
		return nil
	}
	if !isReactive(s.segs) {
		if err := apply(); err != nil {
			c.report("core.Component.bindText", KindNameText, err)
		}
		return
	}
	c.register(KindNameText, deps(s.segs), apply, false)
}

// bindAttr handles plain attributes. A single value owns the attribute and
// removes it when it resolves to nil; mixed text is rendered as a string.
func (c *Component) bindAttr(s slot) {
	node, name := s.node, s.attr
	var apply func() error
	if s.single() {
		v := s.value()
		if v.kind == KindFunc && v.call == nil {
			node.RemoveAttr(name)
			return
		}
		apply = func() error {
			r, err := v.Resolve()
			if err != nil {
				return err
			}
			if r == nil {
				node.RemoveAttr(name)
				return nil
			}
			setAttr(node, name, stringify(r))
			return nil
		}
	} else {
		apply = func() error {
			text, err := render(s.segs)
			if err != nil {
				return err
			}
			setAttr(node, name, text)
			return nil
		}
	}

	if !isReactive(s.segs) {
		if err := apply(); err != nil {
			c.report("core.Component.bindAttr", KindNameAttr, err)
		}
		return
	}
	if v := s.value(); s.single() && name == "value" && node.IsFormControl() && v.kind == KindState {
		cell := v.cell
		node.AddEventListener("change", func(dom.Event) {
			c.assign(cell, node.Value(), KindNameAttr)
		})
	}
	c.register(KindNameAttr, deps(s.segs), apply, false)
}

// setAttr writes the attribute only when it differs. The value of a form
// control follows its value attribute.
func setAttr(node *dom.Node, name, value string) {
	if cur, ok := node.Attr(name); !ok || cur != value {
		node.SetAttr(name, value)
	}
	if name == "value" && node.IsFormControl() && node.Value() != value {
		node.SetValue(value)
	}
}

func (c *Component) assign(cell reactive.Cell, v string, binding string) {
	if err := cell.Assign(v); err != nil {
		c.report("core.Component.assign", binding, err)
	}
}

func (c *Component) bindEvent(s slot, event string) {
	if l := s.value().listener(); l != nil {
		s.node.AddEventListener(event, l)
	}
}

func (c *Component) bindComponent(s slot) {
	v := s.value()
	if v.kind != KindComp {
		s.node.Remove()
		return
	}
	child := v.comp
	if err := checkAttachable(child); err != nil {
		c.report("core.Component.bindComponent", KindNameComponent, err)
		s.node.Remove()
		return
	}
	s.node.ReplaceWith(child.fragment)
	child.attached = true
	c.adopt(child)
}

func (c *Component) bindList(s slot) {
	v := s.value()
	if v.kind != KindList {
		s.node.Remove()
		return
	}
	for _, child := range v.list {
		if err := checkAttachable(child); err != nil {
			c.report("core.Component.bindList", KindNameList, err)
			s.node.Remove()
			return
		}
	}
	agg := c.session.doc.CreateFragment()
	for _, child := range v.list {
		agg.AppendChild(child.fragment)
		child.attached = true
	}
	s.node.ReplaceWith(agg)
	for _, child := range v.list {
		c.adopt(child)
	}
}

// bindClass merges the classes an accessor yields with the classes the
// element had when it was bound.
func (c *Component) bindClass(s slot) {
	v, node := s.value(), s.node
	base := node.Classes()
	apply := func() error {
		r, err := v.Resolve()
		if err != nil {
			return err
		}
		want := mergeClasses(base, classesOf(r))
		if !slices.Equal(node.Classes(), want) {
			node.SetClasses(want)
		}
		return nil
	}
	if !v.reactive() {
		if err := apply(); err != nil {
			c.report("core.Component.bindClass", KindNameClass, err)
		}
		return
	}
	c.register(KindNameClass, v.Dependencies(), apply, false)
}

// classesOf interprets a class binding result: a space separated string or
// a list of names.
func classesOf(v any) []string {
	switch v := v.(type) {
	case string:
		return strings.Fields(v)
	case []string:
		return slices.DeleteFunc(slices.Clone(v), func(s string) bool { return strings.TrimSpace(s) == "" })
	case []any:
		var out []string
		for _, e := range v {
			if s, ok := e.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	}
	return nil
}

func mergeClasses(base, derived []string) []string {
	out := slices.Clone(base)
	for _, cls := range derived {
		if !slices.Contains(out, cls) {
			out = append(out, cls)
		}
	}
	return out
}

// bindTextInput keeps a form control and a state cell in sync both ways.
func (c *Component) bindTextInput(s slot) {
	v, node := s.value(), s.node
	if v.kind != KindState || v.cell == nil || !node.IsFormControl() {
		return
	}
	cell := v.cell
	node.AddEventListener("keyup", func(dom.Event) {
		c.assign(cell, node.Value(), KindNameTextInput)
	})
	c.register(KindNameTextInput, []reactive.Cell{cell}, func() error {
		val := stringify(cell.Get())
		if node.Tag() != "textarea" {
			if cur, ok := node.Attr("value"); !ok || cur != val {
				node.SetAttr("value", val)
			}
		}
		if node.Value() != val {
			node.SetValue(val)
		}
		return nil
	}, false)
}
