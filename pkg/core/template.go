package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/weft-ui/weft/pkg/dom"
	"github.com/weft-ui/weft/pkg/errors"
)

// tokenPattern matches the placeholder a pooled value is serialized as.
var tokenPattern = regexp.MustCompile(`_(func|bool|obj|arr|state|is|comp)_(\d+)_`)

// Template sets the component's template from literal parts and the values
// between them. len(parts) must be len(values)+1. Pooled values are written
// as placeholder tokens, raw values verbatim; the joined markup is trimmed,
// parsed into a fragment and scanned for bindings.
func (c *Component) Template(parts []string, values ...Value) error {
	const op = "core.Component.Template"
	if c.materialized {
		return &errors.WeftError{Op: op, Kind: errors.KindBinding, Component: c.name, Err: errors.ErrAlreadyTemplated}
	}
	if len(parts) != len(values)+1 {
		return &errors.WeftError{
			Op:        op,
			Kind:      errors.KindBinding,
			Component: c.name,
			Err:       fmt.Errorf("%w: %d parts for %d values", errors.ErrTemplateArity, len(parts), len(values)),
		}
	}

	var sb strings.Builder
	sb.WriteString(parts[0])
	for i, v := range values {
		if v.kind == KindRaw {
			sb.WriteString(v.raw)
		} else {
			sb.WriteString(c.pool(v))
		}
		sb.WriteString(parts[i+1])
	}

	frag, err := c.session.doc.ParseFragment(strings.TrimSpace(sb.String()))
	if err != nil {
		return &errors.WeftError{Op: op, Kind: errors.KindBinding, Component: c.name, Err: err}
	}
	c.finish(frag, c.scanMarkup(frag))
	return nil
}

// Markup is Template with the parts taken from src split at every "{}".
func (c *Component) Markup(src string, values ...Value) error {
	return c.Template(strings.Split(src, "{}"), values...)
}

// finish binds the collected slots and records the fragment.
func (c *Component) finish(frag *dom.Node, slots []slot) {
	c.fragment = frag
	c.materialized = true
	for _, s := range slots {
		c.bindSlot(s)
	}
	c.nodes = frag.Children()
}

// pool appends v to the pool of its kind and returns its token.
func (c *Component) pool(v Value) string {
	var idx int
	switch v.kind {
	case KindFunc:
		idx = len(c.funcs)
		c.funcs = append(c.funcs, v)
	case KindBool:
		idx = len(c.bools)
		c.bools = append(c.bools, v.b)
	case KindObj:
		idx = len(c.objs)
		c.objs = append(c.objs, v.obj)
	case KindList:
		idx = len(c.arrs)
		c.arrs = append(c.arrs, v.list)
	case KindState:
		idx = len(c.states)
		c.states = append(c.states, v.cell)
	case KindIs:
		idx = len(c.ises)
		c.ises = append(c.ises, v.expr)
	case KindComp:
		idx = len(c.comps)
		c.comps = append(c.comps, v.comp)
	}
	return "_" + v.kind.String() + "_" + strconv.Itoa(idx) + "_"
}

// lookup resolves a token's pool name and index back to its value.
func (c *Component) lookup(pool, index string) (Value, bool) {
	i, err := strconv.Atoi(index)
	if err != nil || i < 0 {
		return Value{}, false
	}
	in := func(n int) bool { return i < n }
	switch pool {
	case "func":
		if in(len(c.funcs)) {
			return c.funcs[i], true
		}
	case "bool":
		if in(len(c.bools)) {
			return Bool(c.bools[i]), true
		}
	case "obj":
		if in(len(c.objs)) {
			return Obj(c.objs[i]), true
		}
	case "arr":
		if in(len(c.arrs)) {
			return List(c.arrs[i]...), true
		}
	case "state":
		if in(len(c.states)) {
			return State(c.states[i]), true
		}
	case "is":
		if in(len(c.ises)) {
			return Is(c.ises[i]), true
		}
	case "comp":
		if in(len(c.comps)) {
			return Comp(c.comps[i]), true
		}
	}
	return Value{}, false
}

// segments splits s into literal text and resolved token values. ok is
// false when s holds no resolvable token. Unresolvable tokens stay literal.
func (c *Component) segments(s string) (segs []segment, ok bool) {
	last := 0
	for _, loc := range tokenPattern.FindAllStringSubmatchIndex(s, -1) {
		v, found := c.lookup(s[loc[2]:loc[3]], s[loc[4]:loc[5]])
		if !found {
			continue
		}
		if loc[0] > last {
			segs = append(segs, segment{literal: s[last:loc[0]]})
		}
		segs = append(segs, segment{value: v, bound: true})
		last = loc[1]
		ok = true
	}
	if !ok {
		return nil, false
	}
	if last < len(s) {
		segs = append(segs, segment{literal: s[last:]})
	}
	return segs, true
}

// scanMarkup collects the binding slots of a parsed fragment in document
// order, attributes of an element before its descendants.
func (c *Component) scanMarkup(frag *dom.Node) []slot {
	var slots []slot
	frag.Walk(func(n *dom.Node) bool {
		switch n.Type() {
		case dom.ElementNode:
			for _, a := range n.Attrs() {
				if segs, ok := c.segments(a.Value); ok {
					slots = append(slots, slot{node: n, attr: a.Name, segs: segs})
				}
			}
		case dom.TextNode:
			if segs, ok := c.segments(n.Text()); ok {
				slots = append(slots, slot{node: n, text: true, segs: segs})
			}
		}
		return true
	})
	return slots
}
