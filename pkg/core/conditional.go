package core

import (
	"github.com/weft-ui/weft/pkg/dom"
	"github.com/weft-ui/weft/pkg/reactive"
)

// Anchor comments delimiting the range of a reactive if.
const (
	ifStartAnchor = "weft:if"
	ifEndAnchor   = "/weft:if"
)

// conditional shows or hides the range between two anchor comments.
type conditional struct {
	owner   *Component
	doc     *dom.Document
	start   *dom.Node
	end     *dom.Node
	acc     reactive.Accessor
	present bool
	// hold keeps the range, siblings intact, while it is hidden.
	hold *dom.Node
}

// bindIf unwraps the element's children in place. A static value keeps or
// drops them once; a reactive value registers a deferred binding that
// toggles them between two anchors.
func (c *Component) bindIf(s slot) {
	v, node := s.value(), s.node
	if !v.reactive() {
		r, err := v.Resolve()
		if err != nil {
			c.report("core.Component.bindIf", KindNameIf, err)
		}
		if err == nil && reactive.Truthy(r) {
			unwrap(node)
		} else {
			node.Remove()
		}
		return
	}

	doc := c.session.doc
	k := &conditional{
		owner:   c,
		doc:     doc,
		start:   doc.CreateComment(ifStartAnchor),
		end:     doc.CreateComment(ifEndAnchor),
		acc:     v.Accessor(),
		present: true,
	}
	frag := doc.CreateFragment()
	frag.AppendChild(k.start)
	for _, child := range node.Children() {
		frag.AppendChild(child)
	}
	frag.AppendChild(k.end)
	node.ReplaceWith(frag)
	c.register(KindNameIf, k.acc.Dependencies(), k.apply, true)
}

// unwrap replaces node with its children.
func unwrap(node *dom.Node) {
	frag := node.Document().CreateFragment()
	for _, child := range node.Children() {
		frag.AppendChild(child)
	}
	node.ReplaceWith(frag)
}

// apply moves the range in or out of the document. Applying the current
// state again is a no-op.
func (k *conditional) apply() error {
	r, err := k.acc.Resolve()
	if err != nil {
		return err
	}
	want := reactive.Truthy(r)
	switch {
	case want && !k.present:
		k.insert()
	case !want && k.present:
		k.remove()
	}
	return nil
}

func (k *conditional) remove() {
	if k.hold == nil {
		k.hold = k.doc.CreateFragment()
	}
	if k.start.Parent() != nil {
		var nodes []*dom.Node
		for n := k.start.NextSibling(); n != nil && n != k.end; n = n.NextSibling() {
			nodes = append(nodes, n)
		}
		for _, n := range nodes {
			k.hold.AppendChild(n)
		}
	}
	k.present = false
}

// insert puts the range back before the end anchor, or after the start
// anchor when the end anchor has been removed. Components in the range that
// are connected now get mounted.
func (k *conditional) insert() {
	defer k.owner.session.mountConnected()
	k.present = true
	if k.hold == nil || k.hold.FirstChild() == nil {
		return
	}
	switch {
	case k.end.Parent() != nil:
		k.end.Parent().InsertBefore(k.hold, k.end)
	case k.start.Parent() != nil:
		k.start.Parent().InsertBefore(k.hold, k.start.NextSibling())
	}
}
